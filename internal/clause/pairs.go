package clause

import "sort"

// PairScheduler enumerates (given, other) clause pairs for binary
// generating inference in order of increasing weight sum, then by clause
// ID — the Henschen-Overbeek-Wos bucket scheme from spec.md §4.I. Weight
// is clamped to [0, N-1] so a handful of overweight clauses can't blow up
// the bucket count.
type PairScheduler struct {
	maxWeight int // N-1, the highest real bucket index
	buckets   [][]int32

	// cursor state: the pair currently "at" (i, j) is buckets[i][pi] and
	// buckets[j][pj], for the current weight-sum s = i+j.
	s, i, pi, pj int
	exhausted    bool
}

// NewPairScheduler returns a scheduler with N+1 buckets (indices 0..N,
// where bucket N catches every clause whose weight exceeds N-1).
func NewPairScheduler(n int) *PairScheduler {
	if n < 1 {
		n = 1
	}
	ps := &PairScheduler{maxWeight: n - 1, buckets: make([][]int32, n+1)}
	ps.reset()
	return ps
}

func (ps *PairScheduler) bucketIndex(weight int) int {
	if weight > ps.maxWeight {
		return ps.maxWeight + 1
	}
	if weight < 0 {
		return 0
	}
	return weight
}

// Insert adds a clause (by ID and weight) to the appropriate bucket,
// keeping the bucket sorted by ID (spec.md §4.I: "Clauses inside a bucket
// are ordered by ID"). A newly inserted clause may introduce a lighter
// pair than the cursor's current position, so the cursor resets to the
// lightest unexplored weight sum — conservative, but simple and correct;
// spec.md §4.I allows the cursor to "rewind" without mandating exactly
// how far.
func (ps *PairScheduler) Insert(id int32, weight int) {
	b := ps.bucketIndex(weight)
	bucket := ps.buckets[b]
	pos := sort.Search(len(bucket), func(i int) bool { return bucket[i] >= id })
	if pos < len(bucket) && bucket[pos] == id {
		return
	}
	bucket = append(bucket, 0)
	copy(bucket[pos+1:], bucket[pos:])
	bucket[pos] = id
	ps.buckets[b] = bucket
	ps.reset()
}

// Remove deletes id from bucket weight (e.g. the clause was subsumed or
// discarded before its pairs were exhausted).
func (ps *PairScheduler) Remove(id int32, weight int) {
	b := ps.bucketIndex(weight)
	bucket := ps.buckets[b]
	pos := sort.Search(len(bucket), func(i int) bool { return bucket[i] >= id })
	if pos >= len(bucket) || bucket[pos] != id {
		return
	}
	ps.buckets[b] = append(bucket[:pos], bucket[pos+1:]...)
	ps.reset()
}

func (ps *PairScheduler) reset() {
	ps.s, ps.i, ps.pi, ps.pj = 0, 0, 0, 0
	ps.exhausted = false
}

// numBuckets is the real bucket count (N+1).
func (ps *PairScheduler) numBuckets() int { return len(ps.buckets) }

// Next returns the next (given, other) pair in strict (i+j, i, j) order
// (spec.md §5: "Pair scheduling enumerates pairs in strict (i+j, i, j)
// order"), or ok=false once every pair has been produced for the buckets
// as currently populated. Both IDs may come from the same bucket,
// including self-pairs (i == j) when the bucket holds at least one
// clause — callers that must exclude a clause pairing with itself check
// that case themselves, since some generating rules (e.g. factoring)
// legitimately want it.
func (ps *PairScheduler) Next() (given, other int32, ok bool) {
	for {
		if ps.exhausted {
			return 0, 0, false
		}
		if ps.s > 2*ps.numBuckets()-2 {
			ps.exhausted = true
			return 0, 0, false
		}
		j := ps.s - ps.i
		if ps.i > ps.s || j < 0 || ps.i >= ps.numBuckets() || j >= ps.numBuckets() {
			ps.advanceI()
			continue
		}
		bi := ps.buckets[ps.i]
		bj := ps.buckets[j]
		if ps.pi >= len(bi) {
			ps.advanceI()
			continue
		}
		if ps.pj >= len(bj) {
			ps.pj = 0
			ps.pi++
			continue
		}
		given, other = bi[ps.pi], bj[ps.pj]
		ps.pj++
		return given, other, true
	}
}

func (ps *PairScheduler) advanceI() {
	ps.i++
	ps.pi, ps.pj = 0, 0
	if ps.i > ps.s {
		ps.s++
		ps.i, ps.pi, ps.pj = 0, 0, 0
	}
}
