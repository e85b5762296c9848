package saturate

import (
	"container/heap"

	"github.com/kevinawalsh/prover9/internal/clause"
)

// passiveItem is one entry in the passive priority queue: a clause plus the
// weight it was scheduled with (hint overrides may differ from
// ClauseWeight(c), so the weight actually used for ordering is captured at
// schedule time, not recomputed on pop).
type passiveItem struct {
	clause *clause.Topform
	weight int
	index  int
}

// passiveQueue is a min-heap over (weight, id), giving pop_lightest its
// required ascending order (spec.md §5: "Clauses are processed in
// ascending (weight, id) order from passive"). Grounded on container/heap's
// standard five-method interface, the same pattern used for a heap-ordered
// structure elsewhere in the retrieved corpus (dolthub-go-mysql-server's
// histogram MCV heap).
type passiveQueue []*passiveItem

func (q passiveQueue) Len() int { return len(q) }

func (q passiveQueue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].clause.ID < q[j].clause.ID
}

func (q passiveQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index, q[j].index = i, j
}

func (q *passiveQueue) Push(x interface{}) {
	item := x.(*passiveItem)
	item.index = len(*q)
	*q = append(*q, item)
}

func (q *passiveQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// Passive wraps passiveQueue behind the vocabulary the saturation loop
// uses: Schedule and PopLightest.
type Passive struct {
	q    passiveQueue
	byID map[int]*passiveItem
}

// NewPassive returns an empty passive queue.
func NewPassive() *Passive {
	return &Passive{byID: make(map[int]*passiveItem)}
}

// Schedule adds c to the passive queue with the given weight.
func (p *Passive) Schedule(c *clause.Topform, weight int) {
	item := &passiveItem{clause: c, weight: weight}
	heap.Push(&p.q, item)
	p.byID[c.ID] = item
}

// PopLightest removes and returns the lightest (weight, id) clause, or nil
// if passive is empty.
func (p *Passive) PopLightest() *clause.Topform {
	if p.q.Len() == 0 {
		return nil
	}
	item := heap.Pop(&p.q).(*passiveItem)
	delete(p.byID, item.clause.ID)
	return item.clause
}

// Len reports how many clauses remain in passive.
func (p *Passive) Len() int { return p.q.Len() }

// Remove deletes id from passive if present (e.g. it was subsumed before
// ever becoming given).
func (p *Passive) Remove(id int) {
	item, ok := p.byID[id]
	if !ok {
		return
	}
	heap.Remove(&p.q, item.index)
	delete(p.byID, id)
}
