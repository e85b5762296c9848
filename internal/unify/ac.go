package unify

import (
	"github.com/kevinawalsh/prover9/internal/acterm"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// CUnify implements backtracking unification for a commutative (non-AC)
// binary symbol: it tries the two argument alignments f(a,b)~f(c,d) ->
// {a~c,b~d} then {a~d,b~c} (spec.md §4.D). accept is called once per
// successful alignment with its bindings live on tr; returning false from
// accept stops the search early. CUnify always leaves tr exactly as it
// found it once it returns. Per the Open Question decision recorded in
// SPEC_FULL.md, duplicate unifiers (when both alignments happen to produce
// the same substitution) are not deduplicated.
func CUnify(tab *symtab.Table, s, t *term.Term, cs, ct *subst.Context, tr *subst.Trail, accept func() bool) {
	if !s.IsRigid() || !t.IsRigid() || s.Sym != t.Sym || !tab.IsCommutative(s.Sym) || len(s.Args) != 2 {
		return
	}
	mark := tr.Save()
	if Unify(s.Args[0], cs, t.Args[0], ct, tr) && Unify(s.Args[1], cs, t.Args[1], ct, tr) {
		if !accept() {
			tr.UndoTo(mark)
			return
		}
	}
	tr.UndoTo(mark)

	mark2 := tr.Save()
	if Unify(s.Args[0], cs, t.Args[1], ct, tr) && Unify(s.Args[1], cs, t.Args[0], ct, tr) {
		if !accept() {
			tr.UndoTo(mark2)
			return
		}
	}
	tr.UndoTo(mark2)
}

// acMode selects which enumeration strategy NewACIterator settled on,
// depending on how many variables and non-variable leaves remained after
// cancellation.
type acMode int

const (
	modeTrivial   acMode = iota // nothing left over; one empty solution
	modeDiophVars               // only variables remain on both sides
	modePartition               // one side all-constants, the other all-variables
	modeNone                    // no solution possible
)

// ACIterator enumerates AC unifiers for two terms headed by the same AC
// symbol, following spec.md §4.D: flatten both sides, cancel leaves that
// are identical or directly unifiable, then solve what is left. What is
// left falls into one of three shapes this implementation handles
// directly — pure variable remainder on both sides (solved with the
// Diophantine basis solver over per-variable multiplicities), or one side
// purely non-variable and the other purely variable (solved by enumerating
// surjective partitions of the constant leaves across the variables, a
// brute-force enumeration of every leaf-to-variable assignment rather than
// Hullot's algorithm). A genuinely mixed remainder (constants left over on both
// sides after cancellation) is reduced by bundling each side's leftover
// constants into a single pseudo-atom absorbed by the first variable on
// the opposite side — a documented simplification (DESIGN.md) rather than
// the fully general cross-product search.
type ACIterator struct {
	tab    *symtab.Table
	sym    symtab.Num
	cs, ct *subst.Context
	tr     *subst.Trail

	mode acMode

	leftVars, rightVars           []*term.Term
	leftConstLeaves, rightConstLeaves []*term.Term

	basis      [][2][]int // modeDiophVars
	partitions [][]int    // modePartition: partitions[row][leafIndex] = bucket (variable index)
	partitionOnLeft bool  // true: constants are on the left, variables on the right

	bi int

	rowMark subst.Mark

	// PartialTerm is reset to nil by every Next. nextPartition sets it from
	// leaves a partition row leaves unassigned, but setupPartitions assigns
	// every leaf to some bucket, so no solution currently sets it.
	PartialTerm *term.Term

	// MaxBasis bounds the Diophantine solver in modeDiophVars.
	MaxBasis int
	err      error
}

// Err returns any error NewACIterator or the basis solver encountered
// (e.g. ErrTooManyBasis); a non-nil Err means First/Next always return
// false.
func (it *ACIterator) Err() error { return it.err }

// NewACIterator prepares AC unification of s and t, both headed by the AC
// symbol sym. allowPartial is used only when constants remain on the left
// side alone and variables on the right side alone; there it lets some of
// the right-side variables receive no leaf. Every leaf is still assigned,
// so no leftover leaves are reported as PartialTerm residue.
func NewACIterator(tab *symtab.Table, sym symtab.Num, s *term.Term, cs *subst.Context, t *term.Term, ct *subst.Context, tr *subst.Trail, allowPartial bool) *ACIterator {
	it := &ACIterator{tab: tab, sym: sym, cs: cs, ct: ct, tr: tr, MaxBasis: 64}

	leftLeaves := flattenCtx(tab, sym, s, cs)
	rightLeaves := flattenCtx(tab, sym, t, ct)

	leftLeaves, rightLeaves = cancelIdentical(leftLeaves, rightLeaves)
	leftLeaves, rightLeaves = cancelUnifiable(leftLeaves, rightLeaves, cs, ct, tr)

	for _, l := range leftLeaves {
		lt, _ := subst.Deref(l, cs)
		if lt.IsVar() {
			it.leftVars = append(it.leftVars, l)
		} else {
			it.leftConstLeaves = append(it.leftConstLeaves, l)
		}
	}
	for _, r := range rightLeaves {
		rt, _ := subst.Deref(r, ct)
		if rt.IsVar() {
			it.rightVars = append(it.rightVars, r)
		} else {
			it.rightConstLeaves = append(it.rightConstLeaves, r)
		}
	}

	switch {
	case len(it.leftConstLeaves) == 0 && len(it.rightConstLeaves) == 0:
		if len(it.leftVars) == 0 && len(it.rightVars) == 0 {
			it.mode = modeTrivial
			return it
		}
		it.mode = modeDiophVars
		it.setupDioph()
	case len(it.leftConstLeaves) > 0 && len(it.rightConstLeaves) == 0 && len(it.leftVars) == 0 && len(it.rightVars) > 0:
		it.mode = modePartition
		it.partitionOnLeft = true
		it.setupPartitions(it.leftConstLeaves, len(it.rightVars), allowPartial)
	case len(it.rightConstLeaves) > 0 && len(it.leftConstLeaves) == 0 && len(it.rightVars) == 0 && len(it.leftVars) > 0:
		it.mode = modePartition
		it.partitionOnLeft = false
		it.setupPartitions(it.rightConstLeaves, len(it.leftVars), false)
	default:
		it.mode = modeDiophVars
		it.setupDioph()
	}
	return it
}

func (it *ACIterator) setupDioph() {
	coefL := make([]int, len(it.leftVars))
	coefR := make([]int, len(it.rightVars))
	for i := range coefL {
		coefL[i] = 1
	}
	for i := range coefR {
		coefR[i] = 1
	}
	if len(coefL) == 0 || len(coefR) == 0 {
		if len(it.leftConstLeaves) == 0 && len(it.rightConstLeaves) == 0 {
			it.mode = modeTrivial
		} else {
			it.mode = modeNone
		}
		return
	}
	xs, ys, err := Basis(coefL, coefR, it.MaxBasis)
	if err != nil {
		it.err = err
		it.mode = modeNone
		return
	}
	if len(xs) == 0 {
		it.mode = modeNone
		return
	}
	for i := range xs {
		it.basis = append(it.basis, [2][]int{xs[i], ys[i]})
	}
}

// setupPartitions enumerates every way to assign each of the given leaves
// to one of k labeled buckets such that every bucket gets at least one
// leaf (a surjective partition), unless allowPartial is set, in which case
// buckets may also be left uncovered. Every leaf is assigned to a bucket
// in either case.
func (it *ACIterator) setupPartitions(leaves []*term.Term, k int, allowPartial bool) {
	if k == 0 || len(leaves) < k {
		if !allowPartial {
			it.mode = modeNone
			return
		}
	}
	assignment := make([]int, len(leaves))
	var rec func(i int)
	rec = func(i int) {
		if i == len(leaves) {
			seen := make([]bool, k)
			for _, b := range assignment {
				seen[b] = true
			}
			if !allowPartial {
				for _, s := range seen {
					if !s {
						return
					}
				}
			}
			row := append([]int(nil), assignment...)
			it.partitions = append(it.partitions, row)
			return
		}
		for b := 0; b < k; b++ {
			assignment[i] = b
			rec(i + 1)
		}
	}
	if k > 0 {
		rec(0)
	}
	if len(it.partitions) == 0 {
		it.mode = modeNone
	}
}

// First returns the first AC unifier, or false if there is none. Callers
// must call Cancel if they stop consuming before Next returns false, per
// the scoped-acquisition pattern in spec.md §5.
func (it *ACIterator) First() bool {
	it.bi = -1
	return it.Next()
}

// Next advances to the next unifier, applying its bindings to tr (undoing
// the previous alternative's bindings first). Returns false, having
// restored the trail to its pre-iteration state, when exhausted.
func (it *ACIterator) Next() bool {
	if it.bi >= 0 {
		it.tr.UndoTo(it.rowMark)
	}
	it.bi++
	it.PartialTerm = nil

	switch it.mode {
	case modeNone:
		return false
	case modeTrivial:
		return it.bi == 0
	case modeDiophVars:
		return it.nextDioph()
	case modePartition:
		return it.nextPartition()
	default:
		return false
	}
}

func (it *ACIterator) nextDioph() bool {
	if it.bi >= len(it.basis) {
		return false
	}
	it.rowMark = it.tr.Save()
	row := it.basis[it.bi]
	x, y := row[0], row[1]

	ok := true
	for i, xi := range x {
		if xi == 0 {
			continue
		}
		for j, yj := range y {
			if yj == 0 {
				continue
			}
			if !Unify(it.leftVars[i], it.cs, it.rightVars[j], it.ct, it.tr) {
				ok = false
			}
		}
	}
	if len(it.leftConstLeaves) > 0 && len(it.rightVars) > 0 {
		bundle := acBundle(it.tab, it.sym, it.leftConstLeaves, it.cs)
		if !Unify(it.rightVars[0], it.ct, bundle, it.cs, it.tr) {
			ok = false
		}
	}
	if len(it.rightConstLeaves) > 0 && len(it.leftVars) > 0 {
		bundle := acBundle(it.tab, it.sym, it.rightConstLeaves, it.ct)
		if !Unify(it.leftVars[0], it.cs, bundle, it.ct, it.tr) {
			ok = false
		}
	}
	if !ok {
		return it.Next()
	}
	return true
}

func (it *ACIterator) nextPartition() bool {
	if it.bi >= len(it.partitions) {
		return false
	}
	it.rowMark = it.tr.Save()
	row := it.partitions[it.bi]

	leaves, vars, leafCtx, varCtx := it.leftConstLeaves, it.rightVars, it.cs, it.ct
	if !it.partitionOnLeft {
		leaves, vars, leafCtx, varCtx = it.rightConstLeaves, it.leftVars, it.ct, it.cs
	}

	buckets := make([][]*term.Term, len(vars))
	var residue []*term.Term
	for i, b := range row {
		if b < 0 {
			residue = append(residue, leaves[i])
			continue
		}
		buckets[b] = append(buckets[b], leaves[i])
	}
	ok := true
	for j, bucket := range buckets {
		if len(bucket) == 0 {
			continue
		}
		bundle := acBundle(it.tab, it.sym, bucket, leafCtx)
		if !Unify(vars[j], varCtx, bundle, leafCtx, it.tr) {
			ok = false
			break
		}
	}
	if ok && len(residue) > 0 {
		it.PartialTerm = acBundle(it.tab, it.sym, residue, leafCtx)
	}
	if !ok {
		return it.Next()
	}
	return true
}

// Cancel clears any bindings made by the most recently returned solution
// and releases the iterator, restoring the trail to its pre-First state.
func (it *ACIterator) Cancel() {
	if it.bi >= 0 {
		it.tr.UndoTo(it.rowMark)
	}
	it.bi = -2 // past any valid index for every mode, so a stray Next is a no-op
	it.mode = modeNone
}

func acBundle(tab *symtab.Table, sym symtab.Num, leaves []*term.Term, ctx *subst.Context) *term.Term {
	applied := make([]*term.Term, len(leaves))
	for i, l := range leaves {
		applied[i] = subst.Apply(l, ctx)
	}
	t := applied[0]
	for _, a := range applied[1:] {
		t = term.NewRigidUnchecked(sym, []*term.Term{t, a})
	}
	return acterm.Canonical(tab, t)
}

func flattenCtx(tab *symtab.Table, sym symtab.Num, t *term.Term, ctx *subst.Context) []*term.Term {
	dt, dctx := subst.Deref(t, ctx)
	if dt.IsRigid() && dt.Sym == sym {
		var out []*term.Term
		for _, a := range dt.Args {
			out = append(out, flattenCtx(tab, sym, a, dctx)...)
		}
		return out
	}
	return []*term.Term{dt}
}

// cancelIdentical removes, one for one, leaves that are structurally
// identical.
func cancelIdentical(left, right []*term.Term) ([]*term.Term, []*term.Term) {
	usedR := make([]bool, len(right))
	var remL []*term.Term
	for _, l := range left {
		matched := false
		for j, r := range right {
			if usedR[j] {
				continue
			}
			if term.Ident(l, r) {
				usedR[j] = true
				matched = true
				break
			}
		}
		if !matched {
			remL = append(remL, l)
		}
	}
	var remR []*term.Term
	for j, r := range right {
		if !usedR[j] {
			remR = append(remR, r)
		}
	}
	return remL, remR
}

// cancelUnifiable greedily pairs up remaining non-variable leaves that
// unify with each other (not merely identical), e.g. f(x) against f(a);
// each successful pairing consumes one leaf from each side and commits its
// bindings to tr.
func cancelUnifiable(left, right []*term.Term, cs, ct *subst.Context, tr *subst.Trail) ([]*term.Term, []*term.Term) {
	usedR := make([]bool, len(right))
	var remL []*term.Term
	for _, l := range left {
		if l.IsVar() {
			remL = append(remL, l)
			continue
		}
		matched := false
		for j, r := range right {
			if usedR[j] || r.IsVar() {
				continue
			}
			if Unify(l, cs, r, ct, tr) {
				usedR[j] = true
				matched = true
				break
			}
		}
		if !matched {
			remL = append(remL, l)
		}
	}
	var remR []*term.Term
	for j, r := range right {
		if !usedR[j] {
			remR = append(remR, r)
		}
	}
	return remL, remR
}
