// Package demod implements forward and (the index half of) backward
// demodulation from spec.md §4.H: bottom-up rewriting of a term to normal
// form against an index of oriented equalities, with step and size
// budgets, ordering checks for non-oriented demodulators, conditional
// demodulation, and a replayable justification trace.
//
// Grounded on the same bottom-up recursive-descent shape the teacher uses
// to walk a Literal's argument tree (src/datalog/datalog.go's tagf/subst
// walk terms arg-by-arg, rebuilding as they go); generalized here to
// rewrite-to-fixpoint using package index (BindDiscrim) and package order
// for the non-oriented ordering check, instead of a flatterm
// prev/next/end linked structure — spec.md §3 describes flatterms as an
// optimization for O(1) splicing during rewriting, but a tree-term
// rebuild is the simpler, still-correct choice this codebase makes
// instead (see DESIGN.md).
package demod

import (
	"github.com/kevinawalsh/prover9/internal/index"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// Rule is one registered demodulator: an equality lhs=rhs belonging to
// clause ID, used to rewrite lhs-instances to rhs-instances. If Oriented
// is false, a match is only accepted when the substituted lhs is
// ordering-strictly-greater than the substituted rhs at rewrite time
// (spec.md §4.H).
type Rule struct {
	ID       int
	LHS, RHS *term.Term
	Oriented bool

	// Cond, if non-nil, is a conjunction of atoms that must each rewrite
	// to the truth constant under the same substitution before the step
	// is accepted — conditional demodulation, "cond -> (a=b)" (spec.md
	// §4.H).
	Cond []*term.Term
}

// side is what gets inserted into the pattern index for one usable
// rewrite direction of a Rule.
type side struct {
	rule *Rule
	dir  justify.Direction
	from *term.Term
	to   *term.Term
}

// Index holds every registered demodulator, indexed by its usable
// rewrite-from pattern(s) via a bind discrimination tree.
type Index struct {
	tab     *symtab.Table
	bd      *index.BindDiscrim
	entries map[int][]*index.Entry // rule ID -> its index entries (1 or 2)
}

// NewIndex returns an empty demodulator index.
func NewIndex(tab *symtab.Table, pool *subst.MultiplierPool) *Index {
	return &Index{tab: tab, bd: index.NewBindDiscrim(tab, pool), entries: make(map[int][]*index.Entry)}
}

// Insert registers r. An oriented rule indexes only LHS->RHS; an
// unoriented rule indexes both directions, deferring the real
// orientation decision to the ordering check made at each match (spec.md
// §4.H: "ordering checks for non-oriented demodulators").
func (idx *Index) Insert(r *Rule) error {
	sides := []side{{rule: r, dir: justify.L, from: r.LHS, to: r.RHS}}
	if !r.Oriented {
		sides = append(sides, side{rule: r, dir: justify.R, from: r.RHS, to: r.LHS})
	}
	for _, s := range sides {
		e, err := idx.bd.Insert(s.from, s)
		if err != nil {
			idx.Remove(r.ID)
			return err
		}
		idx.entries[r.ID] = append(idx.entries[r.ID], e)
	}
	return nil
}

// Remove deletes every index entry for rule ID.
func (idx *Index) Remove(id int) {
	for _, e := range idx.entries[id] {
		idx.bd.Remove(e)
	}
	delete(idx.entries, id)
}

// Budget bounds one demodulation call, per spec.md §4.H.
type Budget struct {
	// MaxSteps caps the number of successful rewrite steps; 0 means
	// unbounded.
	MaxSteps int
	// SizeIncrease caps how much term.Size may grow relative to the
	// subject's original size; 0 means unbounded.
	SizeIncrease int
}

func (b Budget) stepsOK(n int) bool { return b.MaxSteps <= 0 || n < b.MaxSteps }
func (b Budget) sizeOK(origSize, size int) bool {
	return b.SizeIncrease <= 0 || size <= origSize+b.SizeIncrease
}

// rewriter carries the mutable state of one top-level Rewrite call.
type rewriter struct {
	tab     *symtab.Table
	ord     *order.Order
	idx     *Index
	budget  Budget
	origLen int
	size    int // current size of the whole subject, checked against SizeIncrease
	pos     int // bottom-up visitation counter, for justify.DemodStep.Sequence
	steps   []justify.DemodStep
	limited bool
}

// Rewrite reduces t to normal form against idx, honoring budget, and
// returns the result alongside the ordered trace of successful steps.
// limited is true iff a budget stopped rewriting before a fixpoint was
// reached — the sentinel return spec.md §4.H calls for, rather than an
// error, since budget exhaustion is routine.
func Rewrite(tab *symtab.Table, ord *order.Order, idx *Index, t *term.Term, budget Budget) (result *term.Term, steps []justify.DemodStep, limited bool) {
	rw := &rewriter{tab: tab, ord: ord, idx: idx, budget: budget, origLen: term.Size(t), size: term.Size(t)}
	result = rw.rewrite(t)
	if len(rw.steps) > 0 {
		mapping := make(map[int]int)
		result = term.Renumber(result, mapping)
	}
	return result, rw.steps, rw.limited
}

func (rw *rewriter) rewrite(t *term.Term) *term.Term {
	if rw.limited {
		return t
	}
	if t.IsRigid() && len(t.Args) > 0 {
		args := make([]*term.Term, len(t.Args))
		changed := false
		for i, a := range t.Args {
			na := rw.rewrite(a)
			if na != a {
				changed = true
			}
			args[i] = na
		}
		if changed {
			t = term.NewRigidUnchecked(t.Sym, args)
		}
	}
	rw.pos++
	return rw.rewriteTop(t)
}

// rewriteTop tries every candidate demodulator at the node t (already
// rewritten below it), applying the first one whose match and (for
// non-oriented rules) ordering check succeed, then recurses once more in
// case the result admits further rewriting at this same position.
func (rw *rewriter) rewriteTop(t *term.Term) *term.Term {
	if !rw.budget.stepsOK(len(rw.steps)) {
		rw.limited = true
		return t
	}
	return rw.tryMatch(t)
}

// tryMatch walks the candidate demodulator entries for t (via the shared
// index.Iterator confirm/bind protocol) and applies the first acceptable
// one.
func (rw *rewriter) tryMatch(t *term.Term) *term.Term {
	var qc subst.Context
	var tr subst.Trail
	it := rw.idx.bd.Generalizations(t, &qc, &tr)
	for candObj := it.Next(); candObj != nil; candObj = it.Next() {
		s := candObj.(side)
		e := it.Current()
		if !rw.acceptable(s, e) {
			continue
		}
		rhs := subst.Apply(s.to, e.Ctx)
		it.Cancel()
		newSize := rw.size - term.Size(t) + term.Size(rhs)
		if !rw.budget.sizeOK(rw.origLen, newSize) {
			rw.limited = true
			return t
		}
		rw.size = newSize
		rw.steps = append(rw.steps, justify.DemodStep{DemodulatorID: s.rule.ID, Sequence: rw.pos, Dir: s.dir})
		// A fresh rewrite may now apply at the same position.
		return rw.rewrite(rhs)
	}
	it.Cancel()
	return t
}

func (rw *rewriter) acceptable(s side, e *index.Entry) bool {
	if !s.rule.Oriented {
		from := subst.Apply(s.from, e.Ctx)
		to := subst.Apply(s.to, e.Ctx)
		if rw.ord.Compare(from, to) != order.GT {
			return false
		}
	}
	for _, cond := range s.rule.Cond {
		instance := subst.Apply(cond, e.Ctx)
		result, _, limited := Rewrite(rw.tab, rw.ord, rw.idx, instance, rw.budget)
		if limited || !isTruth(rw.tab, result) {
			return false
		}
	}
	return true
}

func isTruth(tab *symtab.Table, t *term.Term) bool {
	return t.IsRigid() && t.Sym == symtab.TruthSym
}
