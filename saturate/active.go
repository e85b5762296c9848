package saturate

import (
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/demod"
	"github.com/kevinawalsh/prover9/internal/index"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// literalEntry remembers which clause/literal an active-set index entry
// came from, so a hit on the positive/negative literal index can be turned
// back into a (clause, literal index) pair for a generating rule.
type literalEntry struct {
	clause *clause.Topform
	lit    int
}

// Active is the active clause set: the Clist of retained clauses (spec.md
// §4.I) plus every index a generating or simplifying rule needs to query
// it: a polarity-split FPA over every literal (for binary
// resolution/factoring candidates), and the oriented-equality demodulator
// index (component H) used for forward and back simplification.
type Active struct {
	tab *symtab.Table
	ord *order.Order

	list *clause.Clist

	positive *index.Mindex // FPA over every positive literal's atom
	negative *index.Mindex // FPA over every negative literal's atom

	demods  *demod.Index
	entries map[int][]polarEntry // clause ID -> every index.Entry it owns, tagged by which bucket holds it
}

// polarEntry tags an index.Entry with which polarity bucket it lives in, so
// Remove can release it from the correct Mindex (positive and negative FPA
// instances keep independent, potentially colliding entry-ID sequences).
type polarEntry struct {
	positive bool
	entry    *index.Entry
}

// NewActive returns an empty active set.
func NewActive(tab *symtab.Table, ord *order.Order, pool *subst.MultiplierPool) *Active {
	return &Active{
		tab:      tab,
		ord:      ord,
		list:     clause.NewClist("active"),
		positive: index.NewMindex(index.KindFPA, tab, pool),
		negative: index.NewMindex(index.KindFPA, tab, pool),
		demods:   demod.NewIndex(tab, pool),
		entries:  make(map[int][]polarEntry),
	}
}

func (a *Active) literalBucket(positive bool) *index.Mindex {
	if positive {
		return a.positive
	}
	return a.negative
}

// Integrate appends c to the active list and indexes every literal, plus
// (if c is a unit oriented equality) registers it as a demodulator
// (spec.md §4.L: "integrate(given) -- append to active, update all
// indexes").
func (a *Active) Integrate(c *clause.Topform) error {
	a.list.Append(c)
	for i, l := range c.Literals {
		e, err := a.literalBucket(l.Positive).Insert(l.Atom, literalEntry{clause: c, lit: i})
		if err != nil {
			return err
		}
		a.entries[c.ID] = append(a.entries[c.ID], polarEntry{positive: l.Positive, entry: e})
	}
	if rule, ok := OrientedDemodulator(a.ord, c); ok {
		if err := a.demods.Insert(rule); err != nil {
			return err
		}
	}
	return nil
}

// Remove detaches c from the active list and every index entry it owns
// (spec.md §4.I: "remove_from_all_lists is O(degree)").
func (a *Active) Remove(c *clause.Topform) {
	clause.RemoveFromAllLists(c)
	for _, pe := range a.entries[c.ID] {
		a.literalBucket(pe.positive).Remove(pe.entry)
	}
	delete(a.entries, c.ID)
	a.demods.Remove(c.ID)
}

// Each walks every clause currently in active.
func (a *Active) Each(fn func(*clause.Topform) bool) { a.list.Each(fn) }

// All returns every clause currently in active.
func (a *Active) All() []*clause.Topform { return a.list.All() }

// Len reports how many clauses are currently active.
func (a *Active) Len() int { return a.list.Len() }

// Candidates starts a scoped retrieval of every literal entry of the given
// polarity whose atom unifies with query (resolution candidates are always
// a Unify query — either side may be the more general one). Caller must run
// the returned iterator to exhaustion or Cancel it.
func (a *Active) Candidates(positive bool, query *term.Term, qc *subst.Context, tr *subst.Trail) (*index.Iterator, interface{}) {
	return a.literalBucket(positive).First(query, index.Unify, qc, tr)
}

// Generalizers starts a scoped retrieval of every literal entry of the
// given polarity whose atom generalizes query — a Generalization query,
// the relation unit subsumption needs (does some active unit clause's
// literal already cover this one). Caller must run the returned iterator
// to exhaustion or Cancel it.
func (a *Active) Generalizers(positive bool, query *term.Term, qc *subst.Context, tr *subst.Trail) (*index.Iterator, interface{}) {
	return a.literalBucket(positive).First(query, index.Generalization, qc, tr)
}

// Demodulators returns the index of oriented equalities currently active,
// for forward/back simplification.
func (a *Active) Demodulators() *demod.Index { return a.demods }
