// Package hints implements the auxiliary tactics from spec.md §4.J: hint
// subsumption with weight override, AC/CAC-redundancy detection, and
// recognition/handling of equational definitions.
//
// Grounded on spec.md §4.J directly (no example repo implements hint-based
// proof guidance); the subsumption index reuses package index's FPA the
// same way package demod reuses BindDiscrim, and AC-redundancy reuses
// package acterm's CACTautology (spec.md §4.G) rather than reimplementing
// canonical-form comparison.
package hints

import (
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/index"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
)

// InfiniteWeight is the sentinel override value meaning "put this clause
// at the very front of the passive queue" — decided (DESIGN.md, Open
// Question 3) to map to bucket 0 rather than the overweight-clamp bucket
// clause.PairScheduler otherwise uses for out-of-range weights, since an
// INT_MAX override expresses "most urgent," the opposite of "deprioritize."
const InfiniteWeight = int(^uint(0) >> 1)

// Hint is one user-supplied clause used to guide search. A matching
// derived clause has its weight overridden per BsubWeight (if set) and
// inherits Labels from the hint (spec.md §4.J: "labels on the matching
// hint propagate onto the new clause").
type Hint struct {
	ID         int
	Clause     *clause.Topform
	BsubWeight *int // nil: no override, caller uses its own weight rule
	Labels     []string
}

// EffectiveWeight resolves h's weight override against fallback (the
// weight the caller would otherwise assign), honoring the InfiniteWeight
// sentinel.
func EffectiveWeight(h *Hint, fallback int) int {
	if h.BsubWeight == nil {
		return fallback
	}
	if *h.BsubWeight == InfiniteWeight {
		return 0
	}
	return *h.BsubWeight
}

// Index is a subsumption index over unit hints, one FPA per literal
// polarity. Multi-literal hint subsumption (matching a hint clause's
// entire literal set, up to reordering, against a derived clause) is not
// implemented; only unit hints are supported — a documented
// simplification, see DESIGN.md.
type Index struct {
	tab      *symtab.Table
	pool     *subst.MultiplierPool
	positive *index.Mindex
	negative *index.Mindex
	byID     map[int]*Hint
}

// NewIndex returns an empty hint subsumption index.
func NewIndex(tab *symtab.Table, pool *subst.MultiplierPool) *Index {
	return &Index{
		tab:      tab,
		pool:     pool,
		positive: index.NewMindex(index.KindFPA, tab, pool),
		negative: index.NewMindex(index.KindFPA, tab, pool),
		byID:     make(map[int]*Hint),
	}
}

// Insert registers h. h.Clause must be a unit clause (exactly one
// literal); inserting a non-unit hint is a programmer error and panics.
func (x *Index) Insert(h *Hint) (*index.Entry, error) {
	if len(h.Clause.Literals) != 1 {
		panic("hints: only unit hint clauses are supported")
	}
	lit := h.Clause.Literals[0]
	e, err := x.bucket(lit.Positive).Insert(lit.Atom, h)
	if err != nil {
		return nil, err
	}
	x.byID[h.ID] = h
	return e, nil
}

func (x *Index) bucket(positive bool) *index.Mindex {
	if positive {
		return x.positive
	}
	return x.negative
}

// Remove deletes h's entry e from the index.
func (x *Index) Remove(h *Hint, e *index.Entry) {
	x.bucket(h.Clause.Literals[0].Positive).Remove(e)
	delete(x.byID, h.ID)
}

// MatchUnit looks for a hint that subsumes the single literal lit (atom
// under qc): a hint whose own unit atom generalizes lit.Atom, with the
// same polarity. Returns the first match, or nil if none. The caller
// should Cancel the returned iterator once done with any bindings it
// made.
func (x *Index) MatchUnit(lit *clause.Literal, qc *subst.Context, tr *subst.Trail) (*Hint, *index.Iterator) {
	it, obj := x.bucket(lit.Positive).First(lit.Atom, index.Generalization, qc, tr)
	if obj == nil {
		return nil, it
	}
	return obj.(*Hint), it
}
