package saturate

import (
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/demod"
	"github.com/kevinawalsh/prover9/internal/order"
)

// OrientedDemodulator builds a demod.Rule from c, if c is a usable
// demodulator: a positive unit equality. Orientation is decided by ord
// (spec.md §4.F's OrientEquality); an oriented equality always rewrites
// lhs->rhs only, while one left incomparable by both the primary and weak
// orders is still usable in both directions during demodulation (package
// demod gates that direction on an ordering check per rewrite, per spec.md
// §4.H).
func OrientedDemodulator(ord *order.Order, c *clause.Topform) (*demod.Rule, bool) {
	if len(c.Literals) != 1 {
		return nil, false
	}
	lit := c.Literals[0]
	if !lit.Positive || !lit.IsEquality(ord.Tab) {
		return nil, false
	}
	alpha, beta := lit.Atom.Args[0], lit.Atom.Args[1]
	lhs, rhs, oriented := ord.OrientEquality(alpha, beta)
	return &demod.Rule{ID: c.ID, LHS: lhs, RHS: rhs, Oriented: oriented}, true
}
