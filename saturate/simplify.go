package saturate

import (
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/demod"
	"github.com/kevinawalsh/prover9/internal/hints"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// DemodBudget bounds every demodulation call package saturate makes.
var DemodBudget = demod.Budget{MaxSteps: 10000, SizeIncrease: 1000}

// Simplify rewrites every literal of c to normal form against active's
// demodulator index, folding a Rewrite secondary cell into c's
// justification per literal that actually changed (spec.md §4.L:
// "given := simplify(given) -- demod + unit deletion").
func Simplify(tab *symtab.Table, ord *order.Order, active *Active, c *clause.Topform) (*clause.Topform, bool) {
	changed := false
	newLits := make([]*clause.Literal, len(c.Literals))
	for i, l := range c.Literals {
		result, steps, _ := demod.Rewrite(tab, ord, active.Demodulators(), l.Atom, DemodBudget)
		if len(steps) > 0 {
			changed = true
			c.Just = c.Just.WithRewrite(steps)
		}
		newLits[i] = clause.NewLiteral(l.Positive, result)
	}
	if changed {
		c.Literals = newLits
	}
	return c, changed
}

// IsTautology reports whether c contains two complementary literals
// (p and -p, structurally identical atoms) or a positive reflexive
// equality t=t, either of which makes c trivially valid and therefore
// redundant (spec.md §4.L: "redundant(given, active) -- tautology/
// subsumed/AC-redundant").
func IsTautology(tab *symtab.Table, c *clause.Topform) bool {
	for i, li := range c.Literals {
		if li.Positive && li.IsEquality(tab) && term.Ident(li.Atom.Args[0], li.Atom.Args[1]) {
			return true
		}
		for j := i + 1; j < len(c.Literals); j++ {
			lj := c.Literals[j]
			if li.Positive != lj.Positive && term.Ident(li.Atom, lj.Atom) {
				return true
			}
		}
	}
	return false
}

// IsRedundant reports whether c should be discarded rather than integrated:
// a tautology, an AC-canonical self-equality, or (for unit clauses only,
// mirroring package hints' documented unit-only subsumption
// simplification) subsumed by an existing active unit clause.
func IsRedundant(tab *symtab.Table, active *Active, c *clause.Topform) bool {
	if IsTautology(tab, c) {
		return true
	}
	if hints.IsRedundant(tab, c) {
		return true
	}
	if len(c.Literals) != 1 {
		return false
	}
	lit := c.Literals[0]
	var qc subst.Context
	var tr subst.Trail
	it, obj := active.Generalizers(lit.Positive, lit.Atom, &qc, &tr)
	defer it.Cancel()
	for obj != nil {
		cand := obj.(literalEntry)
		if len(cand.clause.Literals) == 1 {
			return true
		}
		obj = it.Next()
	}
	return false
}
