package saturate

import (
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/hints"
	"github.com/kevinawalsh/prover9/internal/term"
)

// ClauseWeight computes c's passive-queue weight as the summed term size of
// every literal's atom (spec.md §3: a clause's Weight field "used for
// passive ordering"), the direct generalization of the teacher's
// Clause.String()-driven literal count to a term-size-based cost.
func ClauseWeight(c *clause.Topform) int {
	w := 0
	for _, l := range c.Literals {
		w += term.Size(l.Atom)
	}
	return w
}

// EffectiveClauseWeight resolves c's weight against a matching hint (if
// any), via hints.EffectiveWeight, and also applies the matching hint's
// labels onto c (spec.md §4.J: "labels on the matching hint propagate onto
// the new clause").
func EffectiveClauseWeight(c *clause.Topform, h *hints.Hint) int {
	base := ClauseWeight(c)
	if h == nil {
		return base
	}
	if c.Attrs == nil {
		c.Attrs = make(map[string]string)
	}
	for _, label := range h.Labels {
		c.Attrs[label] = "hint"
	}
	return hints.EffectiveWeight(h, base)
}
