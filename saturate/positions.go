package saturate

import "github.com/kevinawalsh/prover9/internal/term"

// AllPositions returns the argument-index path of every subterm of t,
// including the root (the empty path), in a pre-order (parent before
// children) traversal — the position vectors paramodulation's "into" side
// addresses (spec.md §4.K: "positions for paramodulation are stored as
// integer position vectors").
func AllPositions(t *term.Term) [][]int {
	var out [][]int
	var walk func(t *term.Term, path []int)
	walk = func(t *term.Term, path []int) {
		cp := append([]int(nil), path...)
		out = append(out, cp)
		for i, a := range t.Args {
			walk(a, append(path, i))
		}
	}
	walk(t, nil)
	return out
}
