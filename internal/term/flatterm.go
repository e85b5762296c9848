package term

import "github.com/kevinawalsh/prover9/internal/symtab"

// Flatterm is the doubly-linked, prefix-order linearization of a Term.
// Each node knows its End (the node just past its subtree, O(1) subtree
// boundary), Prev/Next, and Size (node count of its subtree).
//
// package demod rewrites over the tree Term representation directly
// rather than over Flatterm (see DESIGN.md's demod entry); ToFlatterm and
// FromFlatterm exist to ground the roundtrip invariant spec.md §8 calls
// out ("linearizing and rebuilding a term is the identity"), not to back
// an in-place splice-based rewriter, so Flatterm carries no mutation
// helpers beyond what building and rebuilding need.
type Flatterm struct {
	Kind   Kind
	VarIdx int
	Sym    symtab.Num

	Prev, Next, End *Flatterm
	Size            int
}

// ToFlatterm linearizes t into a prefix sequence of Flatterm nodes, with
// every Prev/Next/End pointer resolved. The returned pointer is the head of
// the sequence (t's own root node); End on the head is nil (there is
// nothing past the whole term).
func ToFlatterm(t *Term) *Flatterm {
	nodes := flattenInto(t, nil)
	for i, n := range nodes {
		if i+1 < len(nodes) {
			n.Next = nodes[i+1]
			nodes[i+1].Prev = n
		}
	}
	fixEnds(nodes)
	return nodes[0]
}

// flattenInto appends a prefix walk of t to out and returns the extended
// slice, with each node's Size filled in (the number of positions spanned
// by its subtree). End pointers depend on the final node slice being
// stable, so they are resolved afterward by fixEnds.
func flattenInto(t *Term, out []*Flatterm) []*Flatterm {
	start := len(out)
	n := &Flatterm{Kind: t.Kind, VarIdx: t.VarIdx, Sym: t.Sym}
	out = append(out, n)
	if t.Kind == KindRigid {
		for _, a := range t.Args {
			out = flattenInto(a, out)
		}
	}
	n.Size = len(out) - start
	return out
}

// fixEnds resolves every node's End pointer once the node slice is stable:
// a node's End is the node Size positions ahead of it in prefix order.
func fixEnds(nodes []*Flatterm) {
	for i, n := range nodes {
		end := i + n.Size
		if end < len(nodes) {
			n.End = nodes[end]
		} else {
			n.End = nil
		}
	}
}

// FromFlatterm is the inverse of ToFlatterm: it rebuilds a tree Term from a
// flatterm's prefix sequence.
func FromFlatterm(f *Flatterm) *Term {
	t, _ := flattermToTerm(f)
	return t
}

// flattermToTerm consumes one subtree starting at f and returns the tree
// term plus the node immediately after the consumed subtree (f.End).
func flattermToTerm(f *Flatterm) (*Term, *Flatterm) {
	if f.Kind == KindVar {
		return NewVar(f.VarIdx), f.Next
	}
	t := &Term{Kind: KindRigid, Sym: f.Sym}
	next := f.Next
	var args []*Term
	for next != nil && next != f.End {
		var a *Term
		a, next = flattermToTerm(next)
		args = append(args, a)
	}
	t.Args = args
	return t, f.End
}
