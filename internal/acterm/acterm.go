// Package acterm implements AC canonicalization (spec.md §4.G): flattening
// and sorting the arguments of associative-commutative symbols into a
// right-associated, argument-sorted normal form, and using that form to
// detect AC/CAC-redundant equalities.
package acterm

import (
	"sort"

	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// Flatten collects the multiset of arguments of an AC term headed by sym,
// descending through nested applications of the same symbol. Arguments
// whose own head is a different symbol (or a variable) are collected as
// single leaves; non-AC subterms are left untouched (only the AC spine is
// flattened), matching "recursively descend non-AC subterms" in spec.md
// §4.G.
func Flatten(tab *symtab.Table, sym symtab.Num, t *term.Term) []*term.Term {
	if t.IsRigid() && t.Sym == sym {
		var out []*term.Term
		for _, a := range t.Args {
			out = append(out, Flatten(tab, sym, a)...)
		}
		return out
	}
	return []*term.Term{Canonical(tab, t)}
}

// Canonical returns the AC-canonical form of t: every AC-headed subterm is
// flattened, its arguments sorted by the weak order, and right-associated
// back into a binary tree. Non-AC subterms are canonicalized
// argument-wise but otherwise left alone.
func Canonical(tab *symtab.Table, t *term.Term) *term.Term {
	if t.IsVar() {
		return t
	}
	if !tab.IsAC(t.Sym) {
		args := make([]*term.Term, len(t.Args))
		for i, a := range t.Args {
			args[i] = Canonical(tab, a)
		}
		return term.NewRigidUnchecked(t.Sym, args)
	}
	leaves := Flatten(tab, t.Sym, t)
	sort.Slice(leaves, func(i, j int) bool {
		return order.Weak(tab, leaves[i], leaves[j]) == order.LT
	})
	return rightAssociate(t.Sym, leaves)
}

// rightAssociate rebuilds a binary right-associated tree from a sorted
// leaf multiset: leaves[0] op (leaves[1] op (... op leaves[n-1])).
func rightAssociate(sym symtab.Num, leaves []*term.Term) *term.Term {
	if len(leaves) == 0 {
		panic("acterm: cannot associate zero leaves")
	}
	if len(leaves) == 1 {
		return leaves[0]
	}
	return term.NewRigidUnchecked(sym, []*term.Term{leaves[0], rightAssociate(sym, leaves[1:])})
}

// SameCanonical reports whether s and t have structurally identical
// AC-canonical forms — the core test used by both AC-equivalence checks in
// indexes and by CACTautology below.
func SameCanonical(tab *symtab.Table, s, t *term.Term) bool {
	return term.Ident(Canonical(tab, s), Canonical(tab, t))
}

// CACTautology reports whether an equality lhs = rhs is redundant modulo
// the declared AC/C symbols: true exactly when the two sides' AC-canonical
// forms coincide, so the equality is a trivial tautology a saturation loop
// should drop without ever generating it into active (spec.md §4.G,
// "cac_tautology").
func CACTautology(tab *symtab.Table, lhs, rhs *term.Term) bool {
	return SameCanonical(tab, lhs, rhs)
}
