package unify

import (
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// Unify attempts to unify term s (interpreted under context cs) with term t
// (interpreted under context ct), in the empty equational theory, with an
// occur check. On success it returns true, having pushed every binding it
// made onto tr; on failure it returns false, having rolled tr back to
// exactly the mark it started from, so the caller never has to distinguish
// "failed cleanly" from "failed after partial progress" (spec.md §4.D).
func Unify(s *term.Term, cs *subst.Context, t *term.Term, ct *subst.Context, tr *subst.Trail) bool {
	mark := tr.Save()
	if unify1(s, cs, t, ct, tr) {
		return true
	}
	tr.UndoTo(mark)
	return false
}

func unify1(s *term.Term, cs *subst.Context, t *term.Term, ct *subst.Context, tr *subst.Trail) bool {
	s, cs = subst.Deref(s, cs)
	t, ct = subst.Deref(t, ct)

	if s.IsVar() && t.IsVar() && s.VarIdx == t.VarIdx && cs == ct {
		return true
	}
	if s.IsVar() {
		if occurs(s.VarIdx, cs, t, ct) {
			return false
		}
		subst.Bind(tr, cs, s.VarIdx, t, ct)
		return true
	}
	if t.IsVar() {
		if occurs(t.VarIdx, ct, s, cs) {
			return false
		}
		subst.Bind(tr, ct, t.VarIdx, s, cs)
		return true
	}
	if s.Sym != t.Sym {
		return false
	}
	for i := range s.Args {
		if !unify1(s.Args[i], cs, t.Args[i], ct, tr) {
			return false
		}
	}
	return true
}

// occurs reports whether variable v in context cv occurs (after
// dereferencing) anywhere within t interpreted under ct — the occur check
// that keeps Unify from building an infinite/cyclic substitution.
func occurs(v int, cv *subst.Context, t *term.Term, ct *subst.Context) bool {
	t, ct = subst.Deref(t, ct)
	if t.IsVar() {
		return t.VarIdx == v && ct == cv
	}
	for _, a := range t.Args {
		if occurs(v, cv, a, ct) {
			return true
		}
	}
	return false
}

// Variant reports whether s and t (each interpreted under its own context)
// are identical up to a consistent variable renaming — the VARIANT query
// type from spec.md §4.E. It never binds anything permanently: it uses a
// scratch trail and always rolls back.
func Variant(tab *symtab.Table, s *term.Term, cs *subst.Context, t *term.Term, ct *subst.Context) bool {
	var tr subst.Trail
	forward := make(map[int]int)
	backward := make(map[int]int)
	ok := variant1(s, cs, t, ct, forward, backward)
	tr.UndoTo(tr.Save())
	return ok
}

func variant1(s *term.Term, cs *subst.Context, t *term.Term, ct *subst.Context, fwd, bwd map[int]int) bool {
	s, cs = subst.Deref(s, cs)
	t, ct = subst.Deref(t, ct)
	if s.IsVar() != t.IsVar() {
		return false
	}
	if s.IsVar() {
		sv := cs.Multiplier*term.MaxVars + s.VarIdx
		tv := ct.Multiplier*term.MaxVars + t.VarIdx
		if m, ok := fwd[sv]; ok {
			return m == tv
		}
		if _, ok := bwd[tv]; ok {
			return false
		}
		fwd[sv] = tv
		bwd[tv] = sv
		return true
	}
	if s.Sym != t.Sym {
		return false
	}
	for i := range s.Args {
		if !variant1(s.Args[i], cs, t.Args[i], ct, fwd, bwd) {
			return false
		}
	}
	return true
}
