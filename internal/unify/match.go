package unify

import (
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/term"
)

// Match attempts one-way matching: find a substitution, recorded entirely
// in pattern's context cp, such that applying it to pattern yields subject.
// subject is treated as ground — it is never bound into, only read — which
// is what makes this "one-way" (spec.md §4.D). Forward demodulation
// retrieval and subsumption are both phrased as calls to Match. A pattern
// variable occurring more than once must match the same subject subterm
// every occurrence.
func Match(pattern *term.Term, cp *subst.Context, subject *term.Term, tr *subst.Trail) bool {
	mark := tr.Save()
	if match1(pattern, cp, subject, tr) {
		return true
	}
	tr.UndoTo(mark)
	return false
}

func match1(pattern *term.Term, cp *subst.Context, subject *term.Term, tr *subst.Trail) bool {
	pattern, cp = subst.Deref(pattern, cp)
	if pattern.IsVar() {
		if bt, _, ok := cp.BindingOf(pattern.VarIdx); ok {
			return term.Ident(bt, subject)
		}
		subst.Bind(tr, cp, pattern.VarIdx, subject, nil)
		return true
	}
	if subject.IsVar() {
		// A ground subject presenting as a variable can only happen for an
		// uninstantiated AC partial-match residue; such a term can only
		// match a pattern variable, already handled above.
		return false
	}
	if pattern.Sym != subject.Sym {
		return false
	}
	for i := range pattern.Args {
		if !match1(pattern.Args[i], cp, subject.Args[i], tr) {
			return false
		}
	}
	return true
}
