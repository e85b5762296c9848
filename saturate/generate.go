// Package saturate implements the given-clause saturation loop from
// spec.md §4.L: passive/active clause management, forward/backward
// simplification, and the generating inference rules (binary resolution,
// hyperresolution, UR-resolution, factoring, equality factoring, and
// paramodulation) that drive it. Hyperresolve and URResolve both treat the
// given clause as nucleus only, rather than also searching active for
// nuclei satisfied by the given clause as one of their satellites — every
// clause eventually plays the given role itself, so nucleus/satellite
// combinations available in active at that later point still get tried;
// see DESIGN.md's saturate/generate.go entry.
package saturate

import (
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/kevinawalsh/prover9/internal/unify"
)

// renumberLiterals rebuilds lits with a single shared variable mapping, so
// variables shared between two of the new clause's literals stay shared
// (spec.md §3: "Variable ... renumbered to a dense prefix ... in
// first-occurrence order").
func renumberLiterals(lits []*clause.Literal) []*clause.Literal {
	mapping := make(map[int]int)
	out := make([]*clause.Literal, len(lits))
	for i, l := range lits {
		out[i] = clause.NewLiteral(l.Positive, term.Renumber(l.Atom, mapping))
	}
	return out
}

// applyLiteral instantiates a parent clause's literal under its context
// into a fresh, context-free term, ready to become part of a new clause.
func applyLiteral(l *clause.Literal, c *subst.Context) *clause.Literal {
	return clause.NewLiteral(l.Positive, subst.Apply(l.Atom, c))
}

// subtermAt walks path (a sequence of argument indices) from t's root to
// the addressed subterm.
func subtermAt(t *term.Term, path []int) *term.Term {
	for _, p := range path {
		t = t.Args[p]
	}
	return t
}

// replaceAt returns a copy of t with the subterm at path replaced by repl.
func replaceAt(t *term.Term, path []int, repl *term.Term) *term.Term {
	if len(path) == 0 {
		return repl
	}
	args := make([]*term.Term, len(t.Args))
	copy(args, t.Args)
	args[path[0]] = replaceAt(t.Args[path[0]], path[1:], repl)
	return term.NewRigidUnchecked(t.Sym, args)
}

// Resolve performs binary resolution between literal i of c1 and literal j
// of c2: if they have opposite polarity and their atoms unify, the
// resolvent is every other literal of both clauses, instantiated under the
// unifier (spec.md §4.L/§4.K "resolve"). qc1/qc2 must be freshly acquired,
// empty contexts; any bindings made are undone before returning, win or
// lose, so the caller's trail mark is unaffected.
func Resolve(c1 *clause.Topform, i int, c2 *clause.Topform, j int, qc1, qc2 *subst.Context, tr *subst.Trail) (*clause.Topform, bool) {
	l1, l2 := c1.Literals[i], c2.Literals[j]
	if l1.Positive == l2.Positive {
		return nil, false
	}
	mark := tr.Save()
	if !unify.Unify(l1.Atom, qc1, l2.Atom, qc2, tr) {
		tr.UndoTo(mark)
		return nil, false
	}
	var lits []*clause.Literal
	for k, l := range c1.Literals {
		if k == i {
			continue
		}
		lits = append(lits, applyLiteral(l, qc1))
	}
	for k, l := range c2.Literals {
		if k == j {
			continue
		}
		lits = append(lits, applyLiteral(l, qc2))
	}
	tr.UndoTo(mark)
	j2 := justify.NewResolve([]int{c1.ID, c2.ID})
	return clause.NewTopform(0, renumberLiterals(lits), j2), true
}

// Factor unifies literals i and j of c (same polarity, i != j), dropping
// the duplicate and instantiating every other literal (spec.md §4.K
// "factor").
func Factor(c *clause.Topform, i, j int, qc *subst.Context, tr *subst.Trail) (*clause.Topform, bool) {
	if i == j {
		return nil, false
	}
	li, lj := c.Literals[i], c.Literals[j]
	if li.Positive != lj.Positive {
		return nil, false
	}
	mark := tr.Save()
	if !unify.Unify(li.Atom, qc, lj.Atom, qc, tr) {
		tr.UndoTo(mark)
		return nil, false
	}
	var lits []*clause.Literal
	for k, l := range c.Literals {
		if k == j {
			continue
		}
		lits = append(lits, applyLiteral(l, qc))
	}
	tr.UndoTo(mark)
	return clause.NewTopform(0, renumberLiterals(lits), justify.NewFactor(c.ID, i, j)), true
}

// XXResolve eliminates literal i of c when it is a negative equality s != t
// whose sides unify (an instance of reflexivity, so the literal is always
// false and can be dropped) — spec.md §4.K "xx_res".
func XXResolve(tab *symtab.Table, c *clause.Topform, i int, qc *subst.Context, tr *subst.Trail) (*clause.Topform, bool) {
	lit := c.Literals[i]
	if lit.Positive || !lit.IsEquality(tab) {
		return nil, false
	}
	lhs, rhs := lit.Atom.Args[0], lit.Atom.Args[1]
	mark := tr.Save()
	if !unify.Unify(lhs, qc, rhs, qc, tr) {
		tr.UndoTo(mark)
		return nil, false
	}
	var lits []*clause.Literal
	for k, l := range c.Literals {
		if k == i {
			continue
		}
		lits = append(lits, applyLiteral(l, qc))
	}
	tr.UndoTo(mark)
	return clause.NewTopform(0, renumberLiterals(lits), justify.NewXXRes(c.ID, i)), true
}

// Paramodulate rewrites the subterm of into's literal intoLit at intoPos
// using from's equality literal fromLit (taking the side named by fromSide
// as the rewrite's source), provided the target subterm is not a bare
// variable and unifies with that side (spec.md §4.K "para"/"para_fx"/
// "para_ix"/"para_fx_ix" — this implementation always records the plain
// justify.Para kind, since the from/into "flip" variants only affect how an
// external proof printer reports which literal side supplied which role,
// not the inference's soundness).
func Paramodulate(tab *symtab.Table, from *clause.Topform, fromLit, fromSide int, into *clause.Topform, intoLit int, intoPos []int, qcFrom, qcInto *subst.Context, tr *subst.Trail) (*clause.Topform, bool) {
	fl := from.Literals[fromLit]
	if !fl.Positive || !fl.IsEquality(tab) {
		return nil, false
	}
	var src, dst *term.Term
	if fromSide == 0 {
		src, dst = fl.Atom.Args[0], fl.Atom.Args[1]
	} else {
		src, dst = fl.Atom.Args[1], fl.Atom.Args[0]
	}

	target := subtermAt(into.Literals[intoLit].Atom, intoPos)
	if target.IsVar() {
		return nil, false
	}

	mark := tr.Save()
	if !unify.Unify(src, qcFrom, target, qcInto, tr) {
		tr.UndoTo(mark)
		return nil, false
	}

	// Instantiate dst and the unmodified parts of into's atom separately,
	// then splice: replaceAt's path addresses rigid-node structure, which
	// subst.Apply preserves 1:1, so the same path is still valid afterward.
	// (subst.Apply must never run on a tree that already mixes rendered,
	// globally-numbered variables from one context with still-local
	// variables from another — its Deref indexes a fixed-size per-context
	// slot array directly by variable index.)
	rewritten := subst.Apply(dst, qcFrom)
	appliedInto := subst.Apply(into.Literals[intoLit].Atom, qcInto)
	newAtom := replaceAt(appliedInto, intoPos, rewritten)

	var lits []*clause.Literal
	for k, l := range into.Literals {
		if k == intoLit {
			lits = append(lits, clause.NewLiteral(l.Positive, newAtom))
			continue
		}
		lits = append(lits, applyLiteral(l, qcInto))
	}
	for k, l := range from.Literals {
		if k == fromLit {
			continue
		}
		lits = append(lits, applyLiteral(l, qcFrom))
	}
	tr.UndoTo(mark)

	j := justify.NewPara(justify.Para, from.ID, into.ID,
		[]int{fromLit, fromSide}, append([]int{intoLit}, intoPos...))
	return clause.NewTopform(0, renumberLiterals(lits), j), true
}

// EqualityFactor merges two positive equality literals i and j of c whose
// left-hand sides unify (spec.md §4.K "eq_factor"): literal i is replaced
// by a negative disequality between the two right-hand sides, literal j
// keeps its unified form, and everything else is carried through
// unchanged. This differs from plain Factor, which unifies the two
// literals' atoms as whole terms (both sides at once) rather than just
// their left-hand sides, so it catches equalities Factor can't merge
// (e.g. f(x)=a and f(b)=y, whose atoms don't unify as wholes but whose
// left sides do). The justification reuses the Factor primary cell since
// spec.md §4.K names no separate eq_factor kind in the justification
// vocabulary — only the literal positions recorded distinguish it from an
// ordinary factoring step.
func EqualityFactor(tab *symtab.Table, c *clause.Topform, i, j int, qc *subst.Context, tr *subst.Trail) (*clause.Topform, bool) {
	if i == j {
		return nil, false
	}
	li, lj := c.Literals[i], c.Literals[j]
	if !li.Positive || !lj.Positive || !li.IsEquality(tab) || !lj.IsEquality(tab) {
		return nil, false
	}
	si, ti := li.Atom.Args[0], li.Atom.Args[1]
	sj, tj := lj.Atom.Args[0], lj.Atom.Args[1]

	mark := tr.Save()
	if !unify.Unify(si, qc, sj, qc, tr) {
		tr.UndoTo(mark)
		return nil, false
	}

	var lits []*clause.Literal
	for k, l := range c.Literals {
		switch k {
		case i:
			neq := term.NewRigid(tab, symtab.EqualitySym, subst.Apply(ti, qc), subst.Apply(tj, qc))
			lits = append(lits, clause.NewLiteral(false, neq))
		case j:
			lits = append(lits, applyLiteral(lj, qc))
		default:
			lits = append(lits, applyLiteral(l, qc))
		}
	}
	tr.UndoTo(mark)
	return clause.NewTopform(0, renumberLiterals(lits), justify.NewFactor(c.ID, i, j)), true
}

// findUnitSatellite looks in active for a unit clause (exactly one
// literal) of the given polarity whose atom unifies with atom, returning
// the clause and its literal index. Used by Hyperresolve and URResolve to
// pick satellites one at a time; it takes the first match the underlying
// FPA iterator yields rather than backtracking across alternatives, a
// documented simplification (see DESIGN.md).
func findUnitSatellite(active *Active, pool *subst.MultiplierPool, positive bool, atom *term.Term) (*clause.Topform, int, bool) {
	qc, err := pool.Acquire()
	if err != nil {
		return nil, 0, false
	}
	defer pool.Release(qc)
	var tr subst.Trail
	it, obj := active.Candidates(positive, atom, qc, &tr)
	defer it.Cancel()
	for obj != nil {
		cand := obj.(literalEntry)
		if len(cand.clause.Literals) == 1 {
			return cand.clause, cand.lit, true
		}
		obj = it.Next()
	}
	return nil, 0, false
}

// Hyperresolve performs hyperresolution against nucleus: each of nucleus's
// negative literals is resolved away, in turn, against a positive unit
// satellite clause found in active, until none remain (spec.md §1/§4.K
// "hyper"). It fails (no inference) if nucleus has no negative literal, or
// if any negative literal has no unit satellite.
func Hyperresolve(nucleus *clause.Topform, active *Active, pool *subst.MultiplierPool) (*clause.Topform, bool) {
	working := nucleus
	parents := []int{nucleus.ID}
	resolvedAny := false

	for {
		negIdx := -1
		for i, l := range working.Literals {
			if !l.Positive {
				negIdx = i
				break
			}
		}
		if negIdx == -1 {
			break
		}

		lit := working.Literals[negIdx]
		satellite, satLit, ok := findUnitSatellite(active, pool, true, lit.Atom)
		if !ok {
			return nil, false
		}

		qn, err := pool.Acquire()
		if err != nil {
			return nil, false
		}
		qs, err := pool.Acquire()
		if err != nil {
			pool.Release(qn)
			return nil, false
		}
		var tr subst.Trail
		r, ok := Resolve(working, negIdx, satellite, satLit, qn, qs, &tr)
		pool.Release(qn)
		pool.Release(qs)
		if !ok {
			return nil, false
		}
		working = r
		parents = append(parents, satellite.ID)
		resolvedAny = true
	}

	if !resolvedAny {
		return nil, false
	}
	working.Just = justify.NewHyper(parents)
	return working, true
}

// URResolve performs unit-resulting resolution against nucleus: literals
// are resolved away one at a time against unit satellites of the opposite
// polarity, in whatever order a satellite can be found, stopping the
// instant the working clause is reduced to a single literal (spec.md
// §1/§4.K "ur"). Unlike Hyperresolve, satellites may be of either polarity
// and nucleus's own literals are unconstrained in polarity; it fails if
// nucleus starts with fewer than two literals, or if no literal ordering
// bottoms out at a unit.
func URResolve(nucleus *clause.Topform, active *Active, pool *subst.MultiplierPool) (*clause.Topform, bool) {
	if len(nucleus.Literals) < 2 {
		return nil, false
	}
	working := nucleus
	parents := []int{nucleus.ID}

	for len(working.Literals) > 1 {
		resolved := false
		for i, l := range working.Literals {
			satellite, satLit, ok := findUnitSatellite(active, pool, !l.Positive, l.Atom)
			if !ok {
				continue
			}
			qn, err := pool.Acquire()
			if err != nil {
				return nil, false
			}
			qs, err := pool.Acquire()
			if err != nil {
				pool.Release(qn)
				return nil, false
			}
			var tr subst.Trail
			r, ok := Resolve(working, i, satellite, satLit, qn, qs, &tr)
			pool.Release(qn)
			pool.Release(qs)
			if !ok {
				continue
			}
			working = r
			parents = append(parents, satellite.ID)
			resolved = true
			break
		}
		if !resolved {
			return nil, false
		}
	}

	if len(parents) < 2 {
		return nil, false
	}
	working.Just = justify.NewUR(parents)
	return working, true
}
