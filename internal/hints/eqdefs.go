package hints

import (
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// Definition is a candidate equational definition `f(x1,...,xn) = rhs`:
// a positive unit equality whose left side is a "linear pattern" — f
// applied to pairwise-distinct variables covering exactly its arguments
// (spec.md §4.J: "positive unit equalities f(x̄)=t ... with all variables
// distinct").
//
// Simplification, documented in DESIGN.md: the original design also
// requires "f occurs only on one side of at least one input axiom" —
// a global property of the whole axiom set. This package instead accepts
// any clause matching the local linear-pattern shape as a candidate,
// leaving the global one-sidedness check to the caller if it wants that
// extra filter; in practice the dependency-DAG step below already
// excludes the problematic case (a symbol whose "definition" depends
// circularly on itself through other definitions).
type Definition struct {
	Symbol   symtab.Num
	LHS, RHS *term.Term
	ClauseID int
}

// FindDefinitions scans clauses for equational-definition candidates.
func FindDefinitions(clauses []*clause.Topform) []*Definition {
	var defs []*Definition
	for _, c := range clauses {
		if len(c.Literals) != 1 {
			continue
		}
		lit := c.Literals[0]
		if !lit.Positive || !lit.Atom.IsRigid() || lit.Atom.Sym != symtab.EqualitySym {
			continue
		}
		lhs, rhs := lit.Atom.Args[0], lit.Atom.Args[1]
		if !lhs.IsRigid() || !isLinearPattern(lhs) {
			continue
		}
		defs = append(defs, &Definition{Symbol: lhs.Sym, LHS: lhs, RHS: rhs, ClauseID: c.ID})
	}
	return defs
}

// isLinearPattern reports whether every argument of t is a variable and
// no variable repeats.
func isLinearPattern(t *term.Term) bool {
	seen := make(map[int]bool, len(t.Args))
	for _, a := range t.Args {
		if !a.IsVar() || seen[a.VarIdx] {
			return false
		}
		seen[a.VarIdx] = true
	}
	return true
}

// containsSymbol reports whether sym occurs anywhere in t.
func containsSymbol(sym symtab.Num, t *term.Term) bool {
	if t == nil || t.IsVar() {
		return false
	}
	if t.Sym == sym {
		return true
	}
	for _, a := range t.Args {
		if containsSymbol(sym, a) {
			return true
		}
	}
	return false
}

// OrderDefinitions builds the dependency DAG over defs (def A depends on
// def B when A's RHS mentions B's symbol) and returns a dependency-first
// topological order: each definition appears only after every definition
// its RHS mentions, so applying them in this order (e.g. marking symbols
// "unfold" one at a time, or extending precedence) respects the
// dependency structure. Definitions that participate in a cycle, and
// definitions that depend on one, are excluded from ordered and returned
// in dropped.
func OrderDefinitions(defs []*Definition) (ordered []*Definition, dropped []*Definition) {
	bySymbol := make(map[symtab.Num]*Definition, len(defs))
	for _, d := range defs {
		bySymbol[d.Symbol] = d
	}

	const (
		white = iota
		gray
		black
	)
	color := make(map[symtab.Num]int, len(defs))
	cyclic := make(map[symtab.Num]bool)

	var visit func(d *Definition) bool // returns false if d sits on a cycle
	visit = func(d *Definition) bool {
		color[d.Symbol] = gray
		ok := true
		for _, dep := range dependencies(d, bySymbol) {
			switch color[dep.Symbol] {
			case white:
				if !visit(dep) {
					ok = false
				}
			case gray:
				cyclic[d.Symbol] = true
				cyclic[dep.Symbol] = true
				ok = false
			case black:
				if cyclic[dep.Symbol] {
					ok = false
				}
			}
		}
		color[d.Symbol] = black
		if !ok {
			cyclic[d.Symbol] = true
		}
		return ok
	}

	for _, d := range defs {
		if color[d.Symbol] == white {
			visit(d)
		}
	}

	var emitted = make(map[symtab.Num]bool)
	var emit func(d *Definition)
	emit = func(d *Definition) {
		if emitted[d.Symbol] || cyclic[d.Symbol] {
			return
		}
		emitted[d.Symbol] = true
		for _, dep := range dependencies(d, bySymbol) {
			if !emitted[dep.Symbol] && !cyclic[dep.Symbol] {
				emit(dep)
			}
		}
		ordered = append(ordered, d)
	}
	for _, d := range defs {
		if !cyclic[d.Symbol] {
			emit(d)
		}
	}
	for _, d := range defs {
		if cyclic[d.Symbol] {
			dropped = append(dropped, d)
		}
	}
	return ordered, dropped
}

// dependencies returns the subset of bySymbol whose symbol occurs in d's
// RHS.
func dependencies(d *Definition, bySymbol map[symtab.Num]*Definition) []*Definition {
	var out []*Definition
	for sym, dep := range bySymbol {
		if sym != d.Symbol && containsSymbol(sym, d.RHS) {
			out = append(out, dep)
		}
	}
	return out
}

// ApplyUnfold marks every definition's symbol "unfold" on the symbol
// table, so equality orientation always rewrites occurrences of the
// defined symbol away (spec.md §4.J, option (a)). This package always
// takes option (a) rather than (b) (extending lexicographic precedence).
func ApplyUnfold(tab *symtab.Table, defs []*Definition) {
	for _, d := range defs {
		tab.SetUnfold(d.Symbol)
	}
}
