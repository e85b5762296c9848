package hints

import (
	"github.com/kevinawalsh/prover9/internal/acterm"
	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// ACSymbols records which symbols already flagged commutative or
// associative-commutative on the symbol table occur in the scanned
// clauses. It does not recognize commutativity or associativity axioms
// among the input clauses, and sets no AC/C flag itself.
type ACSymbols struct {
	tab  *symtab.Table
	seen map[symtab.Num]bool
}

// NewACSymbols returns an empty tracker.
func NewACSymbols(tab *symtab.Table) *ACSymbols {
	return &ACSymbols{tab: tab, seen: make(map[symtab.Num]bool)}
}

// Scan records every AC or commutative symbol occurring in t's atoms,
// recursively (a symbol is recorded once it's been declared AC/C on the
// symbol table — this just tracks which of those declared symbols this
// clause set actually touches, for reporting/diagnostics purposes; the
// declarations themselves are made directly on the table via
// symtab.SetAssocComm/SetCommutative by whatever axiom-loading code
// processes input).
func (a *ACSymbols) Scan(c *clause.Topform) {
	for _, lit := range c.Literals {
		a.scanTerm(lit.Atom)
	}
}

func (a *ACSymbols) scanTerm(t *term.Term) {
	if t == nil || t.IsVar() {
		return
	}
	if a.tab.IsAC(t.Sym) || a.tab.IsCommutative(t.Sym) {
		a.seen[t.Sym] = true
	}
	for _, arg := range t.Args {
		a.scanTerm(arg)
	}
}

// Symbols returns every AC/C symbol this tracker has observed.
func (a *ACSymbols) Symbols() []symtab.Num {
	out := make([]symtab.Num, 0, len(a.seen))
	for s := range a.seen {
		out = append(out, s)
	}
	return out
}

// IsRedundant reports whether c is a positive unit equality whose two
// sides are AC-canonical copies of each other — a trivial tautology that
// should never be generated into active (spec.md §4.J/§4.G:
// "thereafter reject equalities whose two sides are AC-canonical copies
// of each other").
func IsRedundant(tab *symtab.Table, c *clause.Topform) bool {
	if len(c.Literals) != 1 {
		return false
	}
	lit := c.Literals[0]
	if !lit.Positive || !lit.Atom.IsRigid() || lit.Atom.Sym != symtab.EqualitySym {
		return false
	}
	lhs, rhs := lit.Atom.Args[0], lit.Atom.Args[1]
	return acterm.CACTautology(tab, lhs, rhs)
}
