// Package symtab implements the process-wide symbol table: interning of
// (name, arity) pairs into stable symbol numbers, plus the per-symbol
// properties (precedence, KBO weight, AC/C flags, unfold flag) that the
// ordering, AC-canonicalization, and demodulation packages consult.
package symtab

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
)

// Num is a symbol number. Symnums are assigned in interning order starting
// at 1; 0 is never a valid symnum.
type Num int

// Syntax describes how a symbol is parsed/printed; the core only needs to
// know it exists so ordering and pretty-printing agree with the (external)
// parser's choices.
type Syntax int

const (
	Ordinary Syntax = iota
	Infix
	Prefix
	Postfix
)

// Props holds the mutable, per-symbol properties a symbol acquires after
// interning. Everything defaults to its zero value: unordered precedence,
// zero KBO weight, not AC, not commutative, not unfold.
type Props struct {
	Name       string
	Arity      int
	Syntax     Syntax
	Precedence int
	KBOWeight  int
	AC         bool
	Commutes   bool // true for both AC and plain-commutative symbols
	Unfold     bool
}

// Table is the symbol table. It is append-only: once interned, a symnum's
// name and arity never change, so symnums stay stable for the life of the
// Table. The zero Table is not usable; use New.
type Table struct {
	byNum  []*Props // index 0 unused, so len(byNum)-1 == count of interned symbols
	byName map[key]Num
}

type key struct {
	name  string
	arity int
}

// New returns an empty symbol table, seeded with the designated equality
// symbol "="/2 and the truth constant "$T"/0 so callers never need to
// special-case interning them.
func New() *Table {
	t := &Table{byNum: make([]*Props, 1), byName: make(map[key]Num)}
	t.Intern("=", 2)
	t.Intern("$T", 0)
	return t
}

// EqualitySym is the symnum every Table assigns to "="/2.
const EqualitySym Num = 1

// TruthSym is the symnum every Table assigns to the nullary truth constant.
const TruthSym Num = 2

// Intern returns the symnum for (name, arity), interning it if this is the
// first time the pair has been seen. A symbol is never permitted to recur
// with a different arity; calling Intern with a previously-seen name and a
// different arity panics, since that violates the "symbol never appears
// with two different arities" invariant before it could corrupt any term.
func (t *Table) Intern(name string, arity int) Num {
	k := key{name, arity}
	if n, ok := t.byName[k]; ok {
		return n
	}
	for k2, n := range t.byName {
		if k2.name == name && k2.arity != arity {
			panic(fmt.Sprintf("symtab: %q used with arity %d and %d", name, k2.arity, arity))
		}
		_ = n
	}
	n := Num(len(t.byNum))
	t.byNum = append(t.byNum, &Props{Name: name, Arity: arity})
	t.byName[k] = n
	return n
}

// Lookup returns the symnum for a previously interned (name, arity), or
// false if it has never been interned.
func (t *Table) Lookup(name string, arity int) (Num, bool) {
	n, ok := t.byName[key{name, arity}]
	return n, ok
}

// Props returns the mutable properties record for n. Querying a symnum
// that was never interned by this Table is a logic error and panics.
func (t *Table) Props(n Num) *Props {
	if n <= 0 || int(n) >= len(t.byNum) {
		panic(fmt.Sprintf("symtab: unknown symnum %d", n))
	}
	return t.byNum[n]
}

// Arity is shorthand for Props(n).Arity.
func (t *Table) Arity(n Num) int { return t.Props(n).Arity }

// Name is shorthand for Props(n).Name.
func (t *Table) Name(n Num) string { return t.Props(n).Name }

// SetPrecedence, SetKBOWeight, SetAssocComm, SetCommutative and SetUnfold
// mutate a symbol's declared properties. AC symbols are always also
// Commutes; declaring AC a second time, or declaring Commutative on an AC
// symbol, is harmless and idempotent.

func (t *Table) SetPrecedence(n Num, p int) { t.Props(n).Precedence = p }

func (t *Table) SetKBOWeight(n Num, w int) { t.Props(n).KBOWeight = w }

func (t *Table) SetAssocComm(n Num) {
	p := t.Props(n)
	p.AC = true
	p.Commutes = true
}

func (t *Table) SetCommutative(n Num) { t.Props(n).Commutes = true }

func (t *Table) SetUnfold(n Num) { t.Props(n).Unfold = true }

// IsAC, IsCommutative and IsUnfold are read-only queries over Props.
func (t *Table) IsAC(n Num) bool          { return t.Props(n).AC }
func (t *Table) IsCommutative(n Num) bool { return t.Props(n).Commutes }
func (t *Table) IsUnfold(n Num) bool      { return t.Props(n).Unfold }

// Validate checks the table-wide invariants that individual Intern calls
// can't check alone (e.g. a symbol used as both a predicate and a function
// elsewhere in a clause set). Callers accumulate candidate (symbol, role)
// observations while parsing a batch of input and call Validate once;
// every violation is reported, not just the first.
func (t *Table) Validate(predicateSyms, functionSyms map[Num]bool) error {
	var errs *multierror.Error
	for n := range predicateSyms {
		if functionSyms[n] {
			errs = multierror.Append(errs, fmt.Errorf("symtab: %q/%d used as both predicate and function",
				t.Name(n), t.Arity(n)))
		}
	}
	return errs.ErrorOrNil()
}
