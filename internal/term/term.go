// Package term implements the tree-shaped term representation shared by the
// rest of the saturation engine (variables and rigid/function terms over an
// interned symbol table), plus the claimed-flag-bit protocol terms use to let
// independent clients (indexes, demodulation, AC canonicalization) stash a
// private "have I seen this node" bit without stepping on each other.
package term

import (
	"fmt"

	"github.com/kevinawalsh/prover9/internal/symtab"
)

// MaxVars bounds how many distinct variables a single clause may use; a
// Context (see package subst) allocates exactly this many slots per
// multiplier, so it must stay small enough for a context to be a fixed-size
// array and large enough that real clauses never exhaust it.
const MaxVars = 256

// Kind distinguishes the two term shapes.
type Kind uint8

const (
	KindVar Kind = iota
	KindRigid
)

// Container is whatever owns an indexed term: a clause, or one side of a
// standalone equation used as a demodulator. Indexes and the "container"
// back-pointer described in spec.md §3 use this to recover the owner of a
// retrieved term without threading it through every call.
type Container interface {
	ContainerID() int
}

// Term is a node in a tree term: either a variable or a rigid (function or
// predicate-atom) application. Arity is implied by Sym and is never stored
// redundantly. Terms are built bottom-up and, once built, are conceptually
// immutable except for the claimed-flag bits below — callers that need a modified term make one with Copy
// first unless they are certain they own every reference.
type Term struct {
	Kind Kind

	// Variable fields, valid when Kind == KindVar.
	VarIdx int

	// Rigid fields, valid when Kind == KindRigid.
	Sym  symtab.Num
	Args []*Term

	flags uint32

	// Owner is the back-pointer to whatever clause/equation this term (or
	// the tree containing it) belongs to. Only ever set on nodes a client
	// has inserted into an index; nil otherwise.
	Owner Container
}

// NewVar returns a fresh variable term for variable index i.
func NewVar(i int) *Term {
	if i < 0 || i >= MaxVars {
		panic(fmt.Sprintf("term: variable index %d out of range", i))
	}
	return &Term{Kind: KindVar, VarIdx: i}
}

// NewRigid returns a fresh rigid term for symbol sym, with the given
// arguments. len(args) must equal the symbol's declared arity.
func NewRigid(tab *symtab.Table, sym symtab.Num, args ...*Term) *Term {
	if n := tab.Arity(sym); n != len(args) {
		panic(fmt.Sprintf("term: %s/%d applied to %d arguments", tab.Name(sym), n, len(args)))
	}
	return &Term{Kind: KindRigid, Sym: sym, Args: args}
}

// NewRigidUnchecked builds a rigid term without checking arity against the
// symbol table. It exists for internal rebuilders (Apply, Renumber,
// FromFlatterm) that copy an already-well-formed term and therefore cannot
// introduce an arity mismatch; client code should prefer NewRigid.
func NewRigidUnchecked(sym symtab.Num, args []*Term) *Term {
	return &Term{Kind: KindRigid, Sym: sym, Args: args}
}

// NewVarUnchecked returns a variable term without enforcing the MaxVars
// bound. MaxVars bounds how many variables a single Context can track, but
// subst.Apply renders a context-free term whose variable indices are
// deliberately outside that range (multiplier*MaxVars+v, to keep two
// contexts' variables disjoint without renaming) — those rendered
// variables are never looked up in a Context slot array again, only
// printed or fed to Renumber, so the bound doesn't apply to them.
func NewVarUnchecked(i int) *Term {
	return &Term{Kind: KindVar, VarIdx: i}
}

// IsVar and IsRigid are the obvious predicates.
func (t *Term) IsVar() bool   { return t.Kind == KindVar }
func (t *Term) IsRigid() bool { return t.Kind == KindRigid }

// Arity returns len(Args), 0 for a variable.
func (t *Term) Arity() int {
	if t.Kind == KindRigid {
		return len(t.Args)
	}
	return 0
}

// Copy deep-copies a term. There is no garbage collector cooperation
// required beyond what Go already provides, but callers still call Copy
// explicitly at the same points the original C implementation would have,
// both to document intent and because indexes and contexts alias terms by
// reference — a Copy is the only way to get a tree safe to mutate in place.
func (t *Term) Copy() *Term {
	if t == nil {
		return nil
	}
	c := &Term{Kind: t.Kind, VarIdx: t.VarIdx, Sym: t.Sym}
	if len(t.Args) > 0 {
		c.Args = make([]*Term, len(t.Args))
		for i, a := range t.Args {
			c.Args[i] = a.Copy()
		}
	}
	return c
}

// Ident reports structural equality (symnum/varnum and arguments,
// recursively) ignoring context — the "term_ident" test from spec.md §3.
func Ident(a, b *Term) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindVar {
		return a.VarIdx == b.VarIdx
	}
	if a.Sym != b.Sym || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if !Ident(a.Args[i], b.Args[i]) {
			return false
		}
	}
	return true
}

// Size returns the number of nodes in t, matching flatterm's O(1) "size"
// field once a term has been linearized; on a tree term it is O(n).
func Size(t *Term) int {
	if t == nil {
		return 0
	}
	n := 1
	for _, a := range t.Args {
		n += Size(a)
	}
	return n
}

// Vars appends every distinct variable index occurring in t, in
// left-to-right first-occurrence order, to out and returns the result.
func Vars(t *Term, out []int) []int {
	if t == nil {
		return out
	}
	if t.Kind == KindVar {
		for _, v := range out {
			if v == t.VarIdx {
				return out
			}
		}
		return append(out, t.VarIdx)
	}
	for _, a := range t.Args {
		out = Vars(a, out)
	}
	return out
}

// Renumber returns a copy of t with its variables renumbered to a dense
// prefix 0..k-1 in first-occurrence order, as required after every rewrite
// step (spec.md §3, "Variable"). The mapping is read and extended in
// place, so a caller that must renumber a whole clause can pass the same
// map for every literal.
func Renumber(t *Term, mapping map[int]int) *Term {
	if t == nil {
		return nil
	}
	if t.Kind == KindVar {
		n, ok := mapping[t.VarIdx]
		if !ok {
			n = len(mapping)
			mapping[t.VarIdx] = n
		}
		return NewVar(n)
	}
	args := make([]*Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = Renumber(a, mapping)
	}
	return &Term{Kind: KindRigid, Sym: t.Sym, Args: args}
}

// --- claimed flag-bit protocol -------------------------------------------

// FlagPool hands out private bits of Term.flags to clients that need to mark
// nodes (e.g. "reduced", "canonicalized", "oriented equality") without
// colliding with each other. It mirrors the process-wide claim_term_flag /
// release_term_flag protocol from spec.md §3, but is an explicit object
// (per the design note in spec.md §9 about avoiding hidden static state)
// rather than a global.
type FlagPool struct {
	used uint32
}

// Flag is one claimed bit, usable on any Term.
type Flag uint32

// Claim reserves an unused bit and returns it. Claiming more than 32 flags
// from one pool is a fatal programming error: it means some client forgot
// to Release.
func (p *FlagPool) Claim() Flag {
	for bit := uint32(0); bit < 32; bit++ {
		mask := uint32(1) << bit
		if p.used&mask == 0 {
			p.used |= mask
			return Flag(mask)
		}
	}
	panic("term: flag pool exhausted (a client forgot to Release)")
}

// Release returns a claimed flag to the pool. Releasing a flag that was
// never claimed, or claiming it twice without a Release between, is a fatal
// programmer error and panics.
func (p *FlagPool) Release(f Flag) {
	if p.used&uint32(f) == 0 {
		panic("term: release of an unclaimed flag")
	}
	p.used &^= uint32(f)
}

// Test, Set and Clear operate a claimed Flag on a single term node.
func (t *Term) Test(f Flag) bool { return t.flags&uint32(f) != 0 }
func (t *Term) Set(f Flag)       { t.flags |= uint32(f) }
func (t *Term) Clear(f Flag)     { t.flags &^= uint32(f) }

// ClearRecursive clears f on t and every subterm, used when a rewrite
// invalidates a previously-claimed mark such as "AC canonicalized"
// (spec.md §4.G: "the flag is cleared whenever a subterm is replaced").
func (t *Term) ClearRecursive(f Flag) {
	if t == nil {
		return
	}
	t.Clear(f)
	for _, a := range t.Args {
		a.ClearRecursive(f)
	}
}
