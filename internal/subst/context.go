// Package subst implements substitution contexts and the trail that makes
// variable bindings undoable in O(1): the "Context / trail" component from
// spec.md §4.C.
package subst

import (
	"fmt"

	"github.com/kevinawalsh/prover9/internal/term"
)

// binding is one entry of a Context's fixed-size binding table: "variable v
// is bound to Term interpreted under Ctx".
type binding struct {
	set  bool
	Term *term.Term
	Ctx  *Context
}

// Context is a per-call substitution table, keyed by variable index, plus
// the unique Multiplier that distinguishes its variables from every other
// live context's variables (spec.md §4.C). Contexts never own terms; they
// only reference them.
type Context struct {
	slots      [term.MaxVars]binding
	Multiplier int
}

// Bound reports whether v is currently bound in c.
func (c *Context) Bound(v int) bool { return c.slots[v].set }

// BindingOf returns the (term, context) pair bound to v, or (nil, nil, false)
// if v is unbound.
func (c *Context) BindingOf(v int) (*term.Term, *Context, bool) {
	b := c.slots[v]
	if !b.set {
		return nil, nil, false
	}
	return b.Term, b.Ctx, true
}

// Deref follows variable bindings starting from (t, c) until it reaches a
// rigid term or an unbound variable, returning that term together with the
// context it should be interpreted under. This is the "deref" operation
// from spec.md §4.C: callers always end up working with a canonical
// representative.
func Deref(t *term.Term, c *Context) (*term.Term, *Context) {
	for t.IsVar() {
		bt, bc, ok := c.BindingOf(t.VarIdx)
		if !ok {
			return t, c
		}
		t, c = bt, bc
	}
	return t, c
}

// Apply instantiates t under c into a fresh, context-free tree term. Every
// variable still unbound after dereferencing is rendered with a globally
// disjoint index c.Multiplier*term.MaxVars + v, which is how two contexts'
// variables stay apart without an explicit renaming pass (spec.md §4.C).
func Apply(t *term.Term, c *Context) *term.Term {
	t, c = Deref(t, c)
	if t.IsVar() {
		return term.NewVarUnchecked(c.Multiplier*term.MaxVars + t.VarIdx)
	}
	args := make([]*term.Term, len(t.Args))
	for i, a := range t.Args {
		args[i] = Apply(a, c)
	}
	return term.NewRigidUnchecked(t.Sym, args)
}

// Bind records that variable v in context c is bound to term t interpreted
// under context c2, pushing the binding onto trail so it can be undone. It
// is a programmer error to bind an already-bound variable; that invariant
// is what lets Deref terminate without a visited-set.
func Bind(tr *Trail, c *Context, v int, t *term.Term, c2 *Context) {
	if c.slots[v].set {
		panic(fmt.Sprintf("subst: variable %d already bound in context (multiplier %d)", v, c.Multiplier))
	}
	c.slots[v] = binding{set: true, Term: t, Ctx: c2}
	tr.push(c, v)
}

// clear nulls out a binding slot; only called by Trail.UndoTo.
func (c *Context) clear(v int) {
	c.slots[v] = binding{}
}

// Empty reports whether c currently holds no bindings — freeing (or
// reusing the multiplier of) a non-empty context is a fatal invariant
// violation per spec.md §3.
func (c *Context) Empty() bool {
	for i := range c.slots {
		if c.slots[i].set {
			return false
		}
	}
	return true
}
