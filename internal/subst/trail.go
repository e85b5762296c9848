package subst

import "fmt"

// entry is one trail record: "variable v in context c was bound".
type entry struct {
	ctx *Context
	v   int
}

// Trail is an append-only log of bindings, with a Mark/UndoTo pair that
// rolls back exactly the bindings made since a saved mark, in O(1) per
// undone binding (spec.md §3, "Trail"). The append-only slice below is the
// systems-neutral equivalent of the original singly-linked stack; either
// representation gives the same interface and amortized cost, and the
// slice form is the idiom this codebase's examples reach for over a
// hand-rolled linked list for LIFO logs.
type Trail struct {
	entries []entry
}

// Mark is a saved trail position, usable with UndoTo.
type Mark int

// push records one binding. Only Bind (in context.go) should call this.
func (tr *Trail) push(c *Context, v int) {
	tr.entries = append(tr.entries, entry{c, v})
}

// Save returns the current trail position.
func (tr *Trail) Save() Mark { return Mark(len(tr.entries)) }

// UndoTo pops every entry recorded since m, clearing each binding it
// recorded. m must have come from a Save call on this Trail at or before
// its current length; undoing past a stale or foreign mark is a
// programmer error.
func (tr *Trail) UndoTo(m Mark) {
	if int(m) > len(tr.entries) {
		panic(fmt.Sprintf("subst: undo mark %d past trail length %d", m, len(tr.entries)))
	}
	for i := len(tr.entries) - 1; i >= int(m); i-- {
		e := tr.entries[i]
		e.ctx.clear(e.v)
	}
	tr.entries = tr.entries[:m]
}

// Len reports how many bindings are currently on the trail, mostly useful
// in tests that want to assert a routine cleaned up after itself.
func (tr *Trail) Len() int { return len(tr.entries) }
