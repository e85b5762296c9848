// Package clause implements the clause store described in spec.md §3 and
// §4.I: literals and clauses (Topform), the multi-membership Clist family,
// and the Henschen-Overbeek-Wos pair scheduler used to enumerate
// given-clause/active-clause pairs for generating inference in increasing
// weight-sum order. Grounded on the teacher's Clause/Literal shapes in
// src/datalog/datalog.go (Head/Body literal lists, a pretty-printer, and a
// variant "tag" used for dedup) generalized to first-order atoms with
// signed literals and a real justification chain instead of datalog's
// string tags.
package clause

import (
	"fmt"
	"strings"

	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// Literal is a signed atomic formula: `Positive` true means the literal is
// asserted, false means negated.
type Literal struct {
	Positive bool
	Atom     *term.Term

	// Oriented records whether this literal is an equality whose sides
	// have been oriented lhs > rhs by the active term order (spec.md §3:
	// "Equality literals carry an 'oriented' mark when term_order(lhs,
	// rhs) = GREATER").
	Oriented bool
}

// NewLiteral returns a literal asserting (or denying) atom.
func NewLiteral(positive bool, atom *term.Term) *Literal {
	return &Literal{Positive: positive, Atom: atom}
}

// IsEquality reports whether l's atom is an application of the designated
// equality symbol.
func (l *Literal) IsEquality(tab *symtab.Table) bool {
	return l.Atom.IsRigid() && l.Atom.Sym == symtab.EqualitySym
}

// String renders a literal in traditional notation, assuming the symbol
// table's names are suitable for direct printing (no infix/precedence
// handling — that belongs to the external pretty printer, out of scope
// per spec.md §1).
func (l *Literal) String(tab *symtab.Table) string {
	var b strings.Builder
	if !l.Positive {
		b.WriteByte('-')
	}
	writeTerm(&b, tab, l.Atom)
	return b.String()
}

func writeTerm(b *strings.Builder, tab *symtab.Table, t *term.Term) {
	if t.IsVar() {
		fmt.Fprintf(b, "v%d", t.VarIdx)
		return
	}
	b.WriteString(tab.Name(t.Sym))
	if len(t.Args) > 0 {
		b.WriteByte('(')
		for i, a := range t.Args {
			if i > 0 {
				b.WriteByte(',')
			}
			writeTerm(b, tab, a)
		}
		b.WriteByte(')')
	}
}

// membership is one node in a clause's intrusive multi-membership chain:
// the list it belongs to, and the prev/next neighbors within that
// particular list (spec.md §3, "Clause list (Clist)").
type membership struct {
	list *Clist
	prev *Topform
	next *Topform
	// chain is the next membership node for the same clause (a different
	// list), forming the "per-clause small vector of list handles" the
	// design notes in spec.md §9 describe as a linked chain rather than a
	// fixed-size array, since a clause's list membership count varies.
	chain *membership
}

// Topform is a clause: an ID, its literals, a weight used for passive
// ordering, a justification, and the chain of lists it currently belongs
// to. The name mirrors LADR's Topform (the top-level clause form, as
// opposed to a bare term) per spec.md §3.
type Topform struct {
	ID       int
	Literals []*Literal
	Weight   int
	Just     *justify.Just
	Attrs    map[string]string

	members *membership // head of this clause's own membership chain
}

// NewTopform returns a clause with the given literals and justification;
// Weight defaults to the literal count (callers recompute a real weight,
// e.g. term-size based, once the clause is built).
func NewTopform(id int, lits []*Literal, j *justify.Just) *Topform {
	return &Topform{ID: id, Literals: lits, Weight: len(lits), Just: j}
}

// IsEmpty reports whether c has no literals — the empty clause, signalling
// a derived contradiction.
func (c *Topform) IsEmpty() bool { return len(c.Literals) == 0 }

// String renders c in traditional clause notation ("lit1 | lit2 | ...",
// "$F" for the empty clause).
func (c *Topform) String(tab *symtab.Table) string {
	if len(c.Literals) == 0 {
		return "$F"
	}
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String(tab)
	}
	return strings.Join(parts, " | ")
}

// Clist is a named doubly-linked list of clauses; clauses can belong to
// several Clists at once (e.g. usable, sos, demodulators, hints) via their
// intrusive membership chain, so removing a clause from one list is O(1)
// and removing it from every list it's in is O(its membership count)
// (spec.md §3/§4.I).
type Clist struct {
	Name       string
	head, tail *Topform
	nodes      map[int]*membership // clause ID -> this list's membership node
	length     int
}

// NewClist returns an empty named clause list.
func NewClist(name string) *Clist {
	return &Clist{Name: name, nodes: make(map[int]*membership)}
}

// Len returns the number of clauses currently in l.
func (l *Clist) Len() int { return l.length }

// Contains reports whether c is a member of l.
func (l *Clist) Contains(c *Topform) bool {
	_, ok := l.nodes[c.ID]
	return ok
}

// Append adds c to the end of l. Appending a clause already in l is a
// programmer error and panics, matching the invariant that a clause
// appears in a given list at most once.
//
// Per-list prev/next are tracked in the membership node rather than on
// Topform directly, since a clause's neighbors differ across every list
// it belongs to; l.nodes maps a member clause's ID to its node within
// *this* list.
func (l *Clist) Append(c *Topform) {
	if l.Contains(c) {
		panic(fmt.Sprintf("clause: clause %d already a member of list %q", c.ID, l.Name))
	}
	m := &membership{list: l, prev: l.tail}
	if l.tail != nil {
		l.nodes[l.tail.ID].next = c
	} else {
		l.head = c
	}
	l.tail = c
	l.nodes[c.ID] = m
	c.members = prependChain(c.members, m)
	l.length++
}

func prependChain(head, m *membership) *membership {
	m.chain = head
	return m
}

// Remove deletes c from l in O(1), relinking l's doubly-linked neighbors
// and splicing c's node out of its own membership chain.
func (l *Clist) Remove(c *Topform) {
	m, ok := l.nodes[c.ID]
	if !ok {
		return
	}
	prev, next := l.neighbors(c)
	if prev != nil {
		l.setNext(prev, next)
	} else {
		l.head = next
	}
	if next != nil {
		l.setPrev(next, prev)
	} else {
		l.tail = prev
	}
	delete(l.nodes, c.ID)
	l.length--
	c.members = removeFromChain(c.members, m)
}

func removeFromChain(head *membership, target *membership) *membership {
	if head == target {
		return head.chain
	}
	for n := head; n != nil; n = n.chain {
		if n.chain == target {
			n.chain = target.chain
			return head
		}
	}
	return head
}

// neighbors, setNext and setPrev resolve a clause's position within l by
// consulting l.nodes for the membership node and its prev/next Topform
// pointers.
func (l *Clist) neighbors(c *Topform) (prev, next *Topform) {
	m := l.nodes[c.ID]
	return m.prev, m.next
}

func (l *Clist) setNext(c, next *Topform) { l.nodes[c.ID].next = next }
func (l *Clist) setPrev(c, prev *Topform) { l.nodes[c.ID].prev = prev }

// RemoveFromAllLists detaches c from every Clist it currently belongs to,
// in O(its membership count), per spec.md §4.I ("remove_from_all_lists is
// O(degree)").
func RemoveFromAllLists(c *Topform) {
	for m := c.members; m != nil; {
		next := m.chain
		m.list.Remove(c)
		m = next
	}
}

// MembershipCount returns how many Clists c currently belongs to; used as
// the "orphaned" trigger (spec.md §4.I: "delete clause if orphaned uses
// the chain emptiness as the trigger").
func MembershipCount(c *Topform) int {
	n := 0
	for m := c.members; m != nil; m = m.chain {
		n++
	}
	return n
}

// Each walks l's clauses head to tail, stopping early if fn returns false.
func (l *Clist) Each(fn func(c *Topform) bool) {
	for c := l.head; c != nil; {
		next := l.nodes[c.ID].next
		if !fn(c) {
			return
		}
		c = next
	}
}

// All collects l's clauses head to tail into a slice.
func (l *Clist) All() []*Topform {
	out := make([]*Topform, 0, l.length)
	l.Each(func(c *Topform) bool { out = append(out, c); return true })
	return out
}
