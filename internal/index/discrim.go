package index

import (
	"github.com/kevinawalsh/prover9/internal/acterm"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// wildKey labels one edge of a WildDiscrim trie: an ordinary symbol edge.
// Terms are AC-canonicalized (package acterm) before their path is built,
// both at Insert and at retrieval, so AC-equivalent subterms always
// produce the same right-associated binary shape and therefore the same
// trie path — see DESIGN.md for why this replaces the original's
// separate "(num_args, num_nonvar_args)" counter node: this codebase's AC
// canonical form is already a fixed-arity (2) right-associated chain, so
// there is no variable-arity node left for a counter to prune.
type wildKey struct {
	sym symtab.Num
}

type wildNode struct {
	varBranch *wildNode
	sym       map[wildKey]*wildNode
	leaves    []*Entry
}

func newWildNode() *wildNode { return &wildNode{sym: make(map[wildKey]*wildNode)} }

// WildDiscrim is the wild discrimination tree from spec.md §4.E: variables
// collapse to `*`, siblings are keyed by symbol, and only GENERALIZATION
// retrieval is supported. Every candidate it yields still needs a
// subsequent unification/match step by the caller — the tree only prunes
// by shape.
type WildDiscrim struct {
	tab    *symtab.Table
	pool   *subst.MultiplierPool
	root   *wildNode
	byID   map[int]*Entry
	nextID int
}

// NewWildDiscrim returns an empty wild discrimination tree.
func NewWildDiscrim(tab *symtab.Table, pool *subst.MultiplierPool) *WildDiscrim {
	return &WildDiscrim{tab: tab, pool: pool, root: newWildNode(), byID: make(map[int]*Entry)}
}

// Insert adds pattern t (owned by obj) to the tree.
func (d *WildDiscrim) Insert(t *term.Term, obj interface{}) (*Entry, error) {
	ctx, err := d.pool.Acquire()
	if err != nil {
		return nil, err
	}
	d.nextID++
	e := &Entry{ID: d.nextID, Term: t, Ctx: ctx, Obj: obj}
	d.byID[e.ID] = e
	leaf := d.insertPath(d.root, []*term.Term{acterm.Canonical(d.tab, t)})
	leaf.leaves = append(leaf.leaves, e)
	return e, nil
}

func (d *WildDiscrim) insertPath(node *wildNode, queue []*term.Term) *wildNode {
	if len(queue) == 0 {
		return node
	}
	t, rest := queue[0], queue[1:]
	if t.IsVar() {
		if node.varBranch == nil {
			node.varBranch = newWildNode()
		}
		return d.insertPath(node.varBranch, rest)
	}
	key := wildKey{sym: t.Sym}
	child, ok := node.sym[key]
	if !ok {
		child = newWildNode()
		node.sym[key] = child
	}
	next := make([]*term.Term, 0, len(t.Args)+len(rest))
	next = append(next, t.Args...)
	next = append(next, rest...)
	return d.insertPath(child, next)
}

// Remove deletes e from the tree. Since entries are reached by the
// structural path of their own term, Remove recomputes that path rather
// than tracking back-pointers.
func (d *WildDiscrim) Remove(e *Entry) {
	leaf := d.walkExisting(d.root, []*term.Term{acterm.Canonical(d.tab, e.Term)})
	if leaf != nil {
		for i, le := range leaf.leaves {
			if le.ID == e.ID {
				leaf.leaves = append(leaf.leaves[:i], leaf.leaves[i+1:]...)
				break
			}
		}
	}
	delete(d.byID, e.ID)
	d.pool.Release(e.Ctx)
}

func (d *WildDiscrim) walkExisting(node *wildNode, queue []*term.Term) *wildNode {
	if node == nil {
		return nil
	}
	if len(queue) == 0 {
		return node
	}
	t, rest := queue[0], queue[1:]
	if t.IsVar() {
		return d.walkExisting(node.varBranch, rest)
	}
	next := make([]*term.Term, 0, len(t.Args)+len(rest))
	next = append(next, t.Args...)
	next = append(next, rest...)
	return d.walkExisting(node.sym[wildKey{sym: t.Sym}], next)
}

// Generalizations returns every Entry whose pattern could generalize the
// ground active subject (structurally — a superset the caller must
// confirm with unify.Match). subject is AC-canonicalized first so AC
// demodulator shapes line up with however Insert canonicalized them.
func (d *WildDiscrim) Generalizations(subject *term.Term) []*Entry {
	var out []*Entry
	d.retrieve(d.root, []*term.Term{acterm.Canonical(d.tab, subject)}, &out)
	return out
}

func (d *WildDiscrim) retrieve(node *wildNode, queue []*term.Term, out *[]*Entry) {
	if node == nil {
		return
	}
	if len(queue) == 0 {
		*out = append(*out, node.leaves...)
		return
	}
	t, rest := queue[0], queue[1:]
	if node.varBranch != nil {
		d.retrieve(node.varBranch, rest, out)
	}
	if t.IsVar() {
		// A variable subject (AC partial-match residue) can only be
		// captured by a pattern variable, already handled above.
		return
	}
	if child, ok := node.sym[wildKey{sym: t.Sym}]; ok {
		next := make([]*term.Term, 0, len(t.Args)+len(rest))
		next = append(next, t.Args...)
		next = append(next, rest...)
		d.retrieve(child, next, out)
	}
}
