package index

import (
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// bindNode is one trie node of a BindDiscrim: children are keyed either by
// rigid symbol, or by the pattern variable's canonical (first-occurrence,
// dense-renumbered) index — so two patterns sharing the same
// repeated-variable shape collapse onto the same edge (spec.md §4.E,
// "Bind discrim").
type bindNode struct {
	sym     map[symtab.Num]*bindNode
	varEdge map[int]*bindNode
	leaves  []*Entry
}

func newBindNode() *bindNode {
	return &bindNode{sym: make(map[symtab.Num]*bindNode), varEdge: make(map[int]*bindNode)}
}

// BindDiscrim is the bind discrimination tree from spec.md §4.E. Unlike
// WildDiscrim, repeated occurrences of the same pattern variable are
// distinguished and checked for consistency during the trie walk itself,
// so only structurally-consistent candidates are ever handed to the
// caller's confirming unify.Match; AC operators are not supported here.
type BindDiscrim struct {
	tab    *symtab.Table
	pool   *subst.MultiplierPool
	root   *bindNode
	byID   map[int]*Entry
	nextID int
}

// NewBindDiscrim returns an empty bind discrimination tree.
func NewBindDiscrim(tab *symtab.Table, pool *subst.MultiplierPool) *BindDiscrim {
	return &BindDiscrim{tab: tab, pool: pool, root: newBindNode(), byID: make(map[int]*Entry)}
}

// Insert adds pattern t (owned by obj). t's variables need not already be
// densely numbered; Insert renumbers a private copy to build the trie path
// but stores the original t (with its original variable numbering) on the
// Entry, since that is what the caller's context expects to bind into.
func (d *BindDiscrim) Insert(t *term.Term, obj interface{}) (*Entry, error) {
	ctx, err := d.pool.Acquire()
	if err != nil {
		return nil, err
	}
	d.nextID++
	e := &Entry{ID: d.nextID, Term: t, Ctx: ctx, Obj: obj}
	d.byID[e.ID] = e
	canon := term.Renumber(t, make(map[int]int))
	leaf := d.insertPath(d.root, []*term.Term{canon})
	leaf.leaves = append(leaf.leaves, e)
	return e, nil
}

func (d *BindDiscrim) insertPath(node *bindNode, queue []*term.Term) *bindNode {
	if len(queue) == 0 {
		return node
	}
	t, rest := queue[0], queue[1:]
	if t.IsVar() {
		child, ok := node.varEdge[t.VarIdx]
		if !ok {
			child = newBindNode()
			node.varEdge[t.VarIdx] = child
		}
		return d.insertPath(child, rest)
	}
	child, ok := node.sym[t.Sym]
	if !ok {
		child = newBindNode()
		node.sym[t.Sym] = child
	}
	next := make([]*term.Term, 0, len(t.Args)+len(rest))
	next = append(next, t.Args...)
	next = append(next, rest...)
	return d.insertPath(child, next)
}

// Remove deletes e. Since e.Term may use arbitrary (non-dense) variable
// numbers, Remove recomputes the same canonical path Insert used.
func (d *BindDiscrim) Remove(e *Entry) {
	canon := term.Renumber(e.Term, make(map[int]int))
	leaf := d.walkExisting(d.root, []*term.Term{canon})
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

func (d *BindDiscrim) walkExisting(node *bindNode, queue []*term.Term) *bindNode {
	if node == nil {
		return nil
	}
	if len(queue) == 0 {
		return node
	}
	t, rest := queue[0], queue[1:]
	if t.IsVar() {
		return d.walkExisting(node.varEdge[t.VarIdx], rest)
	}
	next := make([]*term.Term, 0, len(t.Args)+len(rest))
	next = append(next, t.Args...)
	next = append(next, rest...)
	return d.walkExisting(node.sym[t.Sym], next)
}

// Generalizations structurally pre-filters entries whose canonical shape
// (respecting repeated-variable consistency) could generalize the ground
// subject, then returns an Iterator that confirms and binds each candidate
// via unify.Match, in the same First/Next/Cancel shape as FPA's.
func (d *BindDiscrim) Generalizations(subject *term.Term, qc *subst.Context, tr *subst.Trail) *Iterator {
	var candidates []*Entry
	seen := make(map[int]bool)
	scratch := make(map[int]*term.Term)
	d.retrieve(d.root, []*term.Term{subject}, scratch, func(e *Entry) {
		if !seen[e.ID] {
			seen[e.ID] = true
			candidates = append(candidates, e)
		}
	})
	return &Iterator{tab: d.tab, candidate: candidates, pos: -1, qt: subject, qc: qc, qType: Generalization, tr: tr}
}

func (d *BindDiscrim) retrieve(node *bindNode, queue []*term.Term, scratch map[int]*term.Term, emit func(*Entry)) {
	if node == nil {
		return
	}
	if len(queue) == 0 {
		for _, e := range node.leaves {
			emit(e)
		}
		return
	}
	t, rest := queue[0], queue[1:]
	if t.IsRigid() {
		if child, ok := node.sym[t.Sym]; ok {
			next := make([]*term.Term, 0, len(t.Args)+len(rest))
			next = append(next, t.Args...)
			next = append(next, rest...)
			d.retrieve(child, next, scratch, emit)
		}
	}
	for idx, child := range node.varEdge {
		if bound, ok := scratch[idx]; ok {
			if term.Ident(bound, t) {
				d.retrieve(child, rest, scratch, emit)
			}
			continue
		}
		scratch[idx] = t
		d.retrieve(child, rest, scratch, emit)
		delete(scratch, idx)
	}
}
