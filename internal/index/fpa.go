package index

import (
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/kevinawalsh/prover9/internal/unify"
)

// QueryType selects which relation a retrieval is looking for (spec.md
// §4.E).
type QueryType int

const (
	Unify QueryType = iota
	Instance
	Generalization
	Variant
	Identical
)

// Entry is one indexed (term, object) pair. Term keeps its own variables,
// interpreted under Ctx — a dedicated Context acquired from the index's
// multiplier pool for the entry's lifetime, so retrieval can bind into it
// and the caller can undo those bindings via the trail without disturbing
// any other entry (spec.md §4.C, §4.E).
type Entry struct {
	ID   int
	Term *term.Term
	Ctx  *subst.Context
	Obj  interface{}
}

// FPA is the FPA/path retrieval index (spec.md §4.E): entries are bucketed
// by root symbol (a depth-1 path — see DESIGN.md for why deeper path
// compression is not implemented), each bucket backed by a PostingList so
// ids stream in decreasing order; entries rooted at a variable go in a
// separate bucket consulted by every query, since a variable root can
// unify/generalize against anything.
type FPA struct {
	tab     *symtab.Table
	pool    *subst.MultiplierPool
	byRoot  map[symtab.Num]*PostingList
	varRoot *PostingList
	byID    map[int]*Entry
	nextID  int
}

// NewFPA returns an empty FPA index. pool supplies the per-entry Contexts;
// it must outlive the index.
func NewFPA(tab *symtab.Table, pool *subst.MultiplierPool) *FPA {
	return &FPA{
		tab:     tab,
		pool:    pool,
		byRoot:  make(map[symtab.Num]*PostingList),
		varRoot: NewPostingList(),
		byID:    make(map[int]*Entry),
	}
}

// Insert adds t (owned by obj) to the index and returns its Entry,
// acquiring a fresh Context for it from the index's multiplier pool.
func (x *FPA) Insert(t *term.Term, obj interface{}) (*Entry, error) {
	ctx, err := x.pool.Acquire()
	if err != nil {
		return nil, err
	}
	x.nextID++
	e := &Entry{ID: x.nextID, Term: t, Ctx: ctx, Obj: obj}
	x.byID[e.ID] = e
	x.bucketFor(t).Insert(e.ID)
	return e, nil
}

func (x *FPA) bucketFor(t *term.Term) *PostingList {
	if t.IsVar() {
		return x.varRoot
	}
	pl, ok := x.byRoot[t.Sym]
	if !ok {
		pl = NewPostingList()
		x.byRoot[t.Sym] = pl
	}
	return pl
}

// Remove deletes e from the index and releases its Context, which must be
// empty (every binding made against it during a retrieval must already
// have been undone via the trail; spec.md §3's "context freed while
// holding any binding is fatal" invariant).
func (x *FPA) Remove(e *Entry) {
	x.bucketFor(e.Term).Delete(e.ID)
	delete(x.byID, e.ID)
	x.pool.Release(e.Ctx)
}

// Iterator is the scoped retrieval cursor for First/Next/Cancel (spec.md
// §4.E, §5's "scoped acquisition pattern"): callers must run it to
// exhaustion or call Cancel.
type Iterator struct {
	tab       *symtab.Table
	candidate []*Entry
	pos       int
	qt        *term.Term
	qc        *subst.Context
	qType     QueryType
	tr        *subst.Trail
	rowMark   subst.Mark
	active    bool
	cur       *Entry
}

// First begins retrieval for (query, queryType) over x, returning the
// first matching object or (nil, nil) if there is none.
func (x *FPA) First(query *term.Term, queryType QueryType, qc *subst.Context, tr *subst.Trail) (*Iterator, interface{}) {
	var candidates []*Entry
	collect := func(id int) bool {
		candidates = append(candidates, x.byID[id])
		return true
	}
	if query.IsVar() {
		for _, pl := range x.byRoot {
			pl.Walk(collect)
		}
		x.varRoot.Walk(collect)
	} else {
		if pl, ok := x.byRoot[query.Sym]; ok {
			pl.Walk(collect)
		}
		x.varRoot.Walk(collect)
	}
	it := &Iterator{tab: x.tab, candidate: candidates, pos: -1, qt: query, qc: qc, qType: queryType, tr: tr}
	obj := it.advance()
	return it, obj
}

// Next advances the iterator, returning the next match or nil when
// exhausted (in which case the trail has already been restored).
func (it *Iterator) Next() interface{} { return it.advance() }

func (it *Iterator) advance() interface{} {
	if it.active {
		it.tr.UndoTo(it.rowMark)
		it.active = false
	}
	for it.pos++; it.pos < len(it.candidate); it.pos++ {
		e := it.candidate[it.pos]
		mark := it.tr.Save()
		if it.matches(e) {
			it.rowMark = mark
			it.active = true
			it.cur = e
			return e.Obj
		}
		it.tr.UndoTo(mark)
	}
	it.cur = nil
	return nil
}

func (it *Iterator) matches(e *Entry) bool {
	switch it.qType {
	case Unify:
		return unify.Unify(it.qt, it.qc, e.Term, e.Ctx, it.tr)
	case Instance:
		subject := subst.Apply(e.Term, e.Ctx)
		return unify.Match(it.qt, it.qc, subject, it.tr)
	case Generalization:
		subject := subst.Apply(it.qt, it.qc)
		return unify.Match(e.Term, e.Ctx, subject, it.tr)
	case Variant:
		return unify.Variant(it.tab, it.qt, it.qc, e.Term, e.Ctx)
	case Identical:
		return term.Ident(subst.Apply(it.qt, it.qc), subst.Apply(e.Term, e.Ctx))
	default:
		return false
	}
}

// Cancel clears any bindings the current match holds, per the scoped
// acquisition pattern (spec.md §5). It is always safe to call, including
// after Next has already returned nil.
func (it *Iterator) Cancel() {
	if it.active {
		it.tr.UndoTo(it.rowMark)
		it.active = false
	}
	it.pos = len(it.candidate)
}

// Current returns the Entry behind the most recent non-nil result, or nil.
func (it *Iterator) Current() *Entry { return it.cur }
