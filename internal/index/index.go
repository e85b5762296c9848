package index

import (
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
)

// Kind selects which retrieval structure an Mindex wraps (spec.md §4.E).
type Kind int

const (
	Linear Kind = iota
	KindFPA
	KindDiscrimWild
	KindDiscrimBind
)

// Mindex is the abstract handle the rest of the core programs against,
// wrapping one of {LINEAR, FPA, DISCRIM_WILD, DISCRIM_BIND}. LINEAR is a
// bare slice of entries, useful for small auxiliary indexes (e.g. a
// handful of hints) where building a trie isn't worth it; FPA supports
// every query type, while the two discrimination-tree kinds only answer
// GENERALIZATION queries, per spec.md §4.E.
type Mindex struct {
	kind   Kind
	tab    *symtab.Table
	fpa    *FPA
	wild   *WildDiscrim
	bind   *BindDiscrim
	linear []*Entry
	pool   *subst.MultiplierPool
	nextID int
}

// NewMindex returns an empty index of the given kind.
func NewMindex(kind Kind, tab *symtab.Table, pool *subst.MultiplierPool) *Mindex {
	m := &Mindex{kind: kind, tab: tab, pool: pool}
	switch kind {
	case KindFPA:
		m.fpa = NewFPA(tab, pool)
	case KindDiscrimWild:
		m.wild = NewWildDiscrim(tab, pool)
	case KindDiscrimBind:
		m.bind = NewBindDiscrim(tab, pool)
	}
	return m
}

// Insert adds t (owned by obj) to the index.
func (m *Mindex) Insert(t *term.Term, obj interface{}) (*Entry, error) {
	switch m.kind {
	case KindFPA:
		return m.fpa.Insert(t, obj)
	case KindDiscrimWild:
		return m.wild.Insert(t, obj)
	case KindDiscrimBind:
		return m.bind.Insert(t, obj)
	default:
		ctx, err := m.pool.Acquire()
		if err != nil {
			return nil, err
		}
		m.nextID++
		e := &Entry{ID: m.nextID, Term: t, Ctx: ctx, Obj: obj}
		m.linear = append(m.linear, e)
		return e, nil
	}
}

// Remove deletes e from the index.
func (m *Mindex) Remove(e *Entry) {
	switch m.kind {
	case KindFPA:
		m.fpa.Remove(e)
	case KindDiscrimWild:
		m.wild.Remove(e)
	case KindDiscrimBind:
		m.bind.Remove(e)
	default:
		for i, le := range m.linear {
			if le.ID == e.ID {
				m.linear = append(m.linear[:i], m.linear[i+1:]...)
				break
			}
		}
		m.pool.Release(e.Ctx)
	}
}

// First begins a scoped retrieval for (query, queryType). kind
// KindDiscrimWild and KindDiscrimBind only accept Generalization; LINEAR
// and FPA accept every QueryType. The returned Iterator must be run to
// exhaustion or Cancel'd.
func (m *Mindex) First(query *term.Term, queryType QueryType, qc *subst.Context, tr *subst.Trail) (*Iterator, interface{}) {
	switch m.kind {
	case KindFPA:
		return m.fpa.First(query, queryType, qc, tr)
	case KindDiscrimWild:
		if queryType != Generalization {
			panic("index: wild discrim only supports GENERALIZATION queries")
		}
		subject := subst.Apply(query, qc)
		entries := m.wild.Generalizations(subject)
		it := &Iterator{tab: m.tab, candidate: entries, pos: -1, qt: query, qc: qc, qType: Generalization, tr: tr}
		return it, it.advance()
	case KindDiscrimBind:
		if queryType != Generalization {
			panic("index: bind discrim only supports GENERALIZATION queries")
		}
		subject := subst.Apply(query, qc)
		it := m.bind.Generalizations(subject, qc, tr)
		return it, it.advance()
	default:
		it := &Iterator{tab: m.tab, candidate: m.linear, pos: -1, qt: query, qc: qc, qType: queryType, tr: tr}
		return it, it.advance()
	}
}
