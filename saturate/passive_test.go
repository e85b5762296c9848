package saturate

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func mkPassiveClause(tab *symtab.Table, id int) *clause.Topform {
	p := tab.Intern("p", 0)
	return clause.NewTopform(id, []*clause.Literal{clause.NewLiteral(true, term.NewRigid(tab, p))}, justify.NewInput())
}

func TestPassivePopsLightestFirst(t *testing.T) {
	tab := symtab.New()
	pq := NewPassive()
	c1 := mkPassiveClause(tab, 1)
	c2 := mkPassiveClause(tab, 2)
	c3 := mkPassiveClause(tab, 3)

	pq.Schedule(c2, 5)
	pq.Schedule(c1, 1)
	pq.Schedule(c3, 5)

	require.Equal(t, 3, pq.Len())
	require.Same(t, c1, pq.PopLightest())
	// Equal weight ties break by id.
	require.Same(t, c2, pq.PopLightest())
	require.Same(t, c3, pq.PopLightest())
	require.Equal(t, 0, pq.Len())
}

func TestPassivePopLightestEmptyReturnsNil(t *testing.T) {
	pq := NewPassive()
	require.Nil(t, pq.PopLightest())
}

func TestPassiveRemoveBeforePop(t *testing.T) {
	tab := symtab.New()
	pq := NewPassive()
	c1 := mkPassiveClause(tab, 1)
	c2 := mkPassiveClause(tab, 2)
	pq.Schedule(c1, 1)
	pq.Schedule(c2, 2)

	pq.Remove(c1.ID)
	require.Equal(t, 1, pq.Len())
	require.Same(t, c2, pq.PopLightest())
}
