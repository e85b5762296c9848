package subst

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func TestBindDerefApply(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)

	pool := NewMultiplierPool(4)
	c1, err := pool.Acquire()
	require.NoError(t, err)
	c2, err := pool.Acquire()
	require.NoError(t, err)

	var tr Trail
	// bind v0 in c1 to f(v1) interpreted in c2
	Bind(&tr, c1, 0, term.NewRigid(tab, f, term.NewVar(1)), c2)

	got, ctx := Deref(term.NewVar(0), c1)
	require.True(t, got.IsRigid())
	require.Equal(t, c2, ctx)

	applied := Apply(term.NewVar(0), c1)
	require.True(t, applied.IsRigid())
	require.True(t, applied.Args[0].IsVar())
	require.Equal(t, c2.Multiplier*term.MaxVars+1, applied.Args[0].VarIdx)

	require.NotNil(t, a)
}

func TestTrailRollbackExact(t *testing.T) {
	tab := symtab.New()
	c := tab.Intern("c", 0)

	pool := NewMultiplierPool(2)
	ctx, err := pool.Acquire()
	require.NoError(t, err)

	var tr Trail
	mark := tr.Save()
	Bind(&tr, ctx, 0, term.NewRigid(tab, c), ctx)
	require.True(t, ctx.Bound(0))
	tr.UndoTo(mark)
	require.False(t, ctx.Bound(0))
	require.True(t, ctx.Empty())
}

func TestDoubleBindPanics(t *testing.T) {
	tab := symtab.New()
	c := tab.Intern("c", 0)
	pool := NewMultiplierPool(1)
	ctx, _ := pool.Acquire()
	var tr Trail
	Bind(&tr, ctx, 0, term.NewRigid(tab, c), ctx)
	require.Panics(t, func() { Bind(&tr, ctx, 0, term.NewRigid(tab, c), ctx) })
}

func TestMultiplierPoolExhaustion(t *testing.T) {
	pool := NewMultiplierPool(1)
	_, err := pool.Acquire()
	require.NoError(t, err)
	_, err = pool.Acquire()
	require.ErrorIs(t, err, ErrMultiplierPoolExhausted)
}

func TestReleaseNonEmptyContextPanics(t *testing.T) {
	tab := symtab.New()
	c := tab.Intern("c", 0)
	pool := NewMultiplierPool(1)
	ctx, _ := pool.Acquire()
	var tr Trail
	Bind(&tr, ctx, 0, term.NewRigid(tab, c), ctx)
	require.Panics(t, func() { pool.Release(ctx) })
}
