package term

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/stretchr/testify/require"
)

func buildSample(tab *symtab.Table) *Term {
	f := tab.Intern("f", 2)
	g := tab.Intern("g", 1)
	a := tab.Intern("a", 0)
	return NewRigid(tab, f,
		NewRigid(tab, g, NewVar(0)),
		NewRigid(tab, a))
}

func TestFlattermRoundtrip(t *testing.T) {
	tab := symtab.New()
	orig := buildSample(tab)
	ft := ToFlatterm(orig)
	back := FromFlatterm(ft)
	require.True(t, Ident(orig, back))
}

func TestIdent(t *testing.T) {
	tab := symtab.New()
	a := buildSample(tab)
	b := buildSample(tab)
	require.True(t, Ident(a, b))
	require.False(t, Ident(a, NewVar(1)))
}

func TestCopyIsIndependent(t *testing.T) {
	tab := symtab.New()
	a := buildSample(tab)
	b := a.Copy()
	require.True(t, Ident(a, b))
	b.Args[1].Sym = tab.Intern("other", 0)
	require.False(t, Ident(a, b))
}

func TestVarsFirstOccurrenceOrder(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 2)
	tm := NewRigid(tab, f, NewVar(3), NewVar(1))
	require.Equal(t, []int{3, 1}, Vars(tm, nil))
}

func TestRenumberDensePrefix(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 2)
	tm := NewRigid(tab, f, NewVar(7), NewVar(3))
	mapping := make(map[int]int)
	out := Renumber(tm, mapping)
	require.Equal(t, []int{0, 1}, Vars(out, nil))
}

func TestFlagPoolClaimRelease(t *testing.T) {
	var pool FlagPool
	f1 := pool.Claim()
	f2 := pool.Claim()
	require.NotEqual(t, f1, f2)
	pool.Release(f1)
	f3 := pool.Claim()
	require.Equal(t, f1, f3)
}

func TestFlagPoolDoubleReleasePanics(t *testing.T) {
	var pool FlagPool
	f1 := pool.Claim()
	pool.Release(f1)
	require.Panics(t, func() { pool.Release(f1) })
}

func TestTermFlagSetClear(t *testing.T) {
	tab := symtab.New()
	var pool FlagPool
	flag := pool.Claim()
	tm := buildSample(tab)
	require.False(t, tm.Test(flag))
	tm.Set(flag)
	require.True(t, tm.Test(flag))
	tm.Clear(flag)
	require.False(t, tm.Test(flag))
}

func TestClearRecursive(t *testing.T) {
	tab := symtab.New()
	var pool FlagPool
	flag := pool.Claim()
	tm := buildSample(tab)
	tm.Set(flag)
	tm.Args[0].Set(flag)
	tm.ClearRecursive(flag)
	require.False(t, tm.Test(flag))
	require.False(t, tm.Args[0].Test(flag))
}
