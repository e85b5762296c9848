package saturate

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func TestAllPositionsIncludesRootAndEverySubterm(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 2)
	g := tab.Intern("g", 1)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)

	// f(g(a), b)
	tm := term.NewRigid(tab, f, term.NewRigid(tab, g, term.NewRigid(tab, a)), term.NewRigid(tab, b))

	got := AllPositions(tm)
	require.Equal(t, [][]int{{}, {0}, {0, 0}, {1}}, got)
}

func TestAllPositionsOfConstantIsJustRoot(t *testing.T) {
	tab := symtab.New()
	a := tab.Intern("a", 0)
	tm := term.NewRigid(tab, a)

	require.Equal(t, [][]int{{}}, AllPositions(tm))
}

func TestAllPositionsPathsAreIndependentSlices(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 2)
	a := tab.Intern("a", 0)
	tm := term.NewRigid(tab, f, term.NewRigid(tab, a), term.NewRigid(tab, a))

	got := AllPositions(tm)
	// Mutating one returned path must not corrupt a sibling's.
	for i := range got[1] {
		got[1][i] = 99
	}
	require.NotEqual(t, got[1], got[2])
}
