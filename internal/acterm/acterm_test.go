package acterm

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*symtab.Table, symtab.Num) {
	tab := symtab.New()
	plus := tab.Intern("+", 2)
	tab.SetAssocComm(plus)
	return tab, plus
}

func TestCanonicalIsCanonical(t *testing.T) {
	tab, plus := setup(t)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	c := tab.Intern("c", 0)
	A, B, C := term.NewRigid(tab, a), term.NewRigid(tab, b), term.NewRigid(tab, c)

	// (a+b)+c
	s := term.NewRigid(tab, plus, term.NewRigid(tab, plus, A, B), C)
	// a+(c+b)
	tt := term.NewRigid(tab, plus, A, term.NewRigid(tab, plus, C, B))

	require.True(t, SameCanonical(tab, s, tt))
	require.True(t, term.Ident(Canonical(tab, s), Canonical(tab, tt)))
}

func TestCanonicalDistinguishesDifferentMultisets(t *testing.T) {
	tab, plus := setup(t)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	A, B := term.NewRigid(tab, a), term.NewRigid(tab, b)

	s := term.NewRigid(tab, plus, A, A)
	tt := term.NewRigid(tab, plus, A, B)
	require.False(t, SameCanonical(tab, s, tt))
}

func TestCACTautology(t *testing.T) {
	tab, plus := setup(t)
	x := term.NewVar(0)
	y := term.NewVar(1)
	lhs := term.NewRigid(tab, plus, x, y)
	rhs := term.NewRigid(tab, plus, y, x)
	require.True(t, CACTautology(tab, lhs, rhs))
}
