package saturate

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func TestOrientedDemodulatorFromUnitEquality(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)
	tab.SetPrecedence(f, 10)
	tab.SetPrecedence(a, 1)
	ord := order.New(tab, order.KindLPO)

	A := term.NewRigid(tab, a)
	fa := term.NewRigid(tab, f, A)
	eq := term.NewRigid(tab, symtab.EqualitySym, fa, A)
	c := clause.NewTopform(1, []*clause.Literal{clause.NewLiteral(true, eq)}, justify.NewInput())

	rule, ok := OrientedDemodulator(ord, c)
	require.True(t, ok)
	require.Equal(t, 1, rule.ID)
	require.True(t, term.Ident(rule.LHS, fa))
	require.True(t, term.Ident(rule.RHS, A))
}

func TestOrientedDemodulatorRejectsNonUnit(t *testing.T) {
	tab := symtab.New()
	p := tab.Intern("p", 0)
	q := tab.Intern("q", 0)
	ord := order.New(tab, order.KindLPO)

	c := clause.NewTopform(1, []*clause.Literal{
		clause.NewLiteral(true, term.NewRigid(tab, p)),
		clause.NewLiteral(true, term.NewRigid(tab, q)),
	}, justify.NewInput())

	_, ok := OrientedDemodulator(ord, c)
	require.False(t, ok)
}

func TestOrientedDemodulatorRejectsNonEquality(t *testing.T) {
	tab := symtab.New()
	p := tab.Intern("p", 0)
	ord := order.New(tab, order.KindLPO)

	c := clause.NewTopform(1, []*clause.Literal{clause.NewLiteral(true, term.NewRigid(tab, p))}, justify.NewInput())

	_, ok := OrientedDemodulator(ord, c)
	require.False(t, ok)
}
