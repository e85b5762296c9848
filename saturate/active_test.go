package saturate

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/demod"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func TestActiveIntegrateIndexesEveryLiteral(t *testing.T) {
	tab := symtab.New()
	p := tab.Intern("p", 1)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(8)
	active := NewActive(tab, ord, pool)

	A := term.NewRigid(tab, a)
	B := term.NewRigid(tab, b)
	c := clause.NewTopform(1, []*clause.Literal{
		clause.NewLiteral(true, term.NewRigid(tab, p, A)),
		clause.NewLiteral(false, term.NewRigid(tab, p, B)),
	}, justify.NewInput())

	require.NoError(t, active.Integrate(c))
	require.Equal(t, 1, active.Len())

	var qc subst.Context
	var tr subst.Trail
	it, obj := active.Candidates(false, term.NewRigid(tab, p, A), &qc, &tr)
	defer it.Cancel()
	require.NotNil(t, obj)
	require.Equal(t, c, obj.(literalEntry).clause)
}

func TestActiveRemoveDetachesFromBothPolarities(t *testing.T) {
	tab := symtab.New()
	p := tab.Intern("p", 1)
	a := tab.Intern("a", 0)
	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(8)
	active := NewActive(tab, ord, pool)

	A := term.NewRigid(tab, a)
	c := clause.NewTopform(1, []*clause.Literal{
		clause.NewLiteral(true, term.NewRigid(tab, p, A)),
		clause.NewLiteral(false, term.NewRigid(tab, p, A)),
	}, justify.NewInput())
	require.NoError(t, active.Integrate(c))

	active.Remove(c)
	require.Equal(t, 0, active.Len())

	var qc subst.Context
	var tr subst.Trail
	it, obj := active.Candidates(true, term.NewRigid(tab, p, A), &qc, &tr)
	defer it.Cancel()
	require.Nil(t, obj)
}

func TestActiveIntegrateRegistersOrientedUnitEquality(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)
	tab.SetPrecedence(f, 10)
	tab.SetPrecedence(a, 1)
	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(8)
	active := NewActive(tab, ord, pool)

	A := term.NewRigid(tab, a)
	eq := term.NewRigid(tab, symtab.EqualitySym, term.NewRigid(tab, f, A), A)
	c := clause.NewTopform(1, []*clause.Literal{clause.NewLiteral(true, eq)}, justify.NewInput())
	require.NoError(t, active.Integrate(c))

	result, steps, _ := demod.Rewrite(tab, ord, active.Demodulators(), term.NewRigid(tab, f, A), DemodBudget)
	require.Len(t, steps, 1)
	require.True(t, term.Ident(result, A))
}
