package demod

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func TestRewriteOrientedAppliesBottomUp(t *testing.T) {
	tab := symtab.New()
	g := tab.Intern("g", 1)
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	pool := subst.NewMultiplierPool(8)
	idx := NewIndex(tab, pool)
	ord := order.New(tab, order.KindLPO)

	A := term.NewRigid(tab, a)
	lhs := term.NewRigid(tab, f, term.NewVar(0))
	require.NoError(t, idx.Insert(&Rule{ID: 1, LHS: lhs, RHS: A, Oriented: true}))

	B := term.NewRigid(tab, b)
	subject := term.NewRigid(tab, g, term.NewRigid(tab, f, B))

	result, steps, limited := Rewrite(tab, ord, idx, subject, Budget{})
	require.False(t, limited)
	require.Len(t, steps, 1)
	require.Equal(t, 1, steps[0].DemodulatorID)
	require.True(t, term.Ident(result, term.NewRigid(tab, g, A)))
}

func TestRewriteUnorientedRequiresOrderingDecrease(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)
	tab.SetPrecedence(f, 10)
	tab.SetPrecedence(a, 1)
	pool := subst.NewMultiplierPool(8)
	idx := NewIndex(tab, pool)
	ord := order.New(tab, order.KindLPO)

	A := term.NewRigid(tab, a)
	// f(x) = x, unoriented: only fires where f(x) > x under the order.
	rule := &Rule{ID: 1, LHS: term.NewRigid(tab, f, term.NewVar(0)), RHS: term.NewVar(0), Oriented: false}
	require.NoError(t, idx.Insert(rule))

	subject := term.NewRigid(tab, f, A)
	result, steps, limited := Rewrite(tab, ord, idx, subject, Budget{})
	require.False(t, limited)
	require.Len(t, steps, 1)
	require.True(t, term.Ident(result, A))
}

func TestRewriteStepBudgetStopsAndReportsLimited(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)
	pool := subst.NewMultiplierPool(8)
	idx := NewIndex(tab, pool)
	ord := order.New(tab, order.KindLPO)

	A := term.NewRigid(tab, a)
	// f(f(x)) rewrites one layer per step: f(x) -> f(f(x)) would loop, so
	// instead use two distinct facts needing two steps to saturate:
	// f(a) -> b isn't enough to force 2 steps from one rule, so nest
	// f(f(a)).
	rule := &Rule{ID: 1, LHS: term.NewRigid(tab, f, term.NewVar(0)), RHS: A, Oriented: true}
	require.NoError(t, idx.Insert(rule))

	subject := term.NewRigid(tab, f, term.NewRigid(tab, f, A))
	_, steps, limited := Rewrite(tab, ord, idx, subject, Budget{MaxSteps: 1})
	require.True(t, limited)
	require.Len(t, steps, 1)
}

func TestRewriteSizeBudgetStopsAndReportsLimited(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	h := tab.Intern("h", 2)
	a := tab.Intern("a", 0)
	pool := subst.NewMultiplierPool(8)
	idx := NewIndex(tab, pool)
	ord := order.New(tab, order.KindLPO)

	A := term.NewRigid(tab, a)
	bigRHS := term.NewRigid(tab, h, A, term.NewRigid(tab, h, A, A)) // grows the term a lot
	rule := &Rule{ID: 1, LHS: term.NewRigid(tab, f, term.NewVar(0)), RHS: bigRHS, Oriented: true}
	require.NoError(t, idx.Insert(rule))

	subject := term.NewRigid(tab, f, A)
	_, _, limited := Rewrite(tab, ord, idx, subject, Budget{SizeIncrease: 1})
	require.True(t, limited)
}

func TestRewriteConditionalDemodulationRequiresTruth(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	p := tab.Intern("p", 1)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	pool := subst.NewMultiplierPool(8)
	idx := NewIndex(tab, pool)
	ord := order.New(tab, order.KindLPO)

	A := term.NewRigid(tab, a)
	B := term.NewRigid(tab, b)
	truth := term.NewRigid(tab, symtab.TruthSym)

	// p(x) = $T is an unconditional fact usable as cond's own demodulator,
	// so "p(a)" itself rewrites to $T and the conditional rule can fire.
	pFact := &Rule{ID: 1, LHS: term.NewRigid(tab, p, term.NewVar(0)), RHS: truth, Oriented: true}
	require.NoError(t, idx.Insert(pFact))

	cond := &Rule{
		ID:       2,
		LHS:      term.NewRigid(tab, f, term.NewVar(0)),
		RHS:      B,
		Oriented: true,
		Cond:     []*term.Term{term.NewRigid(tab, p, term.NewVar(0))},
	}
	require.NoError(t, idx.Insert(cond))

	subject := term.NewRigid(tab, f, A)
	result, steps, limited := Rewrite(tab, ord, idx, subject, Budget{})
	require.False(t, limited)
	require.NotEmpty(t, steps)
	require.True(t, term.Ident(result, B))
}

func TestIndexRemoveDropsRule(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)
	pool := subst.NewMultiplierPool(8)
	idx := NewIndex(tab, pool)
	ord := order.New(tab, order.KindLPO)

	A := term.NewRigid(tab, a)
	rule := &Rule{ID: 1, LHS: term.NewRigid(tab, f, term.NewVar(0)), RHS: A, Oriented: true}
	require.NoError(t, idx.Insert(rule))
	idx.Remove(1)

	subject := term.NewRigid(tab, f, A)
	result, steps, limited := Rewrite(tab, ord, idx, subject, Budget{})
	require.False(t, limited)
	require.Empty(t, steps)
	require.True(t, term.Ident(result, subject))
}
