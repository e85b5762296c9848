package saturate

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func TestLoopRunDerivesEmptyClauseFromComplementaryUnits(t *testing.T) {
	tab := symtab.New()
	p := tab.Intern("p", 1)
	a := tab.Intern("a", 0)
	A := term.NewRigid(tab, a)

	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(16)
	lp := NewLoop(tab, ord, pool, Limits{MaxGenerated: 1000, MaxRetained: 1000}, nil)

	c1 := clause.NewTopform(0, []*clause.Literal{clause.NewLiteral(true, term.NewRigid(tab, p, A))}, justify.NewInput())
	c2 := clause.NewTopform(0, []*clause.Literal{clause.NewLiteral(false, term.NewRigid(tab, p, A))}, justify.NewInput())
	lp.Schedule(c1)
	lp.Schedule(c2)

	result := lp.Run()
	require.Equal(t, ReasonProof, result.Reason)
	require.NotNil(t, result.Proof)
	require.True(t, result.Proof.IsEmpty())
}

func TestLoopRunExhaustsPassiveWithoutContradiction(t *testing.T) {
	tab := symtab.New()
	p := tab.Intern("p", 0)
	q := tab.Intern("q", 0)

	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(16)
	lp := NewLoop(tab, ord, pool, Limits{MaxGenerated: 1000, MaxRetained: 1000}, nil)

	// Two unrelated unit facts: nothing resolves, nothing to generate.
	c1 := clause.NewTopform(0, []*clause.Literal{clause.NewLiteral(true, term.NewRigid(tab, p))}, justify.NewInput())
	c2 := clause.NewTopform(0, []*clause.Literal{clause.NewLiteral(true, term.NewRigid(tab, q))}, justify.NewInput())
	lp.Schedule(c1)
	lp.Schedule(c2)

	result := lp.Run()
	require.Equal(t, ReasonSOSEmpty, result.Reason)
	require.Equal(t, 2, lp.Active.Len())
}

func TestLoopScheduleAssignsFreshIDs(t *testing.T) {
	tab := symtab.New()
	p := tab.Intern("p", 0)
	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(8)
	lp := NewLoop(tab, ord, pool, Limits{}, nil)

	c := clause.NewTopform(0, []*clause.Literal{clause.NewLiteral(true, term.NewRigid(tab, p))}, justify.NewInput())
	lp.Schedule(c)
	require.NotZero(t, c.ID)
	require.Equal(t, 1, lp.Passive.Len())
}

// TestBackSimplifyStampsBackRewriteJustification covers scenario S6: a
// clause already in active gets rewritten by a newly oriented demodulator
// and must come back out carrying a back_rewrite justification, not a
// forward Simplify rewrite, so the proof trace can tell the two apart.
func TestBackSimplifyStampsBackRewriteJustification(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	g := tab.Intern("g", 1)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	tab.SetPrecedence(f, 10)
	tab.SetPrecedence(a, 1)
	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(16)
	lp := NewLoop(tab, ord, pool, Limits{}, nil)

	A := term.NewRigid(tab, a)
	B := term.NewRigid(tab, b)

	target := clause.NewTopform(2, []*clause.Literal{
		clause.NewLiteral(true, term.NewRigid(tab, g, term.NewRigid(tab, f, A))),
	}, justify.NewInput())
	require.NoError(t, lp.Active.Integrate(target))

	eq := clause.NewTopform(1, []*clause.Literal{
		clause.NewLiteral(true, term.NewRigid(tab, symtab.EqualitySym, term.NewRigid(tab, f, A), B)),
	}, justify.NewInput())
	require.NoError(t, lp.Active.Integrate(eq))

	lp.backSimplify(eq)

	require.Equal(t, 1, lp.Active.Len())
	require.Equal(t, 1, lp.Passive.Len())
	require.Equal(t, justify.BackRewrite, target.Just.Primary)
	require.Equal(t, []int{target.ID}, target.Just.Parents)
}

// TestGenerateParamodulatesActiveEqualityIntoGivenClause covers the
// symmetric superposition pass: an equality already sitting in active must
// be able to play the "from" role against a newly given, unrelated
// non-equality clause, not just the other way around.
func TestGenerateParamodulatesActiveEqualityIntoGivenClause(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	g := tab.Intern("g", 1)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	tab.SetPrecedence(f, 10)
	tab.SetPrecedence(a, 1)
	ord := order.New(tab, order.KindLPO)
	pool := subst.NewMultiplierPool(16)
	lp := NewLoop(tab, ord, pool, Limits{}, nil)

	A := term.NewRigid(tab, a)
	B := term.NewRigid(tab, b)

	// f(a) = b already active, from an earlier given-clause iteration.
	eq := clause.NewTopform(0, []*clause.Literal{
		clause.NewLiteral(true, term.NewRigid(tab, symtab.EqualitySym, term.NewRigid(tab, f, A), B)),
	}, justify.NewInput())
	lp.Schedule(eq)
	require.NoError(t, lp.Active.Integrate(eq))

	// A freshly given, unrelated clause containing f(a) as a subterm: the
	// active equality should paramodulate into it even though it's not the
	// given clause here.
	given := clause.NewTopform(0, []*clause.Literal{
		clause.NewLiteral(true, term.NewRigid(tab, g, term.NewRigid(tab, f, A))),
	}, justify.NewInput())
	lp.Schedule(given)
	require.NoError(t, lp.Active.Integrate(given))

	require.NoError(t, lp.generate(given))

	found := false
	for c := lp.Passive.PopLightest(); c != nil; c = lp.Passive.PopLightest() {
		if c.Just != nil && c.Just.Primary == justify.Para {
			found = true
		}
	}
	require.True(t, found, "expected a paramodulation result from the active equality into the given clause")
}
