package engine

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/clause"
	"github.com/kevinawalsh/prover9/internal/justify"
	"github.com/kevinawalsh/prover9/internal/order"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/kevinawalsh/prover9/saturate"
	"github.com/stretchr/testify/require"
)

func TestNewEngineWiresFreshState(t *testing.T) {
	e := New(Config{OrderKind: order.KindLPO})
	require.NotNil(t, e.Tab)
	require.NotNil(t, e.Order)
	require.NotNil(t, e.Pool)
	require.NotNil(t, e.Loop)
	require.NotEqual(t, e.RunID.String(), "")
}

func TestEngineRunDerivesEmptyClauseFromComplementaryUnits(t *testing.T) {
	e := New(Config{OrderKind: order.KindLPO, PoolSize: 32, Limits: saturate.Limits{MaxGenerated: 100, MaxRetained: 100}})

	p := e.Tab.Intern("p", 1)
	a := e.Tab.Intern("a", 0)
	A := term.NewRigid(e.Tab, a)

	c1 := clause.NewTopform(0, []*clause.Literal{clause.NewLiteral(true, term.NewRigid(e.Tab, p, A))}, justify.NewInput())
	c2 := clause.NewTopform(0, []*clause.Literal{clause.NewLiteral(false, term.NewRigid(e.Tab, p, A))}, justify.NewInput())
	e.Loop.Schedule(c1)
	e.Loop.Schedule(c2)

	result := e.Run()
	require.Equal(t, saturate.ReasonProof, result.Reason)
	require.True(t, result.Proof.IsEmpty())
}
