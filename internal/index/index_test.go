package index

import (
	"testing"

	"github.com/kevinawalsh/prover9/internal/subst"
	"github.com/kevinawalsh/prover9/internal/symtab"
	"github.com/kevinawalsh/prover9/internal/term"
	"github.com/stretchr/testify/require"
)

func TestFPAUnifyRetrieval(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 2)
	a := tab.Intern("a", 0)
	pool := subst.NewMultiplierPool(8)
	fx := NewFPA(tab, pool)

	A := term.NewRigid(tab, a)
	stored := term.NewRigid(tab, f, term.NewVar(0), A)
	_, err := fx.Insert(stored, "stored-clause")
	require.NoError(t, err)

	var qc subst.Context
	var tr subst.Trail
	query := term.NewRigid(tab, f, A, term.NewVar(0))

	it, obj := fx.First(query, Unify, &qc, &tr)
	require.Equal(t, "stored-clause", obj)
	require.Nil(t, it.Next())
	it.Cancel()
	require.Equal(t, 0, tr.Len())
}

func TestFPAGeneralizationRetrieval(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 1)
	a := tab.Intern("a", 0)
	pool := subst.NewMultiplierPool(8)
	fx := NewFPA(tab, pool)

	pattern := term.NewRigid(tab, f, term.NewVar(0))
	_, err := fx.Insert(pattern, "rule")
	require.NoError(t, err)

	var qc subst.Context
	var tr subst.Trail
	A := term.NewRigid(tab, a)
	subject := term.NewRigid(tab, f, A)

	it, obj := fx.First(subject, Generalization, &qc, &tr)
	require.Equal(t, "rule", obj)
	it.Cancel()
	require.Equal(t, 0, tr.Len())
}

func TestWildDiscrimACGeneralization(t *testing.T) {
	tab := symtab.New()
	plus := tab.Intern("+", 2)
	tab.SetAssocComm(plus)
	a := tab.Intern("a", 0)
	pool := subst.NewMultiplierPool(8)
	wd := NewWildDiscrim(tab, pool)

	// x+0=x style pattern: here just x+y generalizes any two-arg + term.
	pattern := term.NewRigid(tab, plus, term.NewVar(0), term.NewVar(1))
	_, err := wd.Insert(pattern, "comm-rule")
	require.NoError(t, err)

	A := term.NewRigid(tab, a)
	B := term.NewRigid(tab, tab.Intern("b", 0))
	subject := term.NewRigid(tab, plus, A, B)

	candidates := wd.Generalizations(subject)
	require.Len(t, candidates, 1)
	require.Equal(t, "comm-rule", candidates[0].Obj)
}

func TestBindDiscrimRepeatedVariableConsistency(t *testing.T) {
	tab := symtab.New()
	f := tab.Intern("f", 2)
	a := tab.Intern("a", 0)
	b := tab.Intern("b", 0)
	pool := subst.NewMultiplierPool(8)
	bd := NewBindDiscrim(tab, pool)

	// f(x,x): only matches subjects with identical arguments.
	pattern := term.NewRigid(tab, f, term.NewVar(0), term.NewVar(0))
	_, err := bd.Insert(pattern, "idempotent-rule")
	require.NoError(t, err)

	A := term.NewRigid(tab, a)
	B := term.NewRigid(tab, b)
	var qc subst.Context
	var tr subst.Trail

	same := term.NewRigid(tab, f, A, A)
	it := bd.Generalizations(same, &qc, &tr)
	obj := it.Next()
	require.Equal(t, "idempotent-rule", obj)
	it.Cancel()
	require.Equal(t, 0, tr.Len())

	diff := term.NewRigid(tab, f, A, B)
	it2 := bd.Generalizations(diff, &qc, &tr)
	require.Nil(t, it2.Next())
	it2.Cancel()
}

func TestMindexLinearIdentical(t *testing.T) {
	tab := symtab.New()
	a := tab.Intern("a", 0)
	pool := subst.NewMultiplierPool(4)
	m := NewMindex(Linear, tab, pool)

	A := term.NewRigid(tab, a)
	_, err := m.Insert(A, "ground-a")
	require.NoError(t, err)

	var qc subst.Context
	var tr subst.Trail
	it, obj := m.First(A, Identical, &qc, &tr)
	require.Equal(t, "ground-a", obj)
	it.Cancel()
}
