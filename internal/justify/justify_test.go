package justify

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReferencedIDsPrimaryParents(t *testing.T) {
	j := NewHyper([]int{3, 7, 9})
	require.Equal(t, []int{3, 7, 9}, j.ReferencedIDs())
}

func TestReferencedIDsDedupesAndOrdersByEncounter(t *testing.T) {
	j := NewResolve([]int{5, 5, 2})
	require.Equal(t, []int{5, 2}, j.ReferencedIDs())
}

func TestReferencedIDsIncludesSecondaryCells(t *testing.T) {
	j := NewCopy(1).WithUnitDel(0, 42)
	j.WithRewrite([]DemodStep{{DemodulatorID: 8, Sequence: 0, Dir: L}, {DemodulatorID: 8, Sequence: 1, Dir: R}})

	require.Equal(t, []int{1, 42, 8}, j.ReferencedIDs())
}

func TestWithRewriteEmptyStepsIsNoop(t *testing.T) {
	j := NewCopy(1)
	before := len(j.Secondaries)
	j.WithRewrite(nil)
	require.Equal(t, before, len(j.Secondaries))
}

func TestReferencedIDsExpandDefIncludesDefinitionID(t *testing.T) {
	j := NewExpandDef(10, 20)
	require.Equal(t, []int{10, 20}, j.ReferencedIDs())
}

func TestNewParaRejectsNonParaKind(t *testing.T) {
	require.Panics(t, func() { NewPara(Resolve, 1, 2, nil, nil) })
}

func TestNewParaRecordsPositions(t *testing.T) {
	j := NewPara(ParaIX, 1, 2, []int{1}, []int{2, 1})
	require.Equal(t, []int{1, 2}, j.Parents)
	require.Equal(t, []int{1}, j.Para.FromPos)
	require.Equal(t, []int{2, 1}, j.Para.IntoPos)
}

// Ancestry over a small proof tree:
//
//	1: input
//	2: input
//	3: resolve(1,2)
//	4: copy(3) + unit_del subsuming against 2
//	5: resolve(3,4)  <- start
func TestAncestrySortsByIncreasingIDAndDedupes(t *testing.T) {
	table := map[int]*Just{
		1: NewInput(),
		2: NewInput(),
		3: NewResolve([]int{1, 2}),
		4: NewCopy(3).WithUnitDel(0, 2),
		5: NewResolve([]int{3, 4}),
	}
	lookup := func(id int) (*Just, bool) {
		j, ok := table[id]
		return j, ok
	}

	got := Ancestry(lookup, 5)
	require.Equal(t, []int{1, 2, 3, 4}, got)
}

func TestAncestryOfLeafIsEmpty(t *testing.T) {
	table := map[int]*Just{1: NewInput()}
	lookup := func(id int) (*Just, bool) {
		j, ok := table[id]
		return j, ok
	}
	require.Empty(t, Ancestry(lookup, 1))
}

func TestAncestryUnknownParentStopsWalk(t *testing.T) {
	table := map[int]*Just{
		2: NewDeny(99), // 99 is not in the table
	}
	lookup := func(id int) (*Just, bool) {
		j, ok := table[id]
		return j, ok
	}
	got := Ancestry(lookup, 2)
	require.Equal(t, []int{99}, got)
}
