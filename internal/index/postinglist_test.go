package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostingListSoundnessAndOrder(t *testing.T) {
	pl := NewPostingList()
	r := rand.New(rand.NewSource(1))
	present := make(map[int]bool)

	for i := 0; i < 200; i++ {
		id := r.Intn(500)
		if present[id] {
			continue
		}
		pl.Insert(id)
		present[id] = true
	}

	ids := pl.IDs()
	require.Equal(t, len(present), len(ids))
	for i := 1; i < len(ids); i++ {
		require.Less(t, ids[i], ids[i-1], "posting list must be strictly decreasing")
	}
	for id := range present {
		require.True(t, pl.Contains(id))
	}

	// Delete half of them, re-check soundness and order hold.
	i := 0
	for id := range present {
		if i%2 == 0 {
			pl.Delete(id)
			delete(present, id)
		}
		i++
	}
	ids = pl.IDs()
	require.Equal(t, len(present), len(ids))
	for i := 1; i < len(ids); i++ {
		require.Less(t, ids[i], ids[i-1])
	}
	for id := range present {
		require.True(t, pl.Contains(id))
	}
}

func TestPostingListDoublesChunkSize(t *testing.T) {
	pl := NewPostingList()
	for i := 0; i < 100; i++ {
		pl.Insert(i)
	}
	require.Greater(t, pl.chunkSize, defaultInitialChunkSize)
	require.LessOrEqual(t, pl.chunkSize, defaultMaxChunkSize)
	require.Equal(t, 100, pl.Len())
}
