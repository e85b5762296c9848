package saturate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIDGenIncreasesFromStart(t *testing.T) {
	g := NewIDGen(5)
	require.Equal(t, 5, g.Next())
	require.Equal(t, 6, g.Next())
	require.Equal(t, 7, g.Next())
}
