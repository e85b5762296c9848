package saturate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTrackerNoLimitsNeverTrips(t *testing.T) {
	tr := NewTracker(Limits{})
	require.Equal(t, ReasonNone, tr.Check(0, 0))
}

func TestTrackerGeneratedCountTrips(t *testing.T) {
	tr := NewTracker(Limits{MaxGenerated: 2})
	tr.RecordGenerated(1)
	require.Equal(t, ReasonNone, tr.Check(0, 0))
	tr.RecordGenerated(1)
	require.Equal(t, ReasonMaxGiven, tr.Check(0, 0))
}

func TestTrackerRetainedCountTrips(t *testing.T) {
	tr := NewTracker(Limits{MaxRetained: 1})
	tr.RecordRetained(1)
	require.Equal(t, ReasonMaxKept, tr.Check(0, 0))
}

func TestTrackerActiveSizeTrips(t *testing.T) {
	tr := NewTracker(Limits{MaxActiveSize: 3})
	require.Equal(t, ReasonNone, tr.Check(2, 0))
	require.Equal(t, ReasonMaxKept, tr.Check(3, 0))
}

func TestTrackerProofDepthTrips(t *testing.T) {
	tr := NewTracker(Limits{MaxProofDepth: 5})
	require.Equal(t, ReasonMaxKept, tr.Check(0, 5))
}

func TestTrackerWallTimeTrips(t *testing.T) {
	tr := NewTracker(Limits{WallTime: time.Millisecond})
	time.Sleep(2 * time.Millisecond)
	require.Equal(t, ReasonMaxSeconds, tr.Check(0, 0))
}

func TestTrackerSnapshotReflectsCounters(t *testing.T) {
	tr := NewTracker(Limits{})
	tr.RecordGenerated(3)
	tr.RecordRetained(2)
	snap := tr.Snapshot()
	require.Equal(t, 3, snap.Generated)
	require.Equal(t, 2, snap.Retained)
}
