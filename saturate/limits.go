package saturate

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// Limits bounds a saturation run (spec.md §4.L: "Limits tracked: wall time,
// user CPU time, memory high-water-mark, generated clause count, retained
// clause count, active set size, and proof depth"). A zero value in any
// field means "no limit" for that dimension.
type Limits struct {
	WallTime       time.Duration
	CPUTime        time.Duration
	MemoryMegabytes uint64
	MaxGenerated   int
	MaxRetained    int
	MaxActiveSize  int
	MaxProofDepth  int
}

// Reason names which limit tripped, mirroring spec.md §6's exit-code
// vocabulary for the banner a driver prints.
type Reason string

const (
	ReasonNone       Reason = ""
	ReasonProof      Reason = "PROOF"
	ReasonSOSEmpty   Reason = "SOS_EMPTY"
	ReasonMaxMegs    Reason = "MAX_MEGS"
	ReasonMaxSeconds Reason = "MAX_SECONDS"
	ReasonMaxGiven   Reason = "MAX_GIVEN"
	ReasonMaxKept    Reason = "MAX_KEPT"
)

// Tracker samples wall-clock, process CPU time, and resident memory against
// Limits, using gopsutil's process sampling the same way the retrieved
// hashicorp-nomad corpus uses gopsutil/v3/cpu for host stats, applied here
// to the prover's own process rather than the host.
type Tracker struct {
	limits    Limits
	started   time.Time
	proc      *process.Process
	generated int
	retained  int
}

// NewTracker starts a limits tracker for the current process. If gopsutil
// cannot attach to the current process (sandboxed or unsupported OS), proc
// is left nil and CPU/memory checks are skipped — wall time and the clause
// counters still apply.
func NewTracker(limits Limits) *Tracker {
	t := &Tracker{limits: limits, started: time.Now()}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		t.proc = p
	}
	return t
}

// RecordGenerated/RecordRetained bump the respective clause counters.
func (t *Tracker) RecordGenerated(n int) { t.generated += n }
func (t *Tracker) RecordRetained(n int)  { t.retained += n }

// Check reports the first limit that has been exceeded, or ReasonNone.
// proofDepth and activeSize are supplied by the caller each iteration
// since the tracker doesn't own the clause store.
func (t *Tracker) Check(activeSize, proofDepth int) Reason {
	if t.limits.WallTime > 0 && time.Since(t.started) >= t.limits.WallTime {
		return ReasonMaxSeconds
	}
	if t.limits.MaxGenerated > 0 && t.generated >= t.limits.MaxGenerated {
		return ReasonMaxGiven
	}
	if t.limits.MaxRetained > 0 && t.retained >= t.limits.MaxRetained {
		return ReasonMaxKept
	}
	if t.limits.MaxActiveSize > 0 && activeSize >= t.limits.MaxActiveSize {
		return ReasonMaxKept
	}
	if t.limits.MaxProofDepth > 0 && proofDepth >= t.limits.MaxProofDepth {
		return ReasonMaxKept
	}
	if t.proc != nil {
		if t.limits.CPUTime > 0 {
			if times, err := t.proc.Times(); err == nil {
				cpu := time.Duration((times.User + times.System) * float64(time.Second))
				if cpu >= t.limits.CPUTime {
					return ReasonMaxSeconds
				}
			}
		}
		if t.limits.MemoryMegabytes > 0 {
			if mem, err := t.proc.MemoryInfo(); err == nil {
				if mem.RSS/(1024*1024) >= t.limits.MemoryMegabytes {
					return ReasonMaxMegs
				}
			}
		}
	}
	return ReasonNone
}

// Stats is a snapshot of a tracker's counters, for the "print statistics"
// step every limit/proof/exhaustion exit performs (spec.md §4.L, §7).
type Stats struct {
	Generated int
	Retained  int
	Elapsed   time.Duration
}

// Snapshot returns t's current counters.
func (t *Tracker) Snapshot() Stats {
	return Stats{Generated: t.generated, Retained: t.retained, Elapsed: time.Since(t.started)}
}
