package x11

import (
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// cpuTracker measures per-process CPU usage between successive samples.
// gopsutil's Percent(0) reports usage since the previous call on the same
// handle, so handles are cached per PID and pruned once they go stale.
type cpuTracker struct {
	procs    map[uint32]*trackedProcess
	maxIdle  time.Duration
	lastScan time.Time
}

type trackedProcess struct {
	proc     *process.Process
	lastUsed time.Time
}

func newCPUTracker() *cpuTracker {
	return &cpuTracker{
		procs:   make(map[uint32]*trackedProcess),
		maxIdle: 10 * time.Minute,
	}
}

// usage returns the CPU percentage for pid accumulated since the previous
// call for the same pid. The first call for a pid reports usage over the
// process lifetime, which is good enough for a seed value.
func (t *cpuTracker) usage(pid uint32) (float64, bool) {
	if pid == 0 {
		return 0, false
	}

	t.prune()

	entry, ok := t.procs[pid]
	if !ok {
		proc, err := process.NewProcess(int32(pid))
		if err != nil {
			return 0, false
		}
		entry = &trackedProcess{proc: proc}
		t.procs[pid] = entry
	}
	entry.lastUsed = time.Now()

	pct, err := entry.proc.Percent(0)
	if err != nil {
		delete(t.procs, pid)
		return 0, false
	}
	return pct, true
}

// prune drops handles for processes that have not held focus recently.
func (t *cpuTracker) prune() {
	now := time.Now()
	if now.Sub(t.lastScan) < t.maxIdle {
		return
	}
	t.lastScan = now

	for pid, entry := range t.procs {
		if now.Sub(entry.lastUsed) > t.maxIdle {
			delete(t.procs, pid)
		}
	}
}
