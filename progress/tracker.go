package progress

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/kbukum/halokit/observability"
	"github.com/kbukum/halokit/pipeline"
)

// Run states.
const (
	StateRunning = "running"
	StateDone    = "done"
	StateFailed  = "failed"
)

// RunProgress is a snapshot of one run's state. Counters aggregate over
// all workers reporting under the same run ID.
type RunProgress struct {
	RunID     string    `json:"run_id"`
	State     string    `json:"state"`
	Workers   int       `json:"workers"`
	Processed int       `json:"processed"`
	Survived  int       `json:"survived"`
	Filtered  int       `json:"filtered"`
	Chunks    int       `json:"chunks"`
	StartedAt time.Time `json:"started_at"`
	Duration  string    `json:"duration,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Tracker observes pipeline runs and keeps a per-run progress snapshot.
// Safe for concurrent use by multiple workers and HTTP readers.
type Tracker struct {
	pipeline.NopObserver

	mu   sync.RWMutex
	runs map[string]*runState
}

type runState struct {
	progress RunProgress
	// active counts workers that started but have not finished.
	active int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{runs: make(map[string]*runState)}
}

// RunStarted registers a worker joining a run.
func (t *Tracker) RunStarted(ctx context.Context, runID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.runs[runID]
	if !ok {
		st = &runState{progress: RunProgress{
			RunID:     runID,
			State:     StateRunning,
			StartedAt: time.Now(),
		}}
		t.runs[runID] = st
	}
	st.active++
	st.progress.Workers++
}

// ChunkDone accumulates one worker's share of a chunk.
func (t *Tracker) ChunkDone(ctx context.Context, ordinal, processed, survived int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.runs[pipeline.RunIDFromContext(ctx)]
	if !ok {
		return
	}
	st.progress.Processed += processed
	st.progress.Survived += survived
	st.progress.Filtered += processed - survived
	st.progress.Chunks++
}

// RunDone marks a worker as finished. The run reaches a terminal state
// once every worker has reported; any worker error marks it failed.
func (t *Tracker) RunDone(ctx context.Context, result *pipeline.RunResult, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.runs[pipeline.RunIDFromContext(ctx)]
	if !ok {
		return
	}
	st.active--
	if err != nil {
		st.progress.State = StateFailed
		st.progress.Error = err.Error()
	}
	if st.active <= 0 && st.progress.State == StateRunning {
		st.progress.State = StateDone
	}
	if st.active <= 0 {
		st.progress.Duration = time.Since(st.progress.StartedAt).String()
	}
}

// CheckHealth reports the tracker as a health component, counting the
// runs it has seen and how many are still running.
func (t *Tracker) CheckHealth(ctx context.Context) observability.Health {
	t.mu.RLock()
	defer t.mu.RUnlock()

	running := 0
	for _, st := range t.runs {
		if st.progress.State == StateRunning {
			running++
		}
	}
	return observability.Health{
		Name:   "tracker",
		Status: observability.HealthStatusUp,
		Details: map[string]string{
			"runs":    strconv.Itoa(len(t.runs)),
			"running": strconv.Itoa(running),
		},
	}
}

// Run returns the progress snapshot for a run ID.
func (t *Tracker) Run(runID string) (RunProgress, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	st, ok := t.runs[runID]
	if !ok {
		return RunProgress{}, false
	}
	return st.progress, true
}

// Runs returns snapshots of all tracked runs, most recent first.
func (t *Tracker) Runs() []RunProgress {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]RunProgress, 0, len(t.runs))
	for _, st := range t.runs {
		out = append(out, st.progress)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].StartedAt.After(out[j].StartedAt)
	})
	return out
}
