package pipeline

import (
	"context"
	"time"
)

// Observer receives execution events from a run. Implementations must be
// safe for concurrent use: on multi-worker runs every worker reports to
// the same observer instances.
type Observer interface {
	// RunStarted fires once per Run call, before the first chunk.
	RunStarted(ctx context.Context, runID string)
	// ActionDone fires after every action invocation, failed or not.
	ActionDone(ctx context.Context, kind, name string, duration time.Duration, err error)
	// ChunkDone fires after a worker finished its share of a chunk.
	ChunkDone(ctx context.Context, ordinal, processed, survived int)
	// RunDone fires once per Run call. err is nil on success.
	RunDone(ctx context.Context, result *RunResult, err error)
}

// NopObserver implements Observer with no-ops. Embed it to implement only
// the events of interest.
type NopObserver struct{}

func (NopObserver) RunStarted(context.Context, string)                              {}
func (NopObserver) ActionDone(context.Context, string, string, time.Duration, error) {}
func (NopObserver) ChunkDone(context.Context, int, int, int)                        {}
func (NopObserver) RunDone(context.Context, *RunResult, error)                      {}

type runIDKey struct{}

// WithRunID stores a run identifier in the context. The engine does this
// before emitting any observer event.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, runIDKey{}, runID)
}

// RunIDFromContext retrieves the run identifier, or "" if absent.
func RunIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(runIDKey{}).(string); ok {
		return v
	}
	return ""
}
