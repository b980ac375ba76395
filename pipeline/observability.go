package pipeline

import (
	"context"
	"time"

	"github.com/kbukum/halokit/logger"
	"github.com/kbukum/halokit/observability"
)

// MetricsObserver forwards run events to OpenTelemetry instruments.
type MetricsObserver struct {
	NopObserver
	metrics *observability.PipelineMetrics
}

// NewMetricsObserver creates an observer recording to metrics.
func NewMetricsObserver(metrics *observability.PipelineMetrics) *MetricsObserver {
	return &MetricsObserver{metrics: metrics}
}

func (o *MetricsObserver) RunStarted(ctx context.Context, runID string) {
	o.metrics.RecordRunStart(ctx)
}

func (o *MetricsObserver) ActionDone(ctx context.Context, kind, name string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.metrics.RecordAction(ctx, kind, name, status, duration)
}

func (o *MetricsObserver) ChunkDone(ctx context.Context, ordinal, processed, survived int) {
	o.metrics.RecordChunk(ctx, processed, survived)
}

func (o *MetricsObserver) RunDone(ctx context.Context, result *RunResult, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	o.metrics.RecordRunEnd(ctx, result != nil && result.CatalogPath != "", status)
}

// TracingObserver annotates the current span with run events. Run and
// chunk spans are expected to be opened by the caller; the observer only
// attaches attributes and errors to whatever span is active.
type TracingObserver struct {
	NopObserver
}

func (TracingObserver) RunStarted(ctx context.Context, runID string) {
	observability.SetSpanAttribute(ctx, observability.AttrRunID, runID)
}

func (TracingObserver) ActionDone(ctx context.Context, kind, name string, duration time.Duration, err error) {
	if err != nil {
		observability.SetSpanError(ctx, err)
	}
}

func (TracingObserver) RunDone(ctx context.Context, result *RunResult, err error) {
	if err != nil {
		observability.SetSpanError(ctx, err)
		observability.SetSpanAttribute(ctx, observability.AttrStatus, "error")
		return
	}
	observability.SetSpanAttribute(ctx, observability.AttrStatus, "ok")
	if result != nil {
		observability.SetSpanAttribute(ctx, observability.AttrDurationMs, result.Duration.Milliseconds())
	}
}

// LoggingObserver logs every action completion. Verbose; intended for
// debugging small runs.
type LoggingObserver struct {
	NopObserver
	Log *logger.Logger
}

func (o LoggingObserver) ActionDone(ctx context.Context, kind, name string, duration time.Duration, err error) {
	fields := logger.Fields(
		logger.FieldKind, kind,
		logger.FieldAction, name,
		logger.FieldDuration, duration.String(),
		logger.FieldRunID, RunIDFromContext(ctx),
	)
	if err != nil {
		o.Log.WithError(err).Debug("action failed", fields)
		return
	}
	o.Log.Debug("action complete", fields)
}
