package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/halokit/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string
	// ServiceVersion is the version of the service.
	ServiceVersion string
	// Environment is the deployment environment (dev, staging, prod).
	Environment string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	// Insecure allows insecure connections (for development).
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "1.0.0",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// PipelineMetrics holds OpenTelemetry metric instruments for analysis runs.
type PipelineMetrics struct {
	objectsProcessed metric.Int64Counter
	objectsFiltered  metric.Int64Counter
	actionTotal      metric.Int64Counter
	actionDuration   metric.Float64Histogram
	catalogWrites    metric.Int64Counter
	runsActive       metric.Int64UpDownCounter
}

// NewPipelineMetrics creates metric instruments on the given meter.
func NewPipelineMetrics(meter metric.Meter) (*PipelineMetrics, error) {
	objectsProcessed, err := meter.Int64Counter("pipeline.objects.processed",
		metric.WithDescription("Objects driven through the action list"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.objects.processed counter: %w", err)
	}

	objectsFiltered, err := meter.Int64Counter("pipeline.objects.filtered",
		metric.WithDescription("Objects rejected by a filter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.objects.filtered counter: %w", err)
	}

	actionTotal, err := meter.Int64Counter("pipeline.action.total",
		metric.WithDescription("Action invocations by kind, name, and status"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.action.total counter: %w", err)
	}

	actionDuration, err := meter.Float64Histogram("pipeline.action.duration",
		metric.WithDescription("Duration of action invocations in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.action.duration histogram: %w", err)
	}

	catalogWrites, err := meter.Int64Counter("pipeline.catalog.writes",
		metric.WithDescription("Catalog shards written"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.catalog.writes counter: %w", err)
	}

	runsActive, err := meter.Int64UpDownCounter("pipeline.runs.active",
		metric.WithDescription("Runs currently in flight"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating pipeline.runs.active gauge: %w", err)
	}

	return &PipelineMetrics{
		objectsProcessed: objectsProcessed,
		objectsFiltered:  objectsFiltered,
		actionTotal:      actionTotal,
		actionDuration:   actionDuration,
		catalogWrites:    catalogWrites,
		runsActive:       runsActive,
	}, nil
}

// RecordRunStart increments the active run count.
func (m *PipelineMetrics) RecordRunStart(ctx context.Context) {
	m.runsActive.Add(ctx, 1)
}

// RecordRunEnd decrements active runs and records a catalog write if one
// happened.
func (m *PipelineMetrics) RecordRunEnd(ctx context.Context, wroteCatalog bool, status string) {
	m.runsActive.Add(ctx, -1)
	if wroteCatalog {
		m.catalogWrites.Add(ctx, 1, metric.WithAttributes(
			attribute.String("status", status),
		))
	}
}

// RecordAction records one action invocation.
func (m *PipelineMetrics) RecordAction(ctx context.Context, kind, name, status string, duration time.Duration) {
	m.actionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("name", name),
		attribute.String("status", status),
	))
	m.actionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("kind", kind),
		attribute.String("name", name),
	))
}

// RecordChunk records one worker's share of a chunk.
func (m *PipelineMetrics) RecordChunk(ctx context.Context, processed, survived int) {
	m.objectsProcessed.Add(ctx, int64(processed))
	m.objectsFiltered.Add(ctx, int64(processed-survived))
}
