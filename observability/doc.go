// Package observability provides OpenTelemetry tracing and metrics
// integration for analysis runs.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("halokit"))
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanRun)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("halokit"))
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewPipelineMetrics(observability.Meter("halokit"))
//	metrics.RecordChunk(ctx, processed, survived)
//
// Health Checks:
//
//	health := observability.NewServiceHealth("halokit", "1.0.0")
//	health.AddComponent(checker.CheckHealth(ctx))
package observability
