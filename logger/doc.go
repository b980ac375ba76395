// Package logger provides structured logging for halokit built on zerolog.
//
// A pipeline run emits one component-tagged logger per subsystem (engine,
// catalog, progress) so that long analysis runs can be followed per worker:
//
//	log := logger.NewDefault("halokit").WithComponent("engine")
//	log.Info("run started", logger.Fields("run_id", id, "worker_rank", rank))
package logger
