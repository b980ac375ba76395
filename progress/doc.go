// Package progress tracks the live state of analysis runs and optionally
// serves it over HTTP.
//
// The Tracker is an engine observer: attach it to a pipeline and every
// run reports its counters as chunks complete. The Server exposes the
// tracked state as a small read-only JSON API for long batch jobs.
//
//	tracker := progress.NewTracker()
//	p := pipeline.New(pipeline.WithObserver(tracker))
//
//	srv := progress.NewServer("localhost:8080", tracker, log)
//	srv.Start(ctx)
//	defer srv.Stop(ctx)
package progress
