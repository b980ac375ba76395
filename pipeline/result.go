package pipeline

import "time"

// RunResult summarizes one worker's pass over a source.
type RunResult struct {
	// RunID is shared across all workers of a run.
	RunID string `json:"run_id"`
	// WorkerRank identifies the worker that produced this result.
	WorkerRank int `json:"worker_rank"`
	// Processed counts objects this worker drove through the action list.
	Processed int `json:"processed"`
	// Survived counts objects that passed every filter.
	Survived int `json:"survived"`
	// Filtered counts objects rejected by a filter.
	Filtered int `json:"filtered"`
	// Duration is the wall time of this worker's pass.
	Duration time.Duration `json:"duration"`
	// CatalogPath is the shard file this worker wrote, or "" when
	// catalog writing was disabled.
	CatalogPath string `json:"catalog_path,omitempty"`

	// Catalog holds the surviving objects' quantity records in
	// processed order.
	Catalog []map[string]any `json:"-"`
	// Targets holds the surviving targets when retention was requested.
	Targets []*Target `json:"-"`
}
