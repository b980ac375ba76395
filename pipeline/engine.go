package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/halokit/catalog"
	"github.com/kbukum/halokit/chunk"
	"github.com/kbukum/halokit/errors"
	"github.com/kbukum/halokit/logger"
	"github.com/kbukum/halokit/partition"
	"github.com/kbukum/halokit/units"
)

// PartitionMode selects how a chunk's object indices are split across
// workers.
type PartitionMode string

const (
	// PartitionStatic assigns each worker a contiguous index block up
	// front. Cheapest when per-object cost is uniform.
	PartitionStatic PartitionMode = "static"
	// PartitionDynamic hands out indices one at a time from a shared
	// queue. Balances skewed per-object cost at a small coordination
	// price.
	PartitionDynamic PartitionMode = "dynamic"
)

// RunOptions controls one Run call.
type RunOptions struct {
	// Partition selects the index-splitting strategy. Defaults to
	// PartitionStatic.
	Partition PartitionMode
	// SaveCatalog writes this worker's shard after the pass. Defaults
	// to true; set DisableCatalog to skip.
	DisableCatalog bool
	// OutputDir is the catalog root directory. Defaults to "analysis".
	OutputDir string
	// Writer overrides the catalog writer entirely; OutputDir is then
	// ignored.
	Writer *catalog.Writer
	// SaveTargets retains surviving targets on the result, for callers
	// that post-process objects beyond their quantity records.
	SaveTargets bool
	// RunID overrides the run identifier. When empty, the workers of a
	// group share one generated ID; a solo run generates its own.
	RunID string
}

// Run drives every object of src through the action list, collects the
// quantity records of objects passing all filters, and writes this
// worker's catalog shard. worker identifies this worker within its run
// group; pass partition.Solo() (or nil) for a single-worker run.
//
// The pipeline's configuration is frozen for the duration of the call.
// Multiple workers of a group call Run concurrently on the same Pipeline
// with the same source and options.
func (p *Pipeline) Run(ctx context.Context, src chunk.Source, worker *partition.Context, opts RunOptions) (*RunResult, error) {
	if worker == nil {
		worker = partition.Solo()
	}
	if opts.Partition == "" {
		opts.Partition = PartitionStatic
	}
	if opts.RunID == "" {
		opts.RunID = worker.RunID(uuid.NewString)
	}

	actions, keys, fields := p.freeze()
	defer p.unfreeze()

	ctx = WithRunID(ctx, opts.RunID)
	start := time.Now()
	res := &RunResult{RunID: opts.RunID, WorkerRank: worker.Rank()}

	log := p.log.WithFields(logger.Fields(
		logger.FieldRunID, opts.RunID,
		logger.FieldWorkerRank, worker.Rank(),
		logger.FieldWorkerSize, worker.Size(),
	))
	log.Info("starting analysis run", logger.Fields("source", src.Name(), "actions", len(actions)))
	for _, obs := range p.observers {
		obs.RunStarted(ctx, opts.RunID)
	}

	err := p.runChunks(ctx, src, worker, opts, actions, fields, res, log)
	if err != nil {
		// Peers may be blocked in a broadcast barrier this worker will
		// never reach; wake them with the error.
		worker.Abort(err)
	}

	res.Duration = time.Since(start)
	if err == nil && !opts.DisableCatalog {
		w := opts.Writer
		if w == nil {
			dir := opts.OutputDir
			if dir == "" {
				dir = catalog.DefaultBaseName
			}
			w = catalog.NewWriter(dir, catalog.WithLogger(p.log))
		}
		var path string
		path, err = w.Write(src.Name(), worker.Rank(), keys, res.Catalog, catalog.WriteOptions{RunID: opts.RunID})
		res.CatalogPath = path
	}

	for _, obs := range p.observers {
		obs.RunDone(ctx, res, err)
	}
	if err != nil {
		log.Error("analysis run failed", logger.ErrorFields("run", err))
		return res, err
	}
	log.Info("analysis run complete", logger.Fields(
		"processed", res.Processed,
		"survived", res.Survived,
		"filtered", res.Filtered,
		logger.FieldDuration, res.Duration.String(),
	))
	return res, nil
}

func (p *Pipeline) runChunks(ctx context.Context, src chunk.Source, worker *partition.Context, opts RunOptions, actions []Action, fields []chunk.FieldRef, res *RunResult, log *logger.Logger) error {
	it := src.Chunks(ctx)
	defer it.Close()

	for ordinal := 0; ; ordinal++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		ck, ok, err := it.Next(ctx)
		if err != nil {
			return errors.SourceError("next chunk", err)
		}
		if !ok {
			return nil
		}

		if err := p.prepareChunk(ck, worker, fields); err != nil {
			return err
		}

		processed, survived := 0, 0
		process := func(i int) error {
			tgt, keep, err := p.processTarget(ctx, ck, i, actions)
			if err != nil {
				return err
			}
			processed++
			if !keep {
				return nil
			}
			survived++
			res.Catalog = append(res.Catalog, tgt.Quantities)
			if opts.SaveTargets {
				res.Targets = append(res.Targets, tgt)
			}
			return nil
		}

		switch opts.Partition {
		case PartitionDynamic:
			q := worker.Queue(ordinal, ck.Len())
			for {
				i, ok := q.Next()
				if !ok {
					break
				}
				if err := process(i); err != nil {
					return err
				}
			}
		default:
			for _, i := range partition.Static(ck.Len(), worker.Size(), worker.Rank()) {
				if err := process(i); err != nil {
					return err
				}
			}
		}

		res.Processed += processed
		res.Survived += survived
		res.Filtered += processed - survived
		log.Debug("chunk complete", logger.Fields(
			logger.FieldChunk, ordinal,
			"processed", processed,
			"survived", survived,
		))
		for _, obs := range p.observers {
			obs.ChunkDone(ctx, ordinal, processed, survived)
		}
	}
}

// prepareChunk makes the requested raw fields available on every worker.
// Rank 0 performs the single physical read; the other workers block on
// the broadcast and inject the shared columns into their chunk view.
func (p *Pipeline) prepareChunk(ck chunk.Chunk, worker *partition.Context, fields []chunk.FieldRef) error {
	if len(fields) == 0 {
		return nil
	}

	var data chunk.FieldData
	if worker.Rank() == 0 {
		var err error
		data, err = ck.Materialize(fields)
		if err != nil {
			return errors.SourceError("materialize fields", err)
		}
	}
	if worker.Size() > 1 {
		shared, err := worker.Broadcast(data)
		if err != nil {
			return err
		}
		if worker.Rank() != 0 {
			ck.Inject(shared)
		}
	}
	return nil
}

// processTarget runs one object through the action list. keep is false
// when a filter rejected the object; later actions then never run.
func (p *Pipeline) processTarget(ctx context.Context, ck chunk.Chunk, index int, actions []Action) (*Target, bool, error) {
	tgt := newTarget(ck, index)

	for _, a := range actions {
		began := time.Now()
		var err error
		keep := true

		switch a := a.(type) {
		case *callbackAction:
			err = a.fn(tgt)
		case *filterAction:
			keep, err = a.fn(tgt)
		case *quantityAction:
			var v any
			if a.ref != nil {
				v, err = ck.Value(*a.ref, index)
			} else {
				v, err = a.fn(tgt)
			}
			if err == nil {
				tgt.Quantities[a.key] = v
			}
		default:
			err = errors.InvalidActionKind(a.Kind())
		}

		for _, obs := range p.observers {
			obs.ActionDone(ctx, a.Kind(), a.Name(), time.Since(began), err)
		}
		if err != nil {
			return nil, false, errors.ActionFailed(a.Kind(), a.Name(), index, err)
		}
		if !keep {
			return nil, false, nil
		}
	}

	for key, v := range tgt.Quantities {
		tgt.Quantities[key] = units.Normalize(v)
	}
	return tgt, true, nil
}
