// Package pipeline provides a configurable per-object analysis pipeline:
// an ordered list of registered actions (callbacks, filters, quantities)
// applied to each member of a chunked object collection, with the
// surviving objects' quantities accumulated into a per-worker catalog.
//
// Actions are resolved by name from registries at configuration time, so
// a misspelled name fails at the Add* call, never mid-run. Filters gate
// everything added after them: an object failing a filter is dropped
// immediately and no later action sees it.
//
//	p := pipeline.New()
//	p.AddFilter("quantity_value", "particle_mass", ">", 1e13, "Msun")
//	p.AddQuantityField("virial_radius", "halos")
//	res, err := p.Run(ctx, source, partition.Solo(), pipeline.RunOptions{OutputDir: "analysis"})
//
// Multi-worker runs call Run once per worker with contexts from one
// partition.Group; each worker writes its own catalog shard.
package pipeline
