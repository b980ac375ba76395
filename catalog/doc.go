// Package catalog persists a worker's local catalog as one sharded,
// column-oriented artifact file per worker.
//
// Output layout is outputDir/<base>/<base>.<rank>.json where <base> is
// derived from the source collection's name with any trailing extension
// stripped. Each shard carries its own element count and a type tag
// identifying it as a derived object catalog, so downstream readers can
// treat the shards as an unordered union.
package catalog
