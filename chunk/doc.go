// Package chunk defines the chunked object source contract the pipeline
// engine consumes, plus an in-memory implementation.
//
// A Source delivers a finite, restartable sequence of chunks. Each chunk
// knows how many objects it contains, can materialize a set of named raw
// fields into column data, and serves indexed access to materialized
// values. On multi-worker runs only rank 0 materializes; the resulting
// FieldData is broadcast and injected into the other workers' view of the
// chunk, so the physical read happens once.
package chunk
