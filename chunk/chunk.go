package chunk

import (
	"context"
	"fmt"
)

// FieldRef identifies a raw field within a namespace of the input source.
type FieldRef struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Field     string `json:"field" yaml:"field"`
}

// String renders the ref as "namespace/field".
func (f FieldRef) String() string {
	return f.Namespace + "/" + f.Field
}

// FieldData holds materialized column data keyed by field ref.
// One column entry per ref, one value per object position.
type FieldData map[FieldRef][]any

// Merge copies columns from other into d, replacing existing entries.
func (d FieldData) Merge(other FieldData) {
	for ref, col := range other {
		d[ref] = col
	}
}

// Chunk is one batch of objects delivered by a Source.
type Chunk interface {
	// Len returns the number of objects in the chunk.
	Len() int
	// Materialize loads the named fields into memory and returns the
	// column data. Only one worker per run calls Materialize; the others
	// receive the same data via Inject.
	Materialize(refs []FieldRef) (FieldData, error)
	// Inject merges already-materialized column data into the chunk.
	Inject(data FieldData)
	// Value returns the materialized value of ref at object position i.
	// Reading a field that was never materialized is an error.
	Value(ref FieldRef, i int) (any, error)
}

// Iterator provides pull-based sequential access to a source's chunks.
type Iterator interface {
	// Next returns the next chunk. Returns (nil, false, nil) when exhausted.
	Next(ctx context.Context) (Chunk, bool, error)
	// Close releases any resources held by the iterator.
	Close() error
}

// Source produces a lazy, finite, restartable-per-run sequence of chunks.
type Source interface {
	// Name identifies the originating object collection. The catalog
	// writer derives output file names from it.
	Name() string
	// Chunks returns a fresh iterator over the source's chunks.
	Chunks(ctx context.Context) Iterator
}

// ErrFieldNotMaterialized is returned by Value for fields that were never
// requested through Materialize or Inject.
func ErrFieldNotMaterialized(ref FieldRef) error {
	return fmt.Errorf("chunk: field %s not materialized", ref)
}
