package pipeline

import "github.com/kbukum/halokit/chunk"

// Target is the mutable per-object working state threaded through one
// pass of the action list. It holds an unowned reference into its chunk;
// the object itself is never copied.
type Target struct {
	// Index is the object's position within its containing chunk.
	Index int
	// Quantities maps storage keys to computed or extracted values.
	// Keys are unique; recomputing a key overwrites the previous value.
	Quantities map[string]any

	chunk chunk.Chunk
}

func newTarget(ck chunk.Chunk, index int) *Target {
	return &Target{
		Index:      index,
		Quantities: make(map[string]any),
		chunk:      ck,
	}
}

// Field returns the materialized value of ref for this object.
func (t *Target) Field(ref chunk.FieldRef) (any, error) {
	return t.chunk.Value(ref, t.Index)
}

// Quantity returns the stored value for key.
func (t *Target) Quantity(key string) (any, bool) {
	v, ok := t.Quantities[key]
	return v, ok
}
