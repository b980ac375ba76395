package chunk

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource is an in-memory Source backed by pre-built chunks.
// Chunks() can be called once per run; each call yields the same chunks.
type MemorySource struct {
	name   string
	chunks []*MemoryChunk
}

// NewMemorySource creates a source named name over the given chunks.
func NewMemorySource(name string, chunks ...*MemoryChunk) *MemorySource {
	return &MemorySource{name: name, chunks: chunks}
}

// Name returns the source's collection name.
func (s *MemorySource) Name() string { return s.name }

// Chunks returns a fresh iterator over the source's chunks.
func (s *MemorySource) Chunks(_ context.Context) Iterator {
	return &memoryIterator{chunks: s.chunks}
}

type memoryIterator struct {
	chunks []*MemoryChunk
	pos    int
}

func (it *memoryIterator) Next(ctx context.Context) (Chunk, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	if it.pos >= len(it.chunks) {
		return nil, false, nil
	}
	c := it.chunks[it.pos]
	it.pos++
	return c, true, nil
}

func (it *memoryIterator) Close() error { return nil }

// MemoryChunk is an in-memory Chunk with backing columns that become
// readable only after Materialize or Inject, mirroring the lazy-load
// contract of a real on-disk source.
type MemoryChunk struct {
	size    int
	backing map[FieldRef][]any

	mu     sync.RWMutex
	loaded FieldData
	// reads counts Materialize calls; tests use it to assert that only
	// one worker performs the physical read.
	reads int
}

// NewMemoryChunk creates a chunk holding n objects and no fields.
func NewMemoryChunk(n int) *MemoryChunk {
	return &MemoryChunk{
		size:    n,
		backing: make(map[FieldRef][]any),
		loaded:  make(FieldData),
	}
}

// SetColumn attaches backing column data for ref. The column length must
// equal the chunk's object count.
func (c *MemoryChunk) SetColumn(ref FieldRef, values []any) *MemoryChunk {
	if len(values) != c.size {
		panic(fmt.Sprintf("chunk: column %s has %d values, chunk holds %d objects", ref, len(values), c.size))
	}
	c.backing[ref] = values
	return c
}

// Len returns the number of objects in the chunk.
func (c *MemoryChunk) Len() int { return c.size }

// Materialize loads the requested backing columns and returns them.
func (c *MemoryChunk) Materialize(refs []FieldRef) (FieldData, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.reads++
	data := make(FieldData, len(refs))
	for _, ref := range refs {
		col, ok := c.backing[ref]
		if !ok {
			return nil, fmt.Errorf("chunk: unknown field %s", ref)
		}
		data[ref] = col
	}
	c.loaded.Merge(data)
	return data, nil
}

// Inject merges broadcast column data into the chunk's readable view.
func (c *MemoryChunk) Inject(data FieldData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded.Merge(data)
}

// Value returns the materialized value of ref at position i.
func (c *MemoryChunk) Value(ref FieldRef, i int) (any, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	col, ok := c.loaded[ref]
	if !ok {
		return nil, ErrFieldNotMaterialized(ref)
	}
	if i < 0 || i >= len(col) {
		return nil, fmt.Errorf("chunk: index %d out of range for field %s (len %d)", i, ref, len(col))
	}
	return col[i], nil
}

// Reads returns how many times Materialize was called.
func (c *MemoryChunk) Reads() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.reads
}
