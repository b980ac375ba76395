package partition

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/kbukum/halokit/chunk"
)

// GroupSize resolves a configured worker count into a group size.
// A negative count means maximal parallelism: one worker per available
// CPU. Zero resolves to a single worker.
func GroupSize(workers int) int {
	if workers < 0 {
		return runtime.NumCPU()
	}
	if workers == 0 {
		return 1
	}
	return workers
}

// Context carries the identity of one worker within a run: its rank, the
// group size, and the handles used to coordinate with the other workers.
type Context struct {
	rank  int
	size  int
	group *Group
}

// Solo returns the context of a single-worker run. Broadcast is a no-op
// and dynamic queues are private.
func Solo() *Context {
	return &Context{rank: 0, size: 1}
}

// Rank returns this worker's rank in 0..Size()-1.
func (c *Context) Rank() int { return c.rank }

// Size returns the number of workers in the group.
func (c *Context) Size() int { return c.size }

// Broadcast distributes rank 0's field data to every worker in the group
// and returns it on all ranks. It blocks until all workers have arrived,
// so no worker starts per-object processing for a chunk before the
// materialized data is available everywhere. On a solo context it returns
// data unchanged.
//
// Once any worker calls Abort the barrier is poisoned: every worker
// blocked here wakes with the aborting worker's error, and later calls
// fail immediately.
func (c *Context) Broadcast(data chunk.FieldData) (chunk.FieldData, error) {
	if c.group == nil {
		return data, nil
	}
	return c.group.bcast.exchange(c.rank, data)
}

// Abort marks the group's run as failed. A worker returning early with an
// error must call Abort so that peers blocked in Broadcast wake with the
// error instead of waiting for a barrier arrival that will never come.
// The first abort wins; later calls and solo contexts are no-ops.
func (c *Context) Abort(err error) {
	if c.group == nil || err == nil {
		return
	}
	c.group.bcast.fail(c.rank, err)
}

// RunID returns the run identifier shared by the whole group, calling
// generate on the first request. On a solo context it simply generates.
func (c *Context) RunID(generate func() string) string {
	if c.group == nil {
		return generate()
	}
	return c.group.runID(generate)
}

// Queue returns the shared dynamic queue for the chunk with the given
// ordinal, holding n indices. All workers in the group receive the same
// queue for the same ordinal. On a solo context the queue is private.
func (c *Context) Queue(ordinal, n int) *Queue {
	if c.group == nil {
		return NewQueue(n)
	}
	return c.group.queueFor(ordinal, n)
}

// Group coordinates a fixed set of in-process workers.
type Group struct {
	size  int
	bcast *broadcaster

	mu     sync.Mutex
	queues map[int]*queueEntry
	run    string
}

type queueEntry struct {
	q      *Queue
	handed int
}

// NewGroup creates a worker group of the given size.
func NewGroup(size int) *Group {
	if size < 1 {
		panic(fmt.Sprintf("partition: group size must be >= 1, got %d", size))
	}
	return &Group{
		size:   size,
		bcast:  newBroadcaster(size),
		queues: make(map[int]*queueEntry),
	}
}

// Size returns the number of workers in the group.
func (g *Group) Size() int { return g.size }

// Context returns the context for the worker with the given rank.
func (g *Group) Context(rank int) *Context {
	if rank < 0 || rank >= g.size {
		panic(fmt.Sprintf("partition: rank %d out of range for group of %d", rank, g.size))
	}
	if g.size == 1 {
		return Solo()
	}
	return &Context{rank: rank, size: g.size, group: g}
}

// queueFor returns the shared queue for a chunk ordinal, creating it on
// first request. The entry is dropped once every worker has fetched it.
func (g *Group) queueFor(ordinal, n int) *Queue {
	g.mu.Lock()
	defer g.mu.Unlock()

	e, ok := g.queues[ordinal]
	if !ok {
		e = &queueEntry{q: NewQueue(n)}
		g.queues[ordinal] = e
	}
	e.handed++
	if e.handed == g.size {
		delete(g.queues, ordinal)
	}
	return e.q
}

// runID returns the group's run identifier, generating it on first call
// so every rank observes the same value.
func (g *Group) runID(generate func() string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.run == "" {
		g.run = generate()
	}
	return g.run
}

// broadcaster is a cyclic barrier carrying the root's payload. Payloads
// are kept per generation so a fast worker entering the next broadcast
// cannot clobber data a slow worker has not read yet.
type broadcaster struct {
	mu      sync.Mutex
	cond    *sync.Cond
	size    int
	gen     int
	arrived int
	data    map[int]chunk.FieldData
	read    map[int]int

	failRank int
	failErr  error
}

func newBroadcaster(size int) *broadcaster {
	b := &broadcaster{
		size: size,
		data: make(map[int]chunk.FieldData),
		read: make(map[int]int),
	}
	b.cond = sync.NewCond(&b.mu)
	return b
}

func (b *broadcaster) exchange(rank int, data chunk.FieldData) (chunk.FieldData, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failErr != nil {
		return nil, b.abortError()
	}

	gen := b.gen
	if rank == 0 {
		b.data[gen] = data
	}

	b.arrived++
	if b.arrived == b.size {
		b.arrived = 0
		b.gen++
		b.cond.Broadcast()
	} else {
		for b.gen == gen && b.failErr == nil {
			b.cond.Wait()
		}
		if b.failErr != nil {
			return nil, b.abortError()
		}
	}

	out := b.data[gen]
	b.read[gen]++
	if b.read[gen] == b.size {
		delete(b.data, gen)
		delete(b.read, gen)
	}
	return out, nil
}

// fail poisons the barrier with the first reported worker error and wakes
// every waiter.
func (b *broadcaster) fail(rank int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.failErr != nil {
		return
	}
	b.failRank = rank
	b.failErr = err
	b.cond.Broadcast()
}

func (b *broadcaster) abortError() error {
	return fmt.Errorf("partition: worker %d aborted the run: %w", b.failRank, b.failErr)
}
