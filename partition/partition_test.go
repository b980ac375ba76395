package partition

import (
	"errors"
	"sync"
	"testing"

	"github.com/kbukum/halokit/chunk"
)

func TestStatic_ExactCoverage(t *testing.T) {
	const n, size = 17, 4

	seen := make(map[int]int)
	for rank := 0; rank < size; rank++ {
		for _, idx := range Static(n, size, rank) {
			seen[idx]++
		}
	}

	if len(seen) != n {
		t.Fatalf("expected %d distinct indices, got %d", n, len(seen))
	}
	for idx := 0; idx < n; idx++ {
		if seen[idx] != 1 {
			t.Errorf("index %d assigned %d times", idx, seen[idx])
		}
	}
}

func TestStatic_Ascending(t *testing.T) {
	indices := Static(10, 3, 1)
	for i := 1; i < len(indices); i++ {
		if indices[i] <= indices[i-1] {
			t.Fatalf("expected ascending indices, got %v", indices)
		}
	}
}

func TestStatic_SingleWorker(t *testing.T) {
	indices := Static(5, 1, 0)
	if len(indices) != 5 {
		t.Fatalf("expected all 5 indices, got %v", indices)
	}
	for i, idx := range indices {
		if idx != i {
			t.Errorf("expected identity assignment, got %v", indices)
			break
		}
	}
}

func TestStatic_BalancedWithinOne(t *testing.T) {
	const n, size = 17, 4
	var minLen, maxLen = n, 0
	for rank := 0; rank < size; rank++ {
		l := len(Static(n, size, rank))
		if l < minLen {
			minLen = l
		}
		if l > maxLen {
			maxLen = l
		}
	}
	if maxLen-minLen > 1 {
		t.Errorf("block lengths differ by more than one: min=%d max=%d", minLen, maxLen)
	}
}

func TestStatic_DegenerateInputs(t *testing.T) {
	if got := Static(0, 4, 0); got != nil {
		t.Errorf("expected nil for empty range, got %v", got)
	}
	if got := Static(5, 4, 7); got != nil {
		t.Errorf("expected nil for out-of-range rank, got %v", got)
	}
}

func TestQueue_ExactlyOnce(t *testing.T) {
	const n, workers = 100, 4
	q := NewQueue(n)

	var mu sync.Mutex
	seen := make(map[int]int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				idx, ok := q.Next()
				if !ok {
					return
				}
				mu.Lock()
				seen[idx]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("expected %d indices drawn, got %d", n, len(seen))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d drawn %d times", idx, count)
		}
	}
	if q.Remaining() != 0 {
		t.Errorf("expected exhausted queue, remaining=%d", q.Remaining())
	}
}

func TestQueue_AscendingPerDraw(t *testing.T) {
	q := NewQueue(5)
	prev := -1
	for {
		idx, ok := q.Next()
		if !ok {
			break
		}
		if idx <= prev {
			t.Fatalf("expected ascending draws, got %d after %d", idx, prev)
		}
		prev = idx
	}
}

func TestSolo_BroadcastNoop(t *testing.T) {
	c := Solo()
	ref := chunk.FieldRef{Namespace: "halos", Field: "m"}
	data := chunk.FieldData{ref: {1.0}}

	got, err := c.Broadcast(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got[ref]) != 1 {
		t.Error("expected data back unchanged")
	}
}

func TestGroup_BroadcastFromRoot(t *testing.T) {
	const size = 4
	g := NewGroup(size)
	ref := chunk.FieldRef{Namespace: "halos", Field: "m"}
	rootData := chunk.FieldData{ref: {1.0, 2.0}}

	results := make([]chunk.FieldData, size)
	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			var in chunk.FieldData
			if rank == 0 {
				in = rootData
			}
			out, err := g.Context(rank).Broadcast(in)
			if err != nil {
				t.Errorf("rank %d: %v", rank, err)
				return
			}
			results[rank] = out
		}(rank)
	}
	wg.Wait()

	for rank, got := range results {
		if len(got[ref]) != 2 {
			t.Errorf("rank %d: expected root data, got %v", rank, got)
		}
	}
}

func TestGroup_BroadcastGenerations(t *testing.T) {
	// two successive broadcasts must not leak data across generations
	const size = 2
	g := NewGroup(size)
	ref := chunk.FieldRef{Namespace: "halos", Field: "m"}

	for round := 0; round < 3; round++ {
		want := float64(round)
		var wg sync.WaitGroup
		outs := make([]chunk.FieldData, size)
		for rank := 0; rank < size; rank++ {
			wg.Add(1)
			go func(rank int) {
				defer wg.Done()
				var in chunk.FieldData
				if rank == 0 {
					in = chunk.FieldData{ref: {want}}
				}
				out, _ := g.Context(rank).Broadcast(in)
				outs[rank] = out
			}(rank)
		}
		wg.Wait()
		for rank, out := range outs {
			if out[ref][0] != want {
				t.Fatalf("round %d rank %d: got %v, want %v", round, rank, out[ref][0], want)
			}
		}
	}
}

func TestGroup_AbortWakesBlockedWorker(t *testing.T) {
	g := NewGroup(2)
	cause := errors.New("materialize failed")

	released := make(chan error, 1)
	go func() {
		_, err := g.Context(1).Broadcast(nil)
		released <- err
	}()

	// Rank 0 never enters the barrier; without the abort rank 1 would
	// wait forever.
	g.Context(0).Abort(cause)

	err := <-released
	if err == nil {
		t.Fatal("expected blocked worker to wake with an error")
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected abort cause in error chain, got %v", err)
	}
}

func TestGroup_AbortFailsLaterBroadcasts(t *testing.T) {
	g := NewGroup(2)
	cause := errors.New("worker gave up")
	g.Context(1).Abort(cause)

	if _, err := g.Context(0).Broadcast(nil); !errors.Is(err, cause) {
		t.Errorf("expected poisoned barrier to fail immediately, got %v", err)
	}

	// first abort wins
	g.Context(0).Abort(errors.New("second failure"))
	if _, err := g.Context(0).Broadcast(nil); !errors.Is(err, cause) {
		t.Errorf("expected original cause to stick, got %v", err)
	}
}

func TestGroup_SharedRunID(t *testing.T) {
	g := NewGroup(2)

	first := g.Context(0).RunID(func() string { return "run-a" })
	second := g.Context(1).RunID(func() string { return "run-b" })
	if first != "run-a" {
		t.Errorf("expected first generator to win, got %q", first)
	}
	if second != first {
		t.Errorf("expected ranks to share one run ID, got %q and %q", first, second)
	}
}

func TestSolo_RunIDGenerates(t *testing.T) {
	c := Solo()
	if got := c.RunID(func() string { return "solo-run" }); got != "solo-run" {
		t.Errorf("expected generated ID, got %q", got)
	}
}

func TestGroup_SharedQueue(t *testing.T) {
	const size, n = 3, 20
	g := NewGroup(size)

	var mu sync.Mutex
	seen := make(map[int]int)

	var wg sync.WaitGroup
	for rank := 0; rank < size; rank++ {
		wg.Add(1)
		go func(rank int) {
			defer wg.Done()
			q := g.Context(rank).Queue(0, n)
			for {
				idx, ok := q.Next()
				if !ok {
					return
				}
				mu.Lock()
				seen[idx]++
				mu.Unlock()
			}
		}(rank)
	}
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("expected %d indices, got %d", n, len(seen))
	}
	for idx, count := range seen {
		if count != 1 {
			t.Errorf("index %d processed %d times", idx, count)
		}
	}
}

func TestSolo_QueuePrivate(t *testing.T) {
	c := Solo()
	q1 := c.Queue(0, 2)
	q2 := c.Queue(0, 2)
	if q1 == q2 {
		t.Error("expected private queues on solo context")
	}
}

func TestGroupSize(t *testing.T) {
	if got := GroupSize(4); got != 4 {
		t.Errorf("expected explicit count back, got %d", got)
	}
	if got := GroupSize(0); got != 1 {
		t.Errorf("expected 1 for zero, got %d", got)
	}
	if got := GroupSize(-1); got < 1 {
		t.Errorf("expected at least one worker for maximal parallelism, got %d", got)
	}
}

func TestGroup_ContextValidation(t *testing.T) {
	g := NewGroup(2)
	defer func() {
		if recover() == nil {
			t.Error("expected panic for out-of-range rank")
		}
	}()
	g.Context(5)
}
