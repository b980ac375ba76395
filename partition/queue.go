package partition

import "sync"

// Queue hands out indices 0..n-1 one at a time to competing workers.
// Every index is drawn exactly once; draws are ascending.
type Queue struct {
	mu    sync.Mutex
	next  int
	limit int
}

// NewQueue creates a queue over indices 0..n-1.
func NewQueue(n int) *Queue {
	return &Queue{limit: n}
}

// Next returns the next unclaimed index. The second return is false once
// the queue is exhausted.
func (q *Queue) Next() (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.next >= q.limit {
		return 0, false
	}
	idx := q.next
	q.next++
	return idx, true
}

// Remaining returns the number of unclaimed indices.
func (q *Queue) Remaining() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.limit - q.next
}
