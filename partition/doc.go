// Package partition distributes per-object work across rank-addressed
// workers.
//
// Two modes are supported. Static assignment splits a chunk's index range
// into contiguous blocks ahead of time, one block per worker, with exact
// coverage and no coordination. Dynamic assignment hands out indices one
// at a time from a queue shared by the worker group, trading coordination
// overhead for resilience against uneven per-object cost. "One worker per
// object" maximal parallelism is the dynamic mode with every worker
// drawing single indices until the queue is exhausted.
//
// A Context carries one worker's identity (rank, size) plus the group's
// broadcast handle, threaded explicitly through the engine instead of
// held as ambient communicator state. Group provides an in-process
// implementation suitable for single-binary runs and for tests.
package partition
