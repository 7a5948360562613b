// Package workers
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker harness for driving shared state from many OS threads.
//
// Spawn and Run start N workers, each locked to its own OS thread and
// optionally pinned to a CPU, and join them before returning. Spawn hands
// every worker its own clone of a shared owner (for example an
// *arc.Handle[T]) and releases that clone when the worker finishes. Panics
// inside workers are recovered and returned as errors.
//
// Pool is a long-lived variant: a fixed set of workers draining an unbounded
// FIFO backlog guarded by a spinlock.
package workers
