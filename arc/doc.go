// Package arc
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Atomically reference-counted shared ownership of a heap value.
//
// A Handle owns one share of a control block holding the payload and a
// strong count. Clone adds a share, Release gives one up; the goroutine
// whose Release takes the count from 1 to 0 runs the destructor exactly
// once. Go's sync/atomic operations are sequentially consistent, so the
// decrement publishes this goroutine's writes to the payload and, for the
// final releaser, observes every other releaser's writes before the
// destructor runs.
//
// Handles give lifetime guarantees only. Concurrent mutation of the payload
// must be synchronized by the payload itself (for example a spinlock.SpinLock).
//
// Typical usage:
//
//	h := arc.New(cfg)
//	defer h.Release()
//	go func(h *arc.Handle[Config]) {
//		defer h.Release()
//		use(h.Get())
//	}(h.Clone())
package arc
