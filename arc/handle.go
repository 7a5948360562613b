// File: arc/handle.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package arc

import (
	"sync/atomic"

	"github.com/momentics/hioload-atomic/api"
)

// Ensure compile-time interface compliance.
var (
	_ api.Cloner[*Handle[int]] = (*Handle[int])(nil)
	_ api.Releaser             = (*Handle[int])(nil)
)

// Handle is one ownership share of a reference-counted value.
// A Handle must not be copied; share it with Clone.
type Handle[T any] struct {
	b atomic.Pointer[block[T]]
}

// New allocates a control block holding value with a strong count of 1.
func New[T any](value T, opts ...Option[T]) *Handle[T] {
	var o options[T]
	for _, opt := range opts {
		opt(&o)
	}
	return wrap(newBlock(value, o.drop))
}

func wrap[T any](b *block[T]) *Handle[T] {
	h := &Handle[T]{}
	h.b.Store(b)
	watch(h)
	return h
}

// Clone returns a new handle to the same block. The increment does not need
// to order any other memory access; it only has to be atomic.
func (h *Handle[T]) Clone() *Handle[T] {
	b := h.load("Clone")
	b.refs.Add(1)
	return wrap(b)
}

// Get returns a pointer to the shared payload. The pointer is valid while
// this handle is live.
func (h *Handle[T]) Get() *T {
	return &h.load("Get").value
}

// Release gives up this handle's share. The goroutine whose decrement takes
// the count from 1 to 0 destroys the payload.
func (h *Handle[T]) Release() {
	b := h.b.Swap(nil)
	if b == nil {
		panic(api.Misuse("Release", "arc: release of released handle"))
	}
	unwatch(h)
	n := b.refs.Add(-1)
	switch {
	case n > 0:
		return
	case n < 0:
		panic(api.Misuse("Release", "arc: negative strong count").WithContext("count", n))
	}
	b.destroy()
}

// Count returns the strong count observed at the time of the call.
func (h *Handle[T]) Count() int64 {
	return h.load("Count").refs.Load()
}

// Released reports whether Release has been called on this handle.
func (h *Handle[T]) Released() bool {
	return h.b.Load() == nil
}

// Same reports whether h and other share one control block.
func (h *Handle[T]) Same(other *Handle[T]) bool {
	return h.load("Same") == other.load("Same")
}

func (h *Handle[T]) load(op string) *block[T] {
	b := h.b.Load()
	if b == nil {
		panic(api.Misuse(op, "arc: use of released handle"))
	}
	return b
}
