// File: arc/block.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package arc

import "sync/atomic"

// live counts control blocks whose destructor has not run yet.
var live atomic.Int64

// Dropper is implemented by payloads that need explicit teardown when the
// last handle is released.
type Dropper interface {
	Drop()
}

// block is the control block shared by all handles of one value.
type block[T any] struct {
	refs  atomic.Int64
	drop  func(*T)
	value T
}

func newBlock[T any](value T, drop func(*T)) *block[T] {
	b := &block[T]{value: value, drop: drop}
	b.refs.Store(1)
	live.Add(1)
	return b
}

// destroy runs exactly once, on the goroutine that observed the count reach zero.
func (b *block[T]) destroy() {
	switch {
	case b.drop != nil:
		b.drop(&b.value)
	default:
		if d, ok := any(&b.value).(Dropper); ok {
			d.Drop()
		} else if d, ok := any(b.value).(Dropper); ok {
			d.Drop()
		}
	}
	var zero T
	b.value = zero
	b.drop = nil
	live.Add(-1)
}

// Live returns the number of control blocks that have not been destroyed.
func Live() int64 {
	return live.Load()
}
