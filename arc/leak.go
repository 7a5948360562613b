// File: arc/leak.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package arc

import (
	"reflect"
	"runtime"
	"sync/atomic"
)

// LeakReport describes a handle collected by the garbage collector without
// a Release. The share it held is never returned, so the payload destructor
// will not run.
type LeakReport struct {
	Type  string
	Count int64
}

var leakHandler atomic.Pointer[func(LeakReport)]

// SetLeakHandler installs fn as the leak reporter for handles created after
// the call. A nil fn disables tracking.
func SetLeakHandler(fn func(LeakReport)) {
	if fn == nil {
		leakHandler.Store(nil)
		return
	}
	leakHandler.Store(&fn)
}

func watch[T any](h *Handle[T]) {
	if leakHandler.Load() == nil {
		return
	}
	runtime.SetFinalizer(h, func(h *Handle[T]) {
		b := h.b.Load()
		if b == nil {
			return
		}
		if fn := leakHandler.Load(); fn != nil {
			(*fn)(LeakReport{Type: reflect.TypeOf((*T)(nil)).Elem().String(), Count: b.refs.Load()})
		}
	})
}

func unwatch[T any](h *Handle[T]) {
	if leakHandler.Load() == nil {
		return
	}
	runtime.SetFinalizer(h, nil)
}
