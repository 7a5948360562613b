// File: api/interfaces.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Core contracts shared by the primitives and the worker harness.

package api

import "sync"

// Locker is a mutual-exclusion lock that can also be attempted without waiting.
type Locker interface {
	sync.Locker
	// TryLock acquires the lock only if it is free right now.
	TryLock() bool
}

// Cloner produces another owner of the same shared state.
// *arc.Handle[T] satisfies Cloner[*arc.Handle[T]].
type Cloner[T any] interface {
	Clone() T
}

// Releaser gives up one ownership share.
type Releaser interface {
	Release()
}

// Debug exposes runtime introspection.
type Debug interface {
	// DumpState emits a snapshot of system state for diagnostics.
	DumpState() map[string]any

	// RegisterProbe dynamically registers new debug probes.
	RegisterProbe(name string, fn func() any)
}
