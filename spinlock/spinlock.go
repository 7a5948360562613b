// File: spinlock/spinlock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spinlock

import (
	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-atomic/api"
)

// SpinLock guards an inline value of type T. The value is reachable only
// through the Guard returned by Lock or TryLock, or inside With.
type SpinLock[T any] struct {
	mu    Locker
	_     cpu.CacheLinePad // keep waiters' reads of mu off the value's line
	value T
}

// New returns an unlocked SpinLock holding value.
func New[T any](value T, opts ...Option) *SpinLock[T] {
	s := &SpinLock[T]{value: value}
	for _, opt := range opts {
		opt(&s.mu)
	}
	return s
}

// Lock spins until the lock is acquired and returns the guard for the
// critical section. Pair every Lock with a deferred Guard.Unlock.
func (s *SpinLock[T]) Lock() *Guard[T] {
	s.mu.Lock()
	return &Guard[T]{lock: s}
}

// TryLock returns a guard if the lock was free, without spinning.
func (s *SpinLock[T]) TryLock() (*Guard[T], bool) {
	if !s.mu.TryLock() {
		return nil, false
	}
	return &Guard[T]{lock: s}, true
}

// With runs fn with exclusive access to the value. The lock is released
// when fn returns or panics.
func (s *SpinLock[T]) With(fn func(v *T)) {
	g := s.Lock()
	defer g.Unlock()
	fn(g.Ptr())
}

// IsLocked reports whether a guard is currently live.
func (s *SpinLock[T]) IsLocked() bool {
	return s.mu.IsLocked()
}

// Guard is the capability to access a SpinLock's value. It is valid from
// Lock until Unlock and must stay on the goroutine that acquired it unless
// the hand-off is itself synchronized.
type Guard[T any] struct {
	lock *SpinLock[T]
}

// Get returns a copy of the guarded value.
func (g *Guard[T]) Get() T {
	return g.held("Get").value
}

// Set replaces the guarded value.
func (g *Guard[T]) Set(v T) {
	g.held("Set").value = v
}

// Ptr returns a pointer into the guarded value. It must not be retained
// past Unlock.
func (g *Guard[T]) Ptr() *T {
	return &g.held("Ptr").value
}

// Unlock ends the critical section.
func (g *Guard[T]) Unlock() {
	s := g.held("Unlock")
	g.lock = nil
	s.mu.Unlock()
}

func (g *Guard[T]) held(op string) *SpinLock[T] {
	if g.lock == nil {
		panic(api.Misuse(op, "spinlock: guard already unlocked"))
	}
	return g.lock
}
