// File: spinlock/locker.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spinlock

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-atomic/api"
	"github.com/momentics/hioload-atomic/internal/goid"
)

// Ensure compile-time interface compliance.
var _ api.Locker = (*Locker)(nil)

// currentGoroutine returns 0 when the id is unknown; 0 is also "no owner".
var currentGoroutine = goid.Current

// Locker is a test-and-test-and-set spinlock. The zero value is unlocked
// and uses DefaultSpinLimit. A Locker must not be copied after first use.
//
// A locked Locker is not associated with a goroutine unless built
// WithOwnerCheck: one goroutine may lock it and another unlock it.
type Locker struct {
	locked     atomic.Bool
	owner      atomic.Int64
	spinLimit  int
	checkOwner bool
}

// NewLocker returns an unlocked Locker configured by opts.
func NewLocker(opts ...Option) *Locker {
	l := &Locker{}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Lock spins until the lock is acquired.
func (l *Locker) Lock() {
	if !l.checkOwner {
		l.spin()
		return
	}
	me := currentGoroutine()
	if me != 0 && l.owner.Load() == me {
		panic(api.Misuse("Lock", "spinlock: relock by holding goroutine").WithContext("goroutine", me))
	}
	l.spin()
	l.owner.Store(me)
}

func (l *Locker) spin() {
	limit := l.spinLimit
	if limit == 0 {
		limit = DefaultSpinLimit
	}
	spins := 0
	for {
		// Read-only wait: the line stays shared until the holder's store.
		for l.locked.Load() {
			cpuRelax()
			if limit < 0 {
				continue
			}
			spins++
			if spins >= limit {
				spins = 0
				runtime.Gosched()
			}
		}
		if l.locked.CompareAndSwap(false, true) {
			return
		}
	}
}

// TryLock acquires the lock if it is free and reports whether it did.
// It never spins.
func (l *Locker) TryLock() bool {
	if l.locked.Load() || !l.locked.CompareAndSwap(false, true) {
		return false
	}
	if l.checkOwner {
		l.owner.Store(currentGoroutine())
	}
	return true
}

// Unlock releases the lock. Writes made while holding it become visible to
// the next goroutine that acquires it.
func (l *Locker) Unlock() {
	if l.checkOwner {
		l.owner.Store(0)
	}
	l.locked.Store(false)
}

// IsLocked reports the flag state at the time of the call.
func (l *Locker) IsLocked() bool {
	return l.locked.Load()
}
