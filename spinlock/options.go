// File: spinlock/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package spinlock

// DefaultSpinLimit is the number of failed spin iterations after which a
// waiter yields its processor once.
const DefaultSpinLimit = 64

// Option customizes a Locker or SpinLock.
type Option func(*Locker)

// WithSpinLimit sets how many failed spin iterations a waiter performs
// before calling runtime.Gosched. A negative n never yields (pure busy-wait);
// zero selects DefaultSpinLimit.
func WithSpinLimit(n int) Option {
	return func(l *Locker) {
		l.spinLimit = n
	}
}

// WithOwnerCheck records the holding goroutine so that a relock from the
// holder panics instead of deadlocking. Every Lock pays for a goroutine id
// lookup; meant for tests and debugging.
func WithOwnerCheck() Option {
	return func(l *Locker) {
		l.checkOwner = true
	}
}
