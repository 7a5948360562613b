// Package spinlock
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Busy-wait mutual exclusion without kernel involvement.
//
// Locker is the bare test-and-test-and-set flag: waiters spin on a plain
// atomic load (no cache-line ownership traffic) and attempt the
// compare-and-swap only after the flag reads free. SpinLock[T] pairs a
// Locker with an inline value that is reachable only through a Guard, so
// the value can only be touched while the lock is held.
//
// The acquiring compare-and-swap pairs with the releasing store in Unlock:
// a new holder observes every write made by the previous holder inside its
// critical section.
//
// Spinning trades CPU for latency. Keep critical sections short. There is
// no fairness: a waiter can starve under sustained contention. Relocking
// from the goroutine that holds the lock deadlocks unless the lock was
// built WithOwnerCheck, in which case it panics.
package spinlock
