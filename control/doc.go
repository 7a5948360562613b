// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, runtime metrics and debug introspection for hioload-atomic.
//
// Provides concurrent-safe state handling built on the library's own
// primitives:
//   - ConfigStore: immutable Config snapshots shared through arc handles,
//     replaced atomically and announced to reload listeners
//   - MetricsRegistry: spinlock-guarded counters and gauges
//   - DebugProbes: named probe registration and state export
package control
