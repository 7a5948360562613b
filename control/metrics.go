// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Runtime metrics collector. Counters accumulate, gauges overwrite.

package control

import (
	"time"

	"github.com/momentics/hioload-atomic/spinlock"
)

type metricsState struct {
	values  map[string]int64
	updated time.Time
}

// MetricsRegistry holds named integer metrics.
type MetricsRegistry struct {
	state *spinlock.SpinLock[metricsState]
}

// NewMetricsRegistry creates an empty registry.
func NewMetricsRegistry() *MetricsRegistry {
	return &MetricsRegistry{
		state: spinlock.New(metricsState{values: make(map[string]int64)}),
	}
}

// Add increments counter key by delta.
func (mr *MetricsRegistry) Add(key string, delta int64) {
	mr.state.With(func(s *metricsState) {
		s.values[key] += delta
		s.updated = time.Now()
	})
}

// Set sets gauge key to value.
func (mr *MetricsRegistry) Set(key string, value int64) {
	mr.state.With(func(s *metricsState) {
		s.values[key] = value
		s.updated = time.Now()
	})
}

// Get returns the value of key and whether it was ever recorded.
func (mr *MetricsRegistry) Get(key string) (int64, bool) {
	g := mr.state.Lock()
	defer g.Unlock()
	v, ok := g.Ptr().values[key]
	return v, ok
}

// GetSnapshot returns a copy of all metrics.
func (mr *MetricsRegistry) GetSnapshot() map[string]int64 {
	g := mr.state.Lock()
	defer g.Unlock()
	out := make(map[string]int64, len(g.Ptr().values))
	for k, v := range g.Ptr().values {
		out[k] = v
	}
	return out
}

// Updated returns the time of the last write.
func (mr *MetricsRegistry) Updated() time.Time {
	g := mr.state.Lock()
	defer g.Unlock()
	return g.Ptr().updated
}
