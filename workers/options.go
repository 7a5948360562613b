// File: workers/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workers

import (
	"log"

	"github.com/momentics/hioload-atomic/control"
)

// Option customizes the harness and the pool.
type Option func(*options)

type options struct {
	pin     bool
	logger  *log.Logger
	metrics *control.MetricsRegistry
}

func buildOptions(opts []Option) options {
	o := options{logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithPinning pins worker i's OS thread to CPU i modulo NumCPU.
func WithPinning() Option {
	return func(o *options) {
		o.pin = true
	}
}

// WithLogger sets the logger used for pin failures, recovered panics and shutdown.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithMetrics records worker counters into mr.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(o *options) {
		o.metrics = mr
	}
}

// WithConfig applies the worker-related fields of cfg.
func WithConfig(cfg control.Config) Option {
	return func(o *options) {
		o.pin = cfg.PinWorkers
	}
}

func (o *options) count(key string, delta int64) {
	if o.metrics != nil && delta != 0 {
		o.metrics.Add(key, delta)
	}
}
