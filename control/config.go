// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Typed configuration with snapshot reads and hot-reload propagation.

package control

import (
	"runtime"
	"slices"
	"sync"

	"github.com/momentics/hioload-atomic/api"
	"github.com/momentics/hioload-atomic/arc"
	"github.com/momentics/hioload-atomic/spinlock"
)

// Config carries the tunables shared by the harness, the pool and the demo.
type Config struct {
	Workers    int  // goroutines spawned per run
	Iterations int  // operations per worker
	SpinLimit  int  // spinlock.WithSpinLimit value; 0 selects the default
	PinWorkers bool // pin each worker's OS thread to a CPU
	LeakCheck  bool // report handles collected without Release
}

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		Workers:    runtime.NumCPU(),
		Iterations: 1000,
		SpinLimit:  spinlock.DefaultSpinLimit,
	}
}

// Validate rejects configurations the harness cannot run.
func (c Config) Validate() error {
	switch {
	case c.Workers < 0:
		return api.NewError(api.ErrCodeInvalidArgument, "config: negative worker count").WithContext("workers", c.Workers)
	case c.Iterations < 0:
		return api.NewError(api.ErrCodeInvalidArgument, "config: negative iteration count").WithContext("iterations", c.Iterations)
	}
	return nil
}

// ConfigStore holds the current Config as a shared, immutable snapshot.
// Readers clone the current handle; an update installs a new block and drops
// the store's share of the old one, which is destroyed once the last reader
// releases it.
type ConfigStore struct {
	updateMu  sync.Mutex // orders swap and dispatch across updates
	current   *spinlock.SpinLock[*arc.Handle[Config]]
	listeners *spinlock.SpinLock[[]func(Config)]
}

// NewConfigStore initializes a store with cfg.
func NewConfigStore(cfg Config) (*ConfigStore, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &ConfigStore{
		current:   spinlock.New(arc.New(cfg)),
		listeners: spinlock.New[[]func(Config)](nil),
	}, nil
}

// Snapshot returns a handle to the current configuration, or nil after
// Close. The caller must Release it.
func (cs *ConfigStore) Snapshot() *arc.Handle[Config] {
	g := cs.current.Lock()
	defer g.Unlock()
	if g.Get() == nil {
		return nil
	}
	return g.Get().Clone()
}

// Get returns a copy of the current configuration, or the zero Config after
// Close.
func (cs *ConfigStore) Get() Config {
	h := cs.Snapshot()
	if h == nil {
		return Config{}
	}
	defer h.Release()
	return *h.Get()
}

// Update applies fn to a copy of the current configuration and installs the
// result if it validates. fn runs under the store lock and must not call
// back into the store. Reload listeners run synchronously after the swap,
// in installation order; they must not call Update.
func (cs *ConfigStore) Update(fn func(*Config)) error {
	cs.updateMu.Lock()
	defer cs.updateMu.Unlock()
	old, next, err := cs.swap(fn)
	if err != nil {
		return err
	}
	old.Release()
	cs.dispatchReload(next)
	return nil
}

func (cs *ConfigStore) swap(fn func(*Config)) (*arc.Handle[Config], Config, error) {
	g := cs.current.Lock()
	defer g.Unlock()
	cur := g.Get()
	if cur == nil {
		return nil, Config{}, api.NewError(api.ErrCodeClosed, "config: store closed")
	}
	next := *cur.Get()
	fn(&next)
	if err := next.Validate(); err != nil {
		return nil, Config{}, err
	}
	g.Set(arc.New(next))
	return cur, next, nil
}

// OnReload registers a listener called with the new configuration after
// every successful Update.
func (cs *ConfigStore) OnReload(fn func(Config)) {
	cs.listeners.With(func(ls *[]func(Config)) {
		*ls = append(*ls, fn)
	})
}

// Close drops the store's share of the current snapshot.
func (cs *ConfigStore) Close() {
	g := cs.current.Lock()
	defer g.Unlock()
	if h := g.Get(); h != nil {
		h.Release()
		g.Set(nil)
	}
}

func (cs *ConfigStore) dispatchReload(cfg Config) {
	g := cs.listeners.Lock()
	ls := slices.Clone(g.Get())
	g.Unlock()
	for _, fn := range ls {
		fn(cfg)
	}
}
