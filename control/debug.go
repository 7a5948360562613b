// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Runtime debug handler and probe reflector for internal inspection.

package control

import (
	"runtime"
	"unsafe"

	"golang.org/x/sys/cpu"

	"github.com/momentics/hioload-atomic/api"
	"github.com/momentics/hioload-atomic/arc"
	"github.com/momentics/hioload-atomic/spinlock"
)

var _ api.Debug = (*DebugProbes)(nil)

// DebugProbes holds registered probe functions.
type DebugProbes struct {
	probes *spinlock.SpinLock[map[string]func() any]
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: spinlock.New(make(map[string]func() any)),
	}
}

// RegisterProbe inserts a named debug hook.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.probes.With(func(m *map[string]func() any) {
		(*m)[name] = fn
	})
}

// DumpState returns output of all probes. Probes run outside the lock so
// they may themselves take locks.
func (dp *DebugProbes) DumpState() map[string]any {
	g := dp.probes.Lock()
	fns := make(map[string]func() any, len(g.Get()))
	for k, fn := range g.Get() {
		fns[k] = fn
	}
	g.Unlock()

	out := make(map[string]any, len(fns))
	for k, fn := range fns {
		out[k] = fn()
	}
	return out
}

// RegisterPlatformProbes adds host and library-wide probes.
func RegisterPlatformProbes(dp *DebugProbes) {
	dp.RegisterProbe("platform.cpus", func() any {
		return runtime.NumCPU()
	})
	dp.RegisterProbe("platform.arch", func() any {
		return runtime.GOARCH
	})
	dp.RegisterProbe("platform.cache_line", func() any {
		return int(unsafe.Sizeof(cpu.CacheLinePad{}))
	})
	dp.RegisterProbe("arc.live_blocks", func() any {
		return arc.Live()
	})
}
