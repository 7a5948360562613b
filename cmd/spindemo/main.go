// File: cmd/spindemo/main.go
// Author: momentics <momentics@gmail.com>
//
// Runs the spinlock and shared-handle scenarios against the library and
// prints the collected metrics.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync/atomic"

	"github.com/momentics/hioload-atomic/arc"
	"github.com/momentics/hioload-atomic/control"
	"github.com/momentics/hioload-atomic/spinlock"
	"github.com/momentics/hioload-atomic/workers"
)

func main() {
	def := control.DefaultConfig()
	nWorkers := flag.Int("workers", def.Workers, "number of worker threads")
	iters := flag.Int("iters", def.Iterations, "increments per worker")
	spinLimit := flag.Int("spin-limit", def.SpinLimit, "failed spins before yielding (<0 never yields)")
	pin := flag.Bool("pin", false, "pin worker threads to CPUs")
	leakCheck := flag.Bool("leak-check", false, "report shared handles collected without release")
	flag.Parse()

	store, err := control.NewConfigStore(def)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	defer store.Close()
	store.OnReload(func(c control.Config) {
		log.Printf("config: workers=%d iters=%d spin-limit=%d pin=%v leak-check=%v",
			c.Workers, c.Iterations, c.SpinLimit, c.PinWorkers, c.LeakCheck)
	})
	err = store.Update(func(c *control.Config) {
		c.Workers = *nWorkers
		c.Iterations = *iters
		c.SpinLimit = *spinLimit
		c.PinWorkers = *pin
		c.LeakCheck = *leakCheck
	})
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	snap := store.Snapshot()
	cfg := *snap.Get()
	snap.Release()

	if cfg.LeakCheck {
		arc.SetLeakHandler(func(r arc.LeakReport) {
			log.Printf("arc: leaked handle of %s (strong count %d)", r.Type, r.Count)
		})
	}

	metrics := control.NewMetricsRegistry()
	probes := control.NewDebugProbes()
	control.RegisterPlatformProbes(probes)
	opts := []workers.Option{workers.WithConfig(cfg), workers.WithMetrics(metrics)}

	fmt.Println("=== spinlock counter ===")
	got, err := spinCounter(cfg, opts)
	if err != nil {
		log.Fatalf("spinlock counter: %v", err)
	}
	fmt.Printf("%d workers x %d increments = %d (want %d)\n", cfg.Workers, cfg.Iterations, got, cfg.Workers*cfg.Iterations)
	metrics.Set("demo.counter", int64(got))

	fmt.Println("=== shared handle ===")
	if err := sharedHandle(cfg, opts); err != nil {
		log.Fatalf("shared handle: %v", err)
	}

	fmt.Println("=== ready flag handoff ===")
	readyFlag(5)

	fmt.Println("=== pool ===")
	pool := workers.NewPool(cfg.Workers, opts...)
	probes.RegisterProbe("pool", func() any { return pool.Stats() })
	total := spinlock.New(0, spinlock.WithSpinLimit(cfg.SpinLimit))
	for i := 0; i < cfg.Iterations; i++ {
		if err := pool.Submit(func() { total.With(func(v *int) { *v++ }) }); err != nil {
			log.Fatalf("pool: %v", err)
		}
	}
	pool.Close()
	g := total.Lock()
	fmt.Printf("pool ran %d tasks\n", g.Get())
	g.Unlock()

	runtime.GC()
	dump("metrics", toAny(metrics.GetSnapshot()))
	dump("debug", probes.DumpState())

	if arc.Live() != 1 { // the config store's current snapshot
		fmt.Fprintf(os.Stderr, "arc: %d control blocks still live\n", arc.Live())
	}
}

func spinCounter(cfg control.Config, opts []workers.Option) (int, error) {
	lock := spinlock.New(0, spinlock.WithSpinLimit(cfg.SpinLimit))
	err := workers.Run(cfg.Workers, func(int) {
		for i := 0; i < cfg.Iterations; i++ {
			g := lock.Lock()
			*g.Ptr()++
			g.Unlock()
		}
	}, opts...)
	g := lock.Lock()
	defer g.Unlock()
	return g.Get(), err
}

func sharedHandle(cfg control.Config, opts []workers.Option) error {
	var dropped atomic.Bool
	s1 := arc.New("Hello World", arc.WithDrop(func(*string) { dropped.Store(true) }))
	s2 := s1.Clone()
	fmt.Printf("s1 addr: %p\n", s1.Get())
	fmt.Printf("s2 addr: %p\n", s2.Get())
	fmt.Printf("content: %q, strong count %d\n", *s2.Get(), s2.Count())

	err := workers.Spawn(s1, cfg.Workers, func(h *arc.Handle[string], _ int) {
		if *h.Get() != "Hello World" {
			panic("payload changed")
		}
	}, opts...)
	s1.Release()
	fmt.Printf("after workers and s1 release: count %d, dropped %v\n", s2.Count(), dropped.Load())
	s2.Release()
	fmt.Printf("after s2 release: dropped %v\n", dropped.Load())
	return err
}

// readyFlag hands values from a producer to a consumer through a data word
// and a ready flag, one value at a time.
func readyFlag(n int) {
	var data atomic.Int32
	var ready, consumed atomic.Bool
	consumed.Store(true)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < n; i++ {
			for !ready.Load() {
				runtime.Gosched()
			}
			fmt.Printf("consumer: %d\n", data.Load())
			ready.Store(false)
			consumed.Store(true)
		}
	}()
	for i := 1; i <= n; i++ {
		for !consumed.Load() {
			runtime.Gosched()
		}
		consumed.Store(false)
		data.Store(int32(i))
		ready.Store(true)
	}
	<-done
}

func toAny(m map[string]int64) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func dump(title string, m map[string]any) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Printf("=== %s ===\n", title)
	for _, k := range keys {
		fmt.Printf("%-22s %v\n", k, m[k])
	}
}
