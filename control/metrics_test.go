package control_test

import (
	"sync"
	"testing"

	"github.com/momentics/hioload-atomic/control"
)

func TestMetricsRegistryCountersAndGauges(t *testing.T) {
	mr := control.NewMetricsRegistry()
	if _, ok := mr.Get("missing"); ok {
		t.Fatal("unexpected metric")
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				mr.Add("ops", 1)
			}
		}()
	}
	wg.Wait()
	mr.Set("workers", 10)
	mr.Set("workers", 4)

	snap := mr.GetSnapshot()
	if snap["ops"] != 1000 {
		t.Errorf("ops = %d, want 1000", snap["ops"])
	}
	if snap["workers"] != 4 {
		t.Errorf("workers = %d, want 4", snap["workers"])
	}
	if mr.Updated().IsZero() {
		t.Error("Updated not recorded")
	}

	snap["ops"] = 0
	if v, _ := mr.Get("ops"); v != 1000 {
		t.Error("snapshot aliases registry state")
	}
}

func TestDebugProbes(t *testing.T) {
	dp := control.NewDebugProbes()
	control.RegisterPlatformProbes(dp)
	dp.RegisterProbe("custom", func() any { return "ok" })
	// probes run outside the registry lock
	dp.RegisterProbe("reentrant", func() any {
		dp.RegisterProbe("late", func() any { return 1 })
		return true
	})

	state := dp.DumpState()
	if state["custom"] != "ok" {
		t.Errorf("custom = %v", state["custom"])
	}
	if n, ok := state["platform.cpus"].(int); !ok || n < 1 {
		t.Errorf("platform.cpus = %v", state["platform.cpus"])
	}
	if n, ok := state["platform.cache_line"].(int); !ok || n < 32 {
		t.Errorf("platform.cache_line = %v", state["platform.cache_line"])
	}
	if _, ok := state["arc.live_blocks"].(int64); !ok {
		t.Errorf("arc.live_blocks = %T", state["arc.live_blocks"])
	}
	if state["reentrant"] != true {
		t.Errorf("reentrant = %v", state["reentrant"])
	}
	if _, ok := dp.DumpState()["late"]; !ok {
		t.Error("probe registered from a probe is missing")
	}
}
