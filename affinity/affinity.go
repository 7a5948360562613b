// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, affinity_stub.go) guarded by
// build tags.

package affinity

import (
	"runtime"

	"github.com/momentics/hioload-atomic/api"
)

// SetAffinity pins the current OS thread to a given logical CPU on supported platforms.
// The caller must already hold the thread with runtime.LockOSThread, otherwise the
// goroutine may migrate away from the pinned thread.
func SetAffinity(cpuID int) error {
	if cpuID < 0 || cpuID >= runtime.NumCPU() {
		return api.NewError(api.ErrCodeInvalidArgument, "affinity: cpu out of range").
			WithContext("cpu", cpuID).
			WithContext("ncpu", runtime.NumCPU())
	}
	return setAffinityPlatform(cpuID)
}

// CPUFor maps a worker index onto a logical CPU, round-robin.
func CPUFor(worker int) int {
	n := runtime.NumCPU()
	if worker < 0 {
		worker = -worker
	}
	return worker % n
}
