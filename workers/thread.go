// File: workers/thread.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workers

import (
	"fmt"
	"runtime"

	"github.com/momentics/hioload-atomic/affinity"
	"github.com/momentics/hioload-atomic/api"
)

// enterThread locks the calling goroutine to its OS thread and pins it when
// configured. The returned func undoes the lock. A pinned thread stays
// locked so that the runtime discards it instead of reusing its CPU mask.
func (o *options) enterThread(id int) (exit func()) {
	runtime.LockOSThread()
	if !o.pin {
		return runtime.UnlockOSThread
	}
	cpu := affinity.CPUFor(id)
	if err := affinity.SetAffinity(cpu); err != nil {
		o.logger.Printf("workers: pin worker %d to cpu %d failed: %v", id, cpu, err)
		o.count("workers.pin_failures", 1)
		return runtime.UnlockOSThread
	}
	return func() {}
}

// guard runs fn and converts a panic into a structured error.
func guard(id int, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = api.NewError(api.ErrCodeWorkerPanic, fmt.Sprintf("workers: worker %d panicked: %v", id, r)).
				WithContext("worker", id).
				WithContext("panic", r)
		}
	}()
	fn()
	return nil
}
