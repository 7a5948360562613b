// File: workers/spawn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package workers

import (
	"errors"
	"sync"

	"github.com/momentics/hioload-atomic/api"
)

// Spawn starts n workers, gives worker i its own clone of shared together
// with i, and waits for all of them. Clones implementing api.Releaser are
// released when the task returns, panics included. The caller keeps its
// ownership of shared. n <= 0 runs nothing.
func Spawn[T api.Cloner[T]](shared T, n int, task func(T, int), opts ...Option) error {
	if n <= 0 {
		return nil
	}
	// Clone up front so every share exists before any worker can drop one.
	clones := cloneAll(shared, n)
	return run(n, func(i int) {
		local := clones[i]
		if r, ok := any(local).(api.Releaser); ok {
			defer r.Release()
		}
		task(local, i)
	}, buildOptions(opts))
}

// cloneAll returns n clones of shared. If Clone panics, the clones already
// taken are released before the panic propagates.
func cloneAll[T api.Cloner[T]](shared T, n int) (clones []T) {
	clones = make([]T, 0, n)
	defer func() {
		if len(clones) == n {
			return
		}
		for _, c := range clones {
			if r, ok := any(c).(api.Releaser); ok {
				r.Release()
			}
		}
	}()
	for len(clones) < n {
		clones = append(clones, shared.Clone())
	}
	return clones
}

// Run starts n workers executing task(i) and waits for all of them. Use it
// when the shared state is captured by the closure. n <= 0 runs nothing.
func Run(n int, task func(int), opts ...Option) error {
	if n <= 0 {
		return nil
	}
	return run(n, task, buildOptions(opts))
}

func run(n int, task func(int), o options) error {
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			exit := o.enterThread(id)
			defer exit()
			errs[id] = guard(id, func() { task(id) })
		}(i)
	}
	wg.Wait()

	var panics int64
	for _, err := range errs {
		if err != nil {
			panics++
			o.logger.Print(err)
		}
	}
	o.count("workers.spawned", int64(n))
	o.count("workers.panics", panics)
	return errors.Join(errs...)
}
