// File: workers/pool.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Pool dispatches tasks to a fixed set of worker goroutines through an
// unbounded FIFO backlog. The backlog is guarded by a spinlock: producers
// and workers only hold it for a queue push or pop.

package workers

import (
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-atomic/api"
	"github.com/momentics/hioload-atomic/spinlock"
)

// TaskFunc is a unit of work to execute.
type TaskFunc func()

type backlog struct {
	q      *queue.Queue
	closed bool
}

// Pool manages a pool of worker goroutines.
type Pool struct {
	backlog    *spinlock.SpinLock[backlog]
	wake       chan struct{} // one token per pending wakeup, capacity numWorkers
	closeCh    chan struct{}
	wg         sync.WaitGroup
	numWorkers int
	opts       options

	// statistics
	totalTasks     atomic.Int64
	completedTasks atomic.Int64
	panics         atomic.Int64
}

// NewPool starts numWorkers workers. If numWorkers <= 0, defaults to runtime.NumCPU().
func NewPool(numWorkers int, opts ...Option) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	p := &Pool{
		backlog:    spinlock.New(backlog{q: queue.New()}),
		wake:       make(chan struct{}, numWorkers),
		closeCh:    make(chan struct{}),
		numWorkers: numWorkers,
		opts:       buildOptions(opts),
	}
	p.wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.worker(i)
	}
	return p
}

// Submit enqueues a task, returning api.ErrPoolClosed once Close has begun.
func (p *Pool) Submit(task TaskFunc) error {
	if task == nil {
		return api.ErrInvalidArgument
	}
	g := p.backlog.Lock()
	if g.Ptr().closed {
		g.Unlock()
		return api.ErrPoolClosed
	}
	g.Ptr().q.Add(task)
	p.totalTasks.Add(1)
	g.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
		// every worker already has a wakeup pending
	}
	return nil
}

// NumWorkers returns the number of workers.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// Close stops accepting tasks, lets the workers drain the backlog and waits
// for them to exit. Safe to call more than once.
func (p *Pool) Close() {
	first := false
	p.backlog.With(func(b *backlog) {
		if !b.closed {
			b.closed = true
			first = true
		}
	})
	if first {
		close(p.closeCh)
	}
	p.wg.Wait()
	if first {
		p.opts.count("pool.tasks", p.completedTasks.Load())
		p.opts.count("pool.panics", p.panics.Load())
		p.opts.logger.Printf("workers: pool closed after %d tasks", p.completedTasks.Load())
	}
}

// Stats returns basic pool metrics.
func (p *Pool) Stats() map[string]int64 {
	total := p.totalTasks.Load()
	completed := p.completedTasks.Load()
	return map[string]int64{
		"total_tasks":     total,
		"completed_tasks": completed,
		"pending_tasks":   total - completed,
		"panics":          p.panics.Load(),
		"num_workers":     int64(p.numWorkers),
	}
}

// worker is the main loop for a single pool goroutine.
func (p *Pool) worker(id int) {
	defer p.wg.Done()
	exit := p.opts.enterThread(id)
	defer exit()
	for {
		task, closed := p.next()
		if task != nil {
			p.execute(id, task)
			continue
		}
		if closed {
			return
		}
		select {
		case <-p.wake:
		case <-p.closeCh:
		}
	}
}

// next pops the oldest task; closed reports whether Close has begun.
func (p *Pool) next() (task TaskFunc, closed bool) {
	g := p.backlog.Lock()
	defer g.Unlock()
	b := g.Ptr()
	if b.q.Length() > 0 {
		task = b.q.Remove().(TaskFunc)
	}
	return task, b.closed
}

// execute runs the task and updates statistics, recovering from panics.
func (p *Pool) execute(id int, task TaskFunc) {
	if err := guard(id, task); err != nil {
		p.panics.Add(1)
		p.opts.logger.Print(err)
	}
	p.completedTasks.Add(1)
}
