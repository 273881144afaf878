// Package pool runs probe tasks on a fixed set of workers.
//
// Tasks are submitted without blocking and queue until a worker is
// free; completions are drained one at a time in whatever order tasks
// finish. The pool never interprets task results: a probe that failed
// is still a completed task. The only errors the pool reports are its
// own lifecycle errors.
package pool

import (
	"context"
	"errors"
	"sync"

	"github.com/urlstat/urlstat/pkg/probe"
)

// ErrClosed is returned when the pool has been shut down.
var ErrClosed = errors.New("pool: closed")

// Task is a unit of work producing one probe result. Tasks must not
// panic; all probe failures are encoded in the returned Result.
type Task func() probe.Result

// Pool executes tasks with bounded parallelism. At any instant at most
// N tasks run concurrently, N being the worker count given to New.
// Excess submissions wait in an unbounded queue.
type Pool struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Task
	closed bool

	completions chan probe.Result
	done        chan struct{}
	wg          sync.WaitGroup
	shutdown    sync.Once
}

// New creates a Pool and starts its workers. A worker count below one
// is raised to one.
func New(workers int) *Pool {
	if workers < 1 {
		workers = 1
	}

	p := &Pool{
		completions: make(chan probe.Result),
		done:        make(chan struct{}),
	}
	p.cond = sync.NewCond(&p.mu)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

// Submit enqueues a task for execution. It never blocks waiting for a
// free worker. Returns ErrClosed after Shutdown.
func (p *Pool) Submit(t Task) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return ErrClosed
	}
	p.queue = append(p.queue, t)
	p.cond.Signal()
	return nil
}

// Take blocks until some submitted task has finished and returns its
// result. When several tasks have finished, whichever is available is
// returned; submission order plays no role. A cancelled context takes
// precedence over available completions so an aborting caller returns
// promptly.
func (p *Pool) Take(ctx context.Context) (probe.Result, error) {
	select {
	case <-ctx.Done():
		return probe.Result{}, ctx.Err()
	default:
	}

	select {
	case res := <-p.completions:
		return res, nil
	case <-ctx.Done():
		return probe.Result{}, ctx.Err()
	case <-p.done:
		return probe.Result{}, ErrClosed
	}
}

// Shutdown stops accepting new work and releases the workers. Queued
// tasks that have not started are discarded; tasks already executing
// run to completion with their results dropped if nobody takes them.
// Shutdown is idempotent and returns once every worker has exited.
func (p *Pool) Shutdown() {
	p.shutdown.Do(func() {
		p.mu.Lock()
		p.closed = true
		p.queue = nil
		p.cond.Broadcast()
		p.mu.Unlock()

		close(p.done)
		p.wg.Wait()
	})
}

// worker pops tasks off the queue, executes them, and hands the result
// to a Take caller. Hand-off aborts when the pool shuts down so blocked
// workers never leak.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		task, ok := p.next()
		if !ok {
			return
		}

		res := task()

		select {
		case p.completions <- res:
		case <-p.done:
			return
		}
	}
}

// next blocks until a task is queued or the pool is closed.
func (p *Pool) next() (Task, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for len(p.queue) == 0 && !p.closed {
		p.cond.Wait()
	}
	if p.closed {
		return nil, false
	}

	task := p.queue[0]
	p.queue = p.queue[1:]
	return task, true
}
