// Package workerpool provides the generic FIFO task queue + worker pool
// consumed by the chunk manager's generation tasks and the physics
// step's per-chunk tasks (spec §4.K).
package workerpool

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrClosed is returned by Submit once the pool has been shut down.
var ErrClosed = errors.New("workerpool: submit on closed pool")

// Future is the handle returned by Submit: the caller may Wait for
// completion (blocking) or Poll for readiness (non-blocking), per
// spec §5's "zero-timeout wait" requirement for processCompletedChunks.
type Future[T any] struct {
	ID   uuid.UUID
	done chan struct{}

	mu    sync.Mutex
	value T
	err   error
}

func newFuture[T any]() *Future[T] {
	return &Future[T]{ID: uuid.New(), done: make(chan struct{})}
}

func (f *Future[T]) resolve(v T, err error) {
	f.mu.Lock()
	f.value, f.err = v, err
	f.mu.Unlock()
	close(f.done)
}

// Wait blocks until the task completes and returns its result.
func (f *Future[T]) Wait() (T, error) {
	<-f.done
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Poll reports whether the task has completed without blocking. If ready
// is false, value and err are zero.
func (f *Future[T]) Poll() (value T, err error, ready bool) {
	select {
	case <-f.done:
	default:
		return value, nil, false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err, true
}

// Pool is a fixed set of worker goroutines draining a FIFO task queue.
type Pool struct {
	tasks chan func()
	wg    sync.WaitGroup

	mu     sync.Mutex
	closed bool
}

// New starts a pool of n workers. n is floored at 1.
func New(n int) *Pool {
	if n < 1 {
		n = 1
	}
	p := &Pool{tasks: make(chan func(), 4096)}
	p.wg.Add(n)
	for i := 0; i < n; i++ {
		go p.worker()
	}
	return p
}

func (p *Pool) worker() {
	defer p.wg.Done()
	for task := range p.tasks {
		task()
	}
}

// Submit enqueues fn and returns a future for its result. Submitting
// after Shutdown returns ErrClosed and a nil future.
func Submit[T any](p *Pool, fn func() (T, error)) (*Future[T], error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrClosed
	}
	p.mu.Unlock()

	future := newFuture[T]()
	p.tasks <- func() {
		v, err := fn()
		future.resolve(v, err)
	}
	return future, nil
}

// Shutdown drains pending tasks, then joins all workers. Calling it again
// is a no-op.
func (p *Pool) Shutdown() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	close(p.tasks)
	p.wg.Wait()
}
