package parallel

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool is a fixed set of long-lived worker goroutines. Reusing workers
// across batches avoids respawning thousands of goroutines per remeshing
// round, and is the only backend that supports CPU core binding.
type Pool struct {
	workers  int
	taskCh   chan func()
	stopCh   chan struct{}
	wg       sync.WaitGroup
	closed   atomic.Bool
	submitMu sync.RWMutex
	logger   *slog.Logger
}

// NewPool starts workers goroutines. workers <= 0 defaults to
// runtime.GOMAXPROCS(0). With bind set, worker i is pinned to core i; on
// platforms without affinity support the pin is skipped with a warning.
func NewPool(workers int, bind bool, logger *slog.Logger) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}

	p := &Pool{
		workers: workers,
		taskCh:  make(chan func(), workers*2),
		stopCh:  make(chan struct{}),
		logger:  logger,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker(i, bind)
	}
	return p
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

func (p *Pool) worker(id int, bind bool) {
	defer p.wg.Done()

	if bind {
		if err := pinToCore(id); err != nil {
			p.logger.Warn("core binding unavailable", "worker", id, "error", err)
		}
	}

	for {
		select {
		case <-p.stopCh:
			// Drain queued tasks before exiting.
			for {
				select {
				case task, ok := <-p.taskCh:
					if !ok {
						return
					}
					task()
				default:
					return
				}
			}
		case task, ok := <-p.taskCh:
			if !ok {
				return
			}
			task()
		}
	}
}

// Submit enqueues task, blocking for queue space. It returns ErrPoolClosed
// after Close, or the context error if ctx ends first.
func (p *Pool) Submit(ctx context.Context, task func()) error {
	p.submitMu.RLock()
	defer p.submitMu.RUnlock()

	if p.closed.Load() {
		return ErrPoolClosed
	}

	select {
	case p.taskCh <- task:
		return nil
	case <-p.stopCh:
		return ErrPoolClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the pool and waits for queued tasks to finish. It is
// idempotent.
func (p *Pool) Close() {
	if !p.closed.CompareAndSwap(false, true) {
		return
	}

	p.submitMu.Lock()
	close(p.stopCh)
	close(p.taskCh)
	p.submitMu.Unlock()

	p.wg.Wait()
}
