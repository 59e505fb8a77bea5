package parallel

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"github.com/puzpuzpuz/xsync/v3"
	"golang.org/x/sync/errgroup"

	"github.com/LIHPC-Computational-Geometry/honeycomb-sub001/stm"
)

// Runner dispatches batches through a configured backend. A zero-value
// Runner is not usable; construct one with New.
type Runner struct {
	backend Backend
	workers int
	bind    bool
	logger  *slog.Logger

	poolOnce sync.Once
	pool     *Pool
}

// Option configures a Runner.
type Option func(*Runner)

// WithBackend selects the scheduling strategy. Default is BackendIter.
func WithBackend(b Backend) Option {
	return func(r *Runner) { r.backend = b }
}

// WithWorkers caps batch concurrency at n goroutines. n <= 0 defaults to
// runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(r *Runner) { r.workers = n }
}

// WithCoreBinding pins BackendPool workers to CPU cores. Other backends
// ignore it.
func WithCoreBinding(bind bool) Option {
	return func(r *Runner) { r.bind = bind }
}

// WithLogger sets the runner's logger. Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

// New builds a Runner.
func New(opts ...Option) *Runner {
	r := &Runner{
		backend: BackendIter,
		workers: runtime.GOMAXPROCS(0),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.workers <= 0 {
		r.workers = runtime.GOMAXPROCS(0)
	}
	return r
}

// Backend returns the runner's scheduling strategy.
func (r *Runner) Backend() Backend { return r.backend }

// Workers returns the runner's concurrency cap.
func (r *Runner) Workers() int { return r.workers }

// Close releases the worker pool, if one was started. The runner must not
// be used afterwards.
func (r *Runner) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}

// Process runs fn once per unit, each call as its own transaction retried
// until it commits. It returns the total number of retries observed across
// the batch. A domain error aborts that unit's transaction, cancels the
// remainder of the batch, and is returned wrapped in a UnitError; retries
// accumulated up to that point are still reported.
func Process[T any](ctx context.Context, r *Runner, units []T, fn func(tx *stm.Tx, unit T) error) (int64, error) {
	if len(units) == 0 {
		return 0, nil
	}

	retries := xsync.NewCounter()
	var err error
	switch r.backend {
	case BackendChunks:
		err = processChunks(ctx, r, units, fn, retries)
	case BackendPool:
		err = processPool(ctx, r, units, fn, retries)
	default:
		err = processIter(ctx, r, units, fn, retries)
	}
	return retries.Value(), err
}

// runUnit executes one unit under a retry-counting control policy. The
// policy never cancels, so the only non-nil outcome is a domain abort.
func runUnit[T any](fn func(*stm.Tx, T) error, unit T, retries *xsync.Counter) error {
	n := 0
	_, err := stm.WithControl(stm.Counting(&n, stm.RetryForever()), func(tx *stm.Tx) error {
		return fn(tx, unit)
	})
	retries.Add(int64(n))
	return err
}

func processIter[T any](ctx context.Context, r *Runner, units []T, fn func(*stm.Tx, T) error, retries *xsync.Counter) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, unit := range units {
		i, unit := i, unit
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := runUnit(fn, unit, retries); err != nil {
				return &UnitError{Index: i, Err: err}
			}
			return nil
		})
	}
	return g.Wait()
}

func processChunks[T any](ctx context.Context, r *Runner, units []T, fn func(*stm.Tx, T) error, retries *xsync.Counter) error {
	g, gctx := errgroup.WithContext(ctx)

	chunk := 1 + len(units)/r.workers
	for start := 0; start < len(units); start += chunk {
		start := start
		end := min(start+chunk, len(units))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				if err := runUnit(fn, units[i], retries); err != nil {
					return &UnitError{Index: i, Err: err}
				}
			}
			return nil
		})
	}
	return g.Wait()
}

func processPool[T any](ctx context.Context, r *Runner, units []T, fn func(*stm.Tx, T) error, retries *xsync.Counter) error {
	r.poolOnce.Do(func() {
		r.pool = NewPool(r.workers, r.bind, r.logger)
	})

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		batchErr error
	)
	for i, unit := range units {
		i, unit := i, unit
		wg.Add(1)
		submitErr := r.pool.Submit(ctx, func() {
			defer wg.Done()
			if err := runUnit(fn, unit, retries); err != nil {
				errOnce.Do(func() { batchErr = &UnitError{Index: i, Err: err} })
			}
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return submitErr
		}
	}
	wg.Wait()
	return batchErr
}
