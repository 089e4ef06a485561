package async

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"github.com/mwapio/console/pkg/observability"
)

// Pool runs submitted tasks on a fixed number of workers, each task
// bounded by a per-task timeout.
type Pool struct {
	workers  int
	taskName string
	timeout  time.Duration
	logger   *observability.Logger

	workCh chan func(context.Context) error
	doneCh chan struct{}
	errCh  chan error
	ctx    context.Context
	cancel context.CancelFunc

	closeOnce    sync.Once
	shutdownOnce sync.Once
}

// NewPool starts workers goroutines processing submitted tasks.
// taskName labels log lines and panic reports.
func NewPool(ctx context.Context, workers int, taskName string, timeout time.Duration, logger *observability.Logger) *Pool {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = observability.NewLogger(observability.InfoLevel, nil)
	}
	ctx, cancel := context.WithCancel(ctx)

	p := &Pool{
		workers:  workers,
		taskName: taskName,
		timeout:  timeout,
		logger:   logger,
		workCh:   make(chan func(context.Context) error, workers*2),
		doneCh:   make(chan struct{}),
		errCh:    make(chan error, workers*10),
		ctx:      ctx,
		cancel:   cancel,
	}

	go func() {
		var wg sync.WaitGroup
		for i := 0; i < workers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				p.worker()
			}()
		}
		wg.Wait()
		close(p.doneCh)
	}()

	return p
}

// Submit queues a task. It fails once the pool is shut down.
func (p *Pool) Submit(fn func(context.Context) error) error {
	select {
	case <-p.doneCh:
		return fmt.Errorf("worker pool shut down")
	default:
	}

	select {
	case p.workCh <- fn:
		return nil
	case <-p.doneCh:
		return fmt.Errorf("worker pool shut down")
	}
}

// Shutdown stops accepting tasks, lets workers drain the queue, and
// waits up to timeout for them to finish.
func (p *Pool) Shutdown(timeout time.Duration) error {
	var err error
	p.shutdownOnce.Do(func() {
		p.closeWork()
		select {
		case <-p.doneCh:
		case <-time.After(timeout):
			err = fmt.Errorf("worker pool shutdown timed out after %v", timeout)
		}
		p.cancel()
	})
	return err
}

// Errors returns the channel carrying task errors. It is buffered;
// overflow is logged and dropped.
func (p *Pool) Errors() <-chan error {
	return p.errCh
}

func (p *Pool) closeWork() {
	p.closeOnce.Do(func() { close(p.workCh) })
}

func (p *Pool) worker() {
	for {
		select {
		case <-p.ctx.Done():
			return
		case fn, ok := <-p.workCh:
			if !ok {
				return
			}
			p.run(fn)
		}
	}
}

// run executes one task with its own timeout and panic recovery
func (p *Pool) run(fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(p.ctx, p.timeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			p.logger.WithFields(map[string]interface{}{
				"task":  p.taskName,
				"panic": fmt.Sprint(r),
			}).Error("task panicked\n" + string(debug.Stack()))
			p.report(fmt.Errorf("panic in %s: %v", p.taskName, r))
		}
	}()

	if err := fn(ctx); err != nil {
		p.report(err)
	}
}

func (p *Pool) report(err error) {
	select {
	case p.errCh <- err:
	default:
		p.logger.WithError(err).Warn("error channel full, dropping task error")
	}
}

// Batch fans items out over a worker pool and returns every error the
// tasks produced, in no particular order.
func Batch[T any](ctx context.Context, items []T, workers int, taskName string, timeout time.Duration,
	logger *observability.Logger, fn func(context.Context, T) error) []error {

	pool := NewPool(ctx, workers, taskName, timeout, logger)
	defer pool.Shutdown(timeout)

	for _, item := range items {
		item := item
		if err := pool.Submit(func(ctx context.Context) error {
			return fn(ctx, item)
		}); err != nil {
			return []error{err}
		}
	}

	pool.closeWork()
	<-pool.doneCh

	var errs []error
	for {
		select {
		case err := <-pool.errCh:
			errs = append(errs, err)
		default:
			return errs
		}
	}
}
