package workers

import (
	"context"
	"sync"
	"time"
)

// Workers runs a fixed set of workers, each on its own goroutine.
type Workers struct {
	workers []Worker

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New returns an idle aggregate of the given workers.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start stops any previous run, then launches every worker. The workers
// exit when ctx is cancelled or Stop is called.
func (w *Workers) Start(ctx context.Context) {
	w.Stop()

	w.mu.Lock()
	runCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(len(w.workers))
	w.mu.Unlock()

	for _, worker := range w.workers {
		go func() {
			defer w.wg.Done()
			worker.Run(runCtx)
		}()
	}
}

// Stop cancels the running workers and blocks until all of them have
// returned. Safe to call when nothing is running.
func (w *Workers) Stop() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	w.wg.Wait()
}

// Every returns a worker that calls fn on a ticker. If interval is zero or
// negative it defaults to 5 seconds.
func Every(interval time.Duration, fn func(ctx context.Context)) Worker {
	if interval <= 0 {
		interval = 5 * time.Second
	}

	return WorkerFunc(func(ctx context.Context) {
		t := time.NewTicker(interval)
		defer t.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				fn(ctx)
			}
		}
	})
}
