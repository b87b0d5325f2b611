package workers

import "context"

// Workers starts and stops a fixed group of workers together.
type Workers struct {
	workers []Worker
}

// New groups workers; they are started and cancelled in the given order.
func New(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Start starts every worker with ctx.
func (w *Workers) Start(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Start(ctx)
	}
}

// Cancel signals every worker to exit without waiting.
func (w *Workers) Cancel() {
	for _, worker := range w.workers {
		worker.Cancel()
	}
}

// Stop cancels every worker and waits for all of them to exit.
func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
