// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/go-quote-guard/internal/logger"
)

// TickFunc is the work performed on every tick. ctx is cancelled when the
// worker is cancelled or stopped.
type TickFunc func(ctx context.Context)

// PeriodicWorker calls a [TickFunc] on a ticker until cancelled.
type PeriodicWorker struct {
	name     string
	interval time.Duration
	tick     TickFunc
	logger   *logger.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPeriodicWorker creates a PeriodicWorker that calls tick every interval.
// The worker is idle until Start is called.
func NewPeriodicWorker(name string, interval time.Duration, tick TickFunc, log *logger.Logger) *PeriodicWorker {
	return &PeriodicWorker{
		name:     name,
		interval: interval,
		tick:     tick,
		logger:   log,
	}
}

// Start implements Worker. It cancels any previously running loop, then
// launches a goroutine that calls tick every interval. The first tick fires
// one interval after Start. The goroutine exits when ctx is cancelled or
// Cancel/Stop is called.
func (w *PeriodicWorker) Start(ctx context.Context) {
	w.Cancel()

	w.mu.Lock()
	jobCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel
	w.wg.Add(1)
	w.mu.Unlock()

	w.logger.Debug().Str("worker", w.name).Dur("interval", w.interval).Msg("worker started")

	go func() {
		defer w.wg.Done()
		t := time.NewTicker(w.interval)
		defer t.Stop()

		for {
			select {
			case <-jobCtx.Done():
				return
			case <-t.C:
				w.tick(jobCtx)
			}
		}
	}()
}

// Cancel implements Worker. No-op when the worker is not running.
func (w *PeriodicWorker) Cancel() {
	w.mu.Lock()
	cancel := w.cancel
	w.cancel = nil
	w.mu.Unlock()

	if cancel != nil {
		cancel()
		w.logger.Debug().Str("worker", w.name).Msg("worker cancelled")
	}
}

// Stop implements Worker.
func (w *PeriodicWorker) Stop() {
	w.Cancel()
	w.wg.Wait()
}

// Running reports whether the worker has been started and not cancelled.
func (w *PeriodicWorker) Running() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cancel != nil
}
