// Package workers provides abstractions for managing and running
// background workers in the application.
// It defines the Worker interface, a ticker-driven PeriodicWorker and a
// Workers aggregate that starts and stops several workers in a unified way.
package workers

import "context"

// Worker is the interface that must be implemented by any background worker.
//
// Start launches the worker in the background and returns immediately.
// Cancel signals the worker to exit without waiting for it, so it is safe
// to call from inside the worker's own callback. Stop cancels and blocks
// until the worker's goroutine has exited.
type Worker interface {
	Start(ctx context.Context)
	Cancel()
	Stop()
}
