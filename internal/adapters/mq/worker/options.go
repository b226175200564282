// Package worker drains the event queue into a publisher.
package worker

import (
	"github.com/okian/playcard/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(lg logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if lg != nil {
			w.logger = lg
		}
	}
}

// PoolOption applies a configuration option to the Pool.
type PoolOption func(*Pool)

// WithWorkerCount sets the number of workers. One worker keeps events in
// ledger order; more workers trade ordering for throughput.
func WithWorkerCount(n int) PoolOption {
	return func(p *Pool) {
		if n > 0 {
			p.workerCount = n
		}
	}
}

// WithPoolLogger sets a custom logger for the pool and its workers.
func WithPoolLogger(lg logger.Logger) PoolOption {
	return func(p *Pool) {
		if lg != nil {
			p.logger = lg
		}
	}
}
