package worker

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/pkg/logger"
	"github.com/okian/playcard/pkg/metrics"
)

const (
	defaultWorkerCount  = 1
	poolShutdownTimeout = 30 * time.Second
)

// Event abstracts what workers read off the queue.
type Event = model.Event

// Publisher delivers events to their sink.
type Publisher interface {
	Publish(ctx context.Context, e model.Event) error
}

// Queue defines how workers receive events.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Event
}

// Worker processes events until its queue is drained.
type Worker interface {
	// Run starts the worker loop until the queue closes or ctx is canceled.
	Run(ctx context.Context)

	// Shutdown waits for Run to return.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker publishes each dequeued event.
type InMemoryWorker struct {
	queue     Queue
	publisher Publisher
	name      string

	done chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(queue Queue, publisher Publisher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:     queue,
		publisher: publisher,
		name:      "worker",
		done:      make(chan struct{}),
		logger:    logger.Nop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.Named(w.name)
	return w
}

// Run starts the worker loop. It returns once the queue channel is closed,
// so closing the queue drains every buffered event first.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	for event := range w.queue.Dequeue(ctx) {
		if err := w.processEvent(ctx, event); err != nil {
			w.logger.Error(ctx, "error publishing event", logger.Error(err))
		}
	}
}

// Shutdown waits for the worker to finish or ctx to expire.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

func (w *InMemoryWorker) processEvent(ctx context.Context, event Event) error { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	start := time.Now()
	if err := w.publisher.Publish(ctx, event); err != nil {
		metrics.RecordEventPublishError()
		metrics.RecordErrorByComponent("worker", "publish_error")
		return fmt.Errorf("publish event %s (%s): %w", event.ID, event.Kind, err)
	}
	metrics.RecordEventPublished(float64(time.Since(start).Milliseconds()))
	return nil
}

// Pool runs several workers over one queue.
type Pool struct {
	workers     []*InMemoryWorker
	workerCount int
	queue       Queue
	publisher   Publisher

	startOnce sync.Once
	logger    logger.Logger
}

// NewPool creates a new worker pool.
func NewPool(queue Queue, publisher Publisher, opts ...PoolOption) *Pool {
	p := &Pool{
		workerCount: defaultWorkerCount,
		queue:       queue,
		publisher:   publisher,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.workers = make([]*InMemoryWorker, p.workerCount)
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(queue, publisher,
			WithName("worker-"+strconv.Itoa(i)),
			WithLogger(p.logger),
		)
	}

	metrics.UpdateDispatcherWorkers(p.workerCount)
	return p
}

// Size returns the number of workers.
func (p *Pool) Size() int {
	return len(p.workers)
}

// Start starts all workers in the pool. Calling it again is a no-op.
func (p *Pool) Start(ctx context.Context) {
	p.startOnce.Do(func() {
		for _, w := range p.workers {
			go w.Run(ctx)
		}
		p.logger.Info(ctx, "dispatcher started", logger.Int("workers", len(p.workers)))
	})
}

// Shutdown closes the queue and waits for the workers to drain it.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var timedOut int
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			timedOut++
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
		}
	}
	metrics.UpdateDispatcherWorkers(0)
	if timedOut > 0 {
		return fmt.Errorf("%d workers did not stop: %w", timedOut, shutdownCtx.Err())
	}
	return nil
}
