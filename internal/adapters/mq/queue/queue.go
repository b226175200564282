// Package queue buffers ledger events between the ledger and the dispatcher.
//
// Enqueue never blocks: the ledger calls it while holding its lock, so a full
// queue drops the event instead of stalling requests.
package queue

import (
	"context"
	"sync"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/pkg/metrics"
)

const defaultQueueCapacity = 1024

// Event is the payload flowing through the queue.
type Event = model.Event

// Queue provides non-blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// TryEnqueue adds an event. It returns ErrFull or ErrClosed when the
	// event was not accepted.
	TryEnqueue(ctx context.Context, e Event) error

	// Dequeue returns a channel that yields events until the queue is closed
	// and drained, or ctx is canceled.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of queued events.
	Len(ctx context.Context) int

	// Close stops accepting events. Buffered events are still delivered.
	Close() error

	// IsClosed reports whether Close has been called.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events   chan Event
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{capacity: defaultQueueCapacity}
	for _, opt := range opts {
		opt(q)
	}
	q.events = make(chan Event, q.capacity)

	metrics.UpdateEventQueueCapacity(q.capacity)
	metrics.UpdateEventQueueSize(0)
	return q
}

// TryEnqueue implements Queue.
func (q *InMemoryQueue) TryEnqueue(ctx context.Context, e Event) error { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		metrics.RecordEventDropped("closed")
		return ErrClosed
	}

	select {
	case q.events <- e:
		metrics.RecordEventEnqueued()
		metrics.UpdateEventQueueSize(len(q.events))
		return nil
	case <-ctx.Done():
		metrics.RecordEventDropped("context_cancelled")
		return ctx.Err()
	default:
		metrics.RecordEventDropped("queue_full")
		return ErrFull
	}
}

// Enqueue is TryEnqueue reporting only success.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) bool { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	return q.TryEnqueue(ctx, e) == nil
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(ctx context.Context) <-chan Event {
	out := make(chan Event)
	go func() {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return
			case e, ok := <-q.events:
				if !ok {
					return
				}
				metrics.UpdateEventQueueSize(len(q.events))
				select {
				case out <- e:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}

// Len implements Queue.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.events)
	metrics.UpdateEventQueueSize(size)
	return size
}

// Capacity returns the configured capacity.
func (q *InMemoryQueue) Capacity() int {
	return q.capacity
}

// Close implements Queue.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}
	close(q.events)
	q.closed = true
	return nil
}

// IsClosed implements Queue.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
