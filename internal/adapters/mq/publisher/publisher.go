// Package publisher delivers ledger events to their sinks.
package publisher

import (
	"context"
	"errors"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/pkg/logger"
)

// Publisher delivers one event. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e model.Event) error
}

// LogPublisher writes each event to the log.
type LogPublisher struct {
	logger logger.Logger
}

// NewLogPublisher creates a publisher that logs events at info level.
func NewLogPublisher(lg logger.Logger) *LogPublisher {
	if lg == nil {
		lg = logger.Nop()
	}
	return &LogPublisher{logger: lg}
}

// Publish implements Publisher.
func (p *LogPublisher) Publish(ctx context.Context, e model.Event) error { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	fields := []logger.Field{
		logger.String("event_id", e.ID),
		logger.String("kind", string(e.Kind)),
		logger.String("game_id", e.GameID),
	}
	if e.RoundID != "" {
		fields = append(fields, logger.String("round_id", e.RoundID))
	}
	p.logger.Info(ctx, "ledger event", fields...)
	return nil
}

// Multi fans an event out to several publishers. Every publisher is called
// even when an earlier one fails.
type Multi []Publisher

// Publish implements Publisher.
func (m Multi) Publish(ctx context.Context, e model.Event) error { //nolint:gocritic // hugeParam: Event is passed by value for channel semantics
	var errs []error
	for _, p := range m {
		if p == nil {
			continue
		}
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every publisher that holds a resource.
func (m Multi) Close() error {
	var errs []error
	for _, p := range m {
		if c, ok := p.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
