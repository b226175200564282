package ledger

import (
	"context"
	"time"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/pkg/logger"
)

// Observer receives an event after every successful state change. It is
// called with the ledger lock held and must neither block nor call back into
// the ledger.
type Observer func(ctx context.Context, e model.Event)

// Option applies a configuration option to the Ledger.
type Option func(*Ledger)

// WithClock sets the time source for creation and round timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		if now != nil {
			l.now = now
		}
	}
}

// WithIDGenerator sets the generator for game, player, round and event ids.
func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		if newID != nil {
			l.newID = newID
		}
	}
}

// WithObserver registers the state change observer.
func WithObserver(o Observer) Option {
	return func(l *Ledger) {
		l.observer = o
	}
}

// WithLogger sets a custom logger for the ledger.
func WithLogger(lg logger.Logger) Option {
	return func(l *Ledger) {
		if lg != nil {
			l.logger = lg
		}
	}
}
