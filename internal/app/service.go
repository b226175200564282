// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/okian/playcard/internal/adapters/mq/publisher"
	eventqueue "github.com/okian/playcard/internal/adapters/mq/queue"
	workerpool "github.com/okian/playcard/internal/adapters/mq/worker"
	repository "github.com/okian/playcard/internal/adapters/repository"
	"github.com/okian/playcard/internal/domain/ledger"
	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/internal/domain/points"
	"github.com/okian/playcard/pkg/logger"
	"github.com/okian/playcard/pkg/metrics"
)

const (
	defaultQueueSize   = 1024
	defaultWorkerCount = 1
	stopTimeout        = 10 * time.Second
)

// ErrStopped is returned by Start after the service has been stopped.
var ErrStopped = errors.New("service stopped")

// Service implements the API dependencies for the scorekeeping ledger.
type Service struct {
	mu sync.RWMutex

	// Core components
	ledger     *ledger.Ledger
	store      ledger.Store
	eventQueue *eventqueue.InMemoryQueue
	publisher  publisher.Publisher
	workerPool *workerpool.Pool

	// Configuration
	workerCount int
	queueSize   int
	ledgerOpts  []ledger.Option
	startedAt   time.Time
	stopTimeout time.Duration

	// State
	started bool
	stopped bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of event dispatcher workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the capacity of the event queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(lg logger.Logger) Option {
	return func(s *Service) {
		if lg != nil {
			s.logger = lg
		}
	}
}

// WithPublisher sets where ledger events are delivered. The default logs them.
func WithPublisher(p publisher.Publisher) Option {
	return func(s *Service) {
		if p != nil {
			s.publisher = p
		}
	}
}

// WithStore sets the game store.
func WithStore(store ledger.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithLedgerOptions passes extra options (clock, id generator) to the ledger.
func WithLedgerOptions(opts ...ledger.Option) Option {
	return func(s *Service) {
		s.ledgerOpts = append(s.ledgerOpts, opts...)
	}
}

// New constructs a Service. The ledger is usable immediately; events are
// buffered until Start launches the dispatcher.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount: defaultWorkerCount,
		queueSize:   defaultQueueSize,
		stopTimeout: stopTimeout,
		logger:      logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
	}
	if s.publisher == nil {
		s.publisher = publisher.NewLogPublisher(s.logger.Named("events"))
	}
	s.eventQueue = eventqueue.NewInMemoryQueue(eventqueue.WithCapacity(s.queueSize))

	ledgerOpts := append([]ledger.Option{
		ledger.WithLogger(s.logger.Named("ledger")),
		ledger.WithObserver(s.onEvent),
	}, s.ledgerOpts...)
	s.ledger = ledger.New(s.store, ledgerOpts...)
	return s
}

// onEvent runs under the ledger lock and must not block.
func (s *Service) onEvent(ctx context.Context, e model.Event) {
	if err := s.eventQueue.TryEnqueue(context.WithoutCancel(ctx), e); err != nil {
		s.logger.Warn(ctx, "ledger event dropped",
			logger.String("kind", string(e.Kind)),
			logger.String("game_id", e.GameID),
			logger.Error(err),
		)
	}
}

// Start launches the event dispatcher. Calling it twice is a no-op.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return ErrStopped
	}
	if s.started {
		return nil
	}

	s.logger.Info(ctx, "starting playcard service...")
	s.workerPool = workerpool.NewPool(s.eventQueue, s.publisher,
		workerpool.WithWorkerCount(s.workerCount),
		workerpool.WithPoolLogger(s.logger.Named("dispatcher")),
	)
	// Workers run until the queue is closed by Stop, not until ctx ends.
	s.workerPool.Start(context.WithoutCancel(ctx))

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "playcard service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
	)
	return nil
}

// Stop drains pending events and shuts the dispatcher down. The ledger keeps
// answering reads, but new events are dropped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), s.stopTimeout)
	defer cancel()

	s.logger.Info(ctx, "stopping playcard service...")
	if err := s.workerPool.Shutdown(ctx); err != nil {
		s.logger.Error(ctx, "dispatcher shutdown failed", logger.Error(err))
	}
	if c, ok := s.publisher.(interface{ Close() error }); ok {
		if err := c.Close(); err != nil {
			s.logger.Error(ctx, "publisher close failed", logger.Error(err))
		}
	}

	s.started = false
	s.stopped = true
	s.logger.Info(ctx, "playcard service stopped")
}

func observe(op string, start time.Time) {
	metrics.RecordLedgerOperationLatency(op, float64(time.Since(start).Microseconds())/1000)
}

// CreateGame starts a new current game.
func (s *Service) CreateGame(ctx context.Context, names []string) (*model.Game, error) {
	defer observe("create_game", time.Now())
	return s.ledger.CreateGame(ctx, names)
}

// CurrentGame returns the current game or nil.
func (s *Service) CurrentGame(ctx context.Context) *model.Game {
	defer observe("current_game", time.Now())
	return s.ledger.CurrentGame(ctx)
}

// RecordRound records a round against the current game.
func (s *Service) RecordRound(ctx context.Context, pts map[string]points.Value) (*model.Game, error) {
	defer observe("record_round", time.Now())
	return s.ledger.RecordRound(ctx, pts)
}

// ListGames returns every game in creation order.
func (s *Service) ListGames(ctx context.Context) []*model.Game {
	defer observe("list_games", time.Now())
	return s.ledger.ListGames(ctx)
}

// Game returns one game by id.
func (s *Service) Game(ctx context.Context, id string) (*model.Game, error) {
	defer observe("get_game", time.Now())
	return s.ledger.Game(ctx, id)
}

// Standings ranks the current game's players.
func (s *Service) Standings(ctx context.Context) ([]model.Standing, error) {
	defer observe("standings", time.Now())
	return s.ledger.Standings(ctx)
}

// ResetCurrent clears the current game.
func (s *Service) ResetCurrent(ctx context.Context) {
	defer observe("reset_current", time.Now())
	s.ledger.ResetCurrent(ctx)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	ls := s.ledger.Stats(ctx)
	stats := map[string]interface{}{
		"started":        s.started,
		"workerCount":    s.workerCount,
		"queueCapacity":  s.eventQueue.Capacity(),
		"queueLength":    s.eventQueue.Len(ctx),
		"games":          ls.Games,
		"currentGameId":  ls.CurrentGameID,
		"currentPlayers": ls.CurrentPlayers,
		"currentRounds":  ls.CurrentRounds,
	}
	if s.started {
		stats["uptimeSeconds"] = int64(time.Since(s.startedAt).Seconds())
	}

	metrics.UpdateGamesTotal(ls.Games)
	metrics.UpdateCurrentGamePlayers(ls.CurrentPlayers)
	return stats
}
