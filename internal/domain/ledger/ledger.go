// Package ledger owns the games of a scorekeeping session and the pointer to
// the current game. All operations are serialized by one mutex and return deep
// copies, so results can be encoded while the ledger keeps changing.
package ledger

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/internal/domain/points"
	"github.com/okian/playcard/pkg/logger"
	"github.com/okian/playcard/pkg/metrics"
)

// MinPlayers is the smallest roster a game can be created with.
const MinPlayers = 2

// Store is the game collection the ledger appends to. Games are never removed.
type Store interface {
	Append(ctx context.Context, g *model.Game) error
	Get(ctx context.Context, id string) (*model.Game, error)
	List(ctx context.Context) []*model.Game
	Count(ctx context.Context) int
}

// Stats is a point-in-time summary of the ledger.
type Stats struct {
	Games          int    `json:"games"`
	CurrentGameID  string `json:"currentGameId,omitempty"`
	CurrentPlayers int    `json:"currentPlayers"`
	CurrentRounds  int    `json:"currentRounds"`
}

// Ledger applies game creation and round recording to a Store.
type Ledger struct {
	mu      sync.Mutex
	store   Store
	current *model.Game

	now      func() time.Time
	newID    func() string
	observer Observer
	logger   logger.Logger
}

// New creates a ledger over store.
func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		now:    time.Now,
		newID:  uuid.NewString,
		logger: logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// CreateGame starts a new game with one player per name, in the given order,
// and makes it the current game. Names are trimmed. At least MinPlayers
// names are required; on failure nothing changes.
func (l *Ledger) CreateGame(ctx context.Context, names []string) (*model.Game, error) {
	if len(names) < MinPlayers {
		metrics.RecordValidationFailure("create_game")
		return nil, fmt.Errorf("%w: at least %d players required, got %d", ErrValidation, MinPlayers, len(names))
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	g := &model.Game{
		ID:        l.newID(),
		Players:   make([]model.Player, len(names)),
		Rounds:    []model.Round{},
		CreatedAt: model.NewTimestamp(l.now()),
	}
	for i, name := range names {
		g.Players[i] = model.Player{ID: l.newID(), Name: strings.TrimSpace(name)}
	}

	if err := l.store.Append(ctx, g); err != nil {
		return nil, fmt.Errorf("store game: %w", err)
	}
	l.current = g

	metrics.RecordGameCreated()
	metrics.UpdateGamesTotal(l.store.Count(ctx))
	metrics.UpdateCurrentGamePlayers(len(g.Players))
	l.logger.Info(ctx, "game created",
		logger.String("game_id", g.ID),
		logger.Int("players", len(g.Players)),
	)

	snapshot := g.Clone()
	l.emit(ctx, model.EventGameCreated, g.ID, "", snapshot)
	return snapshot, nil
}

// CurrentGame returns the current game, or nil when there is none.
func (l *Ledger) CurrentGame(_ context.Context) *model.Game {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.current.Clone()
}

// RecordRound appends a round to the current game and adds each known
// player's coerced delta to their total. Entries for unknown player ids are
// kept in the round but change nothing. A nil map is not a valid round.
func (l *Ledger) RecordRound(ctx context.Context, pts map[string]points.Value) (*model.Game, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return nil, fmt.Errorf("%w: no active game", ErrNotFound)
	}
	if pts == nil {
		metrics.RecordValidationFailure("record_round")
		return nil, fmt.Errorf("%w: points must be a mapping of player id to value", ErrValidation)
	}

	g := l.current
	round := model.Round{
		ID:        l.newID(),
		Points:    make(map[string]points.Value, len(pts)),
		Timestamp: model.NewTimestamp(l.now()),
	}
	for id, v := range pts {
		round.Points[id] = v.Clone()
	}
	g.Rounds = append(g.Rounds, round)

	var applied, unknown int
	for id, v := range pts {
		p, ok := g.Player(id)
		if !ok {
			unknown++
			continue
		}
		p.TotalPoints = points.Add(p.TotalPoints, v.Int())
		applied++
	}

	metrics.RecordRoundRecorded()
	metrics.RecordPointEntries(applied, unknown)
	l.logger.Debug(ctx, "round recorded",
		logger.String("game_id", g.ID),
		logger.String("round_id", round.ID),
		logger.Int("applied", applied),
		logger.Int("unknown", unknown),
	)

	snapshot := g.Clone()
	l.emit(ctx, model.EventRoundRecorded, g.ID, round.ID, snapshot)
	return snapshot, nil
}

// ListGames returns every game ever created, in creation order.
func (l *Ledger) ListGames(ctx context.Context) []*model.Game {
	l.mu.Lock()
	defer l.mu.Unlock()

	games := l.store.List(ctx)
	out := make([]*model.Game, len(games))
	for i, g := range games {
		out[i] = g.Clone()
	}
	return out
}

// Game returns the game with the given id, current or historical.
func (l *Ledger) Game(ctx context.Context, id string) (*model.Game, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	g, err := l.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: game %s: %w", ErrNotFound, id, err)
	}
	return g.Clone(), nil
}

// ResetCurrent clears the current game pointer. The game stays in the
// history. Calling it with no current game is a no-op.
func (l *Ledger) ResetCurrent(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return
	}
	g := l.current
	l.current = nil

	metrics.RecordCurrentReset()
	metrics.UpdateCurrentGamePlayers(0)
	l.logger.Info(ctx, "current game reset", logger.String("game_id", g.ID))

	l.emit(ctx, model.EventCurrentReset, g.ID, "", nil)
}

// Standings ranks the players of the current game.
func (l *Ledger) Standings(_ context.Context) ([]model.Standing, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.current == nil {
		return nil, fmt.Errorf("%w: no active game", ErrNotFound)
	}
	return RankPlayers(l.current.Players), nil
}

// Stats summarizes the ledger.
func (l *Ledger) Stats(ctx context.Context) Stats {
	l.mu.Lock()
	defer l.mu.Unlock()

	s := Stats{Games: l.store.Count(ctx)}
	if l.current != nil {
		s.CurrentGameID = l.current.ID
		s.CurrentPlayers = len(l.current.Players)
		s.CurrentRounds = len(l.current.Rounds)
	}
	return s
}

func (l *Ledger) emit(ctx context.Context, kind model.EventKind, gameID, roundID string, g *model.Game) {
	if l.observer == nil {
		return
	}
	l.observer(ctx, model.Event{
		ID:         l.newID(),
		Kind:       kind,
		GameID:     gameID,
		RoundID:    roundID,
		OccurredAt: model.NewTimestamp(l.now()),
		Game:       g.Clone(),
	})
}
