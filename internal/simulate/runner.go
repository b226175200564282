package simulate

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/internal/domain/points"
	"github.com/okian/playcard/pkg/logger"
)

// Result is the outcome of a simulation run.
type Result struct {
	Stats    Stats
	Games    []*model.Game
	Problems []string
}

// Run plays cfg.Games complete games against the server at cfg.BaseURL and
// verifies every total the server reports. It returns ErrMismatch when any
// check fails.
func Run(ctx context.Context, config *Config, lg logger.Logger) (*Result, error) {
	cfg := config.withDefaults()
	if lg == nil {
		lg = logger.Nop()
	}
	res := &Result{Stats: Stats{StartTime: time.Now()}}
	client := NewClient(cfg.BaseURL, cfg.Timeout, lg)
	gen := newGenerator(cfg.Seed)

	lg.Info(ctx, "starting playcard simulation",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("games", cfg.Games),
		logger.Int("players", cfg.Players),
		logger.Int("rounds", cfg.Rounds),
	)

	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	for i := 0; i < cfg.Games; i++ {
		g, err := playGame(ctx, client, gen, cfg, i, res, lg)
		if err != nil {
			res.Stats.RequestsFailed++
			return res, fmt.Errorf("game %d: %w", i+1, err)
		}
		res.Games = append(res.Games, g)
	}

	if err := verifyHistory(ctx, client, res); err != nil {
		res.Stats.RequestsFailed++
		return res, err
	}

	if cfg.Reset {
		if err := client.ResetCurrent(ctx); err != nil {
			res.Stats.RequestsFailed++
			return res, fmt.Errorf("reset current game: %w", err)
		}
		cur, err := client.CurrentGame(ctx)
		if err != nil {
			res.Stats.RequestsFailed++
			return res, fmt.Errorf("read current game after reset: %w", err)
		}
		if cur != nil {
			res.Problems = append(res.Problems, fmt.Sprintf("current game %s still set after reset", cur.ID))
		}
	}

	res.Stats.EndTime = time.Now()
	res.Stats.Duration = res.Stats.EndTime.Sub(res.Stats.StartTime)
	res.Stats.Mismatches = len(res.Problems)

	if cfg.Output != nil {
		if err := Render(cfg.Output, res); err != nil {
			lg.Warn(ctx, "failed to render report", logger.Error(err))
		}
	}

	for _, p := range res.Problems {
		lg.Error(ctx, "verification failed", logger.String("problem", p))
	}
	if len(res.Problems) > 0 {
		return res, fmt.Errorf("%w: %d problems", ErrMismatch, len(res.Problems))
	}
	lg.Info(ctx, "simulation completed successfully",
		logger.Int("games", res.Stats.GamesCreated),
		logger.Int("rounds", res.Stats.RoundsRecorded),
		logger.String("duration", res.Stats.Duration.String()),
	)
	return res, nil
}

// playGame creates one game, records its rounds and checks the totals after
// every round.
func playGame(ctx context.Context, client *Client, gen *generator, cfg Config, index int, res *Result, lg logger.Logger) (*model.Game, error) {
	names := gen.roster(index, cfg.Players)
	g, err := client.CreateGame(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("create game: %w", err)
	}
	res.Stats.GamesCreated++
	res.Problems = append(res.Problems, verifyRoster(g, names)...)

	ids := make([]string, len(g.Players))
	expected := make(map[string]int64, len(g.Players))
	for i, p := range g.Players {
		ids[i] = p.ID
		expected[p.ID] = 0
	}

	for r := 0; r < cfg.Rounds; r++ {
		pts := gen.round(ids)
		for id, v := range pts {
			if _, known := expected[id]; !known {
				res.Stats.UnknownEntries++
				continue
			}
			expected[id] = points.Add(expected[id], v.Int())
			res.Stats.PointEntries++
		}

		g, err = client.RecordRound(ctx, pts)
		if err != nil {
			return nil, fmt.Errorf("record round %d: %w", r+1, err)
		}
		res.Stats.RoundsRecorded++
		if len(g.Rounds) != r+1 {
			res.Problems = append(res.Problems, fmt.Sprintf("game %s has %d rounds after recording %d", g.ID, len(g.Rounds), r+1))
		}
		res.Problems = append(res.Problems, verifyTotals(g, expected)...)

		if cfg.Verbose {
			lg.Debug(ctx, "round recorded",
				logger.String("game_id", g.ID),
				logger.Int("round", r+1),
				logger.Int("entries", len(pts)),
			)
		}
	}

	st, err := client.Standings(ctx)
	if err != nil {
		return nil, fmt.Errorf("standings: %w", err)
	}
	res.Problems = append(res.Problems, verifyStandings(st, expected)...)
	return g, nil
}

// verifyHistory checks that every game played is still listed with its
// final totals, in creation order.
func verifyHistory(ctx context.Context, client *Client, res *Result) error {
	games, err := client.ListGames(ctx)
	if err != nil {
		return fmt.Errorf("list games: %w", err)
	}
	index := make(map[string]int, len(games))
	for i, g := range games {
		index[g.ID] = i
	}

	last := -1
	for _, played := range res.Games {
		i, ok := index[played.ID]
		if !ok {
			res.Problems = append(res.Problems, fmt.Sprintf("%v: %s", ErrMissingRun, played.ID))
			continue
		}
		if i < last {
			res.Problems = append(res.Problems, fmt.Sprintf("game %s listed out of creation order", played.ID))
		}
		last = i

		expected := make(map[string]int64, len(played.Players))
		for _, p := range played.Players {
			expected[p.ID] = p.TotalPoints
		}
		listed := games[i]
		res.Problems = append(res.Problems, verifyTotals(&listed, expected)...)
	}
	return nil
}
