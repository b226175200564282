// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/internal/domain/points"
	"github.com/okian/playcard/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	GameDependencies
	CurrentDependencies
}

// GameDependencies covers game creation and history reads.
type GameDependencies interface {
	CreateGame(ctx context.Context, names []string) (*model.Game, error)
	ListGames(ctx context.Context) []*model.Game
	Game(ctx context.Context, id string) (*model.Game, error)
}

// CurrentDependencies covers operations on the current game.
type CurrentDependencies interface {
	CurrentGame(ctx context.Context) *model.Game
	RecordRound(ctx context.Context, pts map[string]points.Value) (*model.Game, error)
	Standings(ctx context.Context) ([]model.Standing, error)
	ResetCurrent(ctx context.Context)
}

// Server wires HTTP routes for the business API.
type Server struct {
	gamesHandler   *GamesHandler
	currentHandler *CurrentHandler
	healthHandler  *HealthHandler
	statsHandler   *StatsHandler
	infoHandler    *InfoHandler

	maxBodyBytes   int64
	allowedOrigins []string
	now            func() time.Time
	logger         logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...Option) *Server {
	s := &Server{
		maxBodyBytes:   defaultMaxBodyBytes,
		allowedOrigins: []string{"*"},
		now:            time.Now,
		logger:         logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.gamesHandler = NewGamesHandler(deps, s.logger)
	s.currentHandler = NewCurrentHandler(deps, s.logger)
	s.healthHandler = NewHealthHandler(s.now)
	s.statsHandler = NewStatsHandler(statsProvider)
	s.infoHandler = NewInfoHandler()
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	if mux == nil {
		panic("mux is nil")
	}

	mux.HandleFunc("GET /{$}", MetricsMiddleware(s.infoHandler.HandleRoot, "root"))
	mux.HandleFunc("GET /api", MetricsMiddleware(s.infoHandler.HandleCatalog, "api"))
	mux.HandleFunc("GET /health", MetricsMiddleware(s.healthHandler.HandleHealth, "health"))
	mux.HandleFunc("GET /metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))

	mux.HandleFunc("POST /api/games", MetricsMiddleware(s.gamesHandler.HandleCreate, "games_create"))
	mux.HandleFunc("GET /api/games", MetricsMiddleware(s.gamesHandler.HandleList, "games_list"))
	mux.HandleFunc("GET /api/games/{id}", MetricsMiddleware(s.gamesHandler.HandleGet, "games_get"))

	mux.HandleFunc("GET /api/games/current", MetricsMiddleware(s.currentHandler.HandleGet, "current_get"))
	mux.HandleFunc("DELETE /api/games/current", MetricsMiddleware(s.currentHandler.HandleReset, "current_reset"))
	mux.HandleFunc("POST /api/games/current/round", MetricsMiddleware(s.currentHandler.HandleRecordRound, "current_round"))
	mux.HandleFunc("GET /api/games/current/standings", MetricsMiddleware(s.currentHandler.HandleStandings, "current_standings"))

	// Anything else, including wrong methods on known paths.
	mux.HandleFunc("/", MetricsMiddleware(s.infoHandler.HandleNotFound, "not_found"))
}

// Handler wraps mux with the cross-cutting middleware chain.
func (s *Server) Handler(mux http.Handler) http.Handler {
	return RecoverMiddleware(
		CORSMiddleware(
			BodyLimitMiddleware(TrailingSlashMiddleware(mux), s.maxBodyBytes),
			s.allowedOrigins,
		),
		s.logger,
	)
}

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decodeBody decodes a JSON request body into dst. An empty body, or one not
// sent as application/json, decodes as an empty object.
func decodeBody(r *http.Request, dst any) error {
	if !isJSON(r) {
		return json.Unmarshal([]byte("{}"), dst)
	}
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, tooLarge.Limit)
		}
		return fmt.Errorf("%w: read body: %w", ErrBadRequest, err)
	}
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %w", ErrBadRequest, err)
	}
	return nil
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}

// writeDecodeError answers a body decoding failure.
func writeDecodeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrBodyTooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body")
}
