package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/playcard/internal/domain/ledger"
	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/pkg/logger"
)

// Error messages returned by game routes.
const (
	msgTooFewPlayers    = "At least 2 players required"
	msgPlayerNames      = "Player names must be strings"
	msgCreateGameFailed = "Failed to create game"
	msgGameNotFound     = "Game not found"
)

// createGameRequest mirrors the OpenAPI schema for POST /api/games.
type createGameRequest struct {
	Players json.RawMessage `json:"players"`
}

// names returns the roster. A missing or non-array players field yields
// ErrBadRequest; a non-string entry yields errPlayerName.
func (req createGameRequest) names() ([]string, error) {
	var items []json.RawMessage
	if len(req.Players) == 0 || json.Unmarshal(req.Players, &items) != nil || items == nil {
		return nil, ErrBadRequest
	}
	names := make([]string, len(items))
	for i, item := range items {
		if string(item) == "null" || json.Unmarshal(item, &names[i]) != nil {
			return nil, errPlayerName
		}
	}
	return names, nil
}

var errPlayerName = errors.New("player name is not a string")

// GamesHandler handles game creation and history requests.
type GamesHandler struct {
	deps   GameDependencies
	logger logger.Logger
}

// NewGamesHandler creates a new games handler.
func NewGamesHandler(deps GameDependencies, lg logger.Logger) *GamesHandler {
	return &GamesHandler{deps: deps, logger: lg}
}

// HandleCreate handles POST /api/games requests.
func (h *GamesHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	const op = "api.create_game"
	var req createGameRequest
	if err := decodeBody(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	names, err := req.names()
	if err != nil {
		if errors.Is(err, errPlayerName) {
			writeError(w, http.StatusBadRequest, msgPlayerNames)
			return
		}
		writeError(w, http.StatusBadRequest, msgTooFewPlayers)
		return
	}

	game, err := h.deps.CreateGame(r.Context(), names)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, game)
	case errors.Is(err, ledger.ErrValidation):
		writeError(w, http.StatusBadRequest, msgTooFewPlayers)
	default:
		h.logger.Error(r.Context(), "create game failed", logger.Error(WrapKind(op, ErrInternal, err)))
		writeError(w, http.StatusInternalServerError, msgCreateGameFailed)
	}
}

// HandleList handles GET /api/games requests.
func (h *GamesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	games := h.deps.ListGames(r.Context())
	if games == nil {
		games = []*model.Game{}
	}
	writeJSON(w, http.StatusOK, games)
}

// HandleGet handles GET /api/games/{id} requests.
func (h *GamesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_game"
	game, err := h.deps.Game(r.Context(), r.PathValue("id"))
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, game)
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, msgGameNotFound)
	default:
		h.logger.Error(r.Context(), "get game failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}
