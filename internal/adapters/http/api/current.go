package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/playcard/internal/domain/ledger"
	"github.com/okian/playcard/internal/domain/points"
	"github.com/okian/playcard/pkg/logger"
)

// Error messages returned by current game routes.
const (
	msgNoActiveGame   = "No active game"
	msgInvalidPoints  = "Invalid points data"
	msgAddRoundFailed = "Failed to add round"
)

// roundRequest mirrors the OpenAPI schema for POST /api/games/current/round.
type roundRequest struct {
	Points json.RawMessage `json:"points"`
}

// pointsMap decodes the points object. Anything that is not a JSON object
// yields nil, which the ledger rejects once it has checked for a current game.
func (req roundRequest) pointsMap() map[string]points.Value {
	raw := req.Points
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var pts map[string]points.Value
	if err := json.Unmarshal(raw, &pts); err != nil {
		return nil
	}
	return pts
}

// CurrentHandler handles requests on the current game.
type CurrentHandler struct {
	deps   CurrentDependencies
	logger logger.Logger
}

// NewCurrentHandler creates a new current game handler.
func NewCurrentHandler(deps CurrentDependencies, lg logger.Logger) *CurrentHandler {
	return &CurrentHandler{deps: deps, logger: lg}
}

// HandleGet handles GET /api/games/current requests. No current game
// encodes as null.
func (h *CurrentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.deps.CurrentGame(r.Context()))
}

// HandleRecordRound handles POST /api/games/current/round requests.
func (h *CurrentHandler) HandleRecordRound(w http.ResponseWriter, r *http.Request) {
	const op = "api.record_round"
	var req roundRequest
	if err := decodeBody(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	game, err := h.deps.RecordRound(r.Context(), req.pointsMap())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, game)
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNoActiveGame)
	case errors.Is(err, ledger.ErrValidation):
		writeError(w, http.StatusBadRequest, msgInvalidPoints)
	default:
		h.logger.Error(r.Context(), "record round failed", logger.Error(WrapKind(op, ErrInternal, err)))
		writeError(w, http.StatusInternalServerError, msgAddRoundFailed)
	}
}

// HandleStandings handles GET /api/games/current/standings requests.
func (h *CurrentHandler) HandleStandings(w http.ResponseWriter, r *http.Request) {
	const op = "api.standings"
	standings, err := h.deps.Standings(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, standings)
	case errors.Is(err, ledger.ErrNotFound):
		writeError(w, http.StatusNotFound, msgNoActiveGame)
	default:
		h.logger.Error(r.Context(), "standings failed", logger.Error(Wrap(op, err)))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// HandleReset handles DELETE /api/games/current requests.
func (h *CurrentHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.deps.ResetCurrent(r.Context())
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
