package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/internal/domain/points"
	"github.com/okian/playcard/pkg/logger"
)

// Client is a small JSON client for the playcard API.
type Client struct {
	baseURL string
	client  *http.Client
	logger  logger.Logger
}

// NewClient creates a client with the given request timeout.
func NewClient(baseURL string, timeout time.Duration, lg logger.Logger) *Client {
	if lg == nil {
		lg = logger.Nop()
	}
	return &Client{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
		logger:  lg,
	}
}

// do sends a request and decodes a JSON response into out when out is not
// nil. Any status other than want is an ErrStatus carrying the body.
func (c *Client) do(ctx context.Context, method, path string, body any, want int, out any) error {
	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.logger.Error(ctx, "failed to close response body", logger.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s %s: read body: %w", method, path, err)
	}
	if resp.StatusCode != want {
		return fmt.Errorf("%w: %s %s returned %d: %s", ErrStatus, method, path, resp.StatusCode, bytes.TrimSpace(data))
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%s %s: decode response: %w", method, path, err)
	}
	return nil
}

// Health checks GET /health.
func (c *Client) Health(ctx context.Context) error {
	var body struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodGet, "/health", nil, http.StatusOK, &body); err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if body.Status != "healthy" {
		return fmt.Errorf("%w: status %q", ErrUnhealthy, body.Status)
	}
	return nil
}

// CreateGame calls POST /api/games.
func (c *Client) CreateGame(ctx context.Context, names []string) (*model.Game, error) {
	var g model.Game
	req := map[string][]string{"players": names}
	if err := c.do(ctx, http.MethodPost, "/api/games", req, http.StatusOK, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// RecordRound calls POST /api/games/current/round.
func (c *Client) RecordRound(ctx context.Context, pts map[string]points.Value) (*model.Game, error) {
	var g model.Game
	req := map[string]map[string]points.Value{"points": pts}
	if err := c.do(ctx, http.MethodPost, "/api/games/current/round", req, http.StatusOK, &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// CurrentGame calls GET /api/games/current. It returns nil when no game is current.
func (c *Client) CurrentGame(ctx context.Context) (*model.Game, error) {
	var g *model.Game
	if err := c.do(ctx, http.MethodGet, "/api/games/current", nil, http.StatusOK, &g); err != nil {
		return nil, err
	}
	return g, nil
}

// Standings calls GET /api/games/current/standings.
func (c *Client) Standings(ctx context.Context) ([]model.Standing, error) {
	var st []model.Standing
	if err := c.do(ctx, http.MethodGet, "/api/games/current/standings", nil, http.StatusOK, &st); err != nil {
		return nil, err
	}
	return st, nil
}

// ListGames calls GET /api/games.
func (c *Client) ListGames(ctx context.Context) ([]model.Game, error) {
	var games []model.Game
	if err := c.do(ctx, http.MethodGet, "/api/games", nil, http.StatusOK, &games); err != nil {
		return nil, err
	}
	return games, nil
}

// ResetCurrent calls DELETE /api/games/current.
func (c *Client) ResetCurrent(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/games/current", nil, http.StatusOK, nil)
}
