package api

import (
	"net/http"
	"time"

	"github.com/okian/playcard/internal/domain/model"
	"github.com/okian/playcard/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type healthResponse struct {
	Status    string          `json:"status"`
	Timestamp model.Timestamp `json:"timestamp"`
}

// HealthHandler handles health check and metrics requests.
type HealthHandler struct {
	now     func() time.Time
	metrics http.Handler
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(now func() time.Time) *HealthHandler {
	if now == nil {
		now = time.Now
	}
	return &HealthHandler{
		now:     now,
		metrics: promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}),
	}
}

// HandleHealth handles GET /health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:    "healthy",
		Timestamp: model.NewTimestamp(h.now()),
	})
}

// HandleMetrics handles GET /metrics requests using our custom registry.
func (h *HealthHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	h.metrics.ServeHTTP(w, r)
}
