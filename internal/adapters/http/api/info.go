package api

import (
	"net/http"
)

type rootResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

type catalogResponse struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type notFoundResponse struct {
	Error         string `json:"error"`
	Message       string `json:"message"`
	RequestedPath string `json:"requestedPath"`
}

// endpoints lists the public routes for GET /api.
var endpoints = map[string]string{
	"GET /":                            "API status",
	"GET /health":                      "Health check",
	"POST /api/games":                  "Create new game",
	"GET /api/games/current":           "Get current game",
	"POST /api/games/current/round":    "Add round to current game",
	"GET /api/games/current/standings": "Get current game standings",
	"GET /api/games":                   "Get all games",
	"GET /api/games/{id}":              "Get game by id",
	"DELETE /api/games/current":        "Reset current game",
	"GET /metrics":                     "Prometheus metrics",
	"GET /stats":                       "Service statistics",
	"GET /api-docs":                    "API documentation",
}

// InfoHandler answers the informational routes and unmatched paths.
type InfoHandler struct{}

// NewInfoHandler creates a new info handler.
func NewInfoHandler() *InfoHandler {
	return &InfoHandler{}
}

// HandleRoot handles GET / requests.
func (h *InfoHandler) HandleRoot(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, rootResponse{Message: "Playcard Backend API", Status: "running"})
}

// HandleCatalog handles GET /api requests.
func (h *InfoHandler) HandleCatalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, catalogResponse{
		Name:      apiName,
		Version:   apiVersion,
		Endpoints: endpoints,
	})
}

// HandleNotFound answers every request no other route matched.
func (h *InfoHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	path := r.RequestURI
	if path == "" {
		path = r.URL.RequestURI()
	}
	writeJSON(w, http.StatusNotFound, notFoundResponse{
		Error:         "Endpoint not found",
		Message:       "Visit /api for available endpoints",
		RequestedPath: path,
	})
}
