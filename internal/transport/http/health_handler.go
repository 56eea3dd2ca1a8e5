package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"

	"chartboard/internal/dataset"
)

// HealthHandler reports process and dataset health.
type HealthHandler struct {
	store   *dataset.Store
	logger  *slog.Logger
	version string
	started time.Time
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(store *dataset.Store, logger *slog.Logger, version string) *HealthHandler {
	return &HealthHandler{
		store:   store,
		logger:  logger.With(slog.String("handler", "health")),
		version: version,
		started: time.Now(),
	}
}

type datasetHealth struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
	Error  string `json:"error,omitempty"`
}

// HealthCheck handles GET /api/health. The response is 200 as long as
// the process is up; dataset failures are reported in the body because
// the dashboard degrades per dataset rather than failing whole.
func (h *HealthHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	movies := datasetHealth{Status: "ok"}
	if rows, err := h.store.Movies(); err != nil {
		movies = datasetHealth{Status: "unavailable", Error: err.Error()}
	} else {
		movies.Rows = len(rows)
	}

	species := datasetHealth{Status: "ok"}
	if rows, err := h.store.Species(); err != nil {
		species = datasetHealth{Status: "unavailable", Error: err.Error()}
	} else {
		species.Rows = len(rows)
	}

	status := "healthy"
	if movies.Status != "ok" || species.Status != "ok" {
		status = "degraded"
	}

	render.JSON(w, r, map[string]interface{}{
		"status":  status,
		"version": h.version,
		"uptime":  time.Since(h.started).String(),
		"datasets": map[string]datasetHealth{
			"movies":  movies,
			"species": species,
		},
	})
}

// LivenessCheck handles GET /api/health/live
func (h *HealthHandler) LivenessCheck(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{"status": "alive"})
}
