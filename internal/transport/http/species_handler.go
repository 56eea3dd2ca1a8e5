package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "chartboard/internal/errors"
)

// SpeciesHandler serves the animal survival-strategy endpoints.
type SpeciesHandler struct {
	service      SpeciesServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewSpeciesHandler creates a new species handler.
func NewSpeciesHandler(service SpeciesServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *SpeciesHandler {
	return &SpeciesHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "species")),
		errorHandler: errorHandler,
	}
}

// Routes returns the species routes.
func (h *SpeciesHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetSpecies)
	r.Get("/options", h.GetOptions)
	r.Get("/metrics", h.GetMetrics)
	r.Get("/regression", h.GetRegression)

	return r
}

// GetSpecies handles GET /api/species
func (h *SpeciesHandler) GetSpecies(w http.ResponseWriter, r *http.Request) {
	species, err := h.service.List(r.Context(), parseSpeciesNames(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to list species",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, mapServiceError("species", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   species,
		"count":  len(species),
	})
}

// GetOptions handles GET /api/species/options
func (h *SpeciesHandler) GetOptions(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   h.service.Options(r.Context()),
	})
}

// GetMetrics handles GET /api/species/metrics
func (h *SpeciesHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	comparison, err := h.service.Metrics(r.Context(), parseMetrics(r))
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build metric comparison",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, mapServiceError("species", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   comparison,
		"count":  len(comparison.Species),
	})
}

// GetRegression handles GET /api/species/regression
func (h *SpeciesHandler) GetRegression(w http.ResponseWriter, r *http.Request) {
	xVar, yVar := parseRegressionVars(r)

	fit, err := h.service.Regression(r.Context(), xVar, yVar)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to fit regression",
			slog.String("error", err.Error()),
			slog.String("x", xVar),
			slog.String("y", yVar))
		h.errorHandler.HandleError(w, r, mapServiceError("species", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   fit,
		"count":  len(fit.Points),
	})
}
