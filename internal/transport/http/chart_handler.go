package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chartboard/internal/charts"
	apierrors "chartboard/internal/errors"
	"chartboard/internal/infrastructure"
)

// ChartHandler renders the dashboard figures as PNG responses.
type ChartHandler struct {
	movies       MovieServiceInterface
	species      SpeciesServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
	metrics      *infrastructure.Metrics
}

// NewChartHandler creates a new chart handler. metrics may be nil.
func NewChartHandler(movies MovieServiceInterface, species SpeciesServiceInterface,
	logger *slog.Logger, errorHandler *apierrors.ErrorHandler, metrics *infrastructure.Metrics) *ChartHandler {
	return &ChartHandler{
		movies:       movies,
		species:      species,
		logger:       logger.With(slog.String("handler", "charts")),
		errorHandler: errorHandler,
		metrics:      metrics,
	}
}

// Routes returns the chart routes.
func (h *ChartHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/movies/gross.png", h.GrossChart)
	r.Get("/species/metrics.png", h.MetricsChart)
	r.Get("/species/regression.png", h.RegressionChart)

	return r
}

func (h *ChartHandler) writePNG(w http.ResponseWriter, r *http.Request, kind string, data []byte) {
	if h.metrics != nil {
		h.metrics.IncChartRendered(kind)
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to write chart response",
			slog.String("chart", kind),
			slog.String("error", err.Error()))
	}
}

// GrossChart handles GET /charts/movies/gross.png
func (h *ChartHandler) GrossChart(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMovieFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.movies.Summary(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError("movies", err))
		return
	}

	data, err := charts.GrossLineChart(summary.Table)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.writePNG(w, r, "gross_line", data)
}

// MetricsChart handles GET /charts/species/metrics.png
func (h *ChartHandler) MetricsChart(w http.ResponseWriter, r *http.Request) {
	comparison, err := h.species.Metrics(r.Context(), parseMetrics(r))
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError("species", err))
		return
	}

	data, err := charts.SpeciesBarChart(comparison.Species, comparison.Metrics)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.writePNG(w, r, "species_bars", data)
}

// RegressionChart handles GET /charts/species/regression.png
func (h *ChartHandler) RegressionChart(w http.ResponseWriter, r *http.Request) {
	xVar, yVar := parseRegressionVars(r)

	fit, err := h.species.Regression(r.Context(), xVar, yVar)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError("species", err))
		return
	}

	data, err := charts.RegressionChart(fit)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	h.writePNG(w, r, "regression", data)
}
