package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"chartboard/internal/analysis"
	apierrors "chartboard/internal/errors"
	"chartboard/internal/exporter"
)

// ExportHandler streams Excel workbooks of the filtered movie data.
type ExportHandler struct {
	service      MovieServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewExportHandler creates a new export handler.
func NewExportHandler(service MovieServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ExportHandler {
	return &ExportHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "export")),
		errorHandler: errorHandler,
	}
}

// Routes returns the export routes.
func (h *ExportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/movies.xlsx", h.ExportMovies)
	return r
}

// ExportMovies handles GET /api/export/movies.xlsx
func (h *ExportHandler) ExportMovies(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMovieFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	movies, err := h.service.Filtered(r.Context(), filter)
	if err != nil {
		h.errorHandler.HandleError(w, r, mapServiceError("movies", err))
		return
	}

	workbook := exporter.MovieWorkbook{
		Movies: movies,
		Table:  analysis.PivotGross(movies),
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="movies.xlsx"`)

	if _, err := workbook.WriteTo(w); err != nil {
		// Headers are already sent; log instead of re-erroring
		h.logger.ErrorContext(r.Context(), "failed to stream workbook",
			slog.String("error", err.Error()))
	}
}
