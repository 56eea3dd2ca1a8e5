package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "chartboard/internal/errors"
)

// MovieHandler serves the movie box-office endpoints.
type MovieHandler struct {
	service      MovieServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewMovieHandler creates a new movie handler.
func NewMovieHandler(service MovieServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *MovieHandler {
	return &MovieHandler{
		service:      service,
		logger:       logger.With(slog.String("handler", "movies")),
		errorHandler: errorHandler,
	}
}

// Routes returns the movie routes.
func (h *MovieHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetTable)
	r.Get("/summary", h.GetSummary)
	r.Get("/genres", h.GetGenres)

	return r
}

// GetGenres handles GET /api/movies/genres
func (h *MovieHandler) GetGenres(w http.ResponseWriter, r *http.Request) {
	opts := h.service.Genres(r.Context())
	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   opts,
	})
}

// GetTable handles GET /api/movies
func (h *MovieHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMovieFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	rows, err := h.service.Table(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build movie table",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, mapServiceError("movies", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetSummary handles GET /api/movies/summary
func (h *MovieHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMovieFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.service.Summary(r.Context(), filter)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to build gross summary",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, mapServiceError("movies", err))
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
		"count":  len(summary.Points),
	})
}
