package http

import (
	"context"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
	"chartboard/internal/services"
)

// MovieServiceInterface defines the movie operations the handlers need.
type MovieServiceInterface interface {
	Genres(ctx context.Context) services.GenreOptions
	Table(ctx context.Context, f analysis.MovieFilter) ([]services.MovieRow, error)
	Summary(ctx context.Context, f analysis.MovieFilter) (services.GrossSummary, error)
	Filtered(ctx context.Context, f analysis.MovieFilter) ([]dataset.Movie, error)
}

// SpeciesServiceInterface defines the species operations the handlers need.
type SpeciesServiceInterface interface {
	List(ctx context.Context, names []string) ([]dataset.Species, error)
	Options(ctx context.Context) services.MetricOptions
	Metrics(ctx context.Context, metrics []string) (services.MetricComparison, error)
	Regression(ctx context.Context, xVar, yVar string) (analysis.Fit, error)
}
