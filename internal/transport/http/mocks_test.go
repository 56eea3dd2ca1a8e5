package http

import (
	"context"
	"log/slog"
	"os"

	"github.com/stretchr/testify/mock"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
	apierrors "chartboard/internal/errors"
	"chartboard/internal/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func testErrorHandler() *apierrors.ErrorHandler {
	return apierrors.NewErrorHandler(testLogger(), false)
}

type mockMovieService struct {
	mock.Mock
}

func (m *mockMovieService) Genres(ctx context.Context) services.GenreOptions {
	args := m.Called(ctx)
	return args.Get(0).(services.GenreOptions)
}

func (m *mockMovieService) Table(ctx context.Context, f analysis.MovieFilter) ([]services.MovieRow, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]services.MovieRow), args.Error(1)
}

func (m *mockMovieService) Summary(ctx context.Context, f analysis.MovieFilter) (services.GrossSummary, error) {
	args := m.Called(ctx, f)
	return args.Get(0).(services.GrossSummary), args.Error(1)
}

func (m *mockMovieService) Filtered(ctx context.Context, f analysis.MovieFilter) ([]dataset.Movie, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataset.Movie), args.Error(1)
}

type mockSpeciesService struct {
	mock.Mock
}

func (m *mockSpeciesService) List(ctx context.Context, names []string) ([]dataset.Species, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]dataset.Species), args.Error(1)
}

func (m *mockSpeciesService) Options(ctx context.Context) services.MetricOptions {
	args := m.Called(ctx)
	return args.Get(0).(services.MetricOptions)
}

func (m *mockSpeciesService) Metrics(ctx context.Context, metrics []string) (services.MetricComparison, error) {
	args := m.Called(ctx, metrics)
	return args.Get(0).(services.MetricComparison), args.Error(1)
}

func (m *mockSpeciesService) Regression(ctx context.Context, xVar, yVar string) (analysis.Fit, error) {
	args := m.Called(ctx, xVar, yVar)
	return args.Get(0).(analysis.Fit), args.Error(1)
}

func defaultGenreOptions() services.GenreOptions {
	return services.GenreOptions{
		All:      append([]string(nil), dataset.AllGenres...),
		Defaults: append([]string(nil), dataset.DefaultGenres...),
		MinYear:  dataset.MinYear,
		MaxYear:  dataset.MaxYear,
		YearFrom: dataset.DefaultYearFrom,
		YearTo:   dataset.DefaultYearTo,
	}
}

func defaultMetricOptions() services.MetricOptions {
	return services.MetricOptions{
		All:        append([]string(nil), dataset.MetricNames...),
		Defaults:   append([]string(nil), dataset.DefaultMetrics...),
		XVariables: append([]string(nil), dataset.RegressionXVariables...),
		YVariables: append([]string(nil), dataset.RegressionYVariables...),
	}
}
