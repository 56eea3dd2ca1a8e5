package services

import (
	"context"
	"fmt"
	"log/slog"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
)

// MovieService exposes the movie box-office views: the genre options,
// the filtered row table and the pivoted gross summary.
type MovieService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewMovieService creates a movie service backed by the dataset store.
func NewMovieService(store *dataset.Store, logger *slog.Logger) *MovieService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MovieService{
		store:  store,
		logger: logger.With(slog.String("service", "movies")),
	}
}

// GenreOptions describes the genre filter offered by the dashboard.
type GenreOptions struct {
	All      []string `json:"all"`
	Defaults []string `json:"defaults"`
	MinYear  int      `json:"min_year"`
	MaxYear  int      `json:"max_year"`
	YearFrom int      `json:"default_year_from"`
	YearTo   int      `json:"default_year_to"`
}

// Genres returns the full genre list and the default selection.
func (s *MovieService) Genres(ctx context.Context) GenreOptions {
	return GenreOptions{
		All:      append([]string(nil), dataset.AllGenres...),
		Defaults: append([]string(nil), dataset.DefaultGenres...),
		MinYear:  dataset.MinYear,
		MaxYear:  dataset.MaxYear,
		YearFrom: dataset.DefaultYearFrom,
		YearTo:   dataset.DefaultYearTo,
	}
}

// MovieRow is one row of the dashboard table view.
type MovieRow struct {
	Year  int     `json:"year"`
	Title string  `json:"title"`
	Genre string  `json:"genre"`
	Gross float64 `json:"gross"`
}

// validateFilter rejects unknown genres and inverted year ranges before
// touching the data.
func (s *MovieService) validateFilter(f analysis.MovieFilter) error {
	for _, g := range f.Genres {
		if !dataset.IsKnownGenre(g) {
			return fmt.Errorf("%w: %q", ErrUnknownGenre, g)
		}
	}
	if f.YearFrom > f.YearTo {
		return fmt.Errorf("%w: %d > %d", ErrInvalidYearRange, f.YearFrom, f.YearTo)
	}
	return nil
}

// Table returns the filtered movies projected to the table columns.
func (s *MovieService) Table(ctx context.Context, f analysis.MovieFilter) ([]MovieRow, error) {
	if err := s.validateFilter(f); err != nil {
		return nil, err
	}

	movies, err := s.store.Movies()
	if err != nil {
		return nil, err
	}

	filtered := analysis.FilterMovies(movies, f)
	rows := make([]MovieRow, len(filtered))
	for i, m := range filtered {
		rows[i] = MovieRow{Year: m.Year, Title: m.Title, Genre: m.Genre, Gross: m.Gross}
	}

	s.logger.DebugContext(ctx, "movie table built",
		slog.Int("rows", len(rows)),
		slog.Int("year_from", f.YearFrom),
		slog.Int("year_to", f.YearTo))
	return rows, nil
}

// GrossSummary holds the pivoted summary and its melted long form,
// ready for the table and line chart views.
type GrossSummary struct {
	Table  analysis.PivotTable   `json:"table"`
	Points []analysis.GrossPoint `json:"points"`
}

// Summary filters, pivots and melts the movie data in one pass.
func (s *MovieService) Summary(ctx context.Context, f analysis.MovieFilter) (GrossSummary, error) {
	if err := s.validateFilter(f); err != nil {
		return GrossSummary{}, err
	}

	movies, err := s.store.Movies()
	if err != nil {
		return GrossSummary{}, err
	}

	table := analysis.PivotGross(analysis.FilterMovies(movies, f))
	return GrossSummary{Table: table, Points: analysis.Melt(table)}, nil
}

// Filtered returns the full movie rows matching the filter, for export.
func (s *MovieService) Filtered(ctx context.Context, f analysis.MovieFilter) ([]dataset.Movie, error) {
	if err := s.validateFilter(f); err != nil {
		return nil, err
	}

	movies, err := s.store.Movies()
	if err != nil {
		return nil, err
	}
	return analysis.FilterMovies(movies, f), nil
}
