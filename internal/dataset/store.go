package dataset

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// ColumnError reports a dataset whose header lacks required columns.
type ColumnError struct {
	Dataset string
	Missing []string
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("dataset %q is missing required columns: %s",
		e.Dataset, strings.Join(e.Missing, ", "))
}

// Store loads the movie and species CSV files and memoizes the result.
// Each file is read at most once for the lifetime of the store, mirroring
// a cache that never expires: restart the process to pick up new data.
type Store struct {
	moviesPath  string
	speciesPath string
	logger      *slog.Logger

	moviesOnce sync.Once
	movies     []Movie
	moviesErr  error

	speciesOnce sync.Once
	species     []Species
	speciesErr  error
}

// NewStore creates a store reading from the given CSV paths.
func NewStore(moviesPath, speciesPath string, logger *slog.Logger) *Store {
	return &Store{
		moviesPath:  moviesPath,
		speciesPath: speciesPath,
		logger:      logger.With(slog.String("component", "dataset_store")),
	}
}

// Movies returns the memoized movie rows. On failure the error is
// memoized too, so every caller sees the same outcome.
func (s *Store) Movies() ([]Movie, error) {
	s.moviesOnce.Do(func() {
		s.movies, s.moviesErr = s.loadMovies()
	})
	return s.movies, s.moviesErr
}

// Species returns the memoized species rows.
func (s *Store) Species() ([]Species, error) {
	s.speciesOnce.Do(func() {
		s.species, s.speciesErr = s.loadSpecies()
	})
	return s.species, s.speciesErr
}

// Warmup loads both datasets concurrently. A failed dataset does not
// abort the other; the first error is returned after both finish.
func (s *Store) Warmup(ctx context.Context) error {
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		_, err := s.Movies()
		return err
	})
	g.Go(func() error {
		_, err := s.Species()
		return err
	})

	return g.Wait()
}

func (s *Store) loadMovies() ([]Movie, error) {
	f, err := os.Open(s.moviesPath)
	if err != nil {
		s.logger.Error("failed to open movie dataset",
			slog.String("path", s.moviesPath),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to open movie dataset: %w", err)
	}
	defer f.Close()

	movies, header, err := ParseMovies(f)
	if err != nil {
		s.logger.Error("failed to parse movie dataset",
			slog.String("path", s.moviesPath),
			slog.String("error", err.Error()))
		return nil, err
	}

	if missing := MissingColumns(header, MovieColumns); len(missing) > 0 {
		s.logger.Error("movie dataset is missing columns",
			slog.String("path", s.moviesPath),
			slog.Any("missing", missing))
		return nil, &ColumnError{Dataset: "movies", Missing: missing}
	}

	s.logger.Info("movie dataset loaded",
		slog.String("path", s.moviesPath),
		slog.Int("rows", len(movies)))
	return movies, nil
}

func (s *Store) loadSpecies() ([]Species, error) {
	f, err := os.Open(s.speciesPath)
	if err != nil {
		s.logger.Error("failed to open species dataset",
			slog.String("path", s.speciesPath),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to open species dataset: %w", err)
	}
	defer f.Close()

	species, header, err := ParseSpecies(f)
	if err != nil {
		s.logger.Error("failed to parse species dataset",
			slog.String("path", s.speciesPath),
			slog.String("error", err.Error()))
		return nil, err
	}

	if missing := MissingColumns(header, SpeciesColumns); len(missing) > 0 {
		s.logger.Error("species dataset is missing columns",
			slog.String("path", s.speciesPath),
			slog.Any("missing", missing))
		return nil, &ColumnError{Dataset: "species", Missing: missing}
	}

	s.logger.Info("species dataset loaded",
		slog.String("path", s.speciesPath),
		slog.Int("rows", len(species)))
	return species, nil
}
