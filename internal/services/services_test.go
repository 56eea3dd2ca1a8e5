package services

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
)

const moviesCSV = `year,ActorId,Name,MovieId,Title,genre,Country,gross
2001,101,Harrison Ford,5001,Sample Quest,Adventure,USA,150
2001,102,Sigourney Weaver,5002,Deep Signal,Sci-Fi,USA,98
1999,103,Ian McKellen,5003,Old Kingdom,Drama,UK,42
2005,101,Harrison Ford,5004,Sample Quest II,Adventure,USA,120
2005,104,Kate Winslet,5005,Harbor Lights,Drama,UK,61
`

const speciesCSV = `species,protection,defense,attack,feeding,satisfaction,sexual_reproduction
Lion,7.5,8.0,9.0,1,2,6.0
Tortoise,9.5,9.0,2.0,2,4,3.0
Falcon,5.0,4.5,8.5,3,6,5.5
`

func testStore(t *testing.T) *dataset.Store {
	t.Helper()
	dir := t.TempDir()

	moviesPath := filepath.Join(dir, "movies.csv")
	speciesPath := filepath.Join(dir, "species.csv")
	require.NoError(t, os.WriteFile(moviesPath, []byte(moviesCSV), 0o644))
	require.NoError(t, os.WriteFile(speciesPath, []byte(speciesCSV), 0o644))

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return dataset.NewStore(moviesPath, speciesPath, logger)
}

func TestMovieService_Genres(t *testing.T) {
	svc := NewMovieService(testStore(t), nil)

	opts := svc.Genres(context.Background())
	assert.Len(t, opts.All, 21)
	assert.Equal(t, dataset.DefaultGenres, opts.Defaults)
	assert.Equal(t, 1986, opts.MinYear)
	assert.Equal(t, 2016, opts.MaxYear)
	assert.Equal(t, 2000, opts.YearFrom)
	assert.Equal(t, 2016, opts.YearTo)
}

func TestMovieService_Table(t *testing.T) {
	svc := NewMovieService(testStore(t), nil)

	t.Run("returns filtered projection", func(t *testing.T) {
		rows, err := svc.Table(context.Background(), analysis.MovieFilter{
			Genres:   []string{"Adventure"},
			YearFrom: 2000,
			YearTo:   2016,
		})
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "Sample Quest", rows[0].Title)
		assert.Equal(t, "Adventure", rows[0].Genre)
	})

	t.Run("rejects unknown genre", func(t *testing.T) {
		_, err := svc.Table(context.Background(), analysis.MovieFilter{
			Genres:   []string{"Documentary"},
			YearFrom: 2000,
			YearTo:   2016,
		})
		assert.ErrorIs(t, err, ErrUnknownGenre)
	})

	t.Run("rejects inverted year range", func(t *testing.T) {
		_, err := svc.Table(context.Background(), analysis.MovieFilter{
			Genres:   []string{"Drama"},
			YearFrom: 2010,
			YearTo:   2000,
		})
		assert.ErrorIs(t, err, ErrInvalidYearRange)
	})
}

func TestMovieService_Summary(t *testing.T) {
	svc := NewMovieService(testStore(t), nil)

	summary, err := svc.Summary(context.Background(), analysis.MovieFilter{
		Genres:   []string{"Adventure", "Drama"},
		YearFrom: 1986,
		YearTo:   2016,
	})
	require.NoError(t, err)

	assert.Equal(t, []int{2005, 2001, 1999}, summary.Table.Years)
	assert.Equal(t, []string{"Adventure", "Drama"}, summary.Table.Genres)
	assert.InDelta(t, 61, summary.Table.Cells[2005]["Drama"], 1e-9)

	// Melted points cover the full cross product
	assert.Len(t, summary.Points, 6)
}

func TestMovieService_DatasetUnavailable(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	store := dataset.NewStore("no/such/movies.csv", "no/such/species.csv", logger)
	svc := NewMovieService(store, nil)

	_, err := svc.Table(context.Background(), analysis.MovieFilter{
		Genres:   []string{"Drama"},
		YearFrom: 2000,
		YearTo:   2016,
	})
	assert.Error(t, err)
}

func TestSpeciesService_List(t *testing.T) {
	svc := NewSpeciesService(testStore(t), nil)

	t.Run("empty selection returns every row", func(t *testing.T) {
		species, err := svc.List(context.Background(), nil)
		require.NoError(t, err)
		assert.Len(t, species, 3)
	})

	t.Run("filters by selected names", func(t *testing.T) {
		species, err := svc.List(context.Background(), []string{"Lion", "Falcon"})
		require.NoError(t, err)
		require.Len(t, species, 2)
		assert.Equal(t, "Lion", species[0].Species)
		assert.Equal(t, "Falcon", species[1].Species)
	})

	t.Run("unknown names match nothing", func(t *testing.T) {
		species, err := svc.List(context.Background(), []string{"Unicorn"})
		require.NoError(t, err)
		assert.Empty(t, species)
	})
}

func TestSpeciesService_Metrics(t *testing.T) {
	svc := NewSpeciesService(testStore(t), nil)

	t.Run("returns species with validated metrics", func(t *testing.T) {
		cmp, err := svc.Metrics(context.Background(), []string{"protection", "defense"})
		require.NoError(t, err)
		assert.Len(t, cmp.Species, 3)
		assert.Equal(t, []string{"protection", "defense"}, cmp.Metrics)
	})

	t.Run("rejects empty selection", func(t *testing.T) {
		_, err := svc.Metrics(context.Background(), nil)
		assert.ErrorIs(t, err, ErrNoMetricsChosen)
	})

	t.Run("rejects unknown metric", func(t *testing.T) {
		_, err := svc.Metrics(context.Background(), []string{"velocity"})
		assert.ErrorIs(t, err, ErrUnknownMetric)
	})
}

func TestSpeciesService_Regression(t *testing.T) {
	svc := NewSpeciesService(testStore(t), nil)

	t.Run("fits satisfaction against feeding", func(t *testing.T) {
		// Fixture satisfaction is exactly 2 * feeding
		fit, err := svc.Regression(context.Background(), "feeding", "satisfaction")
		require.NoError(t, err)
		assert.InDelta(t, 2.0, fit.Slope, 1e-9)
		assert.InDelta(t, 0.0, fit.Intercept, 1e-9)
		assert.Len(t, fit.Points, 3)
	})

	t.Run("rejects unknown variable", func(t *testing.T) {
		_, err := svc.Regression(context.Background(), "velocity", "feeding")
		assert.ErrorIs(t, err, analysis.ErrUnknownVariable)
	})
}

func TestSpeciesService_Options(t *testing.T) {
	svc := NewSpeciesService(testStore(t), nil)

	opts := svc.Options(context.Background())
	assert.Equal(t, dataset.MetricNames, opts.All)
	assert.Equal(t, []string{"protection", "defense"}, opts.Defaults)
	assert.Equal(t, "feeding", opts.XVariables[0])
	assert.Equal(t, "satisfaction", opts.YVariables[0])
}
