package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chartboard/internal/dataset"
)

func sampleMovies() []dataset.Movie {
	return []dataset.Movie{
		{Year: 2001, Title: "Quest", Genre: "Adventure", Gross: 150},
		{Year: 2001, Title: "Signal", Genre: "Sci-Fi", Gross: 98},
		{Year: 1999, Title: "Kingdom", Genre: "Drama", Gross: 42},
		{Year: 2005, Title: "Quest II", Genre: "Adventure", Gross: 120},
		{Year: 2005, Title: "Harbor", Genre: "Drama", Gross: 61},
		{Year: 2005, Title: "Harbor II", Genre: "Drama", Gross: 9},
	}
}

func TestFilterMovies(t *testing.T) {
	movies := sampleMovies()

	t.Run("filters by genre and year range", func(t *testing.T) {
		got := FilterMovies(movies, MovieFilter{
			Genres:   []string{"Adventure", "Drama"},
			YearFrom: 2000,
			YearTo:   2016,
		})

		require.Len(t, got, 3)
		for _, m := range got {
			assert.Contains(t, []string{"Adventure", "Drama"}, m.Genre)
			assert.GreaterOrEqual(t, m.Year, 2000)
			assert.LessOrEqual(t, m.Year, 2016)
		}
	})

	t.Run("year bounds are inclusive", func(t *testing.T) {
		got := FilterMovies(movies, MovieFilter{
			Genres:   []string{"Drama"},
			YearFrom: 1999,
			YearTo:   1999,
		})
		require.Len(t, got, 1)
		assert.Equal(t, "Kingdom", got[0].Title)
	})

	t.Run("empty genre set matches nothing", func(t *testing.T) {
		got := FilterMovies(movies, MovieFilter{YearFrom: 1986, YearTo: 2016})
		assert.Empty(t, got)
	})
}

func TestFilterSpecies(t *testing.T) {
	species := []dataset.Species{
		{Species: "Lion", Protection: 7.5},
		{Species: "Tortoise", Protection: 9.5},
		{Species: "Falcon", Protection: 5.0},
	}

	t.Run("empty selection keeps every row", func(t *testing.T) {
		got := FilterSpecies(species, nil)
		assert.Len(t, got, 3)
	})

	t.Run("selection keeps named rows in input order", func(t *testing.T) {
		got := FilterSpecies(species, []string{"Falcon", "Lion"})
		require.Len(t, got, 2)
		assert.Equal(t, "Lion", got[0].Species)
		assert.Equal(t, "Falcon", got[1].Species)
	})

	t.Run("unknown names match nothing", func(t *testing.T) {
		assert.Empty(t, FilterSpecies(species, []string{"Unicorn"}))
	})
}

func TestPivotGross(t *testing.T) {
	table := PivotGross(sampleMovies())

	assert.Equal(t, []string{"Adventure", "Drama", "Sci-Fi"}, table.Genres)
	assert.Equal(t, []int{2005, 2001, 1999}, table.Years)

	// Summed cell
	assert.InDelta(t, 70, table.Cells[2005]["Drama"], 1e-9)
	// Absent combination filled with zero
	assert.InDelta(t, 0, table.Cells[1999]["Adventure"], 1e-9)
	assert.InDelta(t, 0, table.Cells[2005]["Sci-Fi"], 1e-9)
}

func TestMelt(t *testing.T) {
	table := PivotGross(sampleMovies())
	points := Melt(table)

	// One point per (year, genre) combination
	require.Len(t, points, len(table.Years)*len(table.Genres))

	// First point follows table order: newest year, first genre
	assert.Equal(t, 2005, points[0].Year)
	assert.Equal(t, "Adventure", points[0].Genre)
	assert.InDelta(t, 120, points[0].Gross, 1e-9)

	// Melt preserves the pivot's sums
	for _, p := range points {
		assert.InDelta(t, table.Cells[p.Year][p.Genre], p.Gross, 1e-9)
	}
}

func TestFitRegression(t *testing.T) {
	t.Run("recovers a perfect line", func(t *testing.T) {
		species := []dataset.Species{
			{Species: "A", Feeding: 1, Satisfaction: 2},
			{Species: "B", Feeding: 2, Satisfaction: 4},
			{Species: "C", Feeding: 3, Satisfaction: 6},
			{Species: "D", Feeding: 4, Satisfaction: 8},
		}

		fit, err := FitRegression(species, "feeding", "satisfaction")
		require.NoError(t, err)

		assert.InDelta(t, 2.0, fit.Slope, 1e-9)
		assert.InDelta(t, 0.0, fit.Intercept, 1e-9)

		require.Len(t, fit.Points, 4)
		for _, p := range fit.Points {
			assert.InDelta(t, p.Y, p.Predicted, 1e-9)
		}
	})

	t.Run("predictions follow input order", func(t *testing.T) {
		species := []dataset.Species{
			{Species: "A", Protection: 5, Defense: 3},
			{Species: "B", Protection: 1, Defense: 9},
			{Species: "C", Protection: 7, Defense: 2},
		}

		fit, err := FitRegression(species, "protection", "defense")
		require.NoError(t, err)
		require.Len(t, fit.Points, 3)

		assert.InDelta(t, 5, fit.Points[0].X, 1e-9)
		assert.InDelta(t, 1, fit.Points[1].X, 1e-9)
		assert.InDelta(t, 7, fit.Points[2].X, 1e-9)
	})

	t.Run("rejects unknown variable", func(t *testing.T) {
		_, err := FitRegression(nil, "velocity", "feeding")
		assert.ErrorIs(t, err, ErrUnknownVariable)
	})

	t.Run("rejects too few points", func(t *testing.T) {
		_, err := FitRegression([]dataset.Species{{Species: "A"}}, "feeding", "satisfaction")
		assert.ErrorIs(t, err, ErrTooFewPoints)
	})

	t.Run("rejects zero x variance", func(t *testing.T) {
		species := []dataset.Species{
			{Species: "A", Feeding: 3, Satisfaction: 1},
			{Species: "B", Feeding: 3, Satisfaction: 2},
		}
		_, err := FitRegression(species, "feeding", "satisfaction")
		assert.ErrorIs(t, err, ErrZeroVariance)
	})
}
