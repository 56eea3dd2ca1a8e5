package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
	"chartboard/internal/services"
)

func dashboardMocks() (*mockMovieService, *mockSpeciesService) {
	movies := new(mockMovieService)
	movies.On("Genres", mock.Anything).Return(defaultGenreOptions())
	movies.On("Table", mock.Anything, mock.Anything).Return([]services.MovieRow{
		{Year: 2001, Title: "Sample Quest", Genre: "Adventure", Gross: 150},
	}, nil)

	species := new(mockSpeciesService)
	species.On("Options", mock.Anything).Return(defaultMetricOptions())
	species.On("List", mock.Anything, mock.Anything).Return([]dataset.Species{{Species: "Lion"}}, nil)
	species.On("Regression", mock.Anything, mock.Anything, mock.Anything).Return(analysis.Fit{
		XVariable: "feeding",
		YVariable: "satisfaction",
		Slope:     2,
		Points:    []analysis.FitPoint{{X: 1, Y: 2, Predicted: 2}},
	}, nil)

	return movies, species
}

func TestDashboard(t *testing.T) {
	t.Run("renders all sections", func(t *testing.T) {
		movies, species := dashboardMocks()
		handler := NewDashboardHandler(movies, species, testLogger(), testErrorHandler())

		w := httptest.NewRecorder()
		handler.Dashboard(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Header().Get("Content-Type"), "text/html")

		body := w.Body.String()
		assert.Contains(t, body, "Sample Quest")
		assert.Contains(t, body, "/charts/movies/gross.png?")
		assert.Contains(t, body, "/charts/species/metrics.png?")
		assert.Contains(t, body, "/charts/species/regression.png?")
		assert.Contains(t, body, "movies.xlsx")
		// Default genres come back checked
		assert.Contains(t, body, `value="Action" checked`)
		assert.Contains(t, body, `value="Romance">`)
	})

	t.Run("movie dataset failure shows banner but keeps species", func(t *testing.T) {
		movies, species := dashboardMocks()
		movies.ExpectedCalls = nil
		movies.On("Genres", mock.Anything).Return(defaultGenreOptions())
		movies.On("Table", mock.Anything, mock.Anything).
			Return(nil, &dataset.ColumnError{Dataset: "movies", Missing: []string{"gross"}})

		handler := NewDashboardHandler(movies, species, testLogger(), testErrorHandler())

		w := httptest.NewRecorder()
		handler.Dashboard(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Movie data not loaded correctly")
		assert.Contains(t, body, "/charts/species/regression.png?")
	})

	t.Run("deselecting all metrics hides the bar chart", func(t *testing.T) {
		movies, species := dashboardMocks()
		handler := NewDashboardHandler(movies, species, testLogger(), testErrorHandler())

		w := httptest.NewRecorder()
		handler.Dashboard(w, httptest.NewRequest(http.MethodGet, "/?metric=", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.NotContains(t, w.Body.String(), "/charts/species/metrics.png")
	})

	t.Run("invalid year parameter is rejected", func(t *testing.T) {
		movies, species := dashboardMocks()
		handler := NewDashboardHandler(movies, species, testLogger(), testErrorHandler())

		w := httptest.NewRecorder()
		handler.Dashboard(w, httptest.NewRequest(http.MethodGet, "/?year_from=1900", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
