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

func TestChartHandler_GrossChart(t *testing.T) {
	movies := []dataset.Movie{
		{Year: 2001, Genre: "Adventure", Gross: 150},
		{Year: 2002, Genre: "Adventure", Gross: 120},
	}
	table := analysis.PivotGross(movies)

	svc := new(mockMovieService)
	svc.On("Summary", mock.Anything, mock.Anything).
		Return(services.GrossSummary{Table: table, Points: analysis.Melt(table)}, nil)

	handler := NewChartHandler(svc, new(mockSpeciesService), testLogger(), testErrorHandler(), nil)

	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/movies/gross.png", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, w.Body.Bytes()[:4])
}

func TestChartHandler_MetricsChart(t *testing.T) {
	svc := new(mockSpeciesService)
	svc.On("Metrics", mock.Anything, []string{"protection", "defense"}).
		Return(services.MetricComparison{
			Metrics: []string{"protection", "defense"},
			Species: []dataset.Species{{Species: "Lion", Protection: 7.5, Defense: 8}},
		}, nil)

	handler := NewChartHandler(new(mockMovieService), svc, testLogger(), testErrorHandler(), nil)

	w := httptest.NewRecorder()
	handler.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/species/metrics.png", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}

func TestChartHandler_RegressionChart(t *testing.T) {
	t.Run("renders scatter with fit", func(t *testing.T) {
		svc := new(mockSpeciesService)
		svc.On("Regression", mock.Anything, "feeding", "satisfaction").
			Return(analysis.Fit{
				XVariable: "feeding",
				YVariable: "satisfaction",
				Slope:     2,
				Points:    []analysis.FitPoint{{X: 1, Y: 2, Predicted: 2}, {X: 2, Y: 4, Predicted: 4}},
			}, nil)

		handler := NewChartHandler(new(mockMovieService), svc, testLogger(), testErrorHandler(), nil)

		w := httptest.NewRecorder()
		handler.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/species/regression.png", nil))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	})

	t.Run("dataset failure returns problem JSON", func(t *testing.T) {
		svc := new(mockSpeciesService)
		svc.On("Regression", mock.Anything, "feeding", "satisfaction").
			Return(analysis.Fit{}, analysis.ErrTooFewPoints)

		handler := NewChartHandler(new(mockMovieService), svc, testLogger(), testErrorHandler(), nil)

		w := httptest.NewRecorder()
		handler.Routes().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/species/regression.png", nil))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})
}
