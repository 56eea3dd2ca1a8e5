package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"chartboard/internal/analysis"
	apierrors "chartboard/internal/errors"
	"chartboard/internal/services"
)

// maxTableRows caps the rows rendered in the HTML table. The full
// selection remains available through the Excel export.
const maxTableRows = 200

// DashboardHandler renders the server-side HTML dashboard.
type DashboardHandler struct {
	movies       MovieServiceInterface
	species      SpeciesServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(movies MovieServiceInterface, species SpeciesServiceInterface,
	logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		movies:       movies,
		species:      species,
		logger:       logger.With(slog.String("handler", "dashboard")),
		errorHandler: errorHandler,
	}
}

type checkOption struct {
	Name    string
	Checked bool
}

type selectOption struct {
	Name     string
	Selected bool
}

type dashboardData struct {
	Genres             []checkOption
	YearFrom, YearTo   int
	MinYear, MaxYear   int
	MovieError         string
	MovieRows          []services.MovieRow
	MovieRowsTruncated bool
	GrossChartURL      string
	ExportURL          string

	Metrics            []checkOption
	XOptions           []selectOption
	YOptions           []selectOption
	SpeciesError       string
	MetricsChartURL    string
	Fit                analysis.Fit
	RegressionError    string
	RegressionChartURL string
}

// Dashboard handles GET /. Every interaction is a plain form submit:
// the page re-renders from scratch with the new query parameters, the
// same way each widget change reruns the whole pipeline.
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	filter, err := parseMovieFilter(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}
	metrics := parseMetrics(r)
	xVar, yVar := parseRegressionVars(r)

	data := h.buildViewData(r, filter, metrics, xVar, yVar)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := getDashboardTemplate().Execute(w, data); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render dashboard",
			slog.String("error", err.Error()))
	}
}

func (h *DashboardHandler) buildViewData(r *http.Request, filter analysis.MovieFilter,
	metrics []string, xVar, yVar string) dashboardData {
	ctx := r.Context()

	selected := make(map[string]bool, len(filter.Genres))
	for _, g := range filter.Genres {
		selected[g] = true
	}

	opts := h.movies.Genres(ctx)
	genres := make([]checkOption, len(opts.All))
	for i, g := range opts.All {
		genres[i] = checkOption{Name: g, Checked: selected[g]}
	}

	data := dashboardData{
		Genres:   genres,
		YearFrom: filter.YearFrom,
		YearTo:   filter.YearTo,
		MinYear:  opts.MinYear,
		MaxYear:  opts.MaxYear,
	}

	movieParams := url.Values{}
	for _, g := range filter.Genres {
		movieParams.Add("genre", g)
	}
	movieParams.Set("year_from", strconv.Itoa(filter.YearFrom))
	movieParams.Set("year_to", strconv.Itoa(filter.YearTo))
	data.GrossChartURL = "/charts/movies/gross.png?" + movieParams.Encode()
	data.ExportURL = "/api/export/movies.xlsx?" + movieParams.Encode()

	rows, err := h.movies.Table(ctx, filter)
	if err != nil {
		data.MovieError = err.Error()
	} else if len(rows) > maxTableRows {
		data.MovieRows = rows[:maxTableRows]
		data.MovieRowsTruncated = true
	} else {
		data.MovieRows = rows
	}

	metricSelected := make(map[string]bool, len(metrics))
	for _, m := range metrics {
		metricSelected[m] = true
	}
	metricOpts := h.species.Options(ctx)
	data.Metrics = make([]checkOption, len(metricOpts.All))
	for i, m := range metricOpts.All {
		data.Metrics[i] = checkOption{Name: m, Checked: metricSelected[m]}
	}
	data.XOptions = make([]selectOption, len(metricOpts.XVariables))
	for i, v := range metricOpts.XVariables {
		data.XOptions[i] = selectOption{Name: v, Selected: v == xVar}
	}
	data.YOptions = make([]selectOption, len(metricOpts.YVariables))
	for i, v := range metricOpts.YVariables {
		data.YOptions[i] = selectOption{Name: v, Selected: v == yVar}
	}

	if _, err := h.species.List(ctx, nil); err != nil {
		data.SpeciesError = err.Error()
		return data
	}

	// The bar chart only renders when at least one metric is picked
	if len(metrics) > 0 {
		metricParams := url.Values{}
		for _, m := range metrics {
			metricParams.Add("metric", m)
		}
		data.MetricsChartURL = "/charts/species/metrics.png?" + metricParams.Encode()
	}

	fit, err := h.species.Regression(ctx, xVar, yVar)
	if err != nil {
		data.RegressionError = err.Error()
	} else {
		data.Fit = fit
		regParams := url.Values{}
		regParams.Set("x", xVar)
		regParams.Set("y", yVar)
		data.RegressionChartURL = "/charts/species/regression.png?" + regParams.Encode()
	}

	return data
}
