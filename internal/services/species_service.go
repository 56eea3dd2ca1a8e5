package services

import (
	"context"
	"fmt"
	"log/slog"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
)

// SpeciesService exposes the animal survival-strategy views: raw rows,
// the metric comparison and the pairwise regression.
type SpeciesService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewSpeciesService creates a species service backed by the dataset store.
func NewSpeciesService(store *dataset.Store, logger *slog.Logger) *SpeciesService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SpeciesService{
		store:  store,
		logger: logger.With(slog.String("service", "species")),
	}
}

// List returns the species rows matching the name selection; an empty
// selection returns every row.
func (s *SpeciesService) List(ctx context.Context, names []string) ([]dataset.Species, error) {
	species, err := s.store.Species()
	if err != nil {
		return nil, err
	}
	return analysis.FilterSpecies(species, names), nil
}

// MetricOptions describes the metric selectors offered by the dashboard.
type MetricOptions struct {
	All        []string `json:"all"`
	Defaults   []string `json:"defaults"`
	XVariables []string `json:"x_variables"`
	YVariables []string `json:"y_variables"`
}

// Options returns the selectable metrics and regression variables.
func (s *SpeciesService) Options(ctx context.Context) MetricOptions {
	return MetricOptions{
		All:        append([]string(nil), dataset.MetricNames...),
		Defaults:   append([]string(nil), dataset.DefaultMetrics...),
		XVariables: append([]string(nil), dataset.RegressionXVariables...),
		YVariables: append([]string(nil), dataset.RegressionYVariables...),
	}
}

// MetricComparison pairs species rows with the metrics chosen for the
// bar chart view.
type MetricComparison struct {
	Metrics []string          `json:"metrics"`
	Species []dataset.Species `json:"species"`
}

// Metrics returns species rows along with the validated metric selection.
func (s *SpeciesService) Metrics(ctx context.Context, metrics []string) (MetricComparison, error) {
	if len(metrics) == 0 {
		return MetricComparison{}, ErrNoMetricsChosen
	}
	for _, m := range metrics {
		if !dataset.IsMetricName(m) {
			return MetricComparison{}, fmt.Errorf("%w: %q", ErrUnknownMetric, m)
		}
	}

	species, err := s.store.Species()
	if err != nil {
		return MetricComparison{}, err
	}

	s.logger.DebugContext(ctx, "metric comparison built",
		slog.Int("species", len(species)),
		slog.Any("metrics", metrics))
	return MetricComparison{Metrics: metrics, Species: species}, nil
}

// Regression fits one metric against another over all species.
func (s *SpeciesService) Regression(ctx context.Context, xVar, yVar string) (analysis.Fit, error) {
	species, err := s.store.Species()
	if err != nil {
		return analysis.Fit{}, err
	}

	fit, err := analysis.FitRegression(species, xVar, yVar)
	if err != nil {
		return analysis.Fit{}, err
	}

	s.logger.DebugContext(ctx, "regression fitted",
		slog.String("x", xVar),
		slog.String("y", yVar),
		slog.Float64("slope", fit.Slope),
		slog.Float64("intercept", fit.Intercept))
	return fit, nil
}
