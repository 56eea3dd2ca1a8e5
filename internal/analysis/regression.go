package analysis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"

	"chartboard/internal/dataset"
)

// Regression sentinel errors.
var (
	ErrUnknownVariable = errors.New("unknown regression variable")
	ErrTooFewPoints    = errors.New("regression needs at least two points")
	ErrZeroVariance    = errors.New("regression x values have zero variance")
)

// FitPoint pairs an observation with its prediction from the fitted line.
type FitPoint struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Predicted float64 `json:"predicted"`
}

// Fit is the result of a simple linear regression of one species metric
// against another.
type Fit struct {
	XVariable string     `json:"x_variable"`
	YVariable string     `json:"y_variable"`
	Slope     float64    `json:"slope"`
	Intercept float64    `json:"intercept"`
	Points    []FitPoint `json:"points"`
}

// FitRegression fits y = intercept + slope*x by ordinary least squares
// over the species rows, using the named metrics as axes. Points carry
// the per-row predictions in input order.
func FitRegression(species []dataset.Species, xVar, yVar string) (Fit, error) {
	if !dataset.IsMetricName(xVar) {
		return Fit{}, fmt.Errorf("%w: %q", ErrUnknownVariable, xVar)
	}
	if !dataset.IsMetricName(yVar) {
		return Fit{}, fmt.Errorf("%w: %q", ErrUnknownVariable, yVar)
	}
	if len(species) < 2 {
		return Fit{}, ErrTooFewPoints
	}

	xs := make([]float64, len(species))
	ys := make([]float64, len(species))
	for i, s := range species {
		xs[i], _ = s.Metric(xVar)
		ys[i], _ = s.Metric(yVar)
	}

	if stat.Variance(xs, nil) == 0 {
		return Fit{}, ErrZeroVariance
	}

	intercept, slope := stat.LinearRegression(xs, ys, nil, false)

	points := make([]FitPoint, len(species))
	for i := range species {
		points[i] = FitPoint{
			X:         xs[i],
			Y:         ys[i],
			Predicted: intercept + slope*xs[i],
		}
	}

	return Fit{
		XVariable: xVar,
		YVariable: yVar,
		Slope:     slope,
		Intercept: intercept,
		Points:    points,
	}, nil
}
