package http

import (
	"errors"
	"io/fs"
	"net/http"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
	apierrors "chartboard/internal/errors"
	"chartboard/internal/services"
)

// mapServiceError translates service and dataset errors into API errors
// so the error handler can emit the right problem type. Unrecognized
// errors pass through and surface as 500s.
func mapServiceError(datasetName string, err error) error {
	var colErr *dataset.ColumnError
	if errors.As(err, &colErr) {
		return apierrors.MissingColumnsError(colErr.Dataset, colErr.Missing)
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return apierrors.DatasetUnavailableError(datasetName, err)
	}

	switch {
	case errors.Is(err, services.ErrUnknownGenre):
		return apierrors.ErrValidation("genre", err.Error())
	case errors.Is(err, services.ErrInvalidYearRange):
		return apierrors.ErrValidation("year_from", err.Error())
	case errors.Is(err, services.ErrUnknownMetric), errors.Is(err, services.ErrNoMetricsChosen):
		return apierrors.ErrValidation("metric", err.Error())
	case errors.Is(err, analysis.ErrUnknownVariable):
		return apierrors.NewWithDetails(http.StatusBadRequest, "UNKNOWN_VARIABLE",
			"Unknown regression variable", err.Error())
	case errors.Is(err, analysis.ErrTooFewPoints), errors.Is(err, analysis.ErrZeroVariance):
		return apierrors.NewWithDetails(http.StatusUnprocessableEntity, "REGRESSION_DEGENERATE",
			"Regression could not be fitted", err.Error())
	}

	return err
}
