package services

import "errors"

// Service-level errors returned by the movie and species services.
var (
	ErrNoMetricsChosen  = errors.New("no metrics chosen")
	ErrUnknownGenre     = errors.New("unknown genre")
	ErrUnknownMetric    = errors.New("unknown metric")
	ErrInvalidYearRange = errors.New("invalid year range")
)
