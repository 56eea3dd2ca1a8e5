package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"chartboard/internal/analysis"
	"chartboard/internal/dataset"
	apierrors "chartboard/internal/errors"
)

var validate = validator.New()

// movieQuery carries the movie filter query parameters after parsing.
type movieQuery struct {
	YearFrom int `validate:"min=1986,max=2016"`
	YearTo   int `validate:"min=1986,max=2016,gtefield=YearFrom"`
}

// parseMovieFilter reads the genre and year parameters from the query
// string. Absent parameters fall back to the dashboard defaults: the
// six default genres and the 2000-2016 range. Genres may be given as
// repeated genre= parameters or as a comma-separated list; an explicit
// empty genre= deselects everything, which is a valid empty selection.
func parseMovieFilter(r *http.Request) (analysis.MovieFilter, error) {
	q := r.URL.Query()

	genres := splitParams(q["genre"])
	if len(genres) == 0 && !q.Has("genre") {
		genres = append([]string(nil), dataset.DefaultGenres...)
	}

	yearFrom, err := intParam(q.Get("year_from"), dataset.DefaultYearFrom)
	if err != nil {
		return analysis.MovieFilter{}, apierrors.ErrValidation("year_from", err.Error())
	}
	yearTo, err := intParam(q.Get("year_to"), dataset.DefaultYearTo)
	if err != nil {
		return analysis.MovieFilter{}, apierrors.ErrValidation("year_to", err.Error())
	}

	query := movieQuery{YearFrom: yearFrom, YearTo: yearTo}
	if err := validate.Struct(query); err != nil {
		return analysis.MovieFilter{}, validationProblem(err)
	}

	return analysis.MovieFilter{Genres: genres, YearFrom: yearFrom, YearTo: yearTo}, nil
}

// parseMetrics reads repeated metric= parameters, defaulting to the
// initial bar chart selection.
func parseMetrics(r *http.Request) []string {
	q := r.URL.Query()
	metrics := splitParams(q["metric"])
	if len(metrics) == 0 && !q.Has("metric") {
		metrics = append([]string(nil), dataset.DefaultMetrics...)
	}
	return metrics
}

// parseSpeciesNames reads repeated species= parameters. No parameter
// means no filter: the species list is unfiltered by default.
func parseSpeciesNames(r *http.Request) []string {
	return splitParams(r.URL.Query()["species"])
}

// parseRegressionVars reads the x and y regression variables, defaulting
// to the first option of each selector.
func parseRegressionVars(r *http.Request) (string, string) {
	q := r.URL.Query()

	xVar := q.Get("x")
	if xVar == "" {
		xVar = dataset.RegressionXVariables[0]
	}
	yVar := q.Get("y")
	if yVar == "" {
		yVar = dataset.RegressionYVariables[0]
	}
	return xVar, yVar
}

// splitParams flattens repeated parameters and comma-separated values
// into one list, dropping empties.
func splitParams(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(value string, fallback int) (int, error) {
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("expected an integer, got %q", value)
	}
	return n, nil
}

// validationProblem converts validator failures into field-level errors.
func validationProblem(err error) error {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierrors.InvalidRequestWithError(err)
	}

	fields := make([]apierrors.ValidationError, 0, len(validationErrs))
	for _, fe := range validationErrs {
		fields = append(fields, apierrors.ValidationError{
			Field:   strings.ToLower(fe.Field()),
			Message: fmt.Sprintf("failed %q validation", fe.Tag()),
		})
	}
	return apierrors.NewValidationErrors(fields)
}
