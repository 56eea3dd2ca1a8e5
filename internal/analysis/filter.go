// Package analysis implements the data transformations behind the
// dashboard: filtering, pivoting and ordinary least squares fitting.
package analysis

import "chartboard/internal/dataset"

// MovieFilter selects movie rows by genre membership and inclusive year range.
type MovieFilter struct {
	Genres   []string
	YearFrom int
	YearTo   int
}

// DefaultMovieFilter returns the selection the dashboard starts with.
func DefaultMovieFilter() MovieFilter {
	return MovieFilter{
		Genres:   append([]string(nil), dataset.DefaultGenres...),
		YearFrom: dataset.DefaultYearFrom,
		YearTo:   dataset.DefaultYearTo,
	}
}

// FilterMovies returns the rows matching the filter. A row matches when
// its genre is in the selected set and its year falls inside the range,
// bounds included. An empty genre set matches nothing.
func FilterMovies(movies []dataset.Movie, f MovieFilter) []dataset.Movie {
	selected := make(map[string]bool, len(f.Genres))
	for _, g := range f.Genres {
		selected[g] = true
	}

	filtered := make([]dataset.Movie, 0, len(movies))
	for _, m := range movies {
		if !selected[m.Genre] {
			continue
		}
		if m.Year < f.YearFrom || m.Year > f.YearTo {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}

// FilterSpecies returns the rows whose name is in the selection. Unlike
// the genre filter, an empty selection means unfiltered: every row is
// returned. Names not present in the data simply match nothing.
func FilterSpecies(species []dataset.Species, names []string) []dataset.Species {
	if len(names) == 0 {
		return species
	}

	selected := make(map[string]bool, len(names))
	for _, n := range names {
		selected[n] = true
	}

	filtered := make([]dataset.Species, 0, len(species))
	for _, sp := range species {
		if selected[sp.Species] {
			filtered = append(filtered, sp)
		}
	}
	return filtered
}
