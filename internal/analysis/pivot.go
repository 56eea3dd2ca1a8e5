package analysis

import (
	"sort"

	"chartboard/internal/dataset"
)

// GrossPoint is one melted cell of the year-by-genre pivot: the summed
// gross for a genre in a year, with absent combinations filled as zero.
type GrossPoint struct {
	Year  int     `json:"year"`
	Genre string  `json:"genre"`
	Gross float64 `json:"gross"`
}

// PivotTable is the year-by-genre gross summary in tabular form.
// Years are ordered descending and genres ascending.
type PivotTable struct {
	Genres []string                   `json:"genres"`
	Years  []int                      `json:"years"`
	Cells  map[int]map[string]float64 `json:"cells"`
}

// PivotGross sums gross per year and genre across the given rows. Every
// (year, genre) combination in the cross product appears in the table,
// with zero where no rows contributed.
func PivotGross(movies []dataset.Movie) PivotTable {
	sums := make(map[int]map[string]float64)
	yearSet := make(map[int]bool)
	genreSet := make(map[string]bool)

	for _, m := range movies {
		if sums[m.Year] == nil {
			sums[m.Year] = make(map[string]float64)
		}
		sums[m.Year][m.Genre] += m.Gross
		yearSet[m.Year] = true
		genreSet[m.Genre] = true
	}

	years := make([]int, 0, len(yearSet))
	for y := range yearSet {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))

	genres := make([]string, 0, len(genreSet))
	for g := range genreSet {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	cells := make(map[int]map[string]float64, len(years))
	for _, y := range years {
		row := make(map[string]float64, len(genres))
		for _, g := range genres {
			row[g] = sums[y][g]
		}
		cells[y] = row
	}

	return PivotTable{Genres: genres, Years: years, Cells: cells}
}

// Melt flattens the pivot back into long form, one point per (year, genre)
// cell, preserving the table ordering: year descending, genre ascending.
func Melt(t PivotTable) []GrossPoint {
	points := make([]GrossPoint, 0, len(t.Years)*len(t.Genres))
	for _, y := range t.Years {
		for _, g := range t.Genres {
			points = append(points, GrossPoint{Year: y, Genre: g, Gross: t.Cells[y][g]})
		}
	}
	return points
}
