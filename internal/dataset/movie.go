package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Movie is one row of the box-office summary: the gross earned by an
// actor's movie in a given year, tagged with a single genre.
type Movie struct {
	Year    int     `json:"year"`
	ActorID int64   `json:"actor_id"`
	Name    string  `json:"name"`
	MovieID int64   `json:"movie_id"`
	Title   string  `json:"title"`
	Genre   string  `json:"genre"`
	Country string  `json:"country"`
	Gross   float64 `json:"gross"`
}

// MovieColumns lists the columns the movie CSV must provide.
var MovieColumns = []string{"year", "ActorId", "Name", "MovieId", "Title", "genre", "Country", "gross"}

// AllGenres is the full set of genres the dashboard offers for filtering.
var AllGenres = []string{
	"Romance", "Film-Noir", "Music", "Comedy", "Biography", "Sport", "Drama",
	"Animation", "Sci-Fi", "Western", "War", "Adventure", "Musical", "Action",
	"Horror", "Thriller", "Fantasy", "Mystery", "Crime", "Family", "History",
}

// DefaultGenres is the initial genre selection.
var DefaultGenres = []string{"Action", "Adventure", "Biography", "Comedy", "Drama", "Horror"}

// Year bounds for the filter slider and their default range.
const (
	MinYear         = 1986
	MaxYear         = 2016
	DefaultYearFrom = 2000
	DefaultYearTo   = 2016
)

// IsKnownGenre reports whether name is one of the offered genres.
func IsKnownGenre(name string) bool {
	for _, g := range AllGenres {
		if g == name {
			return true
		}
	}
	return false
}

// ParseMovies reads movie rows from CSV data. Columns are matched by
// header name, case-insensitively, so column order does not matter.
// Rows with unparseable year or gross values are skipped rather than
// failing the whole file.
func ParseMovies(r io.Reader) ([]Movie, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read movie CSV header: %w", err)
	}

	columnMap := mapColumns(header)

	var movies []Movie
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, header, fmt.Errorf("failed to read movie CSV row: %w", err)
		}

		year, err := intField(record, columnMap, "year")
		if err != nil {
			continue
		}
		gross, err := floatField(record, columnMap, "gross")
		if err != nil {
			continue
		}
		actorID, _ := int64Field(record, columnMap, "actorid")
		movieID, _ := int64Field(record, columnMap, "movieid")

		movies = append(movies, Movie{
			Year:    year,
			ActorID: actorID,
			Name:    stringField(record, columnMap, "name"),
			MovieID: movieID,
			Title:   stringField(record, columnMap, "title"),
			Genre:   stringField(record, columnMap, "genre"),
			Country: stringField(record, columnMap, "country"),
			Gross:   gross,
		})
	}

	return movies, header, nil
}

// mapColumns builds a lowercase header name to position index.
func mapColumns(header []string) map[string]int {
	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		columnMap[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return columnMap
}

func stringField(record []string, columnMap map[string]int, name string) string {
	idx, ok := columnMap[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func intField(record []string, columnMap map[string]int, name string) (int, error) {
	v := stringField(record, columnMap, name)
	if v == "" {
		return 0, fmt.Errorf("column %q is empty", name)
	}
	return strconv.Atoi(v)
}

func int64Field(record []string, columnMap map[string]int, name string) (int64, error) {
	v := stringField(record, columnMap, name)
	if v == "" {
		return 0, fmt.Errorf("column %q is empty", name)
	}
	return strconv.ParseInt(v, 10, 64)
}

func floatField(record []string, columnMap map[string]int, name string) (float64, error) {
	v := stringField(record, columnMap, name)
	if v == "" {
		return 0, fmt.Errorf("column %q is empty", name)
	}
	// Grosses sometimes arrive with thousands separators
	v = strings.ReplaceAll(v, ",", "")
	return strconv.ParseFloat(v, 64)
}
