package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// Species is one row of the survival-strategy metrics: a species name and
// its scores across six behavioural dimensions.
type Species struct {
	Species            string  `json:"species"`
	Protection         float64 `json:"protection"`
	Defense            float64 `json:"defense"`
	Attack             float64 `json:"attack"`
	Feeding            float64 `json:"feeding"`
	Satisfaction       float64 `json:"satisfaction"`
	SexualReproduction float64 `json:"sexual_reproduction"`
}

// SpeciesColumns lists the columns the species CSV must provide.
var SpeciesColumns = []string{
	"species", "protection", "defense", "attack", "feeding", "satisfaction", "sexual_reproduction",
}

// MetricNames are the numeric metrics selectable for the bar chart.
var MetricNames = []string{
	"protection", "defense", "attack", "feeding", "satisfaction", "sexual_reproduction",
}

// DefaultMetrics is the initial metric selection for the bar chart.
var DefaultMetrics = []string{"protection", "defense"}

// RegressionXVariables and RegressionYVariables are the metrics offered as
// regression axes, in display order. The first entry of each is the default.
var (
	RegressionXVariables = []string{"feeding", "protection", "defense", "attack", "satisfaction"}
	RegressionYVariables = []string{"satisfaction", "feeding", "protection", "defense", "attack"}
)

// Metric returns the named metric value for the species.
func (s Species) Metric(name string) (float64, bool) {
	switch name {
	case "protection":
		return s.Protection, true
	case "defense":
		return s.Defense, true
	case "attack":
		return s.Attack, true
	case "feeding":
		return s.Feeding, true
	case "satisfaction":
		return s.Satisfaction, true
	case "sexual_reproduction":
		return s.SexualReproduction, true
	}
	return 0, false
}

// IsMetricName reports whether name is a known species metric.
func IsMetricName(name string) bool {
	_, ok := Species{}.Metric(name)
	return ok
}

// ParseSpecies reads species rows from CSV data. Columns are matched by
// header name, case-insensitively. Rows with unparseable metric values
// are skipped.
func ParseSpecies(r io.Reader) ([]Species, []string, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read species CSV header: %w", err)
	}

	columnMap := mapColumns(header)

	var species []Species
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, header, fmt.Errorf("failed to read species CSV row: %w", err)
		}

		row := Species{Species: stringField(record, columnMap, "species")}
		if row.Species == "" {
			continue
		}

		ok := true
		for _, m := range MetricNames {
			v, err := floatField(record, columnMap, m)
			if err != nil {
				ok = false
				break
			}
			switch m {
			case "protection":
				row.Protection = v
			case "defense":
				row.Defense = v
			case "attack":
				row.Attack = v
			case "feeding":
				row.Feeding = v
			case "satisfaction":
				row.Satisfaction = v
			case "sexual_reproduction":
				row.SexualReproduction = v
			}
		}
		if !ok {
			continue
		}

		species = append(species, row)
	}

	return species, header, nil
}
