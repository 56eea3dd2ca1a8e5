package dataset

import "strings"

// MissingColumns returns the required columns absent from the header,
// compared case-insensitively. An empty result means the header is valid.
func MissingColumns(header, required []string) []string {
	present := make(map[string]bool, len(header))
	for _, name := range header {
		present[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var missing []string
	for _, name := range required {
		if !present[strings.ToLower(name)] {
			missing = append(missing, name)
		}
	}
	return missing
}
