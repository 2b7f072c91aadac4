package report

import "strings"

// stateRegion maps a contestant's home state to its census region. The
// report groups contestants by these buckets.
func stateRegion(state string) string {
	northeast := []string{"Connecticut", "Maine", "Massachusetts", "New Hampshire",
		"New Jersey", "New York", "Pennsylvania", "Rhode Island", "Vermont"}

	midwest := []string{"Illinois", "Indiana", "Iowa", "Kansas", "Michigan",
		"Minnesota", "Missouri", "Nebraska", "North Dakota", "Ohio",
		"South Dakota", "Wisconsin"}

	south := []string{"Alabama", "Arkansas", "Delaware", "Florida", "Georgia",
		"Kentucky", "Louisiana", "Maryland", "Mississippi", "North Carolina",
		"Oklahoma", "South Carolina", "Tennessee", "Texas", "Virginia",
		"Washington, D.C.", "West Virginia", "District of Columbia"}

	west := []string{"Alaska", "Arizona", "California", "Colorado", "Hawaii",
		"Idaho", "Montana", "Nevada", "New Mexico", "Oregon", "Utah",
		"Washington", "Wyoming"}

	normalized := strings.TrimSpace(state)

	for _, s := range northeast {
		if strings.EqualFold(normalized, s) {
			return "northeast"
		}
	}

	for _, s := range midwest {
		if strings.EqualFold(normalized, s) {
			return "midwest"
		}
	}

	for _, s := range south {
		if strings.EqualFold(normalized, s) {
			return "south"
		}
	}

	for _, s := range west {
		if strings.EqualFold(normalized, s) {
			return "west"
		}
	}

	// Default for territories, foreign homes and unparsable values
	return "other"
}
