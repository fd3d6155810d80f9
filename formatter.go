package blaulicht

import (
	"fmt"
	"strings"
)

// Separator is printed between incidents by FormatIncidents.
var Separator = strings.Repeat("-", 80)

// FormatIncidents formats incidents as human-readable text blocks separated
// by Separator lines. Returns an empty string for no incidents.
func FormatIncidents(incidents []*Incident) string {
	if len(incidents) == 0 {
		return ""
	}

	parts := make([]string, 0, len(incidents))
	for _, inc := range incidents {
		parts = append(parts, formatIncident(inc))
	}

	return strings.Join(parts, "\n"+Separator+"\n")
}

func formatIncident(inc *Incident) string {
	var b strings.Builder

	date := inc.Date.Format(DateLayout)
	if inc.DateEstimated {
		date += " (estimated)"
	}
	fmt.Fprintf(&b, "Date:     %s\n", date)
	fmt.Fprintf(&b, "Location: %s\n", inc.Location)
	fmt.Fprintf(&b, "Agency:   %s\n", inc.Agency)
	fmt.Fprintf(&b, "Headline: %s\n", inc.Headline)
	fmt.Fprintf(&b, "Link:     %s\n", inc.Link)
	fmt.Fprintf(&b, "Summary:  %s", inc.Summary)
	if inc.Coordinates != nil {
		fmt.Fprintf(&b, "\nCoords:   %.6f, %.6f", inc.Coordinates.Lat, inc.Coordinates.Lng)
	}

	return b.String()
}
