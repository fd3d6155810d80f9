package blaulicht

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
)

// Date layouts.
const (
	// SourceDateLayout is the posted-at format used by the listing,
	// e.g. "05.03.2024 – 14:30" (en dash, 24-hour clock).
	SourceDateLayout = "02.01.2006 – 15:04"

	// DateLayout is the ISO-8601 form emitted for Incident.Date. The source
	// carries no zone, so none is written.
	DateLayout = "2006-01-02T15:04:05"
)

// Incident is one normalized report from the listing.
type Incident struct {
	Date time.Time

	// DateEstimated is true when the source timestamp was missing or
	// malformed and Date holds the extraction time instead.
	DateEstimated bool

	Location    string
	Agency      string
	Headline    string
	Link        string
	Summary     string
	Coordinates *Coordinates
}

// MarshalJSON writes the incident with the date in DateLayout and
// coordinates as null when absent.
func (i *Incident) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date          string       `json:"date"`
		DateEstimated bool         `json:"date_is_estimated"`
		Location      string       `json:"location"`
		Agency        string       `json:"agency"`
		Headline      string       `json:"headline"`
		Link          string       `json:"link"`
		Summary       string       `json:"summary"`
		Coordinates   *Coordinates `json:"coordinates"`
	}{
		Date:          i.Date.Format(DateLayout),
		DateEstimated: i.DateEstimated,
		Location:      i.Location,
		Agency:        i.Agency,
		Headline:      i.Headline,
		Link:          i.Link,
		Summary:       i.Summary,
		Coordinates:   i.Coordinates,
	})
}

// NewIncident normalizes a fragment into an incident. Coordinates are left
// for the caller. Returns EMISSING if the headline or its link is absent.
func NewIncident(f *Fragment, origin string, now time.Time) (*Incident, error) {
	if f.Headline == "" {
		return nil, Errorf(EMISSING, "fragment %d: headline not found", f.Index)
	}
	href := strings.TrimSpace(f.Href)
	if href == "" {
		return nil, Errorf(EMISSING, "fragment %d: headline link not found", f.Index)
	}

	date, ok := ParseDate(f.DateText, now)

	var summary string
	if len(f.Paragraphs) >= 2 {
		summary = f.Paragraphs[1]
	}

	return &Incident{
		Date:          date,
		DateEstimated: !ok,
		Location:      f.Topic,
		Agency:        f.Agency,
		Headline:      f.Headline,
		Link:          ResolveLink(origin, href),
		Summary:       summary,
	}, nil
}

// ParseDate parses text in SourceDateLayout as a zoneless wall-clock time.
// On failure it returns now in UTC, truncated to the second, and false.
func ParseDate(text string, now time.Time) (time.Time, bool) {
	t, err := time.ParseInLocation(SourceDateLayout, strings.TrimSpace(text), time.UTC)
	if err != nil {
		return now.UTC().Truncate(time.Second), false
	}
	return t, true
}

// ResolveLink makes href absolute. An href starting with "/" is appended to
// origin verbatim, absolute hrefs are returned as-is and other relative hrefs
// are resolved against origin. It never fails: an href that does not parse
// as a URL is joined to origin with a slash.
func ResolveLink(origin, href string) string {
	origin = strings.TrimSuffix(origin, "/")
	if strings.HasPrefix(href, "/") {
		return origin + href
	}

	ref, err := url.Parse(href)
	if err != nil {
		return origin + "/" + href
	}
	if ref.IsAbs() {
		return href
	}

	base, err := url.Parse(origin + "/")
	if err != nil {
		return origin + "/" + href
	}
	return base.ResolveReference(ref).String()
}
