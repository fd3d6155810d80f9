package blaulicht_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/fwojciec/blaulicht"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const origin = "https://www.presseportal.de"

var now = time.Date(2024, 3, 6, 9, 15, 42, 123, time.UTC)

func validFragment() *blaulicht.Fragment {
	return &blaulicht.Fragment{
		DateText:   "05.03.2024 – 14:30",
		Topic:      "Berlin",
		Headline:   "Einbruch in Geschäft",
		Href:       "/id/123",
		Agency:     "Polizei Berlin",
		Paragraphs: []string{"Meldungsbeginn", "Ein Mann brach ein."},
	}
}

func TestNewIncident(t *testing.T) {
	t.Parallel()

	t.Run("normalizes a complete fragment", func(t *testing.T) {
		t.Parallel()

		inc, err := blaulicht.NewIncident(validFragment(), origin, now)

		require.NoError(t, err)
		assert.Equal(t, "2024-03-05T14:30:00", inc.Date.Format(blaulicht.DateLayout))
		assert.False(t, inc.DateEstimated)
		assert.Equal(t, "Berlin", inc.Location)
		assert.Equal(t, "Polizei Berlin", inc.Agency)
		assert.Equal(t, "Einbruch in Geschäft", inc.Headline)
		assert.Equal(t, "https://www.presseportal.de/id/123", inc.Link)
		assert.Equal(t, "Ein Mann brach ein.", inc.Summary)
		assert.Nil(t, inc.Coordinates)
	})

	t.Run("keeps absolute links as-is", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Href = "https://www.presseportal.de/blaulicht/pm/4970/5731234"

		inc, err := blaulicht.NewIncident(f, origin, now)

		require.NoError(t, err)
		assert.Equal(t, "https://www.presseportal.de/blaulicht/pm/4970/5731234", inc.Link)
	})

	t.Run("keeps a link that does not parse as a URL", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Href = "/id/%zz"

		inc, err := blaulicht.NewIncident(f, origin, now)

		require.NoError(t, err)
		assert.Equal(t, "https://www.presseportal.de/id/%zz", inc.Link)
	})

	t.Run("falls back to now for malformed date", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.DateText = "2024-03-05 14:30"

		inc, err := blaulicht.NewIncident(f, origin, now)

		require.NoError(t, err)
		assert.True(t, inc.DateEstimated)
		assert.Equal(t, now.Truncate(time.Second), inc.Date)
	})

	t.Run("falls back to now for missing date", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.DateText = ""

		inc, err := blaulicht.NewIncident(f, origin, now)

		require.NoError(t, err)
		assert.True(t, inc.DateEstimated)
		assert.Equal(t, "2024-03-06T09:15:42", inc.Date.Format(blaulicht.DateLayout))
	})

	t.Run("leaves location empty without topic", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Topic = ""

		inc, err := blaulicht.NewIncident(f, origin, now)

		require.NoError(t, err)
		assert.Equal(t, "", inc.Location)
	})

	t.Run("skips first paragraph for summary", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Paragraphs = []string{"Label", "Second", "Third"}

		inc, err := blaulicht.NewIncident(f, origin, now)

		require.NoError(t, err)
		assert.Equal(t, "Second", inc.Summary)
	})

	t.Run("leaves summary empty with a single paragraph", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Paragraphs = []string{"Only label"}

		inc, err := blaulicht.NewIncident(f, origin, now)

		require.NoError(t, err)
		assert.Equal(t, "", inc.Summary)
	})

	t.Run("fails without headline", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Index = 4
		f.Headline = ""

		_, err := blaulicht.NewIncident(f, origin, now)

		require.Error(t, err)
		assert.Equal(t, blaulicht.EMISSING, blaulicht.ErrorCode(err))
		assert.Contains(t, blaulicht.ErrorMessage(err), "fragment 4")
	})

	t.Run("fails without link", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Href = ""

		_, err := blaulicht.NewIncident(f, origin, now)

		require.Error(t, err)
		assert.Equal(t, blaulicht.EMISSING, blaulicht.ErrorCode(err))
	})

	t.Run("fails with blank link", func(t *testing.T) {
		t.Parallel()

		f := validFragment()
		f.Href = "   "

		_, err := blaulicht.NewIncident(f, origin, now)

		require.Error(t, err)
		assert.Equal(t, blaulicht.EMISSING, blaulicht.ErrorCode(err))
	})
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	t.Run("parses without zone shift", func(t *testing.T) {
		t.Parallel()

		got, ok := blaulicht.ParseDate("  31.12.2023 – 23:59 ", now)

		require.True(t, ok)
		assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 0, 0, time.UTC), got)
	})

	t.Run("rejects hyphen instead of en dash", func(t *testing.T) {
		t.Parallel()

		_, ok := blaulicht.ParseDate("31.12.2023 - 23:59", now)

		assert.False(t, ok)
	})

	t.Run("rejects impossible dates", func(t *testing.T) {
		t.Parallel()

		_, ok := blaulicht.ParseDate("32.01.2024 – 10:00", now)

		assert.False(t, ok)
	})
}

func TestResolveLink(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name string
		href string
		want string
	}{
		{"root relative", "/blaulicht/pm/1/2", "https://www.presseportal.de/blaulicht/pm/1/2"},
		{"absolute", "https://example.com/x", "https://example.com/x"},
		{"path relative", "pm/1/2", "https://www.presseportal.de/pm/1/2"},
		{"keeps query", "/id/123?utm=feed", "https://www.presseportal.de/id/123?utm=feed"},
		{"keeps bad escape", "/id/%zz", "https://www.presseportal.de/id/%zz"},
		{"keeps protocol relative on origin", "//cdn.example/x", "https://www.presseportal.de//cdn.example/x"},
		{"keeps dot segments", "/id/../x", "https://www.presseportal.de/id/../x"},
		{"path relative parent", "../pm/1", "https://www.presseportal.de/pm/1"},
		{"path relative bad escape", "pm/%zz", "https://www.presseportal.de/pm/%zz"},
	} {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, blaulicht.ResolveLink(origin, tc.href))
		})
	}

	t.Run("ignores trailing slash on origin", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, "https://www.presseportal.de/id/123", blaulicht.ResolveLink(origin+"/", "/id/123"))
	})
}

func TestIncident_MarshalJSON(t *testing.T) {
	t.Parallel()

	t.Run("writes coordinates as null when absent", func(t *testing.T) {
		t.Parallel()

		inc, err := blaulicht.NewIncident(validFragment(), origin, now)
		require.NoError(t, err)

		data, err := json.Marshal(inc)

		require.NoError(t, err)
		assert.JSONEq(t, `{
			"date": "2024-03-05T14:30:00",
			"date_is_estimated": false,
			"location": "Berlin",
			"agency": "Polizei Berlin",
			"headline": "Einbruch in Geschäft",
			"link": "https://www.presseportal.de/id/123",
			"summary": "Ein Mann brach ein.",
			"coordinates": null
		}`, string(data))
	})

	t.Run("writes nested lat and lng", func(t *testing.T) {
		t.Parallel()

		inc := &blaulicht.Incident{
			Date:        time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC),
			Headline:    "h",
			Link:        "https://www.presseportal.de/id/1",
			Coordinates: &blaulicht.Coordinates{Lat: 52.52, Lng: 13.405},
		}

		data, err := json.Marshal(inc)

		require.NoError(t, err)
		assert.Contains(t, string(data), `"coordinates":{"lat":52.52,"lng":13.405}`)
		assert.Contains(t, string(data), `"location":""`)
	})
}
