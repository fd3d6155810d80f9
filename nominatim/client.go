// Package nominatim implements blaulicht.Geocoder against the
// OpenStreetMap Nominatim search API.
package nominatim

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/fwojciec/blaulicht"
	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

const (
	// DefaultSearchURL is the public Nominatim search endpoint.
	DefaultSearchURL = "https://nominatim.openstreetmap.org/search"

	// DefaultCountry is appended to every query to keep matches local.
	DefaultCountry = "Germany"

	// DefaultTimeout bounds a single lookup.
	DefaultTimeout = 10 * time.Second

	// DefaultRateLimit follows the public instance's usage policy of at
	// most one request per second.
	DefaultRateLimit = 1.0
)

// Ensure Client implements blaulicht.Geocoder at compile time.
var _ blaulicht.Geocoder = (*Client)(nil)

// Client resolves locations with one search request each.
type Client struct {
	httpClient *http.Client
	searchURL  string
	userAgent  string
	country    string
	timeout    time.Duration
	limiter    *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. Its own timeout is kept.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithSearchURL points the client at another Nominatim instance.
func WithSearchURL(u string) Option {
	return func(c *Client) {
		c.searchURL = u
	}
}

// WithUserAgent sets the User-Agent header. Nominatim rejects requests
// without an identifying agent.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithCountry sets the suffix appended to each query. An empty country
// sends the location unchanged.
func WithCountry(country string) Option {
	return func(c *Client) {
		c.country = country
	}
}

// WithTimeout sets the per-lookup timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit sets the requests-per-second limit. Zero or less disables
// limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewClient creates a new Nominatim client with the given options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		searchURL: DefaultSearchURL,
		userAgent: blaulicht.DefaultUserAgent,
		country:   DefaultCountry,
		timeout:   DefaultTimeout,
		limiter:   rate.NewLimiter(rate.Limit(DefaultRateLimit), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: c.timeout}
	}
	return c
}

// Geocode resolves location. It never fails: empty input, transport errors,
// failure statuses, malformed bodies and empty result sets all return
// blaulicht.Unresolved.
func (c *Client) Geocode(ctx context.Context, location string) blaulicht.GeocodeResult {
	if strings.TrimSpace(location) == "" {
		return blaulicht.Unresolved
	}

	p, err := c.Lookup(ctx, location)
	if err != nil {
		return blaulicht.Unresolved
	}
	return blaulicht.Resolved(p.Lat, p.Lng)
}

// Lookup resolves location and reports why it could not. All errors carry
// the EGEOCODE code.
func (c *Client) Lookup(ctx context.Context, location string) (blaulicht.Coordinates, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return blaulicht.Coordinates{}, blaulicht.Errorf(blaulicht.EGEOCODE, "empty location")
	}

	p, err := c.search(ctx, c.query(location))
	if err != nil {
		return blaulicht.Coordinates{}, blaulicht.Errorf(blaulicht.EGEOCODE, "geocode %q: %v", location, err)
	}
	return p, nil
}

func (c *Client) query(location string) string {
	if c.country == "" {
		return location
	}
	return location + ", " + c.country
}

// searchResult is one entry of the Nominatim JSON response. Only the
// fields used are decoded.
type searchResult struct {
	Lat flexFloat `json:"lat"`
	Lon flexFloat `json:"lon"`
}

func (c *Client) search(ctx context.Context, q string) (blaulicht.Coordinates, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return blaulicht.Coordinates{}, eris.Wrap(err, "nominatim: rate limit")
	}

	params := url.Values{
		"q":      {q},
		"format": {"json"},
		"limit":  {"1"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+params.Encode(), nil)
	if err != nil {
		return blaulicht.Coordinates{}, eris.Wrap(err, "nominatim: build request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return blaulicht.Coordinates{}, eris.Wrap(err, "nominatim: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return blaulicht.Coordinates{}, eris.Errorf("nominatim: returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return blaulicht.Coordinates{}, eris.Wrap(err, "nominatim: read body")
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return blaulicht.Coordinates{}, eris.Wrap(err, "nominatim: parse response")
	}
	if len(results) == 0 {
		return blaulicht.Coordinates{}, eris.New("nominatim: no results")
	}

	return blaulicht.Coordinates{
		Lat: float64(results[0].Lat),
		Lng: float64(results[0].Lon),
	}, nil
}

// flexFloat decodes a JSON number or a JSON string holding a number.
// Nominatim sends coordinates as strings.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return eris.Wrapf(err, "invalid coordinate %s", data)
	}
	*f = flexFloat(v)
	return nil
}
