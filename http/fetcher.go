// Package http provides an HTTP-based implementation of blaulicht.Fetcher
// for the static listing page.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/blaulicht"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = blaulicht.DefaultRequestTimeout

// Ensure Fetcher implements blaulicht.Fetcher at compile time.
var _ blaulicht.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content with a single GET per call. It does not
// retry.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithTransport replaces the HTTP transport, mostly for tests.
func WithTransport(rt http.RoundTripper) Option {
	return func(f *Fetcher) {
		f.client.Transport = rt
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{},
		timeout:   DefaultFetchTimeout,
		userAgent: blaulicht.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client.Timeout = f.timeout

	return f
}

// Fetch retrieves the HTML content from the given URL, decoded to UTF-8
// according to the response's declared charset.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", blaulicht.Errorf(blaulicht.EFETCH, "build request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", blaulicht.Errorf(blaulicht.EFETCH, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", blaulicht.Errorf(blaulicht.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", blaulicht.Errorf(blaulicht.EFETCH, "decode body of %s: %v", url, err)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", blaulicht.Errorf(blaulicht.EFETCH, "read body of %s: %v", url, err)
	}

	return string(data), nil
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}
