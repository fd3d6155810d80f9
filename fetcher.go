package blaulicht

import "context"

// Fetcher retrieves the HTML of the listing page.
type Fetcher interface {
	// Fetch issues a single GET for the URL and returns the decoded body.
	// Transport failures and non-success statuses return an EFETCH error.
	// The context controls cancellation; the timeout is the fetcher's own.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
