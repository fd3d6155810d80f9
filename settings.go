package blaulicht

import (
	"net/url"
	"time"
)

// Defaults for Settings.
const (
	DefaultTargetURL      = "https://www.presseportal.de/blaulicht/"
	DefaultUserAgent      = "blaulicht/1.0 (+https://github.com/fwojciec/blaulicht)"
	DefaultRequestTimeout = 10 * time.Second
	DefaultMaxItems       = 10
)

// FailurePolicy decides what happens when a fragment lacks a required field.
type FailurePolicy string

// FailurePolicy values.
const (
	// FailureAbort stops the run and returns the error. No records are
	// returned.
	FailureAbort FailurePolicy = "abort"

	// FailureSkip drops the offending fragment and continues.
	FailureSkip FailurePolicy = "skip"
)

// Settings is the immutable configuration of one run.
type Settings struct {
	TargetURL      string
	UserAgent      string
	RequestTimeout time.Duration

	// MaxItems bounds the number of fragments processed. Zero means uncapped.
	MaxItems int

	GeocodeEnabled bool
	FailurePolicy  FailurePolicy

	// Concurrency bounds parallel geocoding lookups. Values below 2 keep
	// the run strictly sequential.
	Concurrency int
}

// DefaultSettings returns the settings of a default run.
func DefaultSettings() Settings {
	return Settings{
		TargetURL:      DefaultTargetURL,
		UserAgent:      DefaultUserAgent,
		RequestTimeout: DefaultRequestTimeout,
		MaxItems:       DefaultMaxItems,
		GeocodeEnabled: true,
		FailurePolicy:  FailureAbort,
		Concurrency:    1,
	}
}

// Validate returns an error if the settings contain invalid fields.
func (s Settings) Validate() error {
	if _, err := s.Origin(); err != nil {
		return err
	}
	if s.RequestTimeout <= 0 {
		return Errorf(EINVALID, "request timeout must be positive")
	}
	if s.MaxItems < 0 {
		return Errorf(EINVALID, "max items must not be negative")
	}
	switch s.FailurePolicy {
	case FailureAbort, FailureSkip:
	default:
		return Errorf(EINVALID, "unknown failure policy %q", s.FailurePolicy)
	}
	return nil
}

// Origin returns the scheme and host of TargetURL, e.g.
// "https://www.presseportal.de".
func (s Settings) Origin() (string, error) {
	u, err := url.Parse(s.TargetURL)
	if err != nil {
		return "", Errorf(EINVALID, "invalid target URL: %v", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", Errorf(EINVALID, "target URL %q must be absolute", s.TargetURL)
	}
	return u.Scheme + "://" + u.Host, nil
}
