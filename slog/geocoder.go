package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/blaulicht"
)

// Ensure LoggingGeocoder implements blaulicht.Geocoder.
var _ blaulicht.Geocoder = (*LoggingGeocoder)(nil)

// LoggingGeocoder wraps a Geocoder with debug logging.
type LoggingGeocoder struct {
	next   blaulicht.Geocoder
	logger *slog.Logger
}

// NewLoggingGeocoder creates a new LoggingGeocoder.
func NewLoggingGeocoder(next blaulicht.Geocoder, logger *slog.Logger) *LoggingGeocoder {
	return &LoggingGeocoder{next: next, logger: logger}
}

// Geocode delegates to the wrapped geocoder and logs the outcome.
func (g *LoggingGeocoder) Geocode(ctx context.Context, location string) (result blaulicht.GeocodeResult) {
	defer func(begin time.Time) {
		g.logger.Debug("geocode",
			"location", location,
			"resolved", result.Resolved,
			"lat", result.Lat,
			"lng", result.Lng,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return g.next.Geocode(ctx, location)
}
