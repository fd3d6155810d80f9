package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/blaulicht"
)

// Ensure LoggingParser implements blaulicht.ListingParser.
var _ blaulicht.ListingParser = (*LoggingParser)(nil)

// LoggingParser wraps a ListingParser with logging.
type LoggingParser struct {
	next   blaulicht.ListingParser
	logger *slog.Logger
}

// NewLoggingParser creates a new LoggingParser.
func NewLoggingParser(next blaulicht.ListingParser, logger *slog.Logger) *LoggingParser {
	return &LoggingParser{next: next, logger: logger}
}

// Fragments delegates to the wrapped parser and logs the fragment count.
func (p *LoggingParser) Fragments(html string) (fragments []*blaulicht.Fragment, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("parse listing",
			"bytes", len(html),
			"fragments", len(fragments),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.Fragments(html)
}
