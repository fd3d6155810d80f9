package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/blaulicht"
	"github.com/fwojciec/blaulicht/prometheus"
	"github.com/fwojciec/blaulicht/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Processor *scrape.Processor
	Metrics   *prometheus.Metrics
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL         string        `default:"${url}" env:"BLAULICHT_URL" help:"Listing page to scrape"`
	UserAgent   string        `name:"user-agent" default:"${user_agent}" env:"BLAULICHT_USER_AGENT" help:"User-Agent header for all requests"`
	Timeout     time.Duration `short:"t" default:"10s" env:"BLAULICHT_TIMEOUT" help:"Timeout per request"`
	MaxItems    int           `short:"n" name:"max-items" default:"10" env:"BLAULICHT_MAX_ITEMS" help:"Maximum articles to process (0 for all)"`
	NoGeocode   bool          `name:"no-geocode" env:"BLAULICHT_NO_GEOCODE" help:"Do not resolve locations to coordinates"`
	OnError     string        `name:"on-error" enum:"abort,skip" default:"abort" env:"BLAULICHT_ON_ERROR" help:"Handling of articles without headline or link (abort, skip)"`
	Concurrency int           `short:"c" default:"1" env:"BLAULICHT_CONCURRENCY" help:"Concurrent geocoding lookups"`
	Format      string        `short:"f" enum:"json,text" default:"json" help:"Output format (json, text)"`
	GeocodeURL  string        `name:"geocode-url" default:"${geocode_url}" env:"BLAULICHT_GEOCODE_URL" help:"Nominatim search endpoint"`
	GeocodeRPS  float64       `name:"geocode-rps" default:"1" env:"BLAULICHT_GEOCODE_RPS" help:"Geocoding requests per second (0 for unlimited)"`
	MetricsFile string        `name:"metrics-file" env:"BLAULICHT_METRICS_FILE" help:"Write Prometheus metrics to this file after the run"`
	Verbose     bool          `short:"v" help:"Log debug output to stderr"`
}

// Settings converts parsed flags into run settings.
func (c *CLI) Settings() blaulicht.Settings {
	return blaulicht.Settings{
		TargetURL:      c.URL,
		UserAgent:      c.UserAgent,
		RequestTimeout: c.Timeout,
		MaxItems:       c.MaxItems,
		GeocodeEnabled: !c.NoGeocode,
		FailurePolicy:  blaulicht.FailurePolicy(c.OnError),
		Concurrency:    c.Concurrency,
	}
}

// ScrapeCmd runs one scrape and writes the result.
type ScrapeCmd struct {
	Format      string
	MetricsFile string
}
