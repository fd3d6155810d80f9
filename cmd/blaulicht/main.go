package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/blaulicht"
	"github.com/fwojciec/blaulicht/cache"
	"github.com/fwojciec/blaulicht/goquery"
	bhttp "github.com/fwojciec/blaulicht/http"
	"github.com/fwojciec/blaulicht/nominatim"
	"github.com/fwojciec/blaulicht/prometheus"
	"github.com/fwojciec/blaulicht/scrape"
	bslog "github.com/fwojciec/blaulicht/slog"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	// Run reports its own errors on stderr.
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("blaulicht"),
		kong.Description("Scrape police and fire press releases into structured incidents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Vars{
			"url":         blaulicht.DefaultTargetURL,
			"user_agent":  blaulicht.DefaultUserAgent,
			"geocode_url": nominatim.DefaultSearchURL,
		},
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", err)
		return err
	}

	settings := cli.Settings()
	if err := settings.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: %s\n", blaulicht.ErrorMessage(err))
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})).
		With("run", uuid.NewString())

	metrics := prometheus.NewMetrics()

	// Wire dependencies
	httpFetcher := bhttp.NewFetcher(
		bhttp.WithTimeout(settings.RequestTimeout),
		bhttp.WithUserAgent(settings.UserAgent),
	)
	fetcher := bslog.NewLoggingFetcher(metrics.Fetcher(httpFetcher), logger)
	defer fetcher.Close()

	processor := &scrape.Processor{
		Fetcher:  fetcher,
		Parser:   bslog.NewLoggingParser(goquery.NewParser(), logger),
		Settings: settings,
	}

	if settings.GeocodeEnabled {
		client := nominatim.NewClient(
			nominatim.WithSearchURL(cli.GeocodeURL),
			nominatim.WithUserAgent(settings.UserAgent),
			nominatim.WithTimeout(settings.RequestTimeout),
			nominatim.WithRateLimit(cli.GeocodeRPS),
		)
		// Cache outermost so repeated locations are neither logged nor
		// counted as lookups.
		processor.Geocoder = cache.NewGeocoder(
			bslog.NewLoggingGeocoder(metrics.Geocoder(client), logger),
		)
	}

	deps := &Dependencies{
		Ctx:       ctx,
		Stdout:    stdout,
		Stderr:    stderr,
		Logger:    logger,
		Processor: processor,
		Metrics:   metrics,
	}

	cmd := &ScrapeCmd{
		Format:      cli.Format,
		MetricsFile: cli.MetricsFile,
	}

	return cmd.Run(deps)
}
