package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/blaulicht"
	"github.com/fwojciec/blaulicht/scrape"
)

// Run executes the scrape command. Output is only written after the whole
// run succeeded.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	var extracted, skipped int
	progress := func(e scrape.ProgressEvent) {
		switch e.Type {
		case scrape.ProgressExtracted:
			extracted++
		case scrape.ProgressSkipped:
			skipped++
			deps.Logger.Warn("skip fragment",
				"index", e.Index,
				"err", blaulicht.ErrorMessage(e.Error),
			)
		}
	}

	incidents, err := deps.Processor.Process(deps.Ctx, progress)
	deps.Metrics.ObserveIncidents(extracted, skipped)
	if err == nil {
		deps.Metrics.MarkSuccess(time.Now())
	}
	if c.MetricsFile != "" {
		if werr := deps.Metrics.WriteTextfile(c.MetricsFile); werr != nil {
			deps.Logger.Error("write metrics", "path", c.MetricsFile, "err", werr)
		}
	}
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", blaulicht.ErrorMessage(err))
		return err
	}

	switch c.Format {
	case "text":
		return c.writeText(deps, incidents)
	default:
		return c.writeJSON(deps, incidents)
	}
}

func (c *ScrapeCmd) writeJSON(deps *Dependencies, incidents []*blaulicht.Incident) error {
	if incidents == nil {
		incidents = []*blaulicht.Incident{}
	}
	enc := json.NewEncoder(deps.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(incidents); err != nil {
		return fmt.Errorf("encode incidents: %w", err)
	}
	return nil
}

func (c *ScrapeCmd) writeText(deps *Dependencies, incidents []*blaulicht.Incident) error {
	if len(incidents) == 0 {
		fmt.Fprintln(deps.Stdout, "No incidents found.")
		return nil
	}
	fmt.Fprintln(deps.Stdout, blaulicht.FormatIncidents(incidents))
	return nil
}
