// Package scrape turns the listing page into incidents. It coordinates
// fetching, fragment parsing, normalization and geocoding in one pass.
package scrape

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/blaulicht"
	"golang.org/x/sync/errgroup"
)

// Processor fetches the listing and assembles incidents in document order.
type Processor struct {
	Fetcher  blaulicht.Fetcher
	Parser   blaulicht.ListingParser
	Geocoder blaulicht.Geocoder // nil disables geocoding
	Settings blaulicht.Settings

	// Now returns the fallback timestamp for unparsable dates.
	// Defaults to time.Now.
	Now func() time.Time
}

// ProgressEvent reports progress during a run.
type ProgressEvent struct {
	Type ProgressType

	// Index is the fragment's document position, or the incident's
	// position for ProgressGeocoded.
	Index int

	// Total is the number of fragments being processed after capping.
	Total int

	// Count is the number of incidents for ProgressFinished.
	Count int

	Error error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressFetched ProgressType = iota
	ProgressExtracted
	ProgressSkipped
	ProgressGeocoded
	ProgressFinished
)

// ProgressFunc is a callback for reporting run progress.
type ProgressFunc func(event ProgressEvent)

// FetchAndExtract runs Process with MaxItems overridden. Zero means uncapped.
func (p *Processor) FetchAndExtract(ctx context.Context, maxItems int) ([]*blaulicht.Incident, error) {
	q := *p
	q.Settings.MaxItems = maxItems
	return q.Process(ctx, nil)
}

// Process fetches the configured listing and returns its incidents in
// document order. Fetch failures return EFETCH. A fragment without headline
// or link returns EMISSING under FailureAbort and is skipped under
// FailureSkip. Geocoding never fails a run.
func (p *Processor) Process(ctx context.Context, progress ProgressFunc) ([]*blaulicht.Incident, error) {
	if err := p.Settings.Validate(); err != nil {
		return nil, err
	}
	origin, err := p.Settings.Origin()
	if err != nil {
		return nil, err
	}

	notify := syncProgress(progress)

	html, err := p.Fetcher.Fetch(ctx, p.Settings.TargetURL)
	if err != nil {
		if blaulicht.ErrorCode(err) != blaulicht.EFETCH {
			return nil, blaulicht.Errorf(blaulicht.EFETCH, "fetch %s: %v", p.Settings.TargetURL, err)
		}
		return nil, err
	}

	fragments, err := p.Parser.Fragments(html)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	// Fragments past the cap are never extracted.
	if limit := p.Settings.MaxItems; limit > 0 && len(fragments) > limit {
		fragments = fragments[:limit]
	}

	notify(ProgressEvent{Type: ProgressFetched, Total: len(fragments)})

	incidents, err := p.extract(fragments, origin, notify)
	if err != nil {
		return nil, err
	}

	if err := p.geocode(ctx, incidents, len(fragments), notify); err != nil {
		return nil, err
	}

	notify(ProgressEvent{
		Type:  ProgressFinished,
		Total: len(fragments),
		Count: len(incidents),
	})

	return incidents, nil
}

// extract normalizes fragments sequentially, applying the failure policy.
func (p *Processor) extract(fragments []*blaulicht.Fragment, origin string, notify ProgressFunc) ([]*blaulicht.Incident, error) {
	now := p.Now
	if now == nil {
		now = time.Now
	}

	incidents := make([]*blaulicht.Incident, 0, len(fragments))
	for _, f := range fragments {
		inc, err := blaulicht.NewIncident(f, origin, now())
		if err != nil {
			if blaulicht.ErrorCode(err) == blaulicht.EMISSING && p.Settings.FailurePolicy == blaulicht.FailureSkip {
				notify(ProgressEvent{
					Type:  ProgressSkipped,
					Index: f.Index,
					Total: len(fragments),
					Error: err,
				})
				continue
			}
			return nil, err
		}

		incidents = append(incidents, inc)
		notify(ProgressEvent{
			Type:  ProgressExtracted,
			Index: f.Index,
			Total: len(fragments),
		})
	}

	return incidents, nil
}

// geocode attaches coordinates to incidents with a location. At most
// Settings.Concurrency lookups run at once; with a limit of one they run
// in document order.
func (p *Processor) geocode(ctx context.Context, incidents []*blaulicht.Incident, total int, notify ProgressFunc) error {
	if !p.Settings.GeocodeEnabled || p.Geocoder == nil {
		return nil
	}

	concurrency := p.Settings.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, inc := range incidents {
		if inc.Location == "" {
			continue
		}
		i, inc := i, inc
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			inc.Coordinates = p.Geocoder.Geocode(gctx, inc.Location).Point()
			notify(ProgressEvent{
				Type:  ProgressGeocoded,
				Index: i,
				Total: total,
			})
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

// syncProgress serializes callbacks so a ProgressFunc never runs
// concurrently with itself.
func syncProgress(progress ProgressFunc) ProgressFunc {
	if progress == nil {
		return func(ProgressEvent) {}
	}
	var mu sync.Mutex
	return func(e ProgressEvent) {
		mu.Lock()
		defer mu.Unlock()
		progress(e)
	}
}
