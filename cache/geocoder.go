// Package cache memoizes geocoding results for the lifetime of one run.
// Nothing is persisted.
package cache

import (
	"context"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/blaulicht"
)

// Ensure Geocoder implements blaulicht.Geocoder at compile time.
var _ blaulicht.Geocoder = (*Geocoder)(nil)

// Geocoder wraps a Geocoder and remembers every result, resolved or not,
// keyed by the normalized location. Safe for concurrent use.
type Geocoder struct {
	next blaulicht.Geocoder

	mu      sync.Mutex
	entries map[uint64]*entry
}

// entry lets concurrent callers for the same key wait on one lookup.
// An abandoned entry was removed because its lookup's context ended.
type entry struct {
	done      chan struct{}
	result    blaulicht.GeocodeResult
	abandoned bool
}

// NewGeocoder creates a memoizing Geocoder.
func NewGeocoder(next blaulicht.Geocoder) *Geocoder {
	return &Geocoder{
		next:    next,
		entries: make(map[uint64]*entry),
	}
}

// Geocode returns the remembered result for location or delegates once.
// Empty locations are passed through without being stored. A lookup whose
// context ends is not remembered.
func (g *Geocoder) Geocode(ctx context.Context, location string) blaulicht.GeocodeResult {
	normalized := normalize(location)
	if normalized == "" {
		return g.next.Geocode(ctx, location)
	}
	key := xxhash.Sum64String(normalized)

	g.mu.Lock()
	e, ok := g.entries[key]
	if !ok {
		e = &entry{done: make(chan struct{})}
		g.entries[key] = e
	}
	g.mu.Unlock()

	if ok {
		select {
		case <-e.done:
			if e.abandoned {
				return g.Geocode(ctx, location)
			}
			return e.result
		case <-ctx.Done():
			return blaulicht.Unresolved
		}
	}

	e.result = g.next.Geocode(ctx, location)
	if ctx.Err() != nil {
		g.mu.Lock()
		if g.entries[key] == e {
			delete(g.entries, key)
		}
		g.mu.Unlock()
		e.abandoned = true
	}
	close(e.done)
	return e.result
}

// Len returns the number of remembered locations.
func (g *Geocoder) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.entries)
}

func normalize(location string) string {
	return strings.ToLower(strings.Join(strings.Fields(location), " "))
}
