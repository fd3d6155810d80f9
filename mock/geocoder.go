package mock

import (
	"context"

	"github.com/fwojciec/blaulicht"
)

var _ blaulicht.Geocoder = (*Geocoder)(nil)

// Geocoder is a mock implementation of blaulicht.Geocoder.
type Geocoder struct {
	GeocodeFn func(ctx context.Context, location string) blaulicht.GeocodeResult
}

func (g *Geocoder) Geocode(ctx context.Context, location string) blaulicht.GeocodeResult {
	return g.GeocodeFn(ctx, location)
}
