package blaulicht

import "context"

// Coordinates is a point in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// GeocodeResult is the outcome of resolving a location string.
// The zero value is Unresolved.
type GeocodeResult struct {
	Lat      float64
	Lng      float64
	Resolved bool
}

// Unresolved is the result for empty input and for every lookup failure.
var Unresolved = GeocodeResult{}

// Resolved returns a resolved result for the given point.
func Resolved(lat, lng float64) GeocodeResult {
	return GeocodeResult{Lat: lat, Lng: lng, Resolved: true}
}

// Point returns the coordinates to attach to an incident, or nil when the
// result is unresolved or either component is zero.
func (r GeocodeResult) Point() *Coordinates {
	if !r.Resolved || r.Lat == 0 || r.Lng == 0 {
		return nil
	}
	return &Coordinates{Lat: r.Lat, Lng: r.Lng}
}

// Geocoder resolves free-text locations to coordinates.
//
// Geocoding is best-effort enrichment: implementations never return an
// error and map every failure to Unresolved. An empty location must
// return Unresolved without any network call.
type Geocoder interface {
	Geocode(ctx context.Context, location string) GeocodeResult
}
