// Package geocode resolves free-text addresses to coordinates.
package geocode

import "context"

// Point is a geocoded location.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves an address string to a single best-match point.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (Point, error)
}
