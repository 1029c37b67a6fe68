package models

import (
	"fmt"

	"medfinder-api/internal/geo"
)

// GeoPointType is the only GeoJSON geometry type stores are saved with.
const GeoPointType = "Point"

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

// NewGeoPoint builds a GeoJSON point from a latitude/longitude pair.
func NewGeoPoint(lat, lng float64) *GeoPoint {
	return &GeoPoint{Type: GeoPointType, Coordinates: []float64{lng, lat}}
}

// Point resolves the coordinates into a geo.Point. A nil receiver, a short
// coordinate list or out-of-range values yield a ComputationError.
func (g *GeoPoint) Point() (geo.Point, error) {
	if g == nil || len(g.Coordinates) < 2 {
		return geo.Point{}, &ComputationError{Reason: "store location has no coordinates"}
	}

	p := geo.Point{Lat: g.Coordinates[1], Lng: g.Coordinates[0]}
	if !p.Valid() {
		return geo.Point{}, &ComputationError{
			Reason: fmt.Sprintf("store coordinates out of range: [%v, %v]", g.Coordinates[0], g.Coordinates[1]),
		}
	}

	return p, nil
}
