// Package geo handles geographic data structures and coordinate conversions.
package geo

import (
	"fmt"
	"math"
)

// Point is a WGS84-like coordinate in degrees.
// No bounds are enforced; values past the poles or the antimeridian pass through.
type Point struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lng float64 `json:"lng" yaml:"lng"`
}

// String renders the point as "lat,lng" with 6 decimal places.
func (p Point) String() string {
	return fmt.Sprintf("%.6f,%.6f", p.Lat, p.Lng)
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return isFinite(p.Lat) && isFinite(p.Lng)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Round returns the point with both coordinates rounded to the given number of decimal places.
func (p Point) Round(decimals int) Point {
	return Point{
		Lat: RoundCoordinate(p.Lat, decimals),
		Lng: RoundCoordinate(p.Lng, decimals),
	}
}

// RoundCoordinate rounds a single coordinate to the given number of decimal places.
func RoundCoordinate(v float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatDMS renders a coordinate as degrees, minutes and seconds with a hemisphere letter,
// e.g. 40° 26' 46.30" N.
func FormatDMS(coord float64, isLat bool) string {
	absolute := math.Abs(coord)
	degrees := math.Floor(absolute)
	minutesFull := (absolute - degrees) * 60
	minutes := math.Floor(minutesFull)
	seconds := (minutesFull - minutes) * 60

	var hemisphere string
	switch {
	case isLat && coord >= 0:
		hemisphere = "N"
	case isLat:
		hemisphere = "S"
	case coord >= 0:
		hemisphere = "E"
	default:
		hemisphere = "W"
	}

	return fmt.Sprintf("%d° %d' %.2f\" %s", int(degrees), int(minutes), seconds, hemisphere)
}
