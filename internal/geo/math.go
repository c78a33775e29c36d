package geo

import "math"

// MetersPerDegree is the constant length of one degree of latitude
// used by the equirectangular approximation.
const MetersPerDegree = 111111.0

// MetersToLatLng converts a local north/east offset in meters into a point,
// anchored at base.
//
// It uses an equirectangular (flat-earth) approximation with a constant
// meters-per-degree latitude and a cos(lat) scaled longitude. The result is
// only meaningful for regional extents (up to roughly 100 km) and is undefined
// for a base latitude of exactly ±90°.
func MetersToLatLng(north, east float64, base Point) Point {
	return Point{
		Lat: base.Lat + north/MetersPerDegree,
		Lng: base.Lng + east/(MetersPerDegree*math.Cos(base.Lat*math.Pi/180)),
	}
}

// LatLngToMeters is the inverse of MetersToLatLng: the north/east offset
// of p from base in meters.
func LatLngToMeters(p, base Point) (north, east float64) {
	north = (p.Lat - base.Lat) * MetersPerDegree
	east = (p.Lng - base.Lng) * MetersPerDegree * math.Cos(base.Lat*math.Pi/180)
	return north, east
}

// Rotate turns a local (x east, y north) offset clockwise by deg degrees.
func Rotate(x, y, deg float64) (east, north float64) {
	if deg == 0 {
		return x, y
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return x*cos + y*sin, -x*sin + y*cos
}

// Unrotate reverses Rotate, bringing an east/north offset back into the shape's own axes.
func Unrotate(east, north, deg float64) (x, y float64) {
	if deg == 0 {
		return east, north
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return east*cos - north*sin, east*sin + north*cos
}

// FromLocalFrame places a point given in a shape's rotated local frame (meters)
// around center.
func FromLocalFrame(x, y float64, center Point, rotationDeg float64) Point {
	east, north := Rotate(x, y, rotationDeg)
	return MetersToLatLng(north, east, center)
}

// ToLocalFrame maps p into the local frame of a shape centered at center and
// rotated clockwise by rotationDeg, in meters.
func ToLocalFrame(p, center Point, rotationDeg float64) (x, y float64) {
	north, east := LatLngToMeters(p, center)
	return Unrotate(east, north, rotationDeg)
}
