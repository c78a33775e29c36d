package geo

import "github.com/paulmach/orb"

// Bounds is an axis-aligned bounding box in degrees.
type Bounds struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MinLng float64 `json:"min_lng" yaml:"min_lng"`
	MaxLng float64 `json:"max_lng" yaml:"max_lng"`
}

// Ring converts vertices to an orb ring (X = lng, Y = lat).
// The ring is not closed explicitly.
func Ring(vertices []Point) orb.Ring {
	ring := make(orb.Ring, len(vertices))
	for i, v := range vertices {
		ring[i] = orb.Point{v.Lng, v.Lat}
	}
	return ring
}

// BoundingBox returns the min/max extent of vertices.
// The result is meaningless for an empty slice; callers check the vertex count first.
func BoundingBox(vertices []Point) Bounds {
	b := Ring(vertices).Bound()
	return Bounds{
		MinLat: b.Bottom(),
		MaxLat: b.Top(),
		MinLng: b.Left(),
		MaxLng: b.Right(),
	}
}

// PointInPolygon reports whether p lies inside the polygon using the even-odd
// rule: a horizontal ray from p towards +∞ longitude is tested against every
// edge, including the closing edge from the last vertex back to the first.
func PointInPolygon(p Point, vertices []Point) bool {
	n := len(vertices)
	if n < 3 {
		return false
	}

	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := vertices[i], vertices[j]
		if (a.Lat > p.Lat) == (b.Lat > p.Lat) {
			continue
		}
		crossLng := a.Lng + (p.Lat-a.Lat)*(b.Lng-a.Lng)/(b.Lat-a.Lat)
		if p.Lng < crossLng {
			inside = !inside
		}
	}

	return inside
}

// ApproximateCentroid is the arithmetic mean of the vertices.
// It is NOT the area centroid of the polygon and may even fall outside a
// concave polygon; use it only as a last-resort stand-in.
func ApproximateCentroid(vertices []Point) Point {
	if len(vertices) == 0 {
		return Point{}
	}

	var sum Point
	for _, v := range vertices {
		sum.Lat += v.Lat
		sum.Lng += v.Lng
	}

	n := float64(len(vertices))
	return Point{Lat: sum.Lat / n, Lng: sum.Lng / n}
}
