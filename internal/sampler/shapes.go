package sampler

import (
	"math"

	"github.com/woozymasta/randomspot/internal/geo"
)

// ellipse samples e and reports whether the boundary fallback was used.
func (s *Sampler) ellipse(e Ellipse) (geo.Point, bool) {
	center := *e.Center
	ix, iy := e.inner()

	if ix <= 0 || iy <= 0 {
		x, y := s.ellipseInterior(e.RadiusX, e.RadiusY)
		return geo.FromLocalFrame(x, y, center, e.Rotation), false
	}

	if ix == e.RadiusX && iy == e.RadiusY {
		x, y := s.ellipseBoundary(e.RadiusX, e.RadiusY)
		return geo.FromLocalFrame(x, y, center, e.Rotation), false
	}

	for range s.maxAttempts {
		x, y := s.ellipseInterior(e.RadiusX, e.RadiusY)
		if !inHoleEllipse(x, y, ix, iy) {
			return geo.FromLocalFrame(x, y, center, e.Rotation), false
		}
	}

	x, y := s.ellipseBoundary(e.RadiusX, e.RadiusY)
	return geo.FromLocalFrame(x, y, center, e.Rotation), true
}

// ellipseInterior is area-uniform: the sqrt keeps density flat in r.
func (s *Sampler) ellipseInterior(rx, ry float64) (x, y float64) {
	angle := s.uniform(0, 2*math.Pi)
	r := math.Sqrt(s.rng.Float64())
	return r * rx * math.Cos(angle), r * ry * math.Sin(angle)
}

// ellipseBoundary is uniform in angle, not in arc length.
func (s *Sampler) ellipseBoundary(rx, ry float64) (x, y float64) {
	angle := s.uniform(0, 2*math.Pi)
	return rx * math.Cos(angle), ry * math.Sin(angle)
}

// rectangle samples r and reports whether the boundary fallback was used.
func (s *Sampler) rectangle(r Rectangle) (geo.Point, bool) {
	center := *r.Center
	iw, ih := r.inner()

	if iw <= 0 || ih <= 0 {
		x, y := s.rectangleInterior(r.Width, r.Height)
		return geo.FromLocalFrame(x, y, center, r.Rotation), false
	}

	if iw == r.Width && ih == r.Height {
		x, y := s.rectangleBoundary(r.Width, r.Height)
		return geo.FromLocalFrame(x, y, center, r.Rotation), false
	}

	for range s.maxAttempts {
		x, y := s.rectangleInterior(r.Width, r.Height)
		if !inHoleRectangle(x, y, iw, ih) {
			return geo.FromLocalFrame(x, y, center, r.Rotation), false
		}
	}

	x, y := s.rectangleBoundary(r.Width, r.Height)
	return geo.FromLocalFrame(x, y, center, r.Rotation), true
}

func (s *Sampler) rectangleInterior(w, h float64) (x, y float64) {
	return s.uniform(-w/2, w/2), s.uniform(-h/2, h/2)
}

// rectangleBoundary picks one of the 4 edges with equal odds, then a uniform
// position along it.
func (s *Sampler) rectangleBoundary(w, h float64) (x, y float64) {
	hw, hh := w/2, h/2
	edge := min(int(s.rng.Float64()*4), 3)

	switch edge {
	case 0: // top
		return s.uniform(-hw, hw), hh
	case 1: // right
		return hw, s.uniform(-hh, hh)
	case 2: // bottom
		return s.uniform(-hw, hw), -hh
	default: // left
		return -hw, s.uniform(-hh, hh)
	}
}

// polygon samples p and reports whether the centroid fallback was used.
// Candidates are drawn uniformly in lat/lng space within the bounding box.
func (s *Sampler) polygon(p Polygon) (geo.Point, bool) {
	b := geo.BoundingBox(p.Vertices)

	for range s.maxAttempts {
		candidate := geo.Point{
			Lat: s.uniform(b.MinLat, b.MaxLat),
			Lng: s.uniform(b.MinLng, b.MaxLng),
		}
		if geo.PointInPolygon(candidate, p.Vertices) {
			return candidate, false
		}
	}

	return geo.ApproximateCentroid(p.Vertices), true
}
