// Package sampler draws uniformly distributed random points from geographic regions.
//
// All sampling happens in the shape's rotated local frame in meters and is
// projected back to lat/lng with the equirectangular approximation from
// package geo, so results are only meaningful for regional extents.
package sampler

import (
	"math"

	"github.com/woozymasta/randomspot/internal/geo"
)

// Kind names a region shape.
type Kind string

// Supported region shapes.
const (
	KindEllipse   Kind = "ellipse"
	KindRectangle Kind = "rectangle"
	KindPolygon   Kind = "polygon"
)

// Region is one of Ellipse, Rectangle or Polygon.
type Region interface {
	// Kind returns the shape name.
	Kind() Kind
	// Valid reports whether the region can be sampled at all.
	Valid() bool
	// Contains reports whether p lies in the region (annulus holes excluded).
	Contains(p geo.Point) bool
	// Outline returns the outer boundary as a vertex list.
	Outline(segments int) []geo.Point

	sealed()
}

// Ellipse is an optionally rotated ellipse with an optional elliptical hole.
// Radii are in meters; a nil Center makes the region unusable.
type Ellipse struct {
	Center       *geo.Point
	RadiusX      float64
	RadiusY      float64
	InnerRadiusX float64
	InnerRadiusY float64
	// Rotation is clockwise, in degrees, around Center.
	Rotation float64
}

// Rectangle is an optionally rotated rectangle with an optional rectangular hole.
// Dimensions are full widths in meters; a nil Center makes the region unusable.
type Rectangle struct {
	Center      *geo.Point
	Width       float64
	Height      float64
	InnerWidth  float64
	InnerHeight float64
	// Rotation is clockwise, in degrees, around Center.
	Rotation float64
}

// Polygon is a simple polygon given by its vertices in order.
// The closing edge from the last vertex to the first is implicit.
type Polygon struct {
	Vertices []geo.Point
}

func (Ellipse) sealed()   {}
func (Rectangle) sealed() {}
func (Polygon) sealed()   {}

// Kind implements Region.
func (Ellipse) Kind() Kind { return KindEllipse }

// Kind implements Region.
func (Rectangle) Kind() Kind { return KindRectangle }

// Kind implements Region.
func (Polygon) Kind() Kind { return KindPolygon }

// Valid implements Region.
func (e Ellipse) Valid() bool { return e.Center != nil }

// Valid implements Region.
func (r Rectangle) Valid() bool { return r.Center != nil }

// Valid implements Region.
func (p Polygon) Valid() bool { return len(p.Vertices) >= 3 }

// inner returns the hole radii clamped to the outer radii.
func (e Ellipse) inner() (x, y float64) {
	return math.Min(math.Max(e.InnerRadiusX, 0), e.RadiusX),
		math.Min(math.Max(e.InnerRadiusY, 0), e.RadiusY)
}

// inner returns the hole dimensions clamped to the outer dimensions.
func (r Rectangle) inner() (w, h float64) {
	return math.Min(math.Max(r.InnerWidth, 0), r.Width),
		math.Min(math.Max(r.InnerHeight, 0), r.Height)
}

// Contains implements Region.
func (e Ellipse) Contains(p geo.Point) bool {
	if !e.Valid() {
		return false
	}

	x, y := geo.ToLocalFrame(p, *e.Center, e.Rotation)
	if !inEllipse(x, y, e.RadiusX, e.RadiusY) {
		return false
	}

	ix, iy := e.inner()
	if ix > 0 && iy > 0 && ix == e.RadiusX && iy == e.RadiusY {
		// ring: only the boundary itself
		return onEllipse(x, y, ix, iy)
	}
	return !(ix > 0 && iy > 0 && inHoleEllipse(x, y, ix, iy))
}

// Contains implements Region.
func (r Rectangle) Contains(p geo.Point) bool {
	if !r.Valid() {
		return false
	}

	x, y := geo.ToLocalFrame(p, *r.Center, r.Rotation)
	if !inRectangle(x, y, r.Width, r.Height) {
		return false
	}

	iw, ih := r.inner()
	if iw > 0 && ih > 0 && iw == r.Width && ih == r.Height {
		return onRectangle(x, y, iw, ih)
	}
	return !(iw > 0 && ih > 0 && inHoleRectangle(x, y, iw, ih))
}

// Contains implements Region.
func (p Polygon) Contains(pt geo.Point) bool {
	return geo.PointInPolygon(pt, p.Vertices)
}

// Outline implements Region.
func (e Ellipse) Outline(segments int) []geo.Point {
	if !e.Valid() {
		return nil
	}
	if segments < 8 {
		segments = 8
	}

	out := make([]geo.Point, segments)
	for i := range out {
		angle := 2 * math.Pi * float64(i) / float64(segments)
		out[i] = geo.FromLocalFrame(e.RadiusX*math.Cos(angle), e.RadiusY*math.Sin(angle), *e.Center, e.Rotation)
	}
	return out
}

// Outline implements Region; segments is ignored.
func (r Rectangle) Outline(int) []geo.Point {
	if !r.Valid() {
		return nil
	}

	hw, hh := r.Width/2, r.Height/2
	return []geo.Point{
		geo.FromLocalFrame(-hw, -hh, *r.Center, r.Rotation),
		geo.FromLocalFrame(hw, -hh, *r.Center, r.Rotation),
		geo.FromLocalFrame(hw, hh, *r.Center, r.Rotation),
		geo.FromLocalFrame(-hw, hh, *r.Center, r.Rotation),
	}
}

// Outline implements Region; segments is ignored.
func (p Polygon) Outline(int) []geo.Point {
	if !p.Valid() {
		return nil
	}
	return append([]geo.Point(nil), p.Vertices...)
}

// boundaryTolerance absorbs float error of projected boundary points.
const boundaryTolerance = 1e-9

func inEllipse(x, y, rx, ry float64) bool {
	nx, ny := x/rx, y/ry
	return nx*nx+ny*ny <= 1+boundaryTolerance
}

// inHoleEllipse is the exact membership test used to reject annulus candidates.
func inHoleEllipse(x, y, rx, ry float64) bool {
	nx, ny := x/rx, y/ry
	return nx*nx+ny*ny <= 1
}

func onEllipse(x, y, rx, ry float64) bool {
	nx, ny := x/rx, y/ry
	return math.Abs(nx*nx+ny*ny-1) <= 1e-6
}

func inRectangle(x, y, w, h float64) bool {
	return math.Abs(x) <= w/2*(1+boundaryTolerance) && math.Abs(y) <= h/2*(1+boundaryTolerance)
}

// inHoleRectangle is the exact membership test used to reject annulus candidates.
func inHoleRectangle(x, y, w, h float64) bool {
	return math.Abs(x) <= w/2 && math.Abs(y) <= h/2
}

func onRectangle(x, y, w, h float64) bool {
	const tol = 1e-6
	dx := math.Abs(math.Abs(x) - w/2)
	dy := math.Abs(math.Abs(y) - h/2)
	return (dx <= tol*w && math.Abs(y) <= h/2+tol*h) || (dy <= tol*h && math.Abs(x) <= w/2+tol*w)
}
