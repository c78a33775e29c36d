package sampler

import (
	"github.com/woozymasta/randomspot/internal/geo"

	"github.com/rs/zerolog/log"
)

// DefaultMaxAttempts caps every rejection loop (annulus and polygon).
const DefaultMaxAttempts = 1000

// Sampler draws random points from regions. It holds no state besides its
// randomness source and is as safe for concurrent use as that source is.
type Sampler struct {
	rng         Rand
	maxAttempts int
}

// Option configures a Sampler.
type Option func(*Sampler)

// WithMaxAttempts overrides the rejection cap; values below 1 keep the default.
func WithMaxAttempts(n int) Option {
	return func(s *Sampler) {
		if n >= 1 {
			s.maxAttempts = n
		}
	}
}

// New creates a Sampler reading uniform values from rng.
func New(rng Rand, opts ...Option) *Sampler {
	s := &Sampler{
		rng:         rng,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MaxAttempts returns the rejection cap in use.
func (s *Sampler) MaxAttempts() int {
	return s.maxAttempts
}

// Sample returns one point drawn from region. ok is false when the region is
// unusable: nil, a polygon with fewer than 3 vertices, or a shape without a center.
//
// Ellipses and rectangles are sampled uniformly by area. Annuli use rejection
// against the hole and fall back to a point on the outer boundary once the
// attempt cap is hit; a hole equal to the outer shape yields boundary points
// directly. Polygons use rejection inside their bounding box and fall back to
// the vertex-average centroid.
func (s *Sampler) Sample(region Region) (p geo.Point, ok bool) {
	region = deref(region)
	if region == nil || !region.Valid() {
		return geo.Point{}, false
	}

	var fallback bool
	switch r := region.(type) {
	case Ellipse:
		p, fallback = s.ellipse(r)
	case Rectangle:
		p, fallback = s.rectangle(r)
	case Polygon:
		p, fallback = s.polygon(r)
	default:
		return geo.Point{}, false
	}

	if fallback {
		log.Debug().
			Str("shape", string(region.Kind())).
			Int("attempts", s.maxAttempts).
			Str("point", p.String()).
			Msg("Rejection sampling exhausted, using fallback point")
	}

	return p, true
}

// SampleN draws n points from region. It returns nil for an unusable region.
func (s *Sampler) SampleN(region Region, n int) []geo.Point {
	region = deref(region)
	if n <= 0 || region == nil || !region.Valid() {
		return nil
	}

	points := make([]geo.Point, 0, n)
	for range n {
		p, ok := s.Sample(region)
		if !ok {
			break
		}
		points = append(points, p)
	}

	return points
}

// uniform returns a value in [lo, hi).
func (s *Sampler) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*s.rng.Float64()
}

// deref unwraps pointer variants; a nil pointer becomes a nil Region.
func deref(region Region) Region {
	switch r := region.(type) {
	case *Ellipse:
		if r == nil {
			return nil
		}
		return *r
	case *Rectangle:
		if r == nil {
			return nil
		}
		return *r
	case *Polygon:
		if r == nil {
			return nil
		}
		return *r
	}
	return region
}
