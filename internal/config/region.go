package config

import (
	"errors"
	"fmt"

	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/pointlist"
	"github.com/woozymasta/randomspot/internal/sampler"
)

// Region build errors.
var (
	ErrUnknownShape    = errors.New("unknown shape")
	ErrNoCenter        = errors.New("center is required")
	ErrTooFewVertices  = errors.New("polygon needs at least 3 vertices")
	ErrNegativeSize    = errors.New("dimensions must not be negative")
	ErrNoName          = errors.New("name is required")
	ErrConflictingData = errors.New("points and token are mutually exclusive")
)

// Region is the flat wire and YAML form of a sampler.Region.
// For rectangles RadiusX/RadiusY hold the full width/height.
type Region struct {
	Name         string      `yaml:"name,omitempty" json:"name,omitempty"`
	Shape        string      `yaml:"shape" json:"shape"`
	Center       *geo.Point  `yaml:"center,omitempty" json:"center,omitempty"`
	Points       []geo.Point `yaml:"points,omitempty" json:"points,omitempty"`
	Token        string      `yaml:"token,omitempty" json:"token,omitempty"`
	RadiusX      float64     `yaml:"radius_x,omitempty" json:"radius_x,omitempty"`
	RadiusY      float64     `yaml:"radius_y,omitempty" json:"radius_y,omitempty"`
	InnerRadiusX float64     `yaml:"inner_radius_x,omitempty" json:"inner_radius_x,omitempty"`
	InnerRadiusY float64     `yaml:"inner_radius_y,omitempty" json:"inner_radius_y,omitempty"`
	Rotation     float64     `yaml:"rotation,omitempty" json:"rotation,omitempty"`
}

// Build converts the flat form into a sampler.Region, clamping inner
// dimensions to the outer ones. An empty shape means ellipse.
func (r Region) Build() (sampler.Region, error) {
	if r.RadiusX < 0 || r.RadiusY < 0 || r.InnerRadiusX < 0 || r.InnerRadiusY < 0 {
		return nil, ErrNegativeSize
	}

	switch sampler.Kind(r.Shape) {
	case sampler.KindEllipse, "":
		if r.Center == nil {
			return nil, ErrNoCenter
		}
		return sampler.Ellipse{
			Center:       r.Center,
			RadiusX:      r.RadiusX,
			RadiusY:      r.RadiusY,
			InnerRadiusX: min(r.InnerRadiusX, r.RadiusX),
			InnerRadiusY: min(r.InnerRadiusY, r.RadiusY),
			Rotation:     r.Rotation,
		}, nil

	case sampler.KindRectangle:
		if r.Center == nil {
			return nil, ErrNoCenter
		}
		return sampler.Rectangle{
			Center:      r.Center,
			Width:       r.RadiusX,
			Height:      r.RadiusY,
			InnerWidth:  min(r.InnerRadiusX, r.RadiusX),
			InnerHeight: min(r.InnerRadiusY, r.RadiusY),
			Rotation:    r.Rotation,
		}, nil

	case sampler.KindPolygon:
		if len(r.Points) > 0 && r.Token != "" {
			return nil, ErrConflictingData
		}
		vertices := r.Points
		if r.Token != "" {
			vertices = pointlist.Parse(r.Token)
		}
		if len(vertices) < 3 {
			return nil, fmt.Errorf("%w: got %d", ErrTooFewVertices, len(vertices))
		}
		return sampler.Polygon{Vertices: vertices}, nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownShape, r.Shape)
}

// FromRegion flattens a sampler.Region; polygons are stored as a token.
func FromRegion(region sampler.Region) Region {
	switch r := region.(type) {
	case sampler.Ellipse:
		return Region{
			Shape:        string(sampler.KindEllipse),
			Center:       r.Center,
			RadiusX:      r.RadiusX,
			RadiusY:      r.RadiusY,
			InnerRadiusX: r.InnerRadiusX,
			InnerRadiusY: r.InnerRadiusY,
			Rotation:     r.Rotation,
		}
	case sampler.Rectangle:
		return Region{
			Shape:        string(sampler.KindRectangle),
			Center:       r.Center,
			RadiusX:      r.Width,
			RadiusY:      r.Height,
			InnerRadiusX: r.InnerWidth,
			InnerRadiusY: r.InnerHeight,
			Rotation:     r.Rotation,
		}
	case sampler.Polygon:
		return Region{
			Shape: string(sampler.KindPolygon),
			Token: pointlist.Serialize(r.Vertices),
		}
	}
	return Region{}
}
