package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/pointlist"
	"github.com/woozymasta/randomspot/internal/sampler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `
attribution: "© OpenStreetMap contributors"
max_attempts: 500
regions:
  - name: philly
    shape: ellipse
    center: {lat: 40.0, lng: -75.0}
    radius_x: 1000
    radius_y: 1000
  - name: donut
    shape: rectangle
    center: {lat: 51.5, lng: -0.12}
    radius_x: 4000
    radius_y: 2000
    inner_radius_x: 5000
    inner_radius_y: 1000
    rotation: 30
  - name: triangle
    shape: polygon
    points:
      - {lat: 0, lng: 0}
      - {lat: 0, lng: 1}
      - {lat: 1, lng: 0}
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleConfig), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 500, cfg.MaxAttempts)
	assert.Equal(t, DefaultPrecision, cfg.Precision)
	assert.Equal(t, DefaultMaxSamples, cfg.MaxSamples)
	assert.Len(t, cfg.Regions, 3)

	donut, ok := cfg.Find("donut")
	require.True(t, ok)
	region, err := donut.Build()
	require.NoError(t, err)

	rect, ok := region.(sampler.Rectangle)
	require.True(t, ok)
	assert.Equal(t, 4000.0, rect.InnerWidth, "inner width is clamped to width")
	assert.Equal(t, 1000.0, rect.InnerHeight)
	assert.Equal(t, 30.0, rect.Rotation)

	_, ok = cfg.Find("missing")
	assert.False(t, ok)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  error
	}{
		{"duplicate", "regions:\n  - {name: a, center: {lat: 1, lng: 1}}\n  - {name: a, center: {lat: 1, lng: 1}}\n", ErrDuplicateRegion},
		{"no name", "regions:\n  - {center: {lat: 1, lng: 1}}\n", ErrNoName},
		{"no center", "regions:\n  - {name: a, shape: rectangle}\n", ErrNoCenter},
		{"bad shape", "regions:\n  - {name: a, shape: hexagon}\n", ErrUnknownShape},
		{"two vertices", "regions:\n  - {name: a, shape: polygon, points: [{lat: 1, lng: 1}, {lat: 2, lng: 2}]}\n", ErrTooFewVertices},
		{"negative", "regions:\n  - {name: a, center: {lat: 1, lng: 1}, radius_x: -5}\n", ErrNegativeSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.err)
		})
	}

	_, err := Parse([]byte("regions: [oops"))
	assert.Error(t, err)
}

func TestRegionTokenAndPoints(t *testing.T) {
	vertices := []geo.Point{{Lat: 10, Lng: 10}, {Lat: 10, Lng: 11}, {Lat: 11, Lng: 11}}

	r := Region{Shape: "polygon", Token: pointlist.Serialize(vertices)}
	region, err := r.Build()
	require.NoError(t, err)
	assert.Len(t, region.(sampler.Polygon).Vertices, 3)

	r.Points = vertices
	_, err = r.Build()
	assert.ErrorIs(t, err, ErrConflictingData)

	_, err = Region{Shape: "polygon", Token: "garbage!"}.Build()
	assert.ErrorIs(t, err, ErrTooFewVertices)
}

func TestFromRegionRoundTrip(t *testing.T) {
	center := geo.Point{Lat: 1, Lng: 2}
	regions := []sampler.Region{
		sampler.Ellipse{Center: &center, RadiusX: 10, RadiusY: 20, InnerRadiusX: 5, InnerRadiusY: 6, Rotation: 7},
		sampler.Rectangle{Center: &center, Width: 10, Height: 20, InnerWidth: 1, InnerHeight: 2, Rotation: -3},
	}

	for _, region := range regions {
		got, err := FromRegion(region).Build()
		require.NoError(t, err)
		assert.Equal(t, region, got)
	}

	poly := sampler.Polygon{Vertices: []geo.Point{{Lat: 1, Lng: 1}, {Lat: 1, Lng: 2}, {Lat: 2, Lng: 2}}}
	got, err := FromRegion(poly).Build()
	require.NoError(t, err)

	// vertices travel as geohash cell centers
	vertices := got.(sampler.Polygon).Vertices
	require.Len(t, vertices, 3)
	for i, v := range vertices {
		assert.InDelta(t, poly.Vertices[i].Lat, v.Lat, 2e-4)
		assert.InDelta(t, poly.Vertices[i].Lng, v.Lng, 2e-4)
	}
}
