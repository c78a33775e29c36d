package preview

import (
	"bytes"
	"image/color"
	"testing"

	"github.com/woozymasta/randomspot/internal/geo"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

var square = []geo.Point{
	{Lat: 10, Lng: 10},
	{Lat: 10, Lng: 10.01},
	{Lat: 10.01, Lng: 10.01},
	{Lat: 10.01, Lng: 10},
}

func TestRenderSize(t *testing.T) {
	img := Render(square, nil, Options{Size: 64, Supersample: 2})
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, 64, img.Bounds().Dy())
}

func TestRenderDrawsSample(t *testing.T) {
	center := geo.Point{Lat: 10.005, Lng: 10.005}
	img := Render(square, []geo.Point{center}, Options{Size: 100, Supersample: 1, Padding: 0.1})

	// the sample sits in the middle of a square bounding box
	assert.Equal(t, sampleClr, img.RGBAAt(50, 50))
	// the outline passes through the padding edge
	assert.Equal(t, outlineClr, img.RGBAAt(50, 10))
	assert.Equal(t, background, img.RGBAAt(2, 2))
}

func TestRenderEmpty(t *testing.T) {
	img := Render(nil, nil, Options{Size: 16, Supersample: 1})
	assert.Equal(t, color.RGBA(background), img.RGBAAt(8, 8))
}

func TestRenderSinglePoint(t *testing.T) {
	img := Render(nil, []geo.Point{{Lat: 1, Lng: 1}}, Options{Size: 32, Supersample: 1})
	assert.Equal(t, 32, img.Bounds().Dx())
}

func TestWriteDecodes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, square, square[:2], DefaultOptions))

	img, err := webp.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultOptions.Size, img.Bounds().Dx())
}
