// Package preview rasterizes a region outline and its samples into a WebP image.
package preview

import (
	"image"
	"image/color"
	"io"
	"math"

	"github.com/woozymasta/randomspot/internal/geo"

	"github.com/chai2010/webp"
	xdraw "golang.org/x/image/draw"
)

// Options controls the rendered image.
type Options struct {
	Size        int     // output edge length in pixels
	Supersample int     // render scale before downsampling
	Padding     float64 // fraction of the edge kept empty around the content
	Quality     float32 // lossy quality, ignored when Lossless
	Lossless    bool
}

// DefaultOptions renders a 512px lossless image.
var DefaultOptions = Options{
	Size:        512,
	Supersample: 3,
	Padding:     0.06,
	Quality:     90,
	Lossless:    true,
}

var (
	background = color.RGBA{R: 0x11, G: 0x11, B: 0x11, A: 0xff}
	outlineClr = color.RGBA{R: 0x3b, G: 0x82, B: 0xf6, A: 0xff}
	sampleClr  = color.RGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}
)

// Render draws the outline (closed) and samples. Coordinates are projected to
// local meters around the center of their bounding box so the aspect ratio
// matches the ground.
func Render(outline, samples []geo.Point, opts Options) *image.RGBA {
	opts = normalize(opts)
	big := opts.Size * opts.Supersample

	canvas := image.NewRGBA(image.Rect(0, 0, big, big))
	xdraw.Draw(canvas, canvas.Bounds(), &image.Uniform{C: background}, image.Point{}, xdraw.Src)

	all := make([]geo.Point, 0, len(outline)+len(samples))
	all = append(all, outline...)
	all = append(all, samples...)
	if len(all) > 0 {
		tr := newTransform(all, big, opts.Padding)

		for i := range outline {
			a := tr.apply(outline[i])
			b := tr.apply(outline[(i+1)%len(outline)])
			drawLine(canvas, a, b, opts.Supersample, outlineClr)
		}

		dot := max(2*opts.Supersample, 2)
		for _, p := range samples {
			drawDot(canvas, tr.apply(p), dot, sampleClr)
		}
	}

	if opts.Supersample == 1 {
		return canvas
	}

	out := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	xdraw.CatmullRom.Scale(out, out.Bounds(), canvas, canvas.Bounds(), xdraw.Src, nil)
	return out
}

// Encode writes img as WebP.
func Encode(w io.Writer, img image.Image, opts Options) error {
	opts = normalize(opts)
	return webp.Encode(w, img, &webp.Options{
		Lossless: opts.Lossless,
		Quality:  opts.Quality,
	})
}

// Write renders and encodes in one step.
func Write(w io.Writer, outline, samples []geo.Point, opts Options) error {
	return Encode(w, Render(outline, samples, opts), opts)
}

func normalize(opts Options) Options {
	if opts.Size <= 0 {
		opts.Size = DefaultOptions.Size
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}
	if opts.Padding < 0 || opts.Padding >= 0.5 {
		opts.Padding = DefaultOptions.Padding
	}
	if opts.Quality <= 0 || opts.Quality > 100 {
		opts.Quality = DefaultOptions.Quality
	}
	return opts
}

type transform struct {
	base   geo.Point
	minX   float64
	maxY   float64
	scale  float64
	offset float64
}

func newTransform(points []geo.Point, size int, padding float64) transform {
	b := geo.BoundingBox(points)
	base := geo.Point{Lat: (b.MinLat + b.MaxLat) / 2, Lng: (b.MinLng + b.MaxLng) / 2}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range points {
		y, x := geo.LatLngToMeters(p, base)
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}

	span := math.Max(maxX-minX, maxY-minY)
	if span == 0 {
		span = 1
	}

	usable := float64(size) * (1 - 2*padding)
	scale := usable / span

	// center the content along the shorter axis
	tr := transform{base: base, scale: scale, offset: float64(size) * padding}
	tr.minX = minX - (span-(maxX-minX))/2
	tr.maxY = maxY + (span-(maxY-minY))/2
	return tr
}

func (t transform) apply(p geo.Point) image.Point {
	y, x := geo.LatLngToMeters(p, t.base)
	return image.Point{
		X: int(math.Round(t.offset + (x-t.minX)*t.scale)),
		Y: int(math.Round(t.offset + (t.maxY-y)*t.scale)),
	}
}

func drawLine(img *image.RGBA, a, b image.Point, width int, c color.RGBA) {
	dx, dy := b.X-a.X, b.Y-a.Y
	steps := max(abs(dx), abs(dy), 1)
	for i := 0; i <= steps; i++ {
		x := a.X + dx*i/steps
		y := a.Y + dy*i/steps
		drawDot(img, image.Point{X: x, Y: y}, width, c)
	}
}

func drawDot(img *image.RGBA, p image.Point, size int, c color.RGBA) {
	half := size / 2
	r := image.Rect(p.X-half, p.Y-half, p.X-half+size, p.Y-half+size).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
