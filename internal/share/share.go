// Package share maps regions and map view state to URL query values and back,
// the way the share-able link of the web client stores them.
//
// Centers are stored as geohashes, polygon vertices as a point-list token,
// plain numbers with at most 6 decimal places. Decoding is fail-soft: missing
// or malformed fields fall back to defaults, never to an error.
package share

import (
	"math"
	"net/url"
	"strconv"

	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/geohash"
	"github.com/woozymasta/randomspot/internal/pointlist"
	"github.com/woozymasta/randomspot/internal/sampler"
)

// Query keys.
const (
	KeyShape        = "shape"
	KeyCenter       = "center"
	KeyCenterLat    = "centerLat" // legacy
	KeyCenterLng    = "centerLng" // legacy
	KeyRadiusX      = "radiusX"
	KeyRadiusY      = "radiusY"
	KeyInnerRadiusX = "innerRadiusX"
	KeyInnerRadiusY = "innerRadiusY"
	KeyRotation     = "rotation"
	KeyPoints       = "points"
	KeyMap          = "map"
	KeyZoom         = "zoom"
	KeyRandom       = "random"
)

// Defaults used when a field is absent.
const (
	DefaultRadius = 20000.0
	DefaultZoom   = 2.0
)

// View is the map viewport.
type View struct {
	Center geo.Point `json:"center" yaml:"center"`
	Zoom   float64   `json:"zoom" yaml:"zoom"`
}

// Encode writes region into query values; center precision is geohash.DefaultPrecision.
func Encode(region sampler.Region) url.Values {
	v := url.Values{}

	switch r := region.(type) {
	case sampler.Ellipse:
		v.Set(KeyShape, string(sampler.KindEllipse))
		setCenter(v, r.Center)
		setFloat(v, KeyRadiusX, r.RadiusX)
		setFloat(v, KeyRadiusY, r.RadiusY)
		setNonZero(v, KeyInnerRadiusX, r.InnerRadiusX)
		setNonZero(v, KeyInnerRadiusY, r.InnerRadiusY)
		setNonZero(v, KeyRotation, r.Rotation)
	case sampler.Rectangle:
		v.Set(KeyShape, string(sampler.KindRectangle))
		setCenter(v, r.Center)
		setFloat(v, KeyRadiusX, r.Width)
		setFloat(v, KeyRadiusY, r.Height)
		setNonZero(v, KeyInnerRadiusX, r.InnerWidth)
		setNonZero(v, KeyInnerRadiusY, r.InnerHeight)
		setNonZero(v, KeyRotation, r.Rotation)
	case sampler.Polygon:
		v.Set(KeyShape, string(sampler.KindPolygon))
		if token := pointlist.Serialize(r.Vertices); token != "" {
			v.Set(KeyPoints, token)
		}
	}

	return v
}

// Decode reads a region from query values. ok is false when the result is
// not usable (no center, fewer than 3 polygon vertices, negative size).
// Unknown shapes are read as ellipses. Inner dimensions are clamped into
// [0, outer]. NaN and infinite numbers count as malformed.
func Decode(v url.Values) (sampler.Region, bool) {
	shape := sampler.Kind(v.Get(KeyShape))

	if shape == sampler.KindPolygon {
		p := sampler.Polygon{Vertices: pointlist.Parse(v.Get(KeyPoints))}
		return p, p.Valid()
	}

	center := decodeCenter(v)
	radiusX := getFloat(v, KeyRadiusX, DefaultRadius)
	radiusY := getFloat(v, KeyRadiusY, DefaultRadius)
	innerX := max(0, min(getFloat(v, KeyInnerRadiusX, 0), radiusX))
	innerY := max(0, min(getFloat(v, KeyInnerRadiusY, 0), radiusY))
	rotation := getFloat(v, KeyRotation, 0)
	sized := radiusX >= 0 && radiusY >= 0

	if shape == sampler.KindRectangle {
		r := sampler.Rectangle{
			Center:      center,
			Width:       radiusX,
			Height:      radiusY,
			InnerWidth:  innerX,
			InnerHeight: innerY,
			Rotation:    rotation,
		}
		return r, sized && r.Valid()
	}

	e := sampler.Ellipse{
		Center:       center,
		RadiusX:      radiusX,
		RadiusY:      radiusY,
		InnerRadiusX: innerX,
		InnerRadiusY: innerY,
		Rotation:     rotation,
	}
	return e, sized && e.Valid()
}

// EncodeView writes the viewport into v.
func EncodeView(v url.Values, view View) {
	v.Set(KeyMap, geohash.Encode(view.Center, geohash.DefaultPrecision))
	setFloat(v, KeyZoom, view.Zoom)
}

// DecodeView reads the viewport, defaulting to {0,0} at zoom 2.
func DecodeView(v url.Values) View {
	view := View{Zoom: getFloat(v, KeyZoom, DefaultZoom)}
	if p, ok := geohash.ParsePoint(v.Get(KeyMap)); ok {
		view.Center = p
	}
	return view
}

// EncodePoint stores a single nullable point, such as the last drawn sample.
func EncodePoint(v url.Values, key string, p *geo.Point) {
	if p == nil {
		v.Del(key)
		return
	}
	v.Set(key, geohash.Encode(*p, geohash.DefaultPrecision))
}

// DecodePoint reads a single nullable point.
func DecodePoint(v url.Values, key string) *geo.Point {
	p, ok := geohash.ParsePoint(v.Get(key))
	if !ok {
		return nil
	}
	return &p
}

func decodeCenter(v url.Values) *geo.Point {
	if p := DecodePoint(v, KeyCenter); p != nil {
		return p
	}

	lat, errLat := strconv.ParseFloat(v.Get(KeyCenterLat), 64)
	lng, errLng := strconv.ParseFloat(v.Get(KeyCenterLng), 64)
	if errLat != nil || errLng != nil {
		return nil
	}

	p := geo.Point{Lat: lat, Lng: lng}
	if !p.IsFinite() {
		return nil
	}
	return &p
}

func setCenter(v url.Values, center *geo.Point) {
	EncodePoint(v, KeyCenter, center)
}

// FormatFixed renders f with at most 6 decimal places, without trailing zeros.
func FormatFixed(f float64) string {
	return strconv.FormatFloat(geo.RoundCoordinate(f, 6), 'f', -1, 64)
}

func setFloat(v url.Values, key string, f float64) {
	v.Set(key, FormatFixed(f))
}

func setNonZero(v url.Values, key string, f float64) {
	if f != 0 {
		setFloat(v, key, f)
	}
}

func getFloat(v url.Values, key string, def float64) float64 {
	raw := v.Get(key)
	if raw == "" {
		return def
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return f
}
