// Package geohash encodes single points to fixed-length base-32 geohash strings.
//
// Coordinates are rounded to 6 decimal places before encoding and after
// decoding, so encode(decode(h)) == h for any well-formed hash even though the
// hash itself is lossy. The worst-case positional error is half a cell:
//
//	precision  lat error     lng error     cell at equator
//	7          6.9e-4°       6.9e-4°       ~153 m x 153 m
//	8          8.6e-5°       1.7e-4°       ~38 m x 19 m
//	9          2.1e-5°       2.1e-5°       ~4.8 m x 4.8 m
package geohash

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/woozymasta/randomspot/internal/geo"

	mmgeohash "github.com/mmcloughlin/geohash"
)

const (
	// DefaultPrecision is used for points persisted in share tokens.
	DefaultPrecision = 8
	// MaxPrecision is the longest hash that fits the 60 bit integer form.
	MaxPrecision = 12
	// Decimals is the rounding applied around encode and decode.
	Decimals = 6

	alphabet = "0123456789bcdefghjkmnpqrstuvwxyz"
)

// ErrInvalidHash is returned for empty, too long or non base-32 input.
var ErrInvalidHash = errors.New("invalid geohash")

// Encode rounds p to 6 decimal places and returns its geohash with exactly
// precision characters; precision is clamped into [1, MaxPrecision].
// Latitudes outside [-90, 90] are clamped and longitudes wrapped. A NaN
// latitude and a NaN or infinite longitude encode as 0; callers reading user
// input should reject such points first with geo.Point.IsFinite.
func Encode(p geo.Point, precision int) string {
	precision = min(max(precision, 1), MaxPrecision)

	r := p.Round(Decimals)
	return mmgeohash.EncodeWithPrecision(clampLat(r.Lat), wrapLng(r.Lng), uint(precision))
}

// Decode returns the center of the hash cell rounded to 6 decimal places.
// Upper case input is accepted.
func Decode(hash string) (geo.Point, error) {
	hash = strings.ToLower(hash)
	if err := Validate(hash); err != nil {
		return geo.Point{}, err
	}

	lat, lng := mmgeohash.DecodeCenter(hash)
	return geo.Point{Lat: lat, Lng: lng}.Round(Decimals), nil
}

// ParsePoint is the fail-soft form of Decode for nullable single points:
// an empty or malformed value yields ok == false.
func ParsePoint(value string) (geo.Point, bool) {
	if value == "" {
		return geo.Point{}, false
	}
	p, err := Decode(value)
	if err != nil {
		return geo.Point{}, false
	}
	return p, true
}

// Validate checks hash length and alphabet.
func Validate(hash string) error {
	if hash == "" || len(hash) > MaxPrecision {
		return fmt.Errorf("%w: length %d", ErrInvalidHash, len(hash))
	}
	for i := 0; i < len(hash); i++ {
		if strings.IndexByte(alphabet, hash[i]) < 0 {
			return fmt.Errorf("%w: unexpected character %q at %d", ErrInvalidHash, hash[i], i)
		}
	}
	return nil
}

// ErrorBound returns the worst-case decode error in degrees (half a cell) for precision.
func ErrorBound(precision int) (lat, lng float64) {
	precision = min(max(precision, 1), MaxPrecision)

	bits := 5 * precision
	lngBits := (bits + 1) / 2
	latBits := bits / 2

	return 90 / math.Pow(2, float64(latBits)), 180 / math.Pow(2, float64(lngBits))
}

func clampLat(lat float64) float64 {
	switch {
	case math.IsNaN(lat):
		return 0
	case lat >= 90:
		return math.Nextafter(90, 0)
	case lat < -90:
		return -90
	}
	return lat
}

func wrapLng(lng float64) float64 {
	if lng >= -180 && lng < 180 {
		return lng
	}
	if math.IsNaN(lng) || math.IsInf(lng, 0) {
		return 0
	}
	lng = math.Mod(lng+180, 360)
	if lng < 0 {
		lng += 360
	}
	return lng - 180
}
