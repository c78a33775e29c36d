// Package pointlist serializes point sequences into compact tokens made of
// concatenated fixed-width geohashes, suitable for URL parameters.
package pointlist

import (
	"encoding/json"
	"strings"

	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/geohash"
)

// Precision is the width of every geohash chunk in a token.
const Precision = geohash.DefaultPrecision

// Serialize encodes points as concatenated geohashes with no separator.
// An empty slice yields an empty token.
func Serialize(points []geo.Point) string {
	if len(points) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.Grow(len(points) * Precision)
	for _, p := range points {
		sb.WriteString(geohash.Encode(p, Precision))
	}
	return sb.String()
}

// Parse decodes a token produced by Serialize. Older formats are also
// accepted: a JSON array of geohash strings of any length, or a JSON array of
// {"lat":..,"lng":..} objects. Any malformed input yields an empty slice.
func Parse(text string) []geo.Point {
	text = strings.TrimSpace(text)
	if text == "" {
		return []geo.Point{}
	}

	if len(text)%Precision == 0 {
		if points, ok := parseChunks(text); ok {
			return points
		}
	}

	if points, ok := parseHashArray(text); ok {
		return points
	}

	if points, ok := parsePointArray(text); ok {
		return points
	}

	return []geo.Point{}
}

// PointsToToken is an alias of Serialize.
func PointsToToken(points []geo.Point) string { return Serialize(points) }

// TokenToPoints is an alias of Parse; it never fails.
func TokenToPoints(token string) []geo.Point { return Parse(token) }

func parseChunks(text string) ([]geo.Point, bool) {
	points := make([]geo.Point, 0, len(text)/Precision)
	for i := 0; i < len(text); i += Precision {
		p, err := geohash.Decode(text[i : i+Precision])
		if err != nil {
			return nil, false
		}
		points = append(points, p)
	}
	return points, true
}

func parseHashArray(text string) ([]geo.Point, bool) {
	var hashes []string
	if err := json.Unmarshal([]byte(text), &hashes); err != nil {
		return nil, false
	}

	points := make([]geo.Point, 0, len(hashes))
	for _, h := range hashes {
		p, err := geohash.Decode(h)
		if err != nil {
			return nil, false
		}
		points = append(points, p)
	}
	return points, true
}

type legacyPoint struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

func parsePointArray(text string) ([]geo.Point, bool) {
	var raw []legacyPoint
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return nil, false
	}

	points := make([]geo.Point, 0, len(raw))
	for _, r := range raw {
		if r.Lat == nil || r.Lng == nil {
			return nil, false
		}
		points = append(points, geo.Point{Lat: *r.Lat, Lng: *r.Lng})
	}
	return points, true
}
