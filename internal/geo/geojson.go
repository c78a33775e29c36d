package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// PointFeature builds a GeoJSON Point feature; coordinates are emitted as [lng, lat].
func PointFeature(p Point, properties map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(orb.Point{p.Lng, p.Lat})
	for k, v := range properties {
		f.Properties[k] = v
	}
	return f
}

// PolygonFeature builds a GeoJSON Polygon feature from an outline, closing the ring when needed.
func PolygonFeature(outline []Point, properties map[string]interface{}) *geojson.Feature {
	ring := Ring(outline)
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}

	f := geojson.NewFeature(orb.Polygon{ring})
	for k, v := range properties {
		f.Properties[k] = v
	}
	return f
}

// SamplesCollection builds a FeatureCollection holding the region outline (if any)
// followed by one Point feature per sample.
func SamplesCollection(outline []Point, samples []Point) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	if len(outline) >= 3 {
		fc.Append(PolygonFeature(outline, map[string]interface{}{"role": "region"}))
	}

	for i, p := range samples {
		fc.Append(PointFeature(p, map[string]interface{}{
			"role":  "sample",
			"index": i,
			"dms":   FormatDMS(p.Lat, true) + ", " + FormatDMS(p.Lng, false),
		}))
	}

	return fc
}
