// Package server handles HTTP requests and middleware.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/woozymasta/randomspot/internal/config"
	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/geohash"
	"github.com/woozymasta/randomspot/internal/pointlist"
	"github.com/woozymasta/randomspot/internal/preview"
	"github.com/woozymasta/randomspot/internal/sampler"
	"github.com/woozymasta/randomspot/internal/share"

	"github.com/rs/zerolog/log"
)

const (
	maxBodyBytes    = 1 << 20
	outlineSegments = 72
	previewSamples  = 500
)

var (
	errUnknownPreset  = errors.New("unknown preset")
	errUnusableRegion = errors.New("region is not usable: missing center or fewer than 3 vertices")
)

// SampleResponse is the JSON answer of the sample endpoint.
type SampleResponse struct {
	Shape  string      `json:"shape"`
	Points []geo.Point `json:"points"`
	Token  string      `json:"token"`
	Share  string      `json:"share"`
}

// Routes registers all handlers on a new mux.
func (s *ServerContext) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/regions", s.HandleRegions)
	mux.HandleFunc("/api/sample", s.HandleSample)
	mux.HandleFunc("/api/preview", s.HandlePreview)
	mux.HandleFunc("/api/geohash/encode", s.HandleGeohashEncode)
	mux.HandleFunc("/api/geohash/decode", s.HandleGeohashDecode)
	mux.HandleFunc("/api/points/encode", s.HandlePointsEncode)
	mux.HandleFunc("/api/points/decode", s.HandlePointsDecode)
	mux.HandleFunc("/", s.HandleIndex)
	return mux
}

// HandleIndex serves the minified index page.
func (s *ServerContext) HandleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	etag := fmt.Sprintf(`"%x"`, len(s.IndexHTML))

	if match := r.Header.Get("If-None-Match"); match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, no-cache")
	_, _ = w.Write(s.IndexHTML)
}

// HandleRegions serves the configured presets.
func (s *ServerContext) HandleRegions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Config.Regions)
}

// HandleSample draws points from a region given by preset, share query or JSON body.
func (s *ServerContext) HandleSample(w http.ResponseWriter, r *http.Request) {
	region, status, err := s.resolveRegion(r)
	if err != nil {
		writeError(w, status, err)
		return
	}

	q := r.URL.Query()
	count, err := s.parseCount(q.Get("count"), 1)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	seed, err := parseSeed(q.Get("seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	points := s.newSampler(seed).SampleN(region, count)

	log.Debug().
		Str("shape", string(region.Kind())).
		Int("count", len(points)).
		Msg("Points sampled")

	if q.Get("format") == "geojson" {
		fc := geo.SamplesCollection(region.Outline(outlineSegments), points)
		writeBody(w, http.StatusOK, "application/geo+json", fc)
		return
	}

	writeJSON(w, http.StatusOK, SampleResponse{
		Shape:  string(region.Kind()),
		Points: points,
		Token:  pointlist.Serialize(points),
		Share:  share.Encode(region).Encode(),
	})
}

// HandlePreview renders the region and fresh samples as WebP.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	region, status, err := s.resolveRegion(r)
	if err != nil {
		writeError(w, status, err)
		return
	}

	q := r.URL.Query()
	count, err := s.parseCount(q.Get("count"), previewSamples)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	seed, err := parseSeed(q.Get("seed"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	opts := preview.DefaultOptions
	if raw := q.Get("size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 16 || size > 2048 {
			writeError(w, http.StatusBadRequest, fmt.Errorf("size must be an integer in [16, 2048]"))
			return
		}
		opts.Size = size
	}

	points := s.newSampler(seed).SampleN(region, count)
	img := preview.Render(region.Outline(outlineSegments), points, opts)

	w.Header().Set("Content-Type", "image/webp")
	w.Header().Set("Cache-Control", "no-store")
	if err := preview.Encode(w, img, opts); err != nil {
		log.Error().Err(err).Msg("Failed to encode preview")
	}
}

// HandleGeohashEncode encodes lat/lng query values.
func (s *ServerContext) HandleGeohashEncode(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, errLat := strconv.ParseFloat(q.Get("lat"), 64)
	lng, errLng := strconv.ParseFloat(q.Get("lng"), 64)
	p := geo.Point{Lat: lat, Lng: lng}
	if errLat != nil || errLng != nil || !p.IsFinite() {
		writeError(w, http.StatusBadRequest, errors.New("lat and lng must be finite numbers"))
		return
	}

	precision := s.Config.Precision
	if raw := q.Get("precision"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil || p < 1 || p > geohash.MaxPrecision {
			writeError(w, http.StatusBadRequest, fmt.Errorf("precision must be an integer in [1, %d]", geohash.MaxPrecision))
			return
		}
		precision = p
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"hash":      geohash.Encode(p, precision),
		"precision": precision,
	})
}

// HandleGeohashDecode decodes the hash query value.
func (s *ServerContext) HandleGeohashDecode(w http.ResponseWriter, r *http.Request) {
	hash := r.URL.Query().Get("hash")

	p, err := geohash.Decode(hash)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	errLat, errLng := geohash.ErrorBound(len(hash))
	writeJSON(w, http.StatusOK, map[string]any{
		"point":     p,
		"dms":       geo.FormatDMS(p.Lat, true) + ", " + geo.FormatDMS(p.Lng, false),
		"error_lat": errLat,
		"error_lng": errLng,
	})
}

// HandlePointsEncode turns a JSON array of points into a token.
func (s *ServerContext) HandlePointsEncode(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, http.StatusMethodNotAllowed, errors.New("use POST"))
		return
	}

	var points []geo.Point
	if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&points); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("decode points: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"token": pointlist.Serialize(points),
		"count": len(points),
	})
}

// HandlePointsDecode parses a token; malformed tokens yield an empty list.
func (s *ServerContext) HandlePointsDecode(w http.ResponseWriter, r *http.Request) {
	points := pointlist.Parse(r.URL.Query().Get("token"))
	writeJSON(w, http.StatusOK, map[string]any{
		"points": points,
		"count":  len(points),
	})
}

// resolveRegion picks the region from a POST body, a preset name or share query values.
func (s *ServerContext) resolveRegion(r *http.Request) (sampler.Region, int, error) {
	if r.Method == http.MethodPost {
		var dto config.Region
		if err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(&dto); err != nil {
			return nil, http.StatusBadRequest, fmt.Errorf("decode region: %w", err)
		}

		region, err := dto.Build()
		if err != nil {
			return nil, http.StatusUnprocessableEntity, err
		}
		return region, http.StatusOK, nil
	}

	q := r.URL.Query()
	if name := q.Get("preset"); name != "" {
		region, ok := s.Presets[name]
		if !ok {
			return nil, http.StatusNotFound, fmt.Errorf("%w: %q", errUnknownPreset, name)
		}
		return region, http.StatusOK, nil
	}

	region, ok := share.Decode(q)
	if !ok {
		return nil, http.StatusUnprocessableEntity, errUnusableRegion
	}
	return region, http.StatusOK, nil
}

func (s *ServerContext) parseCount(raw string, def int) (int, error) {
	if raw == "" {
		return min(def, s.Config.MaxSamples), nil
	}

	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > s.Config.MaxSamples {
		return 0, fmt.Errorf("count must be an integer in [1, %d]", s.Config.MaxSamples)
	}
	return n, nil
}

func parseSeed(raw string) (uint64, error) {
	if raw == "" {
		return 0, nil
	}
	seed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("seed must be an unsigned integer")
	}
	return seed, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	writeBody(w, status, "application/json", v)
}

// writeBody marshals v before any header is sent; encoding failures become a 500.
func writeBody(w http.ResponseWriter, status int, contentType string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}` + "\n"))
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	// Ignoring error as we cannot handle client disconnects
	_, _ = w.Write(append(data, '\n'))
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
