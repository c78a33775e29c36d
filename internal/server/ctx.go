package server

import (
	"bytes"
	"html/template"
	"sort"

	"github.com/woozymasta/randomspot/internal/config"
	"github.com/woozymasta/randomspot/internal/sampler"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	Presets   map[string]sampler.Region
	IndexHTML []byte
}

// NewServerContext initializes the context and builds the region presets.
// Presets that fail to build are logged and skipped.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().Int("config_regions_count", len(cfg.Regions)).Msg("Initializing server context")

	cfg.Normalize()

	presets := make(map[string]sampler.Region, len(cfg.Regions))
	validRegions := make([]config.Region, 0, len(cfg.Regions))

	for _, r := range cfg.Regions {
		if r.Name == "" {
			log.Warn().Str("shape", r.Shape).Msg("Skipping region: no name")
			continue
		}
		if _, dup := presets[r.Name]; dup {
			log.Warn().Str("region", r.Name).Msg("Skipping region: duplicate name")
			continue
		}

		region, err := r.Build()
		if err != nil {
			log.Warn().Err(err).Str("region", r.Name).Msg("Skipping region: invalid definition")
			continue
		}

		log.Debug().
			Str("region", r.Name).
			Str("shape", string(region.Kind())).
			Msg("Region validated and added to context")

		presets[r.Name] = region
		validRegions = append(validRegions, r)
	}

	sort.Slice(validRegions, func(i, j int) bool {
		return validRegions[i].Name < validRegions[j].Name
	})
	cfg.Regions = validRegions

	index, err := renderIndex(cfg)
	if err != nil {
		log.Error().Err(err).Msg("Failed to render index page")
	}

	log.Info().
		Int("valid_regions_count", len(cfg.Regions)).
		Int("max_attempts", cfg.MaxAttempts).
		Msg("Server context initialized successfully")

	return &ServerContext{
		Config:    cfg,
		Presets:   presets,
		IndexHTML: index,
	}
}

// newSampler creates a per-request sampler; the generator behind it is not shared.
func (s *ServerContext) newSampler(seed uint64) *sampler.Sampler {
	if seed == 0 {
		seed = s.Config.Seed
	}
	return sampler.New(sampler.NewRand(seed), sampler.WithMaxAttempts(s.Config.MaxAttempts))
}

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Random Spot</title>
  <style>
    body { font-family: sans-serif; background: #111; color: #eee; margin: 2em; }
    code { color: #facc15; }
    li { margin: 0.3em 0; }
  </style>
</head>
<body>
  <h1>Random Spot</h1>
  <p>Draw a uniformly random point from an ellipse, rectangle or polygon.</p>
  <h2>Endpoints</h2>
  <ul>
    <li><code>GET /api/regions</code></li>
    <li><code>GET /api/sample?shape=ellipse&amp;center=HASH&amp;radiusX=M&amp;radiusY=M&amp;count=N</code></li>
    <li><code>GET /api/sample?preset=NAME&amp;format=geojson</code></li>
    <li><code>POST /api/sample</code> with a region JSON body</li>
    <li><code>GET /api/preview?preset=NAME&amp;count=N</code></li>
    <li><code>GET /api/geohash/encode?lat=&amp;lng=&amp;precision=</code>, <code>GET /api/geohash/decode?hash=</code></li>
    <li><code>POST /api/points/encode</code>, <code>GET /api/points/decode?token=</code></li>
  </ul>
  {{- if .Regions}}
  <h2>Presets</h2>
  <ul>
    {{- range .Regions}}
    <li><a href="/api/sample?preset={{.Name}}&amp;format=geojson">{{.Name}}</a> ({{if .Shape}}{{.Shape}}{{else}}ellipse{{end}})</li>
    {{- end}}
  </ul>
  {{- end}}
  {{- if .Attribution}}
  <footer>{{.Attribution}}</footer>
  {{- end}}
</body>
</html>
`))

// renderIndex executes the index template and minifies the result.
func renderIndex(cfg *config.Config) ([]byte, error) {
	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, cfg); err != nil {
		return nil, err
	}

	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)

	out, err := m.Bytes("text/html", buf.Bytes())
	if err != nil {
		// serve the unminified page rather than nothing
		return buf.Bytes(), err
	}
	return out, nil
}
