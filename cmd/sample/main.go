package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/woozymasta/randomspot/internal/config"
	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/logger"
	"github.com/woozymasta/randomspot/internal/pointlist"
	"github.com/woozymasta/randomspot/internal/preview"
	"github.com/woozymasta/randomspot/internal/sampler"
	"github.com/woozymasta/randomspot/internal/share"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Logger logger.Logger `group:"Logger options"`

	ConfigFile string `short:"c" long:"config" description:"Configuration file with region presets"`
	Preset     string `short:"P" long:"preset" description:"Preset name from the configuration file"`
	Query      string `short:"q" long:"query"  description:"Region as a share query string, e.g. shape=ellipse&center=dr5regw3"`

	Shape        string  `short:"s" long:"shape"          description:"Region shape" choice:"ellipse" choice:"rectangle" choice:"polygon" default:"ellipse"`
	Lat          float64 `long:"lat"                      description:"Center latitude"`
	Lng          float64 `long:"lng"                      description:"Center longitude"`
	RadiusX      float64 `short:"x" long:"radius-x"       description:"Radius X or rectangle width, meters" default:"20000"`
	RadiusY      float64 `short:"y" long:"radius-y"       description:"Radius Y or rectangle height, meters" default:"20000"`
	InnerRadiusX float64 `long:"inner-radius-x"           description:"Hole radius X or width, meters"`
	InnerRadiusY float64 `long:"inner-radius-y"           description:"Hole radius Y or height, meters"`
	Rotation     float64 `short:"r" long:"rotation"       description:"Clockwise rotation, degrees"`
	Points       string  `short:"t" long:"points"         description:"Polygon vertices as a point-list token"`

	Count       int    `short:"n" long:"count"        description:"Number of points" default:"1"`
	Seed        uint64 `long:"seed"                   description:"Random seed, 0 picks one"`
	MaxAttempts int    `long:"max-attempts"           description:"Rejection sampling attempt cap" default:"1000"`
	Format      string `short:"f" long:"format"       description:"Output format" choice:"json" choice:"yaml" choice:"geojson" choice:"token" default:"json"`
	Output      string `short:"o" long:"out"          description:"Output file path. Writes to stdout if empty"`
	Preview     string `long:"preview"                description:"Also write a WebP preview to this path"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	if opts.Count <= 0 {
		fmt.Fprintln(os.Stderr, "Error: --count must be > 0")
		os.Exit(1)
	}

	region, err := resolveRegion(opts, parser)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	smp := sampler.New(sampler.NewRand(opts.Seed), sampler.WithMaxAttempts(opts.MaxAttempts))
	points := smp.SampleN(region, opts.Count)

	log.Debug().
		Str("shape", string(region.Kind())).
		Int("count", len(points)).
		Msg("Points sampled")

	outputData, err := marshal(opts.Format, region, points)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling data: %v\n", err)
		os.Exit(1)
	}

	if opts.Output != "" {
		err = os.WriteFile(opts.Output, outputData, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Successfully sampled %d points to %s (format: %s)\n", len(points), opts.Output, opts.Format)
	} else {
		fmt.Println(string(outputData))
	}

	if opts.Preview != "" {
		var buf bytes.Buffer
		if err := preview.Write(&buf, region.Outline(72), points, preview.DefaultOptions); err != nil {
			fmt.Fprintf(os.Stderr, "Error rendering preview: %v\n", err)
			os.Exit(1)
		}
		if err := os.WriteFile(opts.Preview, buf.Bytes(), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing preview: %v\n", err)
			os.Exit(1)
		}
	}
}

// resolveRegion picks the region from a preset, a share query or the shape flags, in that order.
func resolveRegion(opts Options, parser *flags.Parser) (sampler.Region, error) {
	if opts.Preset != "" {
		if opts.ConfigFile == "" {
			return nil, fmt.Errorf("--preset requires --config")
		}
		cfg, err := config.Load(opts.ConfigFile)
		if err != nil {
			return nil, fmt.Errorf("load configuration: %w", err)
		}
		preset, ok := cfg.Find(opts.Preset)
		if !ok {
			return nil, fmt.Errorf("preset %q not found in %s", opts.Preset, opts.ConfigFile)
		}
		return preset.Build()
	}

	if opts.Query != "" {
		values, err := parseQuery(opts.Query)
		if err != nil {
			return nil, err
		}
		region, ok := share.Decode(values)
		if !ok {
			return nil, fmt.Errorf("query does not describe a usable region")
		}
		return region, nil
	}

	dto := config.Region{
		Shape:        opts.Shape,
		RadiusX:      opts.RadiusX,
		RadiusY:      opts.RadiusY,
		InnerRadiusX: opts.InnerRadiusX,
		InnerRadiusY: opts.InnerRadiusY,
		Rotation:     opts.Rotation,
		Token:        opts.Points,
	}
	if parser.FindOptionByLongName("lat").IsSet() || parser.FindOptionByLongName("lng").IsSet() {
		dto.Center = &geo.Point{Lat: opts.Lat, Lng: opts.Lng}
	}

	return dto.Build()
}

func marshal(format string, region sampler.Region, points []geo.Point) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(points)
	case "geojson":
		return json.MarshalIndent(geo.SamplesCollection(region.Outline(72), points), "", "  ")
	case "token":
		return []byte(pointlist.Serialize(points)), nil
	default:
		return json.MarshalIndent(points, "", "  ")
	}
}
