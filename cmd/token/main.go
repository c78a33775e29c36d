package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/randomspot/internal/geo"
	"github.com/woozymasta/randomspot/internal/geohash"
	"github.com/woozymasta/randomspot/internal/pointlist"

	"github.com/jessevdk/go-flags"
	"gopkg.in/yaml.v3"
)

type Options struct {
	Input     string `short:"i" long:"in"        description:"JSON or YAML file with points to encode. Reads from stdin if empty"`
	Decode    string `short:"d" long:"decode"    description:"Token to decode instead of encoding"`
	Geohash   string `short:"g" long:"geohash"   description:"Single geohash to decode"`
	Precision int    `short:"p" long:"precision" description:"Geohash precision for --lat/--lng" default:"8"`
	Lat       string `long:"lat"                 description:"Latitude to encode as a single geohash"`
	Lng       string `long:"lng"                 description:"Longitude to encode as a single geohash"`
	Format    string `short:"f" long:"format"    description:"Output format for decoded points" choice:"json" choice:"yaml" default:"json"`
}

var errNonFinite = errors.New("coordinates must be finite numbers")

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if err := run(opts, os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts Options, stdin io.Reader, stdout io.Writer) error {
	switch {
	case opts.Lat != "" || opts.Lng != "":
		var p geo.Point
		if _, err := fmt.Sscan(opts.Lat, &p.Lat); err != nil {
			return fmt.Errorf("invalid --lat: %w", err)
		}
		if _, err := fmt.Sscan(opts.Lng, &p.Lng); err != nil {
			return fmt.Errorf("invalid --lng: %w", err)
		}
		if !p.IsFinite() {
			return fmt.Errorf("%w: %s", errNonFinite, p)
		}
		_, err := fmt.Fprintln(stdout, geohash.Encode(p, opts.Precision))
		return err

	case opts.Geohash != "":
		p, err := geohash.Decode(opts.Geohash)
		if err != nil {
			return err
		}
		return write(stdout, opts.Format, p)

	case opts.Decode != "":
		// never fails: a malformed token is an empty list
		return write(stdout, opts.Format, pointlist.Parse(opts.Decode))
	}

	var data []byte
	var err error
	if opts.Input != "" {
		data, err = os.ReadFile(opts.Input)
	} else {
		data, err = io.ReadAll(stdin)
	}
	if err != nil {
		return fmt.Errorf("read points: %w", err)
	}

	// YAML is a superset of JSON, one decoder covers both
	var points []geo.Point
	if err := yaml.Unmarshal(data, &points); err != nil {
		return fmt.Errorf("parse points: %w", err)
	}
	for i, p := range points {
		if !p.IsFinite() {
			return fmt.Errorf("point #%d: %w", i, errNonFinite)
		}
	}

	_, err = fmt.Fprintln(stdout, pointlist.Serialize(points))
	return err
}

func write(w io.Writer, format string, v any) error {
	var out []byte
	var err error
	if format == "yaml" {
		out, err = yaml.Marshal(v)
	} else {
		out, err = json.MarshalIndent(v, "", "  ")
		out = append(out, '\n')
	}
	if err != nil {
		return err
	}

	_, err = w.Write(out)
	return err
}
