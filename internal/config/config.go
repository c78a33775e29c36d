// Package config handles configuration loading and shared data structures.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults applied by Load and Normalize.
const (
	DefaultMaxAttempts = 1000
	DefaultPrecision   = 8
	DefaultMaxSamples  = 10000
)

// ErrDuplicateRegion is returned when two presets share a name.
var ErrDuplicateRegion = errors.New("duplicate region name")

// Config represents the root configuration file structure.
type Config struct {
	Attribution string   `yaml:"attribution,omitempty" json:"attribution,omitempty"`
	Regions     []Region `yaml:"regions" json:"regions"`
	MaxAttempts int      `yaml:"max_attempts,omitempty" json:"max_attempts"`
	Precision   int      `yaml:"precision,omitempty" json:"precision"`
	MaxSamples  int      `yaml:"max_samples,omitempty" json:"max_samples"`
	Seed        uint64   `yaml:"seed,omitempty" json:"-"` // 0 = random
}

// Load reads and parses the YAML configuration file from the specified path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data)
}

// Parse decodes YAML configuration data, fills defaults and validates presets.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Precision <= 0 {
		c.Precision = DefaultPrecision
	}
	if c.MaxSamples <= 0 {
		c.MaxSamples = DefaultMaxSamples
	}
}

// Validate checks that every preset builds and names are unique.
func (c *Config) Validate() error {
	seen := make(map[string]bool, len(c.Regions))
	for i, r := range c.Regions {
		if r.Name == "" {
			return fmt.Errorf("region #%d: %w", i, ErrNoName)
		}
		if seen[r.Name] {
			return fmt.Errorf("region %q: %w", r.Name, ErrDuplicateRegion)
		}
		seen[r.Name] = true

		if _, err := r.Build(); err != nil {
			return fmt.Errorf("region %q: %w", r.Name, err)
		}
	}
	return nil
}

// Find returns the preset with the given name.
func (c *Config) Find(name string) (Region, bool) {
	for _, r := range c.Regions {
		if r.Name == name {
			return r, true
		}
	}
	return Region{}, false
}
