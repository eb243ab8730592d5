// Package config holds the settings shared by the faultmap commands.
package config

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"faultmap/pkg/core"
	"faultmap/pkg/heightmap/export"
	"faultmap/pkg/heightmap/faultfractal"
)

// Config holds generation parameters plus output and server settings.
type Config struct {
	faultfractal.Config

	// Algorithm is the registered height map name to build.
	Algorithm string `json:"algorithm"`
	// RandomSeed replaces Seed with the current time before generation.
	RandomSeed bool   `json:"random_seed"`
	Palette    string `json:"palette"`

	Listen        string `json:"listen"`
	MaxSize       int    `json:"max_size"`
	MaxIterations int    `json:"max_iterations"`

	// Preset is a go-getter source for a JSON config file.
	Preset string `json:"-"`
	// File is a local JSON config file.
	File string `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Config:        faultfractal.DefaultConfig(),
		Algorithm:     faultfractal.Name,
		Palette:       export.PaletteTerrain,
		Listen:        ":3333",
		MaxSize:       1025,
		MaxIterations: 4096,
	}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Algorithm, "algo", c.Algorithm, "height map algorithm: "+strings.Join(core.Names(), ", "))
	fs.IntVar(&c.Size, "size", c.Size, "grid side length")
	fs.IntVar(&c.Iterations, "iterations", c.Iterations, "number of fault lines")
	fs.IntVar(&c.MinDelta, "min-delta", c.MinDelta, "smallest lift per fault")
	fs.IntVar(&c.MaxDelta, "max-delta", c.MaxDelta, "largest lift per fault")
	fs.Float64Var(&c.Filter, "filter", c.Filter, "erosion filter strength in [0, 1)")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "random seed")
	fs.BoolVar(&c.RandomSeed, "random-seed", c.RandomSeed, "seed from the current time")
	fs.StringVar(&c.Palette, "palette", c.Palette, "png palette: gray or terrain")
	fs.StringVar(&c.Listen, "listen", c.Listen, "server listen address")
	fs.IntVar(&c.MaxSize, "max-size", c.MaxSize, "largest grid the server will generate")
	fs.IntVar(&c.MaxIterations, "max-iterations", c.MaxIterations, "most faults the server will generate")
	fs.StringVar(&c.File, "config", c.File, "JSON config file")
	fs.StringVar(&c.Preset, "preset", c.Preset, "JSON config fetched from a URL, git repo or path")
}

// Generation returns the generator parameters, resolving RandomSeed.
func (c *Config) Generation() faultfractal.Config {
	g := c.Config
	if c.RandomSeed {
		g.Seed = time.Now().UnixNano()
	}
	return g
}

// Validate checks generation parameters and server limits.
func (c *Config) Validate() error {
	if !slices.Contains(core.Names(), c.Algorithm) {
		return fmt.Errorf("%w: unknown algorithm %q", core.ErrInvalidParameter, c.Algorithm)
	}
	if err := c.Config.Validate(); err != nil {
		return err
	}
	if c.MaxSize <= 0 || c.MaxIterations <= 0 {
		return fmt.Errorf("%w: server limits must be positive: max size %d, max iterations %d",
			core.ErrInvalidParameter, c.MaxSize, c.MaxIterations)
	}
	if c.Palette != export.PaletteGray && c.Palette != export.PaletteTerrain {
		return fmt.Errorf("%w: unknown palette %q", core.ErrInvalidParameter, c.Palette)
	}
	return nil
}

// LoadFile reads a JSON config file on top of the defaults.
func LoadFile(path string) (*Config, error) {
	return LoadFileOnto(DefaultConfig(), path)
}

// LoadFileOnto reads a JSON config file on top of a copy of base. Keys
// missing from the file keep base's values; base itself is not modified.
func LoadFileOnto(base *Config, path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := *base
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Merge applies file-loaded config values into cfg, but only for fields
// that were NOT explicitly set via CLI flags. explicitFlags contains the
// flag names that were explicitly provided on the command line.
func Merge(cfg *Config, fromFile *Config, explicitFlags map[string]bool) {
	if !explicitFlags["algo"] {
		cfg.Algorithm = fromFile.Algorithm
	}
	if !explicitFlags["size"] {
		cfg.Size = fromFile.Size
	}
	if !explicitFlags["iterations"] {
		cfg.Iterations = fromFile.Iterations
	}
	if !explicitFlags["min-delta"] {
		cfg.MinDelta = fromFile.MinDelta
	}
	if !explicitFlags["max-delta"] {
		cfg.MaxDelta = fromFile.MaxDelta
	}
	if !explicitFlags["filter"] {
		cfg.Filter = fromFile.Filter
	}
	if !explicitFlags["seed"] {
		cfg.Seed = fromFile.Seed
	}
	if !explicitFlags["random-seed"] {
		cfg.RandomSeed = fromFile.RandomSeed
	}
	if !explicitFlags["palette"] {
		cfg.Palette = fromFile.Palette
	}
	if !explicitFlags["listen"] {
		cfg.Listen = fromFile.Listen
	}
	if !explicitFlags["max-size"] {
		cfg.MaxSize = fromFile.MaxSize
	}
	if !explicitFlags["max-iterations"] {
		cfg.MaxIterations = fromFile.MaxIterations
	}
}

// ExplicitFlags collects the names of flags set on the command line.
func ExplicitFlags(fs *flag.FlagSet) map[string]bool {
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set
}
