package faultfractal

import (
	"fmt"
	"strconv"

	"faultmap/pkg/core"
)

// Config holds the fault fractal generation parameters.
type Config struct {
	Size       int     `json:"size"`
	Iterations int     `json:"iterations"`
	MinDelta   int     `json:"min_delta"`
	MaxDelta   int     `json:"max_delta"`
	Filter     float64 `json:"filter"`
	Seed       int64   `json:"seed"`
}

// DefaultConfig returns the standard configuration. Filter values of 0.2-0.4
// give the most natural looking erosion.
func DefaultConfig() Config {
	return Config{
		Size:       129,
		Iterations: 64,
		MinDelta:   0,
		MaxDelta:   32,
		Filter:     0.3,
		Seed:       1337,
	}
}

// Validate reports the first violated precondition.
func (c Config) Validate() error {
	if c.Size <= 0 {
		return fmt.Errorf("%w: size must be greater than zero, got %d", core.ErrInvalidParameter, c.Size)
	}
	if c.Iterations <= 0 {
		return fmt.Errorf("%w: iterations must be greater than zero, got %d", core.ErrInvalidParameter, c.Iterations)
	}
	if c.MinDelta > c.MaxDelta {
		return fmt.Errorf("%w: min delta %d is greater than max delta %d", core.ErrInvalidParameter, c.MinDelta, c.MaxDelta)
	}
	if err := validateFilter(c.Filter); err != nil {
		return err
	}
	return nil
}

func validateFilter(f float64) error {
	// The negated form also rejects NaN.
	if !(f >= 0 && f < 1) {
		return fmt.Errorf("%w: filter must be in [0, 1), got %v", core.ErrInvalidParameter, f)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unparseable values are reported rather than ignored; range checks are left
// to Validate.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	for key, v := range cfg {
		var err error
		switch key {
		case "size":
			c.Size, err = strconv.Atoi(v)
		case "iterations":
			c.Iterations, err = strconv.Atoi(v)
		case "min_delta":
			c.MinDelta, err = strconv.Atoi(v)
		case "max_delta":
			c.MaxDelta, err = strconv.Atoi(v)
		case "filter":
			c.Filter, err = strconv.ParseFloat(v, 64)
		case "seed":
			c.Seed, err = strconv.ParseInt(v, 10, 64)
		default:
			continue
		}
		if err != nil {
			return c, fmt.Errorf("%w: %s=%q: %v", core.ErrInvalidParameter, key, v, err)
		}
	}
	return c, nil
}

// Map is the inverse of FromMap.
func (c Config) Map() map[string]string {
	return map[string]string{
		"size":       strconv.Itoa(c.Size),
		"iterations": strconv.Itoa(c.Iterations),
		"min_delta":  strconv.Itoa(c.MinDelta),
		"max_delta":  strconv.Itoa(c.MaxDelta),
		"filter":     strconv.FormatFloat(c.Filter, 'g', -1, 64),
		"seed":       strconv.FormatInt(c.Seed, 10),
	}
}
