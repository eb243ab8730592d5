package app

import "flag"

// Config represents the viewer-only command-line parameters. Generation
// parameters live in internal/config.
type Config struct {
	Scale    int
	TPS      int
	HUDWidth int
	// Rate is the number of automatic regenerations per second once auto
	// mode is toggled on.
	Rate float64
	Auto bool
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 4, TPS: 60, HUDWidth: 220, Rate: 2}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.HUDWidth, "hud-width", c.HUDWidth, "width of the parameter panel in pixels, 0 hides it")
	fs.Float64Var(&c.Rate, "rate", c.Rate, "regenerations per second in auto mode")
	fs.BoolVar(&c.Auto, "auto", c.Auto, "start with automatic regeneration enabled")
}
