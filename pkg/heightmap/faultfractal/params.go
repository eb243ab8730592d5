package faultfractal

import (
	"fmt"

	"faultmap/pkg/core"
)

// Parameters reports the current settings for display.
func (g *Generator) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				core.IntParam("size", "Size", int64(g.cfg.Size)),
				core.IntParam("seed", "Seed", g.cfg.Seed),
			},
		},
		{
			Name: "Faults",
			Params: []core.Parameter{
				core.IntParam("iterations", "Iterations", int64(g.cfg.Iterations)),
				core.IntParam("min_delta", "Min delta", int64(g.cfg.MinDelta)),
				core.IntParam("max_delta", "Max delta", int64(g.cfg.MaxDelta)),
				core.FloatParam("filter", "Erosion filter", g.cfg.Filter),
			},
		},
	}}
}

// ParameterControls lists the settings that can be changed between loads.
func (g *Generator) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "iterations", Label: "Iterations", Type: core.ParamTypeInt, Step: 8, Min: 1, HasMin: true},
		{Key: "min_delta", Label: "Min delta", Type: core.ParamTypeInt, Step: 1},
		{Key: "max_delta", Label: "Max delta", Type: core.ParamTypeInt, Step: 1},
		{Key: "filter", Label: "Erosion", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 0.95, HasMin: true, HasMax: true},
	}
}

// SetIntParameter routes an integer control to its mutator. The grid is not
// regenerated.
func (g *Generator) SetIntParameter(key string, value int) error {
	switch key {
	case "iterations":
		return g.SetIterations(value)
	case "min_delta":
		return g.SetMinDelta(value)
	case "max_delta":
		return g.SetMaxDelta(value)
	}
	return fmt.Errorf("%w: unknown integer parameter %q", core.ErrInvalidParameter, key)
}

// SetFloatParameter routes a float control to its mutator.
func (g *Generator) SetFloatParameter(key string, value float64) error {
	if key == "filter" {
		return g.SetFilter(value)
	}
	return fmt.Errorf("%w: unknown float parameter %q", core.ErrInvalidParameter, key)
}
