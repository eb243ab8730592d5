// Package faultfractal builds terrain height maps with the fault formation
// algorithm: random lines are drawn through the grid and one side of each
// line is lifted, then the accumulated relief is run through an FIR filter
// that mimics water erosion.
//
// A Generator is not safe for concurrent use. Independent generators share
// no state and may run in parallel.
package faultfractal

import (
	"fmt"
	"log/slog"

	"faultmap/pkg/core"
)

// Name is the registry key of the fault fractal height map.
const Name = "faultfractal"

// Generator produces fault fractal height maps. The random source is seeded
// once in New and advanced by every Load, so only the first grid of a fresh
// generator is reproducible from its seed.
type Generator struct {
	cfg     Config
	rng     *core.RNG
	heights *core.HeightGrid
	log     *slog.Logger
}

// New validates cfg, seeds the random source and generates the first grid.
func New(cfg Config) (*Generator, error) {
	return NewWithLogger(cfg, slog.Default())
}

// NewWithLogger is New with an explicit logger for generation events.
func NewWithLogger(cfg Config, log *slog.Logger) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = slog.Default()
	}
	g := &Generator{
		cfg: cfg,
		rng: core.NewRNG(cfg.Seed),
		log: log,
	}
	g.Load()
	return g, nil
}

// Name returns the height map identifier.
func (g *Generator) Name() string { return Name }

// Size reports the grid dimensions.
func (g *Generator) Size() core.Size { return core.Size{W: g.cfg.Size, H: g.cfg.Size} }

// Config returns the current parameters.
func (g *Generator) Config() Config { return g.cfg }

// Heights returns the grid produced by the last Load, or nil after Unload.
// The grid must not be modified by callers.
func (g *Generator) Heights() *core.HeightGrid { return g.heights }

// Unload releases the current grid.
func (g *Generator) Unload() { g.heights = nil }

// Load regenerates the grid from the current parameters. It always succeeds
// once the parameters are valid and reports true.
func (g *Generator) Load() bool {
	if g.heights != nil {
		g.Unload()
	}

	n := g.cfg.Size
	buf := make([][]float64, n)
	for i := range buf {
		buf[i] = make([]float64, n)
	}

	g.accumulateFaults(buf)
	Erode(buf, g.cfg.Filter)
	Normalize(buf, NormalizeRange)
	g.heights = transfer(buf)

	g.log.Info("created heightmap using fault fractal",
		"size", n,
		"iterations", g.cfg.Iterations,
		"filter", g.cfg.Filter,
	)
	return true
}

// HeightVariance returns the lift applied during iteration i. The magnitude
// falls linearly from MaxDelta towards MinDelta using truncating integer
// division.
func (g *Generator) HeightVariance(i int) int {
	return heightVariance(g.cfg, i)
}

func heightVariance(cfg Config, i int) int {
	return cfg.MaxDelta - ((cfg.MaxDelta-cfg.MinDelta)*i)/cfg.Iterations
}

func (g *Generator) accumulateFaults(buf [][]float64) {
	n := g.cfg.Size
	// A single cell has no second point to form a line with.
	if n < 2 {
		return
	}
	for i := 0; i < g.cfg.Iterations; i++ {
		variance := float64(g.HeightVariance(i))

		x1 := g.rng.Coord(n)
		z1 := g.rng.Coord(n)
		var x2, z2 int
		for {
			x2 = g.rng.Coord(n)
			z2 = g.rng.Coord(n)
			if x2 != x1 || z2 != z1 {
				break
			}
		}

		dx1, dz1 := x2-x1, z2-z1
		for x := 0; x < n; x++ {
			for z := 0; z < n; z++ {
				dx2, dz2 := x-x1, z-z1
				// Positive cross product: left of the line walked from point 1 to point 2.
				if dx2*dz1-dx1*dz2 > 0 {
					buf[x][z] += variance
				}
			}
		}
	}
}

// transfer truncates the buffer into a grid. The buffer's first index is the
// grid column and its second the grid row: buf[i][j] lands at row j, col i.
func transfer(buf [][]float64) *core.HeightGrid {
	n := len(buf)
	grid := core.NewHeightGrid(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			grid.Set(j, i, int(buf[i][j]))
		}
	}
	return grid
}

// SetIterations sets the number of faults generated by the next Load.
func (g *Generator) SetIterations(iterations int) error {
	if iterations <= 0 {
		return fmt.Errorf("%w: iterations must be greater than zero, got %d", core.ErrInvalidParameter, iterations)
	}
	g.cfg.Iterations = iterations
	return nil
}

// SetMinDelta sets the smallest per-fault lift. It may not exceed the current
// max delta.
func (g *Generator) SetMinDelta(minDelta int) error {
	if minDelta > g.cfg.MaxDelta {
		return fmt.Errorf("%w: min delta %d is greater than the current max delta %d", core.ErrInvalidParameter, minDelta, g.cfg.MaxDelta)
	}
	g.cfg.MinDelta = minDelta
	return nil
}

// SetMaxDelta sets the largest per-fault lift. It may not fall below the
// current min delta.
func (g *Generator) SetMaxDelta(maxDelta int) error {
	if maxDelta < g.cfg.MinDelta {
		return fmt.Errorf("%w: max delta %d is less than the current min delta %d", core.ErrInvalidParameter, maxDelta, g.cfg.MinDelta)
	}
	g.cfg.MaxDelta = maxDelta
	return nil
}

// SetFilter sets the erosion strength used by the next Load.
func (g *Generator) SetFilter(filter float64) error {
	if err := validateFilter(filter); err != nil {
		return err
	}
	g.cfg.Filter = filter
	return nil
}

func init() {
	core.Register(Name, func(m map[string]string, log *slog.Logger) (core.HeightMap, error) {
		cfg, err := FromMap(m)
		if err != nil {
			return nil, err
		}
		return NewWithLogger(cfg, log)
	})
}
