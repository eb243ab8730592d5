// Package sweep generates many fault fractal maps in parallel and summarizes
// their terrain.
package sweep

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"sort"
	"sync"

	"faultmap/pkg/core"
	"faultmap/pkg/heightmap/export"
	"faultmap/pkg/heightmap/faultfractal"
)

// Stats summarizes one height grid.
type Stats struct {
	Mean float64
	// StdDev is the population standard deviation of the heights.
	StdDev float64
	// Roughness is the mean absolute difference between horizontally and
	// vertically adjacent cells.
	Roughness float64
	// Land is the fraction of cells at or above export.SeaLevel.
	Land float64
}

// Measure computes Stats for g.
func Measure(g *core.HeightGrid) Stats {
	cells := g.Cells()
	if len(cells) == 0 {
		return Stats{}
	}
	var sum, land float64
	for _, h := range cells {
		sum += float64(h)
		if h >= export.SeaLevel {
			land++
		}
	}
	mean := sum / float64(len(cells))

	var sq float64
	for _, h := range cells {
		d := float64(h) - mean
		sq += d * d
	}

	var diff float64
	var pairs int
	for row := 0; row < g.N; row++ {
		for col := 0; col < g.N; col++ {
			if col+1 < g.N {
				diff += math.Abs(float64(g.At(row, col+1) - g.At(row, col)))
				pairs++
			}
			if row+1 < g.N {
				diff += math.Abs(float64(g.At(row+1, col) - g.At(row, col)))
				pairs++
			}
		}
	}
	rough := 0.0
	if pairs > 0 {
		rough = diff / float64(pairs)
	}

	return Stats{
		Mean:      mean,
		StdDev:    math.Sqrt(sq / float64(len(cells))),
		Roughness: rough,
		Land:      land / float64(len(cells)),
	}
}

// Result pairs a generation config with its statistics.
type Result struct {
	Config faultfractal.Config
	Stats  Stats
}

func (r Result) String() string {
	return fmt.Sprintf("seed=%d iterations=%d delta=[%d,%d] filter=%.2f mean=%.1f std=%.1f rough=%.2f land=%.2f",
		r.Config.Seed, r.Config.Iterations, r.Config.MinDelta, r.Config.MaxDelta, r.Config.Filter,
		r.Stats.Mean, r.Stats.StdDev, r.Stats.Roughness, r.Stats.Land)
}

// Grid expands a base config over every seed and filter combination.
func Grid(base faultfractal.Config, seeds []int64, filters []float64) []faultfractal.Config {
	var cfgs []faultfractal.Config
	for _, seed := range seeds {
		for _, filter := range filters {
			cfg := base
			cfg.Seed = seed
			cfg.Filter = filter
			cfgs = append(cfgs, cfg)
		}
	}
	return cfgs
}

// Run generates every config on a pool of workers, each with its own
// generators, and returns results in input order. It stops handing out work
// once ctx is cancelled and reports ctx.Err().
func Run(ctx context.Context, cfgs []faultfractal.Config, workers int) ([]Result, error) {
	for _, cfg := range cfgs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	if workers <= 0 {
		workers = 1
	}

	quiet := slog.New(slog.NewTextHandler(io.Discard, nil))
	results := make([]Result, len(cfgs))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				gen, err := faultfractal.NewWithLogger(cfgs[idx], quiet)
				if err != nil {
					// Configs were validated above.
					panic(err)
				}
				results[idx] = Result{Config: cfgs[idx], Stats: Measure(gen.Heights())}
			}
		}()
	}

feed:
	for i := range cfgs {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}

// SortBy orders results by the given key, highest first. Known keys are
// mean, std, rough and land.
func SortBy(results []Result, key string) error {
	var value func(Stats) float64
	switch key {
	case "mean":
		value = func(s Stats) float64 { return s.Mean }
	case "std":
		value = func(s Stats) float64 { return s.StdDev }
	case "rough":
		value = func(s Stats) float64 { return s.Roughness }
	case "land":
		value = func(s Stats) float64 { return s.Land }
	default:
		return fmt.Errorf("unknown sort key %q", key)
	}
	sort.SliceStable(results, func(i, j int) bool { return value(results[i].Stats) > value(results[j].Stats) })
	return nil
}
