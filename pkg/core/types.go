package core

import (
	"fmt"
	"log/slog"
	"sort"
)

// Size describes the dimensions of a height grid.
type Size struct {
	W int
	H int
}

// HeightMap is the contract shared by terrain height generators.
type HeightMap interface {
	Name() string
	Size() Size
	// Load regenerates the grid from the current parameters.
	Load() bool
	// Unload releases the current grid.
	Unload()
	// Heights returns the current grid, or nil after Unload.
	Heights() *HeightGrid
}

// Factory constructs a HeightMap from flag-style key/value pairs. Generation
// events are logged to log.
type Factory func(cfg map[string]string, log *slog.Logger) (HeightMap, error)

var heightMaps = map[string]Factory{}

// Register adds a height map factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	heightMaps[name] = f
}

// Names returns the registered factory names in sorted order.
func Names() []string {
	names := make([]string, 0, len(heightMaps))
	for name := range heightMaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Build looks up a factory and runs it.
func Build(name string, cfg map[string]string, log *slog.Logger) (HeightMap, error) {
	f, ok := heightMaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown height map %q", ErrInvalidParameter, name)
	}
	if log == nil {
		log = slog.Default()
	}
	return f(cfg, log)
}
