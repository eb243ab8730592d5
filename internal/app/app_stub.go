//go:build !ebiten

package app

import (
	"errors"
	"log/slog"

	"faultmap/pkg/heightmap/faultfractal"
)

var errNoGUI = errors.New("the viewer requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New reports that the ebiten build tag is required for GUI support.
func New(*faultfractal.Generator, *Config, string, *slog.Logger) (*Game, error) {
	return nil, errNoGUI
}

// Reseed is a no-op placeholder.
func (g *Game) Reseed(int64) {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return errNoGUI }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
