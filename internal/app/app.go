//go:build ebiten

package app

import (
	"image/color"
	"log/slog"
	"time"

	"faultmap/internal/core"
	"faultmap/internal/render"
	"faultmap/internal/ui"
	"faultmap/pkg/heightmap/export"
	"faultmap/pkg/heightmap/faultfractal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var paletteNames = []string{export.PaletteTerrain, export.PaletteGray}

// Game adapts a fault fractal generator to the ebiten.Game interface.
type Game struct {
	gen     *faultfractal.Generator
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay
	log     *slog.Logger

	palettes   [][]color.RGBA
	paletteIdx int
	shade      bool

	scale    int
	hudWidth int
	auto     bool
	cadence  *core.Cadence
}

// New constructs a Game around gen.
func New(gen *faultfractal.Generator, cfg *Config, palette string, log *slog.Logger) (*Game, error) {
	g := &Game{
		gen:      gen,
		painter:  render.NewGridPainter(gen.Size().W),
		overlay:  ui.NewOverlay(gen, cfg.Scale),
		log:      log,
		shade:    true,
		scale:    max(cfg.Scale, 1),
		hudWidth: max(cfg.HUDWidth, 0),
		auto:     cfg.Auto,
		cadence:  core.NewCadence(cfg.Rate),
	}
	for i, name := range paletteNames {
		pal, err := export.Palette(name)
		if err != nil {
			return nil, err
		}
		g.palettes = append(g.palettes, pal)
		if name == palette {
			g.paletteIdx = i
		}
	}
	g.hud = ui.NewHUD(gen, g.hudWidth, g.regenerate)
	return g, nil
}

func (g *Game) regenerate() {
	start := time.Now()
	g.gen.Load()
	g.log.Debug("regenerated", "took", time.Since(start))
}

// Reseed replaces the generator with a fresh one using the same parameters
// and a new seed.
func (g *Game) Reseed(seed int64) {
	cfg := g.gen.Config()
	cfg.Seed = seed
	gen, err := faultfractal.NewWithLogger(cfg, g.log)
	if err != nil {
		g.log.Error("reseed", "error", err)
		return
	}
	g.gen = gen
	g.hud.Attach(gen)
	g.overlay.Attach(gen)
}

// Update handles key presses and automatic regeneration.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.regenerate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reseed(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.paletteIdx = (g.paletteIdx + 1) % len(g.palettes)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.shade = !g.shade
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.auto = !g.auto
		g.cadence.Reset()
	}

	g.overlay.Update()
	g.hud.Update(g.mapWidth())

	if g.auto && g.cadence.Due(time.Now()) {
		g.regenerate()
	}
	return nil
}

// Draw renders the height map, overlays and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	shade := 0.0
	if g.shade {
		shade = 1
	}
	g.painter.Blit(screen, g.gen.Heights(), g.palettes[g.paletteIdx], shade, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.mapWidth(), g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.mapWidth() + g.hudWidth, g.gen.Size().H * g.scale
}

func (g *Game) mapWidth() int { return g.gen.Size().W * g.scale }
