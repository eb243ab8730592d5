//go:build ebiten

package ui

import (
	"faultmap/internal/render"
	"faultmap/pkg/heightmap/export"
	"faultmap/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws optional map layers on top of the base height map.
type Overlay struct {
	hm    core.HeightMap
	scale int

	showSea      bool
	showContours bool
	seaLevel     int
	interval     int

	painter *render.GridPainter
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(hm core.HeightMap, scale int) *Overlay {
	return &Overlay{
		hm:       hm,
		scale:    scale,
		seaLevel: export.SeaLevel,
		interval: 32,
		painter:  render.NewGridPainter(hm.Size().W),
	}
}

// Attach switches the overlay to a different height map.
func (o *Overlay) Attach(hm core.HeightMap) { o.hm = hm }

// Update toggles layers: 1 sea, 2 contours, [ and ] move the sea level.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showSea = !o.showSea
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showContours = !o.showContours
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) && o.seaLevel > 0 {
		o.seaLevel -= 8
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) && o.seaLevel < 255 {
		o.seaLevel += 8
	}
}

// Draw renders the enabled layers onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	g := o.hm.Heights()
	if g == nil {
		return
	}
	if o.painter.Size() != g.N {
		o.painter = render.NewGridPainter(g.N)
	}
	if o.showSea {
		o.painter.BlitSea(screen, g, o.seaLevel, o.scale)
	}
	if o.showContours {
		o.painter.BlitContours(screen, g, o.interval, o.scale)
	}
}
