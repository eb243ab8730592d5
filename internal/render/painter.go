//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"faultmap/pkg/core"
)

// GridPainter uploads height grids into an RGBA image and draws it scaled.
type GridPainter struct {
	n   int
	img *ebiten.Image
	buf []byte
}

// NewGridPainter allocates a painter for an n×n grid.
func NewGridPainter(n int) *GridPainter {
	return &GridPainter{n: n, img: ebiten.NewImage(n, n), buf: make([]byte, 4*n*n)}
}

// Blit paints heights through the palette, with optional hill shading.
func (gp *GridPainter) Blit(dst *ebiten.Image, g *core.HeightGrid, palette []color.RGBA, shade float64, scale int) {
	if !gp.fits(g) {
		return
	}
	fillHeightRGBA(gp.buf, g.Cells(), g.N, palette, shade)
	gp.draw(dst, scale)
}

// BlitSea draws a translucent water wash over cells below level.
func (gp *GridPainter) BlitSea(dst *ebiten.Image, g *core.HeightGrid, level int, scale int) {
	if !gp.fits(g) {
		return
	}
	fillSeaMask(gp.buf, g.Cells(), level, color.RGBA{R: 40, G: 110, B: 200})
	gp.draw(dst, scale)
}

// BlitContours draws contour lines every interval height units.
func (gp *GridPainter) BlitContours(dst *ebiten.Image, g *core.HeightGrid, interval int, scale int) {
	if !gp.fits(g) {
		return
	}
	fillContours(gp.buf, g.Cells(), g.N, interval, color.RGBA{R: 20, G: 20, B: 20, A: 160})
	gp.draw(dst, scale)
}

func (gp *GridPainter) fits(g *core.HeightGrid) bool {
	return g != nil && g.N == gp.n
}

func (gp *GridPainter) draw(dst *ebiten.Image, scale int) {
	if scale <= 0 {
		scale = 1
	}
	gp.img.WritePixels(gp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the grid side length the painter accepts.
func (gp *GridPainter) Size() int { return gp.n }
