//go:build ebiten

package ui

import (
	"image"
	"image/color"
	"strings"

	"faultmap/pkg/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD renders the parameter panel to the right of the height map.
type HUD struct {
	hm         core.HeightMap
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls     []hudControl
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string
	onChange     func()

	pixel *ebiten.Image
}

type hudControl struct {
	controlState

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for hm. onChange runs after every accepted
// adjustment so the caller can regenerate.
func NewHUD(hm core.HeightMap, width int, onChange func()) *HUD {
	width = max(width, 0)
	h := &HUD{hm: hm, width: width, onChange: onChange, title: buildTitle(hm)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.Attach(hm)
	return h
}

// Attach points the HUD at a different height map, e.g. after a reseed.
func (h *HUD) Attach(hm core.HeightMap) {
	h.hm = hm
	h.title = buildTitle(hm)
	h.controls = nil
	h.intSetter, _ = hm.(core.IntParameterSetter)
	h.floatSetter, _ = hm.(core.FloatParameterSetter)
	if provider, ok := hm.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, hudControl{controlState: controlState{control: ctrl, value: "--"}})
		}
		h.layoutControls()
	}
}

// Update refreshes the displayed values and handles clicks on the buttons.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.hm.(parameterProvider)
	if !ok {
		return
	}
	snapshot := provider.Parameters()
	for i := range h.controls {
		h.controls[i].refresh(snapshot)
	}
	h.handleInput()
}

// Draw paints the panel at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	height := h.hm.Size().H * max(scale, 1)
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(hm core.HeightMap) string {
	if hm == nil || hm.Name() == "" {
		return "Controls"
	}
	name := hm.Name()
	return strings.ToUpper(name[:1]) + name[1:] + " controls"
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		c := &h.controls[i]
		direction := 0
		switch {
		case pointInRect(px, my, c.minusRect):
			direction = -1
		case pointInRect(px, my, c.plusRect):
			direction = 1
		default:
			continue
		}
		if c.adjust(direction, h.intSetter, h.floatSetter) && h.onChange != nil {
			h.onChange()
		}
		return
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	headerY := panelPadding + headerBaseline
	text.Draw(h.panel, h.title, face, panelPadding, headerY, color.RGBA{R: 200, G: 200, B: 210, A: 255})
	if len(h.controls) == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, headerY+infoSpacing, color.RGBA{R: 160, G: 160, B: 170, A: 255})
		return
	}
	for i := range h.controls {
		c := &h.controls[i]
		labelY := c.top + labelBaseline
		text.Draw(h.panel, c.control.Label, face, panelPadding, labelY, color.RGBA{R: 220, G: 220, B: 230, A: 255})
		valueColor := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !c.hasValue {
			valueColor = color.RGBA{R: 160, G: 160, B: 170, A: 255}
		}
		valueX := c.minusRect.Min.X - buttonGap - text.BoundString(face, c.value).Dx()
		text.Draw(h.panel, c.value, face, valueX, labelY, valueColor)

		h.drawButton(c.minusRect, "-", h.canAdjust(c, -1))
		h.drawButton(c.plusRect, "+", h.canAdjust(c, 1))
	}
}

func (h *HUD) canAdjust(c *hudControl, direction int) bool {
	if !c.hasValue {
		return false
	}
	switch c.control.Type {
	case core.ParamTypeInt:
		_, ok := c.intTarget(direction)
		return ok && h.intSetter != nil
	case core.ParamTypeFloat:
		_, ok := c.floatTarget(direction)
		return ok && h.floatSetter != nil
	}
	return false
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) layoutControls() {
	if h.width <= 0 {
		return
	}
	for i := range h.controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.controls[i].top = top
		h.controls[i].minusRect = minus
		h.controls[i].plusRect = plus
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	infoSpacing    = 36
	controlsTop    = panelPadding + headerBaseline + 14
)
