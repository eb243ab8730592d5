// Package export writes height grids as images, raw height files and JSON.
package export

import (
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/mazznoer/colorgrad"

	"faultmap/pkg/core"
)

// Format names an output encoding.
type Format string

const (
	FormatPNG  Format = "png"
	FormatRaw  Format = "raw"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatPNG, FormatRaw, FormatJSON:
		return f, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", core.ErrInvalidParameter, s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	switch f {
	case FormatPNG:
		return "image/png"
	case FormatJSON:
		return "application/json"
	}
	return "application/octet-stream"
}

// Document is the JSON form of a grid. Heights are row-major.
type Document struct {
	Size    int   `json:"size"`
	Seed    int64 `json:"seed"`
	Heights []int `json:"heights"`
}

// NewDocument wraps a grid for JSON encoding.
func NewDocument(g *core.HeightGrid, seed int64) Document {
	return Document{Size: g.N, Seed: seed, Heights: g.Cells()}
}

// Grid rebuilds the height grid described by the document.
func (d Document) Grid() (*core.HeightGrid, error) {
	if d.Size <= 0 || len(d.Heights) != d.Size*d.Size {
		return nil, fmt.Errorf("document holds %d heights for size %d", len(d.Heights), d.Size)
	}
	g := core.NewHeightGrid(d.Size)
	copy(g.Cells(), d.Heights)
	return g, nil
}

// Write encodes g in format f. palette selects the PNG coloring.
func Write(w io.Writer, f Format, g *core.HeightGrid, seed int64, palette string) error {
	switch f {
	case FormatPNG:
		img, err := Image(g, palette)
		if err != nil {
			return err
		}
		return png.Encode(w, img)
	case FormatRaw:
		return WriteRaw(w, g)
	case FormatJSON:
		return json.NewEncoder(w).Encode(NewDocument(g, seed))
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteRaw writes one byte per cell in row-major order, clamped to 0..255.
func WriteRaw(w io.Writer, g *core.HeightGrid) error {
	cells := g.Cells()
	buf := make([]byte, len(cells))
	for i, h := range cells {
		buf[i] = clampByte(h)
	}
	_, err := w.Write(buf)
	return err
}

// Image renders g with the named palette.
func Image(g *core.HeightGrid, palette string) (image.Image, error) {
	if palette == "" || palette == PaletteGray {
		return Gray(g), nil
	}
	pal, err := Palette(palette)
	if err != nil {
		return nil, err
	}
	return Colorize(g, pal), nil
}

// Gray renders heights as 8-bit gray levels.
func Gray(g *core.HeightGrid) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, g.N, g.N))
	for row := 0; row < g.N; row++ {
		for col := 0; col < g.N; col++ {
			img.SetGray(col, row, color.Gray{Y: clampByte(g.At(row, col))})
		}
	}
	return img
}

// Colorize maps each height through a 256 entry palette.
func Colorize(g *core.HeightGrid, pal []color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, g.N, g.N))
	last := len(pal) - 1
	for row := 0; row < g.N; row++ {
		for col := 0; col < g.N; col++ {
			idx := int(clampByte(g.At(row, col)))
			if idx > last {
				idx = last
			}
			img.SetRGBA(col, row, pal[idx])
		}
	}
	return img
}

// Palette names.
const (
	PaletteGray    = "gray"
	PaletteTerrain = "terrain"
)

// SeaLevel is the height where the terrain palette turns from water to
// shore. Heights below it count as sea.
const SeaLevel = 92

// Palette builds a 256 entry lookup table for the named palette.
func Palette(name string) ([]color.RGBA, error) {
	var builder *colorgrad.GradientBuilder
	switch name {
	case PaletteGray:
		builder = colorgrad.NewGradient().Colors(color.Black, color.White)
	case PaletteTerrain:
		builder = colorgrad.NewGradient().
			Colors(
				color.RGBA{R: 10, G: 30, B: 110, A: 255},
				color.RGBA{R: 40, G: 110, B: 190, A: 255},
				color.RGBA{R: 220, G: 205, B: 140, A: 255},
				color.RGBA{R: 70, G: 150, B: 60, A: 255},
				color.RGBA{R: 120, G: 95, B: 60, A: 255},
				color.RGBA{R: 245, G: 245, B: 250, A: 255},
			).
			Domain(0, 0.3, float64(SeaLevel)/255, 0.55, 0.8, 1)
	default:
		return nil, fmt.Errorf("%w: unknown palette %q", core.ErrInvalidParameter, name)
	}
	grad, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s palette: %w", name, err)
	}
	pal := make([]color.RGBA, 256)
	for i := range pal {
		pal[i] = color.RGBAModel.Convert(grad.At(float64(i) / 255)).(color.RGBA)
	}
	return pal, nil
}

func clampByte(h int) uint8 {
	switch {
	case h < 0:
		return 0
	case h > 255:
		return 255
	}
	return uint8(h)
}
