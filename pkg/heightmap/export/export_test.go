package export

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"slices"
	"testing"

	"faultmap/pkg/core"
)

func sampleGrid() *core.HeightGrid {
	g := core.NewHeightGrid(3)
	copy(g.Cells(), []int{0, 10, 20, 30, 300, -5, 128, 255, 1})
	return g
}

func TestWritePNGGray(t *testing.T) {
	g := sampleGrid()
	var buf bytes.Buffer
	if err := Write(&buf, FormatPNG, g, 1, PaletteGray); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if img.Bounds() != image.Rect(0, 0, 3, 3) {
		t.Fatalf("bounds = %v", img.Bounds())
	}
	// Pixel x is the grid column, y the row.
	checks := map[[2]int]uint8{{1, 0}: 10, {0, 1}: 30, {1, 1}: 255, {2, 1}: 0, {0, 2}: 128}
	for xy, want := range checks {
		got := color.GrayModel.Convert(img.At(xy[0], xy[1])).(color.Gray).Y
		if got != want {
			t.Fatalf("pixel %v = %d, want %d", xy, got, want)
		}
	}
}

func TestWritePNGTerrain(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatPNG, sampleGrid(), 1, PaletteTerrain); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	low := color.RGBAModel.Convert(img.At(0, 0)).(color.RGBA)
	high := color.RGBAModel.Convert(img.At(1, 2)).(color.RGBA)
	if low == high {
		t.Fatal("lowest and highest cells share a color")
	}
	if low.B <= low.R {
		t.Fatalf("sea level color %v should be blue", low)
	}
}

func TestPaletteEndpoints(t *testing.T) {
	pal, err := Palette(PaletteGray)
	if err != nil {
		t.Fatal(err)
	}
	if len(pal) != 256 {
		t.Fatalf("palette has %d entries", len(pal))
	}
	if pal[0] != (color.RGBA{A: 255}) || pal[255] != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("gray endpoints = %v, %v", pal[0], pal[255])
	}
	if _, err := Palette("sepia"); err == nil {
		t.Fatal("unknown palette must fail")
	}
}

func TestTerrainShoreAtSeaLevel(t *testing.T) {
	pal, err := Palette(PaletteTerrain)
	if err != nil {
		t.Fatal(err)
	}
	shore := color.RGBA{R: 220, G: 205, B: 140, A: 255}
	near := func(a, b uint8) bool { return a-b <= 1 || b-a <= 1 }
	got := pal[SeaLevel]
	if !near(got.R, shore.R) || !near(got.G, shore.G) || !near(got.B, shore.B) {
		t.Fatalf("palette at sea level = %v, want shore %v", got, shore)
	}
	if below := pal[SeaLevel-10]; below.B <= below.R {
		t.Fatalf("palette below sea level is not water: %v", below)
	}
}

func TestWriteRaw(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, FormatRaw, sampleGrid(), 1, ""); err != nil {
		t.Fatal(err)
	}
	want := []byte{0, 10, 20, 30, 255, 0, 128, 255, 1}
	if !bytes.Equal(buf.Bytes(), want) {
		t.Fatalf("raw = %v, want %v", buf.Bytes(), want)
	}
}

func TestWriteJSON(t *testing.T) {
	g := sampleGrid()
	var buf bytes.Buffer
	if err := Write(&buf, FormatJSON, g, 99, ""); err != nil {
		t.Fatal(err)
	}
	var doc Document
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Seed != 99 || doc.Size != 3 {
		t.Fatalf("document header = size %d seed %d", doc.Size, doc.Seed)
	}
	back, err := doc.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(back.Cells(), g.Cells()) {
		t.Fatalf("heights = %v, want %v", back.Cells(), g.Cells())
	}

	doc.Heights = doc.Heights[:4]
	if _, err := doc.Grid(); err == nil {
		t.Fatal("short document must be rejected")
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("raw")
	if err != nil || f != FormatRaw || f.ContentType() != "application/octet-stream" {
		t.Fatalf("ParseFormat(raw) = %q, %v", f, err)
	}
	if _, err := ParseFormat("tiff"); err == nil {
		t.Fatal("unknown format must fail")
	}
}
