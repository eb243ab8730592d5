package render

import (
	"image/color"
	"testing"
)

func TestFillHeightRGBAClampsIndices(t *testing.T) {
	palette := []color.RGBA{{R: 1, A: 255}, {R: 2, A: 255}, {R: 3, A: 255}}
	heights := []int{-4, 1, 9, 2}
	buf := make([]byte, 4*len(heights))
	fillHeightRGBA(buf, heights, 2, palette, 0)

	want := []uint8{1, 2, 3, 3}
	for i, w := range want {
		if buf[i*4] != w || buf[i*4+3] != 255 {
			t.Fatalf("pixel %d = %v, want red %d", i, buf[i*4:i*4+4], w)
		}
	}
}

func TestFillHeightRGBAEmptyPalette(t *testing.T) {
	buf := []byte{9, 9, 9, 9}
	fillHeightRGBA(buf, []int{1}, 1, nil, 0)
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d = %d, want cleared", i, b)
		}
	}
}

func TestHillshadeDarkensFacesAwayFromLight(t *testing.T) {
	// Cell 3 drops steeply from its north west neighbours; cell 3 in the
	// second grid climbs towards them.
	falling := []int{200, 200, 200, 0}
	rising := []int{0, 0, 0, 200}
	if hillshade(falling, 2, 3) >= hillshade(rising, 2, 3) {
		t.Fatalf("falling face %v should be darker than rising face %v", hillshade(falling, 2, 3), hillshade(rising, 2, 3))
	}
	if hillshade(falling, 2, 0) != 1 {
		t.Fatal("edge cells are fully lit")
	}
}

func TestFillSeaMask(t *testing.T) {
	heights := []int{0, 50, 100, 200}
	buf := make([]byte, 16)
	fillSeaMask(buf, heights, 100, color.RGBA{B: 200})

	if buf[3] != 150 {
		t.Fatalf("deepest alpha = %d, want 150", buf[3])
	}
	if buf[7] == 0 || buf[7] >= buf[3] {
		t.Fatalf("shallow alpha = %d, should be between 0 and %d", buf[7], buf[3])
	}
	if buf[11] != 0 || buf[15] != 0 {
		t.Fatal("cells at or above sea level must stay clear")
	}
}

func TestFillContours(t *testing.T) {
	// 2x2 grid: a 32-unit contour runs between the columns.
	heights := []int{10, 40, 12, 45}
	buf := make([]byte, 16)
	fillContours(buf, heights, 2, 32, color.RGBA{R: 255, A: 255})

	if buf[3] != 255 || buf[11] != 255 {
		t.Fatal("cells west of the contour must be marked")
	}
	if buf[7] != 0 || buf[15] != 0 {
		t.Fatal("cells without a crossing must stay clear")
	}
}
