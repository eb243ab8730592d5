package render

import (
	"image/color"
	"math"
)

// fillHeightRGBA converts heights into RGBA pixels using a palette indexed by
// height. When shade is positive, cells facing away from a light in the north
// west are darkened by up to that fraction.
func fillHeightRGBA(buf []byte, heights []int, n int, palette []color.RGBA, shade float64) {
	if len(palette) == 0 {
		clear(buf)
		return
	}
	last := len(palette) - 1
	for i, h := range heights {
		idx := h
		if idx < 0 {
			idx = 0
		}
		if idx > last {
			idx = last
		}
		col := palette[idx]
		f := 1.0
		if shade > 0 {
			f = 1 - shade*(1-hillshade(heights, n, i))
		}
		base := i * 4
		buf[base+0] = scale(col.R, f)
		buf[base+1] = scale(col.G, f)
		buf[base+2] = scale(col.B, f)
		buf[base+3] = col.A
	}
}

// hillshade returns a light intensity in [0, 1] for cell i from its slope
// towards the north west neighbours.
func hillshade(heights []int, n, i int) float64 {
	row, col := i/n, i%n
	if row == 0 || col == 0 {
		return 1
	}
	dx := float64(heights[i] - heights[i-1])
	dz := float64(heights[i] - heights[i-n])
	// Lit faces rise towards the south east.
	light := 1 + (dx+dz)/64
	return math.Max(0, math.Min(1, light))
}

func scale(v uint8, f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, float64(v)*f))))
}

// fillSeaMask tints cells below level with a translucent wash whose opacity
// grows with depth.
func fillSeaMask(buf []byte, heights []int, level int, tint color.RGBA) {
	const maxAlpha = 150.0
	for i, h := range heights {
		base := i * 4
		if h >= level || level <= 0 {
			buf[base+0], buf[base+1], buf[base+2], buf[base+3] = 0, 0, 0, 0
			continue
		}
		depth := float64(level-h) / float64(level)
		buf[base+0] = tint.R
		buf[base+1] = tint.G
		buf[base+2] = tint.B
		buf[base+3] = uint8(math.Round(maxAlpha * math.Sqrt(depth)))
	}
}

// fillContours marks cells where a contour at a multiple of interval passes
// between the cell and its east or south neighbour.
func fillContours(buf []byte, heights []int, n, interval int, line color.RGBA) {
	clear(buf)
	if interval <= 0 {
		return
	}
	for i, h := range heights {
		band := h / interval
		row, col := i/n, i%n
		crossed := col+1 < n && heights[i+1]/interval != band
		crossed = crossed || (row+1 < n && heights[i+n]/interval != band)
		if !crossed {
			continue
		}
		base := i * 4
		buf[base+0] = line.R
		buf[base+1] = line.G
		buf[base+2] = line.B
		buf[base+3] = line.A
	}
}
