package faultfractal

import "math"

// NormalizeRange is the height given to the tallest point of a grid.
const NormalizeRange = 255.0

// Erode smooths buf in place with an FIR filter run across every row in both
// directions and then down every column in both directions. Each element
// becomes filter*prev + (1-filter)*self, where prev is the already filtered
// element before it. filter 0 leaves buf untouched.
func Erode(buf [][]float64, filter float64) {
	if filter == 0 {
		return
	}
	n := len(buf)
	for i := 0; i < n; i++ {
		row := buf[i]
		filterBand(len(row), func(k int) *float64 { return &row[k] }, filter)
		filterBand(len(row), func(k int) *float64 { return &row[len(row)-1-k] }, filter)
	}
	if n == 0 {
		return
	}
	for j := 0; j < len(buf[0]); j++ {
		filterBand(n, func(k int) *float64 { return &buf[k][j] }, filter)
		filterBand(n, func(k int) *float64 { return &buf[n-1-k][j] }, filter)
	}
}

func filterBand(count int, at func(int) *float64, filter float64) {
	if count == 0 {
		return
	}
	v := *at(0)
	for k := 1; k < count; k++ {
		p := at(k)
		*p = filter*v + (1-filter)*(*p)
		v = *p
	}
}

// Normalize linearly rescales buf so its lowest value becomes 0 and its
// highest becomes top. A flat buffer becomes all zeros.
func Normalize(buf [][]float64, top float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range buf {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	span := hi - lo
	for _, row := range buf {
		for k, v := range row {
			if span <= 0 {
				row[k] = 0
				continue
			}
			row[k] = (v - lo) / span * top
		}
	}
}
