package faultfractal

import (
	"math"
	"testing"
)

func grid(rows ...[]float64) [][]float64 { return rows }

func totalVariation(buf [][]float64) float64 {
	var tv float64
	for i := range buf {
		for j := range buf[i] {
			if j > 0 {
				tv += math.Abs(buf[i][j] - buf[i][j-1])
			}
			if i > 0 {
				tv += math.Abs(buf[i][j] - buf[i-1][j])
			}
		}
	}
	return tv
}

func TestErodeZeroFilterIsIdentity(t *testing.T) {
	buf := grid(
		[]float64{0, 5, 0},
		[]float64{9, 0, 3},
		[]float64{1, 1, 7},
	)
	Erode(buf, 0)
	want := [][]float64{{0, 5, 0}, {9, 0, 3}, {1, 1, 7}}
	for i := range want {
		for j := range want[i] {
			if buf[i][j] != want[i][j] {
				t.Fatalf("cell (%d,%d) = %v, want %v", i, j, buf[i][j], want[i][j])
			}
		}
	}
}

func TestErodeSingleBand(t *testing.T) {
	buf := grid([]float64{0, 10})
	Erode(buf, 0.5)
	// Row pass forward: [0, 5]; backward: [2.5, 5]. Column passes see one cell.
	if buf[0][0] != 2.5 || buf[0][1] != 5 {
		t.Fatalf("eroded band = %v, want [2.5 5]", buf[0])
	}
}

func TestErodeSmoothsStep(t *testing.T) {
	n := 8
	buf := make([][]float64, n)
	for i := range buf {
		buf[i] = make([]float64, n)
		for j := n / 2; j < n; j++ {
			buf[i][j] = 100
		}
	}
	before := totalVariation(buf)
	Erode(buf, 0.4)
	after := totalVariation(buf)
	if after >= before {
		t.Fatalf("total variation %v -> %v, erosion should reduce it", before, after)
	}
	for i := range buf {
		for j := range buf[i] {
			if buf[i][j] < 0 || buf[i][j] > 100 {
				t.Fatalf("cell (%d,%d) = %v escaped the input range", i, j, buf[i][j])
			}
		}
	}
}

func TestErodeDeterministic(t *testing.T) {
	mk := func() [][]float64 {
		return grid([]float64{3, 1, 4}, []float64{1, 5, 9}, []float64{2, 6, 5})
	}
	a, b := mk(), mk()
	Erode(a, 0.3)
	Erode(b, 0.3)
	for i := range a {
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				t.Fatalf("cell (%d,%d) differs: %v vs %v", i, j, a[i][j], b[i][j])
			}
		}
	}
}

func TestNormalize(t *testing.T) {
	buf := grid([]float64{2, 4}, []float64{6, 10})
	Normalize(buf, 255)
	want := [][]float64{{0, 63.75}, {127.5, 255}}
	for i := range want {
		for j := range want[i] {
			if buf[i][j] != want[i][j] {
				t.Fatalf("cell (%d,%d) = %v, want %v", i, j, buf[i][j], want[i][j])
			}
		}
	}
}

func TestNormalizeFlatBuffer(t *testing.T) {
	buf := grid([]float64{7, 7}, []float64{7, 7})
	Normalize(buf, 255)
	for i := range buf {
		for j := range buf[i] {
			if buf[i][j] != 0 {
				t.Fatalf("flat buffer cell (%d,%d) = %v, want 0", i, j, buf[i][j])
			}
		}
	}
}
