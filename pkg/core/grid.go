package core

// HeightGrid stores a square grid of integer heights in row-major order.
type HeightGrid struct {
	N    int
	data []int
}

// NewHeightGrid allocates a zeroed n×n grid.
func NewHeightGrid(n int) *HeightGrid {
	if n <= 0 {
		n = 1
	}
	return &HeightGrid{N: n, data: make([]int, n*n)}
}

// Cells exposes the backing slice so callers can read values directly.
// Index with Index(row, col).
func (g *HeightGrid) Cells() []int { return g.data }

// Index returns the linear slice index for (row, col).
func (g *HeightGrid) Index(row, col int) int { return row*g.N + col }

// At returns the height at (row, col).
func (g *HeightGrid) At(row, col int) int { return g.data[row*g.N+col] }

// Set writes the height at (row, col).
func (g *HeightGrid) Set(row, col, h int) { g.data[row*g.N+col] = h }


// MinMax returns the lowest and highest heights in the grid.
func (g *HeightGrid) MinMax() (lo, hi int) {
	if len(g.data) == 0 {
		return 0, 0
	}
	lo, hi = g.data[0], g.data[0]
	for _, h := range g.data[1:] {
		if h < lo {
			lo = h
		}
		if h > hi {
			hi = h
		}
	}
	return lo, hi
}
