package model

import "github.com/sheikhrachel/go-gol-engine/rules"

// Pattern is a set of (column, row) offsets of living cells
type Pattern [][2]int

var (
	// Blinker is a vertical period-2 oscillator
	Blinker = Pattern{{0, 0}, {0, 1}, {0, 2}}
	// Block is a 2x2 still life
	Block = Pattern{{0, 0}, {1, 0}, {0, 1}, {1, 1}}
	// Glider travels one cell diagonally every 4 generations
	Glider = Pattern{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}}
)

// Stamp marks the pattern's cells alive with its origin at (column, row).
// Cells that land outside the grid are dropped.
func (g *Grid) Stamp(p Pattern, column, row int) {
	for _, cell := range p {
		g.Set(column+cell[0], row+cell[1], rules.Alive)
	}
}
