package model

import (
	"crypto/md5"
	"fmt"
	"math/rand/v2"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/sheikhrachel/go-gol-engine/rules"
)

// AliveOneIn is the inverse of the probability that Randomize marks a cell alive.
const AliveOneIn = 3

// neighborOffsets lists the (column, row) deltas of the 8 surrounding cells
var neighborOffsets = [8][2]int{
	{-1, 0},
	{-1, 1},
	{0, 1},
	{1, 1},
	{1, 0},
	{1, -1},
	{0, -1},
	{-1, -1},
}

// Grid is a fixed size board addressed by (column, row).
// Positions outside the board are treated as permanently dead.
type Grid struct {
	columns int
	rows    int
	cells   [][]rules.CellState // cells[row][column]
}

// Initialize creates a grid with the specified dimensions and every cell dead
func Initialize(columns, rows int) *Grid {
	g := &Grid{}
	g.Reset(columns, rows)
	return g
}

// GetColumns returns the width of the grid
func (g *Grid) GetColumns() int {
	return g.columns
}

// GetRows returns the height of the grid
func (g *Grid) GetRows() int {
	return g.rows
}

// Reset resizes the grid to new dimensions and kills every cell
func (g *Grid) Reset(columns, rows int) {
	g.columns = columns
	g.rows = rows

	// Resize cells if needed
	if len(g.cells) != rows {
		g.cells = make([][]rules.CellState, rows)
	}
	for i := range g.cells {
		if len(g.cells[i]) != columns {
			g.cells[i] = make([]rules.CellState, columns)
		} else {
			clear(g.cells[i])
		}
	}
}

// Clear kills all cells
func (g *Grid) Clear() {
	for row := range g.rows {
		clear(g.cells[row])
	}
}

// InBounds reports whether (column, row) addresses a cell of the grid
func (g *Grid) InBounds(column, row int) bool {
	return column >= 0 && column < g.columns && row >= 0 && row < g.rows
}

// Set sets the state of a cell, ignoring positions outside the grid
func (g *Grid) Set(column, row int, state rules.CellState) {
	if g.InBounds(column, row) {
		g.cells[row][column] = state
	}
}

// Get returns the state of a cell; positions outside the grid are dead
func (g *Grid) Get(column, row int) rules.CellState {
	if !g.InBounds(column, row) {
		return rules.Dead
	}
	return g.cells[row][column]
}

// Toggle flips a single cell and reports whether the position was on the grid
func (g *Grid) Toggle(column, row int) bool {
	if !g.InBounds(column, row) {
		return false
	}
	g.cells[row][column] = g.cells[row][column].Flip()
	return true
}

// CountNeighbors counts living neighbors, skipping offsets that fall off the grid
func (g *Grid) CountNeighbors(column, row int) int {
	count := 0
	for _, offset := range neighborOffsets {
		c, r := column+offset[0], row+offset[1]
		if !g.InBounds(c, r) {
			continue
		}
		if g.cells[r][c] == rules.Alive {
			count++
		}
	}
	return count
}

// NextCellState returns the state the cell at (column, row) takes in the next generation.
// It only reads g.
func NextCellState(g *Grid, column, row int) rules.CellState {
	return rules.ApplyConwayRules(g.CountNeighbors(column, row), g.Get(column, row))
}

// NextGeneration computes the whole next generation into a fresh grid.
// g itself is never modified, so no cell sees another cell's updated state.
func (g *Grid) NextGeneration(pool *GridPool) *Grid {
	next := g.blank(pool)
	for row := range g.rows {
		for column := range g.columns {
			next.cells[row][column] = NextCellState(g, column, row)
		}
	}
	return next
}

// NextGenerationParallel computes the next generation by splitting rows into bands
func (g *Grid) NextGenerationParallel(pool *GridPool) *Grid {
	next := g.blank(pool)

	var (
		eg            errgroup.Group
		numWorkers    = runtime.NumCPU()
		rowsPerWorker = (g.rows + numWorkers - 1) / numWorkers // Ceiling division
	)

	for i := range numWorkers {
		var (
			startRow = i * rowsPerWorker
			endRow   = min(startRow+rowsPerWorker, g.rows)
		)
		if startRow >= g.rows {
			break
		}

		eg.Go(func() error {
			for row := startRow; row < endRow; row++ {
				for column := range g.columns {
					next.cells[row][column] = NextCellState(g, column, row)
				}
			}
			return nil
		})
	}

	// workers never fail
	_ = eg.Wait()

	return next
}

func (g *Grid) blank(pool *GridPool) *Grid {
	if pool != nil {
		return pool.Get(g.columns, g.rows)
	}
	return Initialize(g.columns, g.rows)
}

// Clone returns a deep copy of the grid
func (g *Grid) Clone() *Grid {
	c := Initialize(g.columns, g.rows)
	for row := range g.rows {
		copy(c.cells[row], g.cells[row])
	}
	return c
}

// Equal reports whether two grids have the same shape and cells
func (g *Grid) Equal(other *Grid) bool {
	if other == nil || g.columns != other.columns || g.rows != other.rows {
		return false
	}
	for row := range g.rows {
		for column := range g.columns {
			if g.cells[row][column] != other.cells[row][column] {
				return false
			}
		}
	}
	return true
}

// CountLivingCells returns the total number of living cells
func (g *Grid) CountLivingCells() (count int) {
	for row := range g.rows {
		for column := range g.columns {
			if g.cells[row][column] == rules.Alive {
				count++
			}
		}
	}
	return
}

// GetGridHash returns an MD5 hash of the current grid state
func (g *Grid) GetGridHash() string {
	h := md5.New()
	fmt.Fprintf(h, "%dx%d:", g.columns, g.rows)
	for row := range g.rows {
		for column := range g.columns {
			if g.cells[row][column] == rules.Alive {
				h.Write([]byte{1})
			} else {
				h.Write([]byte{0})
			}
		}
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}

// Randomize independently marks each cell alive with probability 1/AliveOneIn
func (g *Grid) Randomize(r *rand.Rand) {
	for row := range g.rows {
		for column := range g.columns {
			g.cells[row][column] = rules.CellState(r.IntN(AliveOneIn) == 0)
		}
	}
}
