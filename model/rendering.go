package model

import (
	"bufio"
	"io"

	"github.com/sheikhrachel/go-gol-engine/rules"
)

const (
	gridPosBlock = "██"
	gridPosEmpty = "  "

	ansiClearScreen = "\033[H\033[2J"
)

// TerminalRenderer draws grids as text, two characters per cell
type TerminalRenderer struct {
	Out io.Writer
}

// Display renders the grid row by row
func (r *TerminalRenderer) Display(g *Grid) error {
	w := bufio.NewWriter(r.Out)
	for row := range g.rows {
		for column := range g.columns {
			if g.Get(column, row) == rules.Alive {
				w.WriteString(gridPosBlock)
			} else {
				w.WriteString(gridPosEmpty)
			}
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}

// Clear clears the terminal screen
func (r *TerminalRenderer) Clear() error {
	_, err := io.WriteString(r.Out, ansiClearScreen)
	return err
}
