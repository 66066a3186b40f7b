package rules

// CellState is the state of a single grid position.
type CellState bool

const (
	Dead  CellState = false
	Alive CellState = true
)

// String returns a human readable cell state
func (s CellState) String() string {
	if s == Alive {
		return "alive"
	}
	return "dead"
}

// Flip returns the opposite state
func (s CellState) Flip() CellState {
	return !s
}

/*
ApplyConwayRules applies Conway's Game of Life rules to determine the next state of a cell.

	alive, neighbors < 2    -> dead (underpopulation)
	alive, neighbors 2 or 3 -> alive (survival)
	alive, neighbors > 3    -> dead (overpopulation)
	dead,  neighbors == 3   -> alive (birth)
	anything else           -> dead
*/
func ApplyConwayRules(neighbors int, state CellState) CellState {
	if state == Alive {
		switch {
		case neighbors < 2:
			return Dead
		case neighbors == 2 || neighbors == 3:
			return Alive
		default:
			return Dead
		}
	}
	if neighbors == 3 {
		return Alive
	}
	return Dead
}
