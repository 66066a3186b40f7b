package engine

import "github.com/pkg/errors"

var (
	// ErrInvalidCoordinate is returned when a position lies outside the current grid
	ErrInvalidCoordinate = errors.New("coordinate outside grid")
	// ErrInvalidDimension is returned when a grid size is not positive
	ErrInvalidDimension = errors.New("grid dimensions must be positive")
	// ErrInvalidInterval is returned when a tick interval is not positive
	ErrInvalidInterval = errors.New("tick interval must be positive")
)
