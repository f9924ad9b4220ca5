// Package core provides the simulation core for the Tetris training environment.
// This package is UI-agnostic and deterministic for a given seed: every
// mutation is a synchronous call and no goroutines or timers are started.
//
// Coordinates are zero-based with the origin at the bottom-left cell of the
// board. X grows to the right and Y grows upward, so row 0 is the floor.
package core

import "fmt"

// Coord represents a cell position or an offset on the board.
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// AddCoord returns the sum of two coordinates.
func (c Coord) AddCoord(other Coord) Coord {
	return Coord{X: c.X + other.X, Y: c.Y + other.Y}
}

// Cell is the tile identity stored at a grid coordinate.
type Cell uint8

const (
	Empty Cell = iota
	Normal
	Garbage
)

// String returns the string representation of a cell value.
func (c Cell) String() string {
	switch c {
	case Empty:
		return "Empty"
	case Normal:
		return "Normal"
	case Garbage:
		return "Garbage"
	default:
		return "Unknown"
	}
}

// Occupied returns true for any non-empty cell.
func (c Cell) Occupied() bool {
	return c != Empty
}

// Grid state codes used by Board.GridState.
const (
	StateEmpty   = 0
	StateNormal  = 1
	StateGarbage = 2
	StateActive  = 3
)
