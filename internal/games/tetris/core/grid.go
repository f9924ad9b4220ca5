package core

import (
	"fmt"
	"strings"
)

// Grid represents the playfield as a fixed rectangular array of cells.
// Cells are stored in row-major order starting at the bottom row:
// index = y*W + x.
type Grid struct {
	W     int    // Width of the grid
	H     int    // Height of the grid
	Cells []Cell // Flat array of cells, length W*H
}

// NewGrid creates an empty grid with the given dimensions.
func NewGrid(w, h int) *Grid {
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// index converts a coordinate to a flat array index.
func (g *Grid) index(c Coord) int {
	return c.Y*g.W + c.X
}

// InBounds returns true if the coordinate lies in [0,W)x[0,H).
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the cell at the given coordinate.
// Callers must check InBounds first; out-of-bounds access panics.
func (g *Grid) Get(c Coord) Cell {
	if !g.InBounds(c) {
		panic(fmt.Sprintf("grid: Get %s out of bounds %dx%d", c, g.W, g.H))
	}
	return g.Cells[g.index(c)]
}

// Set stores a cell value. Out-of-bounds coordinates are silently ignored.
func (g *Grid) Set(c Coord, v Cell) {
	if g.InBounds(c) {
		g.Cells[g.index(c)] = v
	}
}

// IsOccupied reports whether the cell holds a tile.
// Same bounds contract as Get.
func (g *Grid) IsOccupied(c Coord) bool {
	return g.Get(c).Occupied()
}

// ClearAll empties every cell.
func (g *Grid) ClearAll() {
	for i := range g.Cells {
		g.Cells[i] = Empty
	}
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, cell := range g.Cells {
		if cell != other.Cells[i] {
			return false
		}
	}
	return true
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []Cell {
	row := make([]Cell, g.W)
	copy(row, g.Cells[y*g.W:(y+1)*g.W])
	return row
}

// RowFull returns true if every column of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	for x := 0; x < g.W; x++ {
		if !g.Cells[y*g.W+x].Occupied() {
			return false
		}
	}
	return true
}

// RowContains returns true if at least one cell of row y equals v.
func (g *Grid) RowContains(y int, v Cell) bool {
	for x := 0; x < g.W; x++ {
		if g.Cells[y*g.W+x] == v {
			return true
		}
	}
	return false
}

// RowAll returns true if every cell of row y equals v.
func (g *Grid) RowAll(y int, v Cell) bool {
	for x := 0; x < g.W; x++ {
		if g.Cells[y*g.W+x] != v {
			return false
		}
	}
	return true
}

// CollapseRow removes row y: every row above moves down by one
// (row r receives row r+1) and the top row becomes empty.
func (g *Grid) CollapseRow(y int) {
	copy(g.Cells[y*g.W:], g.Cells[(y+1)*g.W:])
	top := (g.H - 1) * g.W
	for i := top; i < top+g.W; i++ {
		g.Cells[i] = Empty
	}
}

// ShiftUp moves every row up by one and empties the bottom row.
// The top row falls off the grid and is discarded.
func (g *Grid) ShiftUp() {
	copy(g.Cells[g.W:], g.Cells[:len(g.Cells)-g.W])
	for x := 0; x < g.W; x++ {
		g.Cells[x] = Empty
	}
}

// ColumnHeight returns the number of rows from the floor up to and including
// the topmost occupied cell of column x, or 0 for an empty column.
func (g *Grid) ColumnHeight(x int) int {
	for y := g.H - 1; y >= 0; y-- {
		if g.Cells[y*g.W+x].Occupied() {
			return y + 1
		}
	}
	return 0
}

// Heights returns ColumnHeight for every column.
func (g *Grid) Heights() []int {
	heights := make([]int, g.W)
	for x := range heights {
		heights[x] = g.ColumnHeight(x)
	}
	return heights
}

// Holes counts empty cells that have at least one occupied cell above them
// in the same column.
func (g *Grid) Holes() int {
	holes := 0
	for x := 0; x < g.W; x++ {
		covered := false
		for y := g.H - 1; y >= 0; y-- {
			if g.Cells[y*g.W+x].Occupied() {
				covered = true
			} else if covered {
				holes++
			}
		}
	}
	return holes
}

// FilledCount returns the number of occupied cells.
func (g *Grid) FilledCount() int {
	count := 0
	for _, cell := range g.Cells {
		if cell.Occupied() {
			count++
		}
	}
	return count
}

// String renders the grid top row first for debugging.
// '.' empty, '#' normal, 'x' garbage.
func (g *Grid) String() string {
	var sb strings.Builder
	for y := g.H - 1; y >= 0; y-- {
		for x := 0; x < g.W; x++ {
			switch g.Cells[y*g.W+x] {
			case Normal:
				sb.WriteByte('#')
			case Garbage:
				sb.WriteByte('x')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
