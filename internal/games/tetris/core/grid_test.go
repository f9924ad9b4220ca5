package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fillRow sets every column of row y to v except the listed gaps.
func fillRow(g *Grid, y int, v Cell, gaps ...int) {
	skip := make(map[int]bool, len(gaps))
	for _, x := range gaps {
		skip[x] = true
	}
	for x := 0; x < g.W; x++ {
		if skip[x] {
			continue
		}
		g.Set(C(x, y), v)
	}
}

func TestNewGrid(t *testing.T) {
	g := NewGrid(10, 20)

	assert.Equal(t, 10, g.W)
	assert.Equal(t, 20, g.H)
	assert.Len(t, g.Cells, 200)
	assert.Equal(t, 0, g.FilledCount())
}

func TestGridBounds(t *testing.T) {
	g := NewGrid(10, 20)

	tests := []struct {
		name     string
		c        Coord
		expected bool
	}{
		{"origin", C(0, 0), true},
		{"top-right corner", C(9, 19), true},
		{"left of board", C(-1, 5), false},
		{"right of board", C(10, 5), false},
		{"below floor", C(3, -1), false},
		{"above ceiling", C(3, 20), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, g.InBounds(tc.c))
		})
	}
}

func TestGridSetGet(t *testing.T) {
	g := NewGrid(4, 4)

	g.Set(C(1, 2), Normal)
	g.Set(C(3, 0), Garbage)
	g.Set(C(7, 7), Normal) // ignored

	assert.Equal(t, Normal, g.Get(C(1, 2)))
	assert.Equal(t, Garbage, g.Get(C(3, 0)))
	assert.Equal(t, Empty, g.Get(C(0, 0)))
	assert.True(t, g.IsOccupied(C(1, 2)))
	assert.False(t, g.IsOccupied(C(2, 2)))
	assert.Equal(t, 2, g.FilledCount())

	g.ClearAll()
	assert.Equal(t, 0, g.FilledCount())
}

func TestGridGetOutOfBoundsPanics(t *testing.T) {
	g := NewGrid(4, 4)
	assert.Panics(t, func() { g.Get(C(4, 0)) })
	assert.Panics(t, func() { g.IsOccupied(C(0, -1)) })
}

func TestGridCollapseRow(t *testing.T) {
	g := NewGrid(4, 4)
	fillRow(g, 0, Normal)
	g.Set(C(1, 1), Normal)
	g.Set(C(2, 3), Garbage)

	g.CollapseRow(0)

	assert.Equal(t, []Cell{Empty, Normal, Empty, Empty}, g.Row(0))
	assert.Equal(t, []Cell{Empty, Empty, Garbage, Empty}, g.Row(2))
	assert.Equal(t, []Cell{Empty, Empty, Empty, Empty}, g.Row(3))
}

func TestGridShiftUpDiscardsTopRow(t *testing.T) {
	g := NewGrid(4, 3)
	g.Set(C(0, 0), Normal)
	g.Set(C(3, 2), Normal)

	g.ShiftUp()

	assert.Equal(t, []Cell{Empty, Empty, Empty, Empty}, g.Row(0))
	assert.Equal(t, Normal, g.Get(C(0, 1)))
	assert.Equal(t, 1, g.FilledCount(), "top row content must fall off the grid")
}

func TestGridHeightsAndHoles(t *testing.T) {
	g := NewGrid(4, 6)
	// Column 0: solid stack of 2
	g.Set(C(0, 0), Normal)
	g.Set(C(0, 1), Normal)
	// Column 1: overhang at row 3 covering 3 empty cells
	g.Set(C(1, 3), Normal)
	// Column 3: garbage with one hole
	g.Set(C(3, 0), Garbage)
	g.Set(C(3, 2), Garbage)

	assert.Equal(t, []int{2, 4, 0, 3}, g.Heights())
	assert.Equal(t, 4, g.Holes())
}

func TestGridRowPredicates(t *testing.T) {
	g := NewGrid(4, 2)
	fillRow(g, 0, Garbage)
	fillRow(g, 1, Normal)
	g.Set(C(2, 1), Garbage)

	require.True(t, g.RowFull(0))
	require.True(t, g.RowFull(1))
	assert.True(t, g.RowAll(0, Garbage))
	assert.False(t, g.RowAll(1, Garbage))
	assert.True(t, g.RowContains(1, Garbage))
	assert.False(t, g.RowContains(0, Normal))
}

func TestGridCloneEqual(t *testing.T) {
	g := NewGrid(4, 4)
	g.Set(C(1, 1), Normal)

	clone := g.Clone()
	require.True(t, g.Equal(clone))

	clone.Set(C(2, 2), Garbage)
	assert.False(t, g.Equal(clone))
	assert.Equal(t, Empty, g.Get(C(2, 2)))
}

func TestGridString(t *testing.T) {
	g := NewGrid(3, 2)
	g.Set(C(0, 0), Normal)
	g.Set(C(2, 1), Garbage)

	assert.Equal(t, "..x\n#..\n", g.String())
}
