package core

// Read-only views over the board. None of these mutate state and all are
// safe before the first spawn and after game over.

// GridState returns the board as a flat row-major slice starting at the
// bottom row. Values: 0 empty, 1 normal, 2 garbage, 3 active piece.
func (b *Board) GridState() []int {
	state := make([]int, len(b.grid.Cells))
	for i, cell := range b.grid.Cells {
		switch cell {
		case Normal:
			state[i] = StateNormal
		case Garbage:
			state[i] = StateGarbage
		}
	}
	if b.ctrl.Falling() {
		for _, c := range b.ctrl.piece.Cells() {
			if b.grid.InBounds(c) {
				state[b.grid.index(c)] = StateActive
			}
		}
	}
	return state
}

// ColumnHeights returns the stack height of every column, ignoring the
// falling piece.
func (b *Board) ColumnHeights() []int {
	return b.grid.Heights()
}

// HoleCount returns the number of covered empty cells.
func (b *Board) HoleCount() int {
	return b.grid.Holes()
}

// Contour returns the height differences between adjacent columns:
// entry i is height(i+1) - height(i).
func (b *Board) Contour() []int {
	heights := b.grid.Heights()
	if len(heights) < 2 {
		return []int{}
	}
	contour := make([]int, len(heights)-1)
	for i := range contour {
		contour[i] = heights[i+1] - heights[i]
	}
	return contour
}

// Bumpiness returns the sum of absolute adjacent height differences.
func (b *Board) Bumpiness() int {
	sum := 0
	for _, d := range b.Contour() {
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// MaxHeight returns the tallest column height.
func (b *Board) MaxHeight() int {
	maxH := 0
	for _, h := range b.grid.Heights() {
		if h > maxH {
			maxH = h
		}
	}
	return maxH
}

// CurrentPieceID returns the id of the falling piece (I=0 ... L=6), or -1
// when there is none.
func (b *Board) CurrentPieceID() int {
	if !b.ctrl.Falling() {
		return -1
	}
	return int(b.ctrl.piece.Kind)
}

// CurrentPieceSymbol returns the letter of the falling piece, or 0 when
// there is none.
func (b *Board) CurrentPieceSymbol() rune {
	if !b.ctrl.Falling() {
		return 0
	}
	return b.ctrl.piece.Kind.Symbol()
}
