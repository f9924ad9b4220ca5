package core

import "math"

// Kind identifies one of the seven tetrominoes.
type Kind uint8

const (
	I Kind = iota
	O
	T
	S
	Z
	J
	L
)

// KindCount is the number of distinct tetrominoes.
const KindCount = 7

// Kinds lists every tetromino in id order.
var Kinds = [KindCount]Kind{I, O, T, S, Z, J, L}

// String returns the single-letter name of the kind.
func (k Kind) String() string {
	if int(k) >= KindCount {
		return "?"
	}
	return string(k.Symbol())
}

// Symbol returns the letter used for the kind on the wire.
func (k Kind) Symbol() rune {
	switch k {
	case I:
		return 'I'
	case O:
		return 'O'
	case T:
		return 'T'
	case S:
		return 'S'
	case Z:
		return 'Z'
	case J:
		return 'J'
	case L:
		return 'L'
	default:
		return '?'
	}
}

// ParseKind converts a letter back into a Kind.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if s == k.String() {
			return k, true
		}
	}
	return 0, false
}

// Shape holds the static data for one tetromino: its orientation-0 cell
// offsets and its wall-kick table. Kick rows are indexed by
// orientation*2 - (1 if rotating counter-clockwise).
type Shape struct {
	Cells []Coord
	Kicks [][]Coord
}

// Table dimensions required by the rotation system.
const (
	shapeCells   = 4
	kickRows     = 8
	kickTests    = 5
	orientations = 4
	rotationCos  = 0
	rotationSin  = 1
)

// rotationMatrix is a quarter turn: x' = y*dir, y' = -x*dir.
var rotationMatrix = [4]float64{rotationCos, rotationSin, -rotationSin, rotationCos}

var kicksI = [][]Coord{
	{C(0, 0), C(-2, 0), C(1, 0), C(-2, -1), C(1, 2)},
	{C(0, 0), C(2, 0), C(-1, 0), C(2, 1), C(-1, -2)},
	{C(0, 0), C(-1, 0), C(2, 0), C(-1, 2), C(2, -1)},
	{C(0, 0), C(1, 0), C(-2, 0), C(1, -2), C(-2, 1)},
	{C(0, 0), C(2, 0), C(-1, 0), C(2, 1), C(-1, -2)},
	{C(0, 0), C(-2, 0), C(1, 0), C(-2, -1), C(1, 2)},
	{C(0, 0), C(1, 0), C(-2, 0), C(1, -2), C(-2, 1)},
	{C(0, 0), C(-1, 0), C(2, 0), C(-1, 2), C(2, -1)},
}

var kicksJLOSTZ = [][]Coord{
	{C(0, 0), C(-1, 0), C(-1, 1), C(0, -2), C(-1, -2)},
	{C(0, 0), C(1, 0), C(1, -1), C(0, 2), C(1, 2)},
	{C(0, 0), C(1, 0), C(1, -1), C(0, 2), C(1, 2)},
	{C(0, 0), C(-1, 0), C(-1, 1), C(0, -2), C(-1, -2)},
	{C(0, 0), C(1, 0), C(1, 1), C(0, -2), C(1, -2)},
	{C(0, 0), C(-1, 0), C(-1, -1), C(0, 2), C(-1, 2)},
	{C(0, 0), C(-1, 0), C(-1, -1), C(0, 2), C(-1, 2)},
	{C(0, 0), C(1, 0), C(1, 1), C(0, -2), C(1, -2)},
}

// Catalog is the immutable set of tetromino definitions.
type Catalog struct {
	shapes map[Kind]Shape
}

// DefaultCatalog returns the standard seven pieces with their kick tables.
func DefaultCatalog() *Catalog {
	return NewCatalog(map[Kind]Shape{
		I: {Cells: []Coord{C(-1, 1), C(0, 1), C(1, 1), C(2, 1)}, Kicks: kicksI},
		O: {Cells: []Coord{C(0, 1), C(1, 1), C(0, 0), C(1, 0)}, Kicks: kicksJLOSTZ},
		T: {Cells: []Coord{C(0, 1), C(-1, 0), C(0, 0), C(1, 0)}, Kicks: kicksJLOSTZ},
		S: {Cells: []Coord{C(0, 1), C(1, 1), C(-1, 0), C(0, 0)}, Kicks: kicksJLOSTZ},
		Z: {Cells: []Coord{C(-1, 1), C(0, 1), C(0, 0), C(1, 0)}, Kicks: kicksJLOSTZ},
		J: {Cells: []Coord{C(-1, 1), C(-1, 0), C(0, 0), C(1, 0)}, Kicks: kicksJLOSTZ},
		L: {Cells: []Coord{C(1, 1), C(-1, 0), C(0, 0), C(1, 0)}, Kicks: kicksJLOSTZ},
	})
}

// NewCatalog builds a catalog from explicit shape data.
// Call Validate before using a catalog built from untrusted data.
func NewCatalog(shapes map[Kind]Shape) *Catalog {
	return &Catalog{shapes: shapes}
}

// Cells returns a copy of the orientation-0 template for a kind.
func (c *Catalog) Cells(k Kind) []Coord {
	src := c.shapes[k].Cells
	cells := make([]Coord, len(src))
	copy(cells, src)
	return cells
}

// Rotate applies a quarter turn in direction dir (+1 clockwise, -1
// counter-clockwise) to the given offsets and returns new offsets.
// I and O rotate around a point offset by half a cell and round up;
// the other pieces rotate around a cell centre.
func (c *Catalog) Rotate(k Kind, cells []Coord, dir int) []Coord {
	d := float64(dir)
	m := rotationMatrix
	out := make([]Coord, len(cells))

	for i, cell := range cells {
		x := float64(cell.X)
		y := float64(cell.Y)

		switch k {
		case I, O:
			x -= 0.5
			y -= 0.5
			out[i] = C(
				int(math.Ceil(x*m[0]*d+y*m[1]*d)),
				int(math.Ceil(x*m[2]*d+y*m[3]*d)),
			)
		default:
			out[i] = C(
				int(math.Round(x*m[0]*d+y*m[1]*d)),
				int(math.Round(x*m[2]*d+y*m[3]*d)),
			)
		}
	}

	return out
}

// WallKickIndex returns the kick-table row for a rotation that starts at
// the given orientation, wrapped into the table range.
func (c *Catalog) WallKickIndex(k Kind, orientation, dir int) int {
	idx := orientation * 2
	if dir < 0 {
		idx--
	}
	return wrap(idx, 0, len(c.shapes[k].Kicks))
}

// WallKicks returns the ordered translations to try after rotating a piece
// that started at the given orientation.
func (c *Catalog) WallKicks(k Kind, orientation, dir int) []Coord {
	rows := c.shapes[k].Kicks
	if len(rows) == 0 {
		return nil
	}
	return rows[c.WallKickIndex(k, orientation, dir)]
}

// Validate checks that every kind is defined with four cells and a full
// 8x5 kick table.
func (c *Catalog) Validate() error {
	for _, k := range Kinds {
		shape, ok := c.shapes[k]
		if !ok {
			return ValidationError{
				Code:    "INVALID_SHAPE",
				Message: "missing definition for piece " + k.String(),
			}
		}
		if len(shape.Cells) != shapeCells {
			return ValidationError{
				Code:    "INVALID_SHAPE",
				Message: k.String() + " piece must have 4 cells",
			}
		}
		if len(shape.Kicks) != kickRows {
			return ValidationError{
				Code:    "INVALID_KICKS",
				Message: k.String() + " kick table must have 8 rows",
			}
		}
		for _, row := range shape.Kicks {
			if len(row) != kickTests {
				return ValidationError{
					Code:    "INVALID_KICKS",
					Message: k.String() + " kick table rows must have 5 tests",
				}
			}
		}
	}
	return nil
}

// wrap maps input into [min, max) with modular arithmetic.
func wrap(input, min, max int) int {
	if max <= min {
		return min
	}
	span := max - min
	r := (input - min) % span
	if r < 0 {
		r += span
	}
	return min + r
}
