package core

// Piece is the falling tetromino. Its absolute cells are always derived
// from the anchor and the current offsets, never stored separately.
type Piece struct {
	Kind        Kind
	Orientation int
	Anchor      Coord
	offsets     []Coord
}

// Offsets returns a copy of the cell offsets relative to the anchor.
func (p Piece) Offsets() []Coord {
	out := make([]Coord, len(p.offsets))
	copy(out, p.offsets)
	return out
}

// Cells returns the absolute board coordinates of the piece.
func (p Piece) Cells() []Coord {
	return p.cellsAt(p.Anchor)
}

func (p Piece) cellsAt(anchor Coord) []Coord {
	cells := make([]Coord, len(p.offsets))
	for i, off := range p.offsets {
		cells[i] = off.AddCoord(anchor)
	}
	return cells
}

// PieceState is the per-piece lifecycle.
type PieceState int

const (
	PieceNone PieceState = iota
	PieceFalling
	PieceLocked
)

// String returns the string representation of a piece state.
func (s PieceState) String() string {
	switch s {
	case PieceNone:
		return "None"
	case PieceFalling:
		return "Falling"
	case PieceLocked:
		return "Locked"
	default:
		return "Unknown"
	}
}

// Locker fixes the active piece into the grid once it can no longer fall.
type Locker interface {
	LockActivePiece()
}

// RewardSink accumulates reward produced during a tick.
type RewardSink interface {
	AddReward(v float64)
}

// Controller moves and rotates the active piece against a grid.
type Controller struct {
	grid    *Grid
	catalog *Catalog
	locker  Locker
	rewards RewardSink
	shaping Shaping

	piece Piece
	state PieceState
}

// NewController creates a controller bound to the given collaborators.
func NewController(grid *Grid, catalog *Catalog, locker Locker, rewards RewardSink, shaping Shaping) *Controller {
	return &Controller{
		grid:    grid,
		catalog: catalog,
		locker:  locker,
		rewards: rewards,
		shaping: shaping,
	}
}

// Initialize places a fresh piece at the anchor in orientation 0.
// Placement is not validated; the caller decides what an overlap means.
func (c *Controller) Initialize(kind Kind, anchor Coord) {
	c.piece = Piece{
		Kind:        kind,
		Orientation: 0,
		Anchor:      anchor,
		offsets:     c.catalog.Cells(kind),
	}
	c.state = PieceFalling
}

// Piece returns a copy of the current piece.
func (c *Controller) Piece() Piece {
	p := c.piece
	p.offsets = c.piece.Offsets()
	return p
}

// State returns the lifecycle state of the current piece.
func (c *Controller) State() PieceState {
	return c.state
}

// Falling returns true while the piece can still be moved.
func (c *Controller) Falling() bool {
	return c.state == PieceFalling
}

// Fits reports whether the current piece fits at its own anchor.
func (c *Controller) Fits() bool {
	return c.fitsAt(c.piece.offsets, c.piece.Anchor)
}

// fitsAt reports whether offsets placed at anchor are in bounds and free.
func (c *Controller) fitsAt(offsets []Coord, anchor Coord) bool {
	for _, off := range offsets {
		pos := off.AddCoord(anchor)
		if !c.grid.InBounds(pos) {
			return false
		}
		if c.grid.IsOccupied(pos) {
			return false
		}
	}
	return true
}

// shift translates the piece if the destination is free.
func (c *Controller) shift(dx, dy int) bool {
	target := c.piece.Anchor.Add(dx, dy)
	if !c.fitsAt(c.piece.offsets, target) {
		return false
	}
	c.piece.Anchor = target
	return true
}

// Move translates the piece by (dx, dy). On failure nothing changes.
func (c *Controller) Move(dx, dy int) bool {
	if c.state != PieceFalling {
		return false
	}
	if !c.shift(dx, dy) {
		return false
	}
	if dx != 0 && c.shaping.Move != 0 {
		c.rewards.AddReward(c.shaping.Move)
	}
	return true
}

// Rotate turns the piece a quarter turn (dir > 0 clockwise, dir < 0
// counter-clockwise), trying each wall kick in order. If no kick fits the
// piece is restored exactly.
func (c *Controller) Rotate(dir int) bool {
	if c.state != PieceFalling || dir == 0 {
		return false
	}
	if dir > 0 {
		dir = 1
	} else {
		dir = -1
	}

	original := c.piece

	c.piece.Orientation = wrap(original.Orientation+dir, 0, orientations)
	c.piece.offsets = c.catalog.Rotate(original.Kind, original.offsets, dir)

	for _, kick := range c.catalog.WallKicks(original.Kind, original.Orientation, dir) {
		if c.shift(kick.X, kick.Y) {
			if c.shaping.Rotate != 0 {
				c.rewards.AddReward(c.shaping.Rotate)
			}
			return true
		}
	}

	c.piece = original
	return false
}

// StepGravity moves the piece down one row. If it cannot move it is locked
// and false is returned.
func (c *Controller) StepGravity() bool {
	if c.state != PieceFalling {
		return false
	}
	if c.shift(0, -1) {
		return true
	}
	c.lock()
	return false
}

// HardDrop drops the piece as far as it goes and locks it.
// Returns the number of rows travelled.
func (c *Controller) HardDrop() int {
	if c.state != PieceFalling {
		return 0
	}
	distance := 0
	for c.shift(0, -1) {
		distance++
	}
	if distance > 0 && c.shaping.HardDropPerRow != 0 {
		c.rewards.AddReward(c.shaping.HardDropPerRow * float64(distance))
	}
	c.lock()
	return distance
}

// GhostAnchor returns the anchor the piece would land at after a hard drop.
func (c *Controller) GhostAnchor() Coord {
	anchor := c.piece.Anchor
	for c.fitsAt(c.piece.offsets, anchor.Add(0, -1)) {
		anchor = anchor.Add(0, -1)
	}
	return anchor
}

func (c *Controller) lock() {
	c.state = PieceLocked
	c.locker.LockActivePiece()
}

// discard drops the current piece without locking it.
func (c *Controller) discard() {
	c.piece = Piece{}
	c.state = PieceNone
}
