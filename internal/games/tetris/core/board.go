package core

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Observer receives a snapshot after every lock and every episode reset.
type Observer interface {
	Observe(s Snapshot)
}

// LockedPiece records where the most recent piece came to rest.
type LockedPiece struct {
	Kind   Kind
	Anchor Coord
	Cells  []Coord
}

// Board is the game-state machine for one episode controller. It owns the
// grid and the piece controller and is not safe for concurrent use.
type Board struct {
	cfg       Config
	grid      *Grid
	catalog   *Catalog
	ctrl      *Controller
	evaluator RewardEvaluator
	source    PieceSource
	rng       *rand.Rand
	logger    *log.Logger
	observer  Observer

	normalLines  int
	garbageLines int
	piecesPlaced int
	gameOver     bool
	reward       float64
	lastLocked   *LockedPiece
	lastReward   float64 // most recent placement reward, for diagnostics

	gravityElapsed time.Duration
}

// Option configures a Board at construction.
type Option func(*Board)

// WithCatalog replaces the default tetromino catalog.
func WithCatalog(c *Catalog) Option {
	return func(b *Board) { b.catalog = c }
}

// WithPieceSource replaces the bag or uniform randomizer.
func WithPieceSource(src PieceSource) Option {
	return func(b *Board) { b.source = src }
}

// WithRand sets the random source used for garbage gaps and piece draws.
func WithRand(rng *rand.Rand) Option {
	return func(b *Board) { b.rng = rng }
}

// WithLogger sets the logger. Boards log nothing by default.
func WithLogger(l *log.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// WithObserver registers a snapshot observer.
func WithObserver(o Observer) Option {
	return func(b *Board) { b.observer = o }
}

// NewBoard creates a board. It refuses invalid configuration or catalog
// data. The board is empty with no active piece until ResetForEpisode.
func NewBoard(cfg Config, opts ...Option) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	b := &Board{
		cfg:       cfg,
		grid:      NewGrid(cfg.Width, cfg.Height),
		evaluator: NewRewardEvaluator(cfg.Rewards),
	}
	for _, opt := range opts {
		opt(b)
	}

	if b.catalog == nil {
		b.catalog = DefaultCatalog()
	}
	if err := b.catalog.Validate(); err != nil {
		return nil, err
	}
	if b.rng == nil {
		b.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if b.source == nil {
		if cfg.SevenBag {
			b.source = NewBag(b.rng)
		} else {
			b.source = NewUniformSource(b.rng)
		}
	}
	if b.logger == nil {
		b.logger = log.New(io.Discard)
	}

	b.ctrl = NewController(b.grid, b.catalog, b, b, cfg.Shaping)
	return b, nil
}

// Seed reseeds the board's random source.
func (b *Board) Seed(seed int64) {
	b.rng.Seed(seed)
}

// ResetForEpisode clears the board, seeds garbage rows, resets counters and
// the randomizer and spawns the first piece.
func (b *Board) ResetForEpisode() {
	b.grid.ClearAll()
	b.ctrl.discard()
	b.normalLines = 0
	b.garbageLines = 0
	b.piecesPlaced = 0
	b.gameOver = false
	b.reward = 0
	b.lastReward = 0
	b.lastLocked = nil
	b.gravityElapsed = 0
	b.source.Reset()

	b.CreateGarbageLines(b.cfg.GarbageRows)

	b.SpawnPiece()
	b.logger.Debug("episode reset", "garbage_rows", b.cfg.GarbageRows, "game_over", b.gameOver)
	b.notify()
}

// SpawnPiece draws the next kind and places it at the spawn anchor.
// If the spawn position is blocked the game is over and nothing is placed.
func (b *Board) SpawnPiece() {
	b.spawnKind(b.source.Next())
}

func (b *Board) spawnKind(k Kind) {
	b.ctrl.Initialize(k, b.cfg.Spawn)
	if !b.ctrl.Fits() {
		b.ctrl.discard()
		b.gameOver = true
		b.logger.Debug("invalid spawn position, game over", "piece", k, "anchor", b.cfg.Spawn)
	}
}

// LockActivePiece writes the active piece into the grid, clears lines,
// evaluates the placement reward and spawns the next piece.
func (b *Board) LockActivePiece() {
	if b.gameOver || b.ctrl.State() == PieceNone {
		return
	}

	// Includes holes left by garbage injected since the last lock.
	holesBefore := b.grid.Holes()

	piece := b.ctrl.Piece()
	cells := piece.Cells()
	for _, c := range cells {
		b.grid.Set(c, Normal)
	}
	b.ctrl.state = PieceLocked
	b.lastLocked = &LockedPiece{Kind: piece.Kind, Anchor: piece.Anchor, Cells: cells}
	b.piecesPlaced++

	normal, garbage := b.clearLines()
	holesAfter := b.grid.Holes()

	b.lastReward = b.evaluator.Apply(b, Placement{
		Kind:         piece.Kind,
		Lines:        normal + garbage,
		GarbageLines: garbage,
		HolesBefore:  holesBefore,
		HolesAfter:   holesAfter,
		MaxHeight:    b.MaxHeight(),
	})

	b.SpawnPiece()
	b.notify()
}

// ClearLines removes every full row and returns how many were removed.
func (b *Board) ClearLines() int {
	normal, garbage := b.clearLines()
	return normal + garbage
}

// clearLines scans from the bottom. A cleared row is re-examined because
// the rows above have moved down into it.
func (b *Board) clearLines() (normal, garbage int) {
	row := 0
	for row < b.grid.H {
		if !b.grid.RowFull(row) {
			row++
			continue
		}

		if b.isGarbageRow(row) {
			garbage++
		} else {
			normal++
		}
		b.grid.CollapseRow(row)
	}

	b.normalLines += normal
	b.garbageLines += garbage

	if garbage > 0 && b.cfg.GarbageRefill {
		b.CreateGarbageLines(garbage)
	}
	return normal, garbage
}

func (b *Board) isGarbageRow(y int) bool {
	if b.cfg.GarbageRule == GarbageAll {
		return b.grid.RowAll(y, Garbage)
	}
	return b.grid.RowContains(y, Garbage)
}

// CreateGarbageLines pushes n garbage rows in from the bottom, each with a
// single random gap. Rows pushed past the top are discarded.
func (b *Board) CreateGarbageLines(n int) {
	for i := 0; i < n; i++ {
		b.grid.ShiftUp()
		gap := b.rng.Intn(b.grid.W)
		for x := 0; x < b.grid.W; x++ {
			if x == gap {
				continue
			}
			b.grid.Set(C(x, 0), Garbage)
		}
	}
	if n > 0 {
		b.resolveActiveOverlap()
	}
}

// resolveActiveOverlap lifts a falling piece that garbage pushed into.
func (b *Board) resolveActiveOverlap() {
	if !b.ctrl.Falling() || b.ctrl.Fits() {
		return
	}
	for b.ctrl.piece.Anchor.Y < b.grid.H {
		b.ctrl.piece.Anchor = b.ctrl.piece.Anchor.Add(0, 1)
		if b.ctrl.Fits() {
			return
		}
	}
	b.ctrl.discard()
	b.gameOver = true
	b.logger.Debug("garbage pushed active piece off the board, game over")
}

// Move translates the active piece.
func (b *Board) Move(dx, dy int) bool {
	if b.gameOver {
		return false
	}
	return b.ctrl.Move(dx, dy)
}

// Rotate rotates the active piece with wall kicks.
func (b *Board) Rotate(dir int) bool {
	if b.gameOver {
		return false
	}
	return b.ctrl.Rotate(dir)
}

// StepGravity moves the active piece down one row, locking it on contact.
func (b *Board) StepGravity() bool {
	if b.gameOver {
		return false
	}
	return b.ctrl.StepGravity()
}

// HardDrop drops and locks the active piece, returning the rows travelled.
func (b *Board) HardDrop() int {
	if b.gameOver {
		return 0
	}
	return b.ctrl.HardDrop()
}

// Advance accumulates wall-clock time and applies one gravity step per
// elapsed interval. Returns the number of gravity steps applied.
func (b *Board) Advance(dt time.Duration) int {
	interval := b.cfg.GravityInterval
	if interval <= 0 || b.gameOver || dt <= 0 {
		return 0
	}

	b.gravityElapsed += dt
	steps := 0
	for b.gravityElapsed >= interval && !b.gameOver {
		b.gravityElapsed -= interval
		b.ctrl.StepGravity()
		steps++
	}
	return steps
}

// SetGravityInterval changes the clock-mode gravity interval. Time already
// accumulated carries over.
func (b *Board) SetGravityInterval(d time.Duration) {
	if d < 0 {
		d = 0
	}
	b.cfg.GravityInterval = d
}

// AddReward adds v to the pending reward.
func (b *Board) AddReward(v float64) {
	b.reward += v
}

// ConsumeReward returns the reward accumulated since the last call and
// resets the accumulator to zero. Only the driver should call it.
func (b *Board) ConsumeReward() float64 {
	r := b.reward
	b.reward = 0
	return r
}

// PendingReward returns the accumulated reward without consuming it.
func (b *Board) PendingReward() float64 {
	return b.reward
}

// notify delivers a snapshot to the observer, if any.
func (b *Board) notify() {
	if b.observer != nil {
		b.observer.Observe(b.Snapshot())
	}
}

// Config returns the board configuration.
func (b *Board) Config() Config {
	return b.cfg
}

// Grid returns the grid of locked cells. Callers must not modify it while
// an episode is running.
func (b *Board) Grid() *Grid {
	return b.grid
}

// Controller returns the active piece controller.
func (b *Board) Controller() *Controller {
	return b.ctrl
}

// Catalog returns the tetromino catalog.
func (b *Board) Catalog() *Catalog {
	return b.catalog
}

// GameOver returns true once a spawn has collided.
func (b *Board) GameOver() bool {
	return b.gameOver
}

// NormalLinesCleared returns the player-cleared row count of this episode.
func (b *Board) NormalLinesCleared() int {
	return b.normalLines
}

// GarbageLinesCleared returns the garbage row count of this episode.
func (b *Board) GarbageLinesCleared() int {
	return b.garbageLines
}

// PiecesPlaced returns how many pieces were locked this episode.
func (b *Board) PiecesPlaced() int {
	return b.piecesPlaced
}

// LastPlacementReward returns the reward of the most recent lock.
func (b *Board) LastPlacementReward() float64 {
	return b.lastReward
}

// LastLocked returns the most recently locked piece.
func (b *Board) LastLocked() (LockedPiece, bool) {
	if b.lastLocked == nil {
		return LockedPiece{}, false
	}
	lp := *b.lastLocked
	lp.Cells = append([]Coord(nil), b.lastLocked.Cells...)
	return lp, true
}

// Active returns the falling piece, if there is one.
func (b *Board) Active() (Piece, bool) {
	if !b.ctrl.Falling() {
		return Piece{}, false
	}
	return b.ctrl.Piece(), true
}
