package tetris

import (
	"gonum.org/v1/gonum/mat"

	"github.com/vovakirdan/tetris-gym/internal/config"
	platformcore "github.com/vovakirdan/tetris-gym/internal/core"
	"github.com/vovakirdan/tetris-gym/internal/games/tetris/core"
)

// ObservationBuilder flattens a board into a feature vector.
//
// Layout, for a board of width W and height H:
//
//	[0, W)          column heights / height_norm
//	[W, 2W-1)       contour (adjacent height differences) / height_norm
//	2W-1            hole count / hole_norm
//	2W              max height / height_norm
//	[2W+1, 2W+8)    one-hot current piece (I O T S Z J L), all zero when none
//	[2W+8, ...)     grid occupancy, row-major from the bottom (include_grid only)
type ObservationBuilder struct {
	width       int
	height      int
	heightNorm  float64
	holeNorm    float64
	includeGrid bool
}

// NewObservationBuilder creates a builder for a board of the given size.
func NewObservationBuilder(width, height int, cfg config.ObservationConfig) *ObservationBuilder {
	return &ObservationBuilder{
		width:       width,
		height:      height,
		heightNorm:  cfg.HeightNorm,
		holeNorm:    cfg.HoleNorm,
		includeGrid: cfg.IncludeGrid,
	}
}

// Size returns the length of the observation vector.
func (o *ObservationBuilder) Size() int {
	n := o.width + (o.width - 1) + 2 + core.KindCount
	if o.includeGrid {
		n += o.width * o.height
	}
	return n
}

// Build computes the observation for the board's current state.
func (o *ObservationBuilder) Build(b *core.Board) *mat.VecDense {
	data := make([]float64, 0, o.Size())

	for _, h := range b.ColumnHeights() {
		data = append(data, platformcore.Normalize(float64(h), o.heightNorm))
	}
	for _, d := range b.Contour() {
		data = append(data, platformcore.Normalize(float64(d), o.heightNorm))
	}
	data = append(data,
		platformcore.Normalize(float64(b.HoleCount()), o.holeNorm),
		platformcore.Normalize(float64(b.MaxHeight()), o.heightNorm),
	)

	var onehot [core.KindCount]float64
	if id := b.CurrentPieceID(); id >= 0 && id < core.KindCount {
		onehot[id] = 1
	}
	data = append(data, onehot[:]...)

	if o.includeGrid {
		for _, v := range b.GridState() {
			occupied := 0.0
			if v != core.StateEmpty {
				occupied = 1
			}
			data = append(data, occupied)
		}
	}

	return mat.NewVecDense(len(data), data)
}
