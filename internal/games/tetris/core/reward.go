package core

// RewardWeights holds the constants of the placement reward.
type RewardWeights struct {
	// LineClear is indexed by the number of rows cleared by one placement.
	// Counts beyond the table earn nothing.
	LineClear []float64
	// HoleCreated is applied per hole added by a placement (usually negative).
	HoleCreated float64
	// HoleRemoved is applied per hole removed by a placement.
	HoleRemoved float64
	// Height is applied per row of the tallest column (usually negative).
	Height float64
	// Placement is a constant earned by every lock.
	Placement float64
	// GarbageLine is an extra bonus per garbage row cleared.
	GarbageLine float64
}

// DefaultRewardWeights returns the canonical weight set.
func DefaultRewardWeights() RewardWeights {
	return RewardWeights{
		LineClear:   []float64{0, 100, 300, 500, 1000},
		HoleCreated: -0.02,
		HoleRemoved: 0.01,
		Height:      -0.001,
		Placement:   0.1,
		GarbageLine: 50,
	}
}

// Shaping holds the per-action costs charged while a piece is falling.
type Shaping struct {
	Move           float64 // per successful lateral move
	Rotate         float64 // per successful rotation
	HardDropPerRow float64 // per row travelled by a hard drop
}

// DefaultShaping returns the canonical per-action costs.
func DefaultShaping() Shaping {
	return Shaping{
		Move:           -0.001,
		Rotate:         -0.002,
		HardDropPerRow: 0.015,
	}
}

// Placement describes the board change caused by locking one piece.
type Placement struct {
	Kind         Kind
	Lines        int // total rows cleared
	GarbageLines int // rows among Lines that counted as garbage
	HolesBefore  int
	HolesAfter   int
	MaxHeight    int // tallest column after clearing
}

// RewardEvaluator turns placements into a scalar reward.
type RewardEvaluator struct {
	weights RewardWeights
}

// NewRewardEvaluator creates an evaluator with the given weights.
func NewRewardEvaluator(w RewardWeights) RewardEvaluator {
	return RewardEvaluator{weights: w}
}

// Weights returns the evaluator's weights.
func (e RewardEvaluator) Weights() RewardWeights {
	return e.weights
}

// LineBonus returns the table entry for n cleared rows.
func (e RewardEvaluator) LineBonus(n int) float64 {
	if n < 0 || n >= len(e.weights.LineClear) {
		return 0
	}
	return e.weights.LineClear[n]
}

// Evaluate computes the reward of a placement. It has no side effects.
func (e RewardEvaluator) Evaluate(p Placement) float64 {
	w := e.weights
	reward := w.Placement
	reward += e.LineBonus(p.Lines)
	reward += float64(p.GarbageLines) * w.GarbageLine

	delta := p.HolesAfter - p.HolesBefore
	if delta > 0 {
		reward += float64(delta) * w.HoleCreated
	} else if delta < 0 {
		reward += float64(-delta) * w.HoleRemoved
	}

	reward += float64(p.MaxHeight) * w.Height
	return reward
}

// Apply evaluates p, adds the result to sink and returns it.
func (e RewardEvaluator) Apply(sink RewardSink, p Placement) float64 {
	r := e.Evaluate(p)
	sink.AddReward(r)
	return r
}
