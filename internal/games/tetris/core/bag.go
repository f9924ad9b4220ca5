package core

import "math/rand"

// PieceSource supplies the kind of each newly spawned piece.
type PieceSource interface {
	// Next returns the kind for the next spawn.
	Next() Kind
	// Reset restores the source to the start of a cycle.
	Reset()
}

// Bag is the 7-bag randomizer: every kind is drawn exactly once, in random
// order, before the bag is refilled.
type Bag struct {
	rng       *rand.Rand
	remaining []Kind
}

// NewBag creates a full bag drawing from rng.
func NewBag(rng *rand.Rand) *Bag {
	b := &Bag{
		rng:       rng,
		remaining: make([]Kind, 0, KindCount),
	}
	b.Reset()
	return b
}

// Reset refills the bag with all seven kinds.
func (b *Bag) Reset() {
	b.remaining = append(b.remaining[:0], Kinds[:]...)
}

// Next draws a kind without replacement, refilling first if the bag is empty.
func (b *Bag) Next() Kind {
	if len(b.remaining) == 0 {
		b.Reset()
	}
	i := b.rng.Intn(len(b.remaining))
	k := b.remaining[i]
	b.remaining = append(b.remaining[:i], b.remaining[i+1:]...)
	return k
}

// Len returns the number of kinds left before the next refill.
func (b *Bag) Len() int {
	return len(b.remaining)
}

// Remaining returns a copy of the kinds left in the current cycle.
func (b *Bag) Remaining() []Kind {
	out := make([]Kind, len(b.remaining))
	copy(out, b.remaining)
	return out
}

// UniformSource draws every kind independently with equal probability.
type UniformSource struct {
	rng *rand.Rand
}

// NewUniformSource creates a uniform source drawing from rng.
func NewUniformSource(rng *rand.Rand) *UniformSource {
	return &UniformSource{rng: rng}
}

// Next returns a uniformly random kind.
func (u *UniformSource) Next() Kind {
	return Kinds[u.rng.Intn(KindCount)]
}

// Reset is a no-op; uniform draws carry no state.
func (u *UniformSource) Reset() {}

// SequenceSource replays a fixed sequence of kinds, cycling when exhausted.
// Useful for scripted scenarios and replays.
type SequenceSource struct {
	kinds []Kind
	pos   int
}

// NewSequenceSource creates a source that yields kinds in order.
func NewSequenceSource(kinds ...Kind) *SequenceSource {
	return &SequenceSource{kinds: kinds}
}

// Next returns the next kind of the sequence.
func (s *SequenceSource) Next() Kind {
	if len(s.kinds) == 0 {
		return I
	}
	k := s.kinds[s.pos%len(s.kinds)]
	s.pos++
	return k
}

// Reset rewinds to the first kind.
func (s *SequenceSource) Reset() {
	s.pos = 0
}
