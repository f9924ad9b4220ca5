// Package agent provides baseline drivers for the training environments.
// Learning algorithms live outside this module; these drivers exist for
// smoke runs and as a reference for the reset/step loop.
package agent

import (
	"math/rand"

	platformcore "github.com/vovakirdan/tetris-gym/internal/core"
	"github.com/vovakirdan/tetris-gym/internal/registry"
)

// Policy chooses the next action code from the last step result.
type Policy interface {
	SelectAction(last platformcore.StepResult) int
}

// Random picks uniformly among a fixed set of action codes.
type Random struct {
	codes []int
	rng   *rand.Rand
}

// NewRandom creates a random policy over codes, seeded for reproducibility.
func NewRandom(codes []int, seed int64) *Random {
	return &Random{
		codes: append([]int(nil), codes...),
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// SelectAction returns one of the configured codes. With no codes it
// returns 0.
func (r *Random) SelectAction(platformcore.StepResult) int {
	if len(r.codes) == 0 {
		return 0
	}
	return r.codes[r.rng.Intn(len(r.codes))]
}

// Episode summarizes one finished episode.
type Episode struct {
	Seed         int64
	Steps        int
	TotalReward  float64
	NormalLines  int
	GarbageLines int
	Pieces       int
	GameOver     bool
	Truncated    bool
}

// RunEpisode resets env and drives it with p until the episode ends.
// A non-positive rc.MaxSteps leaves the limit to the environment, so an
// environment without one runs until game over.
func RunEpisode(env registry.Environment, p Policy, rc platformcore.RuntimeConfig) Episode {
	res := env.Reset(rc)
	for !res.Done {
		res = env.Step(p.SelectAction(res))
	}

	return Episode{
		Seed:         rc.Seed,
		Steps:        res.State.Steps,
		TotalReward:  res.State.TotalReward,
		NormalLines:  int(res.Info["normal_lines"]),
		GarbageLines: int(res.Info["garbage_lines"]),
		Pieces:       int(res.Info["pieces"]),
		GameOver:     res.State.GameOver,
		Truncated:    res.Truncated,
	}
}
