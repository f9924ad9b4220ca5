// Package core provides the types shared between environments and the
// drivers that step them. It has no knowledge of any particular game.
package core

import "gonum.org/v1/gonum/mat"

// RuntimeConfig contains configuration passed to environments on reset.
type RuntimeConfig struct {
	Seed     int64 // RNG seed for deterministic episodes
	MaxSteps int   // Steps before the episode is truncated, 0 = unlimited
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		Seed:     0, // 0 means use current time in platform layer
		MaxSteps: 0,
	}
}

// GameState represents the current state of an episode.
type GameState struct {
	Steps        int     // Steps taken this episode
	TotalReward  float64 // Sum of all step rewards
	LinesCleared int     // Rows cleared this episode
	GameOver     bool    // Whether the game has ended
}

// StepResult is returned by Environment.Step() after each action.
type StepResult struct {
	State GameState

	Moved     bool    // The action changed the active piece
	Reward    float64 // Reward earned by this step
	Done      bool    // The episode has ended, by game over or truncation
	Truncated bool    // The episode hit MaxSteps

	// Observation is the feature vector after the step.
	Observation *mat.VecDense

	// Info carries diagnostic counters that are not part of the observation.
	Info map[string]float64
}
