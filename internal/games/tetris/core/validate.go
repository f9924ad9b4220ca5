package core

import (
	"fmt"
	"time"
)

// ValidationError contains details about a configuration failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// GarbageRule decides which cleared rows count as garbage clears.
type GarbageRule string

const (
	// GarbageAny counts a row holding at least one garbage tile.
	GarbageAny GarbageRule = "any"
	// GarbageAll counts only rows made entirely of garbage tiles.
	GarbageAll GarbageRule = "all"
)

// Config holds the simulation parameters of a board.
type Config struct {
	Width  int
	Height int
	Spawn  Coord

	SevenBag bool

	GarbageRows   int         // garbage rows seeded on reset
	GarbageRefill bool        // inject one garbage row per garbage row cleared
	GarbageRule   GarbageRule // how cleared rows are classified

	// GravityInterval drives Advance. Zero disables clock-driven gravity.
	GravityInterval time.Duration

	Rewards RewardWeights
	Shaping Shaping
}

// DefaultConfig returns the canonical 10x20 board.
func DefaultConfig() Config {
	return Config{
		Width:           10,
		Height:          20,
		Spawn:           C(4, 18),
		SevenBag:        true,
		GarbageRows:     5,
		GarbageRefill:   true,
		GarbageRule:     GarbageAny,
		GravityInterval: 500 * time.Millisecond,
		Rewards:         DefaultRewardWeights(),
		Shaping:         DefaultShaping(),
	}
}

// Validate checks the configuration for values the board cannot run with.
func (c Config) Validate() error {
	if c.Width < 4 || c.Height < 4 {
		return ValidationError{
			Code:    "INVALID_BOARD",
			Message: fmt.Sprintf("board must be at least 4x4, got %dx%d", c.Width, c.Height),
		}
	}
	if c.Spawn.X < 0 || c.Spawn.X >= c.Width || c.Spawn.Y < 0 || c.Spawn.Y >= c.Height {
		return ValidationError{
			Code:    "INVALID_SPAWN",
			Message: fmt.Sprintf("spawn anchor %s outside %dx%d board", c.Spawn, c.Width, c.Height),
		}
	}
	if c.GarbageRows < 0 || c.GarbageRows >= c.Height {
		return ValidationError{
			Code:    "INVALID_GARBAGE",
			Message: fmt.Sprintf("garbage rows %d must be in [0,%d)", c.GarbageRows, c.Height),
		}
	}
	if c.GarbageRule != GarbageAny && c.GarbageRule != GarbageAll {
		return ValidationError{
			Code:    "INVALID_GARBAGE",
			Message: fmt.Sprintf("unknown garbage rule %q", c.GarbageRule),
		}
	}
	if c.GravityInterval < 0 {
		return ValidationError{
			Code:    "INVALID_BOARD",
			Message: "gravity interval must not be negative",
		}
	}
	if len(c.Rewards.LineClear) == 0 {
		return ValidationError{
			Code:    "INVALID_REWARD",
			Message: "line clear table must not be empty",
		}
	}
	return nil
}
