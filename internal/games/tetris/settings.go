package tetris

import (
	"fmt"
	"time"

	"github.com/vovakirdan/tetris-gym/internal/config"
	platformcore "github.com/vovakirdan/tetris-gym/internal/core"
	"github.com/vovakirdan/tetris-gym/internal/games/tetris/core"
)

// BoardConfig converts the YAML configuration into a simulation config.
// The result is validated by core.NewBoard.
func BoardConfig(cfg config.TetrisConfig) core.Config {
	return core.Config{
		Width:           cfg.Board.Width,
		Height:          cfg.Board.Height,
		Spawn:           core.C(cfg.Board.SpawnX, cfg.Board.SpawnY),
		SevenBag:        cfg.Pieces.SevenBag,
		GarbageRows:     cfg.Garbage.Rows,
		GarbageRefill:   cfg.Garbage.RefillOnClear,
		GarbageRule:     core.GarbageRule(cfg.Garbage.ClearRule),
		GravityInterval: time.Duration(cfg.Gravity.IntervalMS) * time.Millisecond,
		Rewards: core.RewardWeights{
			LineClear:   append([]float64(nil), cfg.Reward.LineClear...),
			HoleCreated: cfg.Reward.HoleCreated,
			HoleRemoved: cfg.Reward.HoleRemoved,
			Height:      cfg.Reward.Height,
			Placement:   cfg.Reward.Placement,
			GarbageLine: cfg.Reward.GarbageLine,
		},
		Shaping: core.Shaping{
			Move:           cfg.Reward.Move,
			Rotate:         cfg.Reward.Rotate,
			HardDropPerRow: cfg.Reward.HardDropPerRow,
		},
	}
}

// validateSettings checks the parts of the configuration the board does
// not see and builds the action map.
func validateSettings(cfg config.TetrisConfig) (platformcore.ActionMap, error) {
	switch cfg.Gravity.Mode {
	case config.GravityStep, config.GravityClock:
	default:
		return platformcore.ActionMap{}, core.ValidationError{
			Code:    "INVALID_BOARD",
			Message: fmt.Sprintf("unknown gravity mode %q", cfg.Gravity.Mode),
		}
	}
	if cfg.Gravity.Mode == config.GravityClock && cfg.Gravity.IntervalMS <= 0 {
		return platformcore.ActionMap{}, core.ValidationError{
			Code:    "INVALID_BOARD",
			Message: "clock gravity needs a positive interval_ms",
		}
	}

	if cfg.Observation.HeightNorm <= 0 || cfg.Observation.HoleNorm <= 0 {
		return platformcore.ActionMap{}, core.ValidationError{
			Code:    "INVALID_OBSERVATION",
			Message: "observation norms must be positive",
		}
	}

	actions, err := platformcore.NewActionMap(cfg.Actions)
	if err != nil {
		return platformcore.ActionMap{}, core.ValidationError{
			Code:    "INVALID_ACTION",
			Message: err.Error(),
		}
	}
	if actions.Len() == 0 {
		return platformcore.ActionMap{}, core.ValidationError{
			Code:    "INVALID_ACTION",
			Message: "action map is empty",
		}
	}
	return actions, nil
}
