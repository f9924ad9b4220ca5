package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultActions returns the canonical action-code mapping.
func DefaultActions() map[int]string {
	return map[int]string{
		0: "none",
		1: "left",
		2: "right",
		3: "rotate_cw",
		4: "soft_drop",
		5: "hard_drop",
	}
}

// DefaultTetrisConfig returns the default Tetris configuration.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Board: BoardConfig{
			Width:  10,
			Height: 20,
			SpawnX: 4,
			SpawnY: 18,
		},
		Pieces: PiecesConfig{
			SevenBag: true,
		},
		Garbage: GarbageConfig{
			Rows:          5,
			RefillOnClear: true,
			ClearRule:     "any",
		},
		Gravity: GravityConfig{
			Mode:       GravityStep,
			IntervalMS: 500,
		},
		Actions: DefaultActions(),
		Reward: RewardConfig{
			LineClear:      []float64{0, 100, 300, 500, 1000},
			HoleCreated:    -0.02,
			HoleRemoved:    0.01,
			Height:         -0.001,
			Placement:      0.1,
			GarbageLine:    50,
			Move:           -0.001,
			Rotate:         -0.002,
			HardDropPerRow: 0.015,
			Survival:       0.01,
			GameOver:       -10,
		},
		Observation: ObservationConfig{
			HeightNorm: 20,
			HoleNorm:   40,
		},
		Telemetry: TelemetryConfig{
			Address: "127.0.0.1:5000",
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "lines",
				MaxAt: 100,
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   4.0,
				ExtraGravitySteps: 2,
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for an environment.
func GetDefaultYAML(envID string) []byte {
	switch envID {
	case "tetris":
		return defaultTetrisYAML
	default:
		return nil
	}
}
