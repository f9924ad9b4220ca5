// Package config provides YAML-based environment configuration loading and
// difficulty management for the training environment.
package config

// TetrisConfig contains all configuration for the Tetris environment.
type TetrisConfig struct {
	Board       BoardConfig       `yaml:"board"`
	Pieces      PiecesConfig      `yaml:"pieces"`
	Garbage     GarbageConfig     `yaml:"garbage"`
	Gravity     GravityConfig     `yaml:"gravity"`
	Actions     map[int]string    `yaml:"actions"` // driver code -> action name
	Reward      RewardConfig      `yaml:"reward"`
	Observation ObservationConfig `yaml:"observation"`
	Episode     EpisodeConfig     `yaml:"episode"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`
	Difficulty  DifficultyConfig  `yaml:"difficulty"`
}

// BoardConfig defines the playfield dimensions and spawn anchor.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	SpawnX int `yaml:"spawn_x"`
	SpawnY int `yaml:"spawn_y"`
}

// PiecesConfig defines the randomizer.
type PiecesConfig struct {
	SevenBag bool `yaml:"seven_bag"` // false = independent uniform draws
}

// GarbageConfig defines garbage seeding and clearing.
type GarbageConfig struct {
	Rows          int    `yaml:"rows"`            // rows seeded on reset
	RefillOnClear bool   `yaml:"refill_on_clear"` // one new row per garbage row cleared
	ClearRule     string `yaml:"clear_rule"`      // "any" or "all"
}

// GravityConfig defines how the piece falls.
type GravityConfig struct {
	Mode       string `yaml:"mode"`        // "step" or "clock"
	IntervalMS int    `yaml:"interval_ms"` // clock mode only
}

// Gravity modes.
const (
	GravityStep  = "step"
	GravityClock = "clock"
)

// RewardConfig defines every reward constant.
type RewardConfig struct {
	LineClear      []float64 `yaml:"line_clear"` // indexed by rows cleared in one lock
	HoleCreated    float64   `yaml:"hole_created"`
	HoleRemoved    float64   `yaml:"hole_removed"`
	Height         float64   `yaml:"height"`
	Placement      float64   `yaml:"placement"`
	GarbageLine    float64   `yaml:"garbage_line"`
	Move           float64   `yaml:"move"`
	Rotate         float64   `yaml:"rotate"`
	HardDropPerRow float64   `yaml:"hard_drop_per_row"`
	Survival       float64   `yaml:"survival"`  // added on every step
	GameOver       float64   `yaml:"game_over"` // added once on the terminal step
}

// ObservationConfig defines how the observation vector is normalised.
type ObservationConfig struct {
	HeightNorm  float64 `yaml:"height_norm"`
	HoleNorm    float64 `yaml:"hole_norm"`
	IncludeGrid bool    `yaml:"include_grid"`
}

// EpisodeConfig defines episode limits.
type EpisodeConfig struct {
	MaxSteps int `yaml:"max_steps"` // 0 = unlimited
}

// TelemetryConfig defines the snapshot stream.
type TelemetryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Address string `yaml:"address"` // host:port of the listening consumer
}

// DifficultyConfig defines the gravity progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over an episode.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "lines", "steps", or "none"
	MaxAt int    `yaml:"max_at"` // Lines/steps at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`    // clock mode: gravity speed added at max difficulty
	ExtraGravitySteps int     `yaml:"extra_gravity_steps"` // step mode: extra rows fallen per step at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a flag value into a preset.
func ParsePreset(s string) (DifficultyPreset, bool) {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, true
	default:
		return "", false
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// GarbageRowsForPreset returns the garbage seeded on reset for a preset,
// or -1 when the preset keeps the configured value.
func GarbageRowsForPreset(preset DifficultyPreset) int {
	switch preset {
	case DifficultyEasy:
		return 0
	case DifficultyNormal:
		return 5
	case DifficultyHard:
		return 8
	default:
		return -1
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
