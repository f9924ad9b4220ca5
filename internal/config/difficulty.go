package config

import (
	"math"
	"time"
)

// minGravityInterval is the fastest clock-mode gravity the scaling allows.
const minGravityInterval = 50 * time.Millisecond

// DifficultyManager calculates dynamic gravity based on lines cleared or
// steps taken.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// SetInitialLevel overrides the initial difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initialLevel = clampF(level, 0.0, 1.0)
}

// SetEnabled enables or disables difficulty progression.
func (d *DifficultyManager) SetEnabled(enabled bool) {
	d.cfg.Enabled = enabled
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on lines/steps.
func (d *DifficultyManager) Level(lines int, steps int) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "lines":
		progress = float64(lines) / maxAt
	case "steps":
		progress = float64(steps) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// GravityInterval returns the clock-mode gravity interval for the current
// level. Disabled progression returns base unchanged.
func (d *DifficultyManager) GravityInterval(base time.Duration, lines int, steps int) time.Duration {
	if !d.IsEnabled() {
		return base
	}
	level := d.Level(lines, steps)
	// Speed increases from 1x to (1 + speedMultiplier)x
	interval := time.Duration(float64(base) / (1.0 + level*d.cfg.Scaling.SpeedMultiplier))
	if interval < minGravityInterval {
		interval = minGravityInterval
	}
	return interval
}

// ExtraGravity returns the step-mode gravity steps added on top of the one
// applied after every action.
func (d *DifficultyManager) ExtraGravity(lines int, steps int) int {
	if !d.IsEnabled() {
		return 0
	}
	level := d.Level(lines, steps)
	return int(level * float64(d.cfg.Scaling.ExtraGravitySteps))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
