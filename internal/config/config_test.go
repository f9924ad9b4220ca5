package config

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := ParseTetris(GetDefaultYAML("tetris"))
	if err != nil {
		t.Fatalf("ParseTetris() error = %v", err)
	}

	if !reflect.DeepEqual(cfg, DefaultTetrisConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultTetrisConfig())
	}
}

func TestParseTetrisLayersOverDefaults(t *testing.T) {
	data := []byte(`
board:
  width: 12
garbage:
  rows: 2
reward:
  line_clear: [0, 1, 2]
`)

	cfg, err := ParseTetris(data)
	if err != nil {
		t.Fatalf("ParseTetris() error = %v", err)
	}

	if cfg.Board.Width != 12 {
		t.Errorf("Board.Width = %d, expected 12", cfg.Board.Width)
	}
	if cfg.Board.Height != 20 {
		t.Errorf("Board.Height = %d, expected default 20", cfg.Board.Height)
	}
	if cfg.Garbage.Rows != 2 {
		t.Errorf("Garbage.Rows = %d, expected 2", cfg.Garbage.Rows)
	}
	if !reflect.DeepEqual(cfg.Reward.LineClear, []float64{0, 1, 2}) {
		t.Errorf("Reward.LineClear = %v, expected [0 1 2]", cfg.Reward.LineClear)
	}
	if !reflect.DeepEqual(cfg.Actions, DefaultActions()) {
		t.Errorf("Actions = %v, expected defaults", cfg.Actions)
	}
}

func TestParseTetrisReplacesActions(t *testing.T) {
	data := []byte(`
actions:
  0: hard_drop
  7: rotate_ccw
`)

	cfg, err := ParseTetris(data)
	if err != nil {
		t.Fatalf("ParseTetris() error = %v", err)
	}

	expected := map[int]string{0: "hard_drop", 7: "rotate_ccw"}
	if !reflect.DeepEqual(cfg.Actions, expected) {
		t.Errorf("Actions = %v, expected %v", cfg.Actions, expected)
	}
}

func TestParseTetrisInvalidYAML(t *testing.T) {
	if _, err := ParseTetris([]byte("board: [")); err == nil {
		t.Error("ParseTetris() expected error for malformed YAML")
	}
}

func TestLoadTetrisCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tetris.yaml")
	if err := os.WriteFile(path, []byte("episode:\n  max_steps: 250\n"), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := LoadTetris(path)
	if err != nil {
		t.Fatalf("LoadTetris() error = %v", err)
	}
	if cfg.Episode.MaxSteps != 250 {
		t.Errorf("Episode.MaxSteps = %d, expected 250", cfg.Episode.MaxSteps)
	}
}

func TestLoadTetrisMissingCustomPath(t *testing.T) {
	if _, err := LoadTetris(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadTetris() expected error for missing file")
	}
}

func TestApplyTetrisPreset(t *testing.T) {
	tests := []struct {
		preset       DifficultyPreset
		expectedRows int
		expectedLvl  float64
	}{
		{DifficultyEasy, 0, 0.0},
		{DifficultyNormal, 5, 0.3},
		{DifficultyHard, 8, 0.7},
		{DifficultyFixed, 3, 0.0},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultTetrisConfig()
			cfg.Garbage.Rows = 3
			cfg.Difficulty.Enabled = true

			ApplyTetrisPreset(&cfg, tc.preset)

			if cfg.Garbage.Rows != tc.expectedRows {
				t.Errorf("Garbage.Rows = %d, expected %d", cfg.Garbage.Rows, tc.expectedRows)
			}
			if cfg.Difficulty.InitialLevel != tc.expectedLvl {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tc.expectedLvl)
			}
			if IsFixedPreset(tc.preset) && cfg.Difficulty.Enabled {
				t.Error("fixed preset must disable progression")
			}
		})
	}
}

func TestPresetLeavesProgressionOff(t *testing.T) {
	for _, preset := range []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		cfg := DefaultTetrisConfig()
		ApplyTetrisPreset(&cfg, preset)

		if cfg.Difficulty.Enabled {
			t.Errorf("ApplyTetrisPreset(%s) enabled progression", preset)
		}
		base := 800 * time.Millisecond
		if got := NewDifficultyManager(cfg.Difficulty).GravityInterval(base, 0, 0); got != base {
			t.Errorf("GravityInterval() after %s = %v, expected %v", preset, got, base)
		}
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, ok)
	}
	if _, ok := ParsePreset("nightmare"); ok {
		t.Error("ParsePreset(nightmare) expected false")
	}
}

func TestDifficultyLevel(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: "lines", MaxAt: 40},
	})

	tests := []struct {
		lines    int
		expected float64
	}{
		{0, 0.2},
		{20, 0.6},
		{40, 1.0},
		{400, 1.0},
	}

	for _, tc := range tests {
		if got := d.Level(tc.lines, 0); math.Abs(got-tc.expected) > 1e-9 {
			t.Errorf("Level(%d) = %v, expected %v", tc.lines, got, tc.expected)
		}
	}
}

func TestDifficultyDisabled(t *testing.T) {
	d := NewDifficultyManager(DefaultTetrisConfig().Difficulty)

	if d.IsEnabled() {
		t.Fatal("default difficulty should be disabled")
	}
	if got := d.GravityInterval(500*time.Millisecond, 100, 100); got != 500*time.Millisecond {
		t.Errorf("GravityInterval() = %v, expected base interval", got)
	}
	if got := d.ExtraGravity(100, 100); got != 0 {
		t.Errorf("ExtraGravity() = %d, expected 0", got)
	}
}

func TestDifficultyScaling(t *testing.T) {
	d := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "steps", MaxAt: 100},
		Scaling:     ScalingConfig{SpeedMultiplier: 1.0, ExtraGravitySteps: 2},
	})

	if got := d.GravityInterval(time.Second, 0, 100); got != 500*time.Millisecond {
		t.Errorf("GravityInterval() = %v, expected 500ms", got)
	}
	if got := d.ExtraGravity(0, 50); got != 1 {
		t.Errorf("ExtraGravity() = %d, expected 1", got)
	}
	if got := d.GravityInterval(60*time.Millisecond, 0, 100); got != minGravityInterval {
		t.Errorf("GravityInterval() = %v, expected floor %v", got, minGravityInterval)
	}
}
