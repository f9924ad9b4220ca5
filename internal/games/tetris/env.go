// Package tetris exposes the Tetris simulation core as a training
// environment: integer action codes in, rewards and observation vectors out.
package tetris

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tetris-gym/internal/config"
	platformcore "github.com/vovakirdan/tetris-gym/internal/core"
	"github.com/vovakirdan/tetris-gym/internal/games/tetris/core"
	"github.com/vovakirdan/tetris-gym/internal/registry"
	"github.com/vovakirdan/tetris-gym/internal/telemetry"
)

// Env implements registry.Environment over a core.Board.
// It is driven by a single goroutine.
type Env struct {
	id    string
	title string

	cfg        config.TetrisConfig
	board      *core.Board
	actions    platformcore.ActionMap
	obs        *ObservationBuilder
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger
	reporter   *telemetry.Reporter

	clock        bool
	baseInterval time.Duration

	maxSteps  int
	state     platformcore.GameState
	done      bool
	truncated bool
}

func init() {
	registry.Register("tetris", "Tetris", func(s registry.Settings) (registry.Environment, error) {
		return New("tetris", "Tetris", s)
	})
	registry.Register("tetris_classic", "Tetris (classic, no garbage)", func(s registry.Settings) (registry.Environment, error) {
		s.Config.Pieces.SevenBag = false
		s.Config.Garbage.Rows = 0
		s.Config.Garbage.RefillOnClear = false
		return New("tetris_classic", "Tetris (classic, no garbage)", s)
	})
	registry.Register("tetris_garbage", "Tetris (heavy garbage)", func(s registry.Settings) (registry.Environment, error) {
		if rows := config.GarbageRowsForPreset(config.DifficultyHard); rows > s.Config.Garbage.Rows {
			s.Config.Garbage.Rows = rows
		}
		s.Config.Garbage.RefillOnClear = true
		return New("tetris_garbage", "Tetris (heavy garbage)", s)
	})
}

// New creates an environment. Configuration errors are returned as
// core.ValidationError.
func New(id, title string, s registry.Settings) (*Env, error) {
	actions, err := validateSettings(s.Config)
	if err != nil {
		return nil, err
	}

	logger := s.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("env", id)

	e := &Env{
		id:           id,
		title:        title,
		cfg:          s.Config,
		actions:      actions,
		difficulty:   config.NewDifficultyManager(s.Config.Difficulty),
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:       logger,
		clock:        s.Config.Gravity.Mode == config.GravityClock,
		baseInterval: time.Duration(s.Config.Gravity.IntervalMS) * time.Millisecond,
	}

	opts := []core.Option{core.WithRand(e.rng), core.WithLogger(logger)}
	if s.Sink != nil {
		e.reporter = telemetry.NewReporter(s.Sink, logger)
		opts = append(opts, core.WithObserver(e.reporter))
	}

	board, err := core.NewBoard(BoardConfig(s.Config), opts...)
	if err != nil {
		return nil, err
	}
	e.board = board
	e.obs = NewObservationBuilder(s.Config.Board.Width, s.Config.Board.Height, s.Config.Observation)

	return e, nil
}

// ID returns the unique identifier for this environment.
func (e *Env) ID() string {
	return e.id
}

// Title returns the display name for this environment.
func (e *Env) Title() string {
	return e.title
}

// Board exposes the simulation for inspection. Callers must not mutate it
// while an episode is running.
func (e *Env) Board() *core.Board {
	return e.board
}

// Reporter returns the telemetry reporter, or nil when telemetry is off.
func (e *Env) Reporter() *telemetry.Reporter {
	return e.reporter
}

// Reset starts a new episode.
func (e *Env) Reset(rc platformcore.RuntimeConfig) platformcore.StepResult {
	seed := rc.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	e.board.Seed(seed)

	e.maxSteps = rc.MaxSteps
	if e.maxSteps <= 0 {
		e.maxSteps = e.cfg.Episode.MaxSteps
	}

	e.state = platformcore.GameState{}
	e.done = false
	e.truncated = false
	if e.clock {
		e.board.SetGravityInterval(e.baseInterval)
	}

	e.board.ResetForEpisode()
	e.board.ConsumeReward()

	e.state.GameOver = e.board.GameOver()
	e.done = e.state.GameOver
	e.logger.Debug("episode started", "seed", seed, "max_steps", e.maxSteps)

	return e.result(false, 0)
}

// Step applies one action code, then gravity in step mode, and settles the
// step reward. Steps after the episode has ended change nothing.
func (e *Env) Step(code int) platformcore.StepResult {
	if e.done {
		return e.result(false, 0)
	}

	action, ok := e.actions.Lookup(code)
	if !ok {
		e.logger.Debug("unmapped action code", "code", code)
	}
	moved := e.apply(action)

	if !e.clock {
		falls := 1 + e.difficulty.ExtraGravity(e.lines(), e.state.Steps)
		for i := 0; i < falls && !e.board.GameOver(); i++ {
			e.board.StepGravity()
		}
	}

	return e.finishStep(moved)
}

// Advance feeds elapsed time to clock-mode gravity. Rewards earned here
// are settled by the next Step, unless a lock ends the game, in which case
// they are settled here together with the terminal penalty.
func (e *Env) Advance(dt time.Duration) platformcore.StepResult {
	if !e.clock || e.done {
		return e.result(false, 0)
	}

	e.board.SetGravityInterval(e.difficulty.GravityInterval(e.baseInterval, e.lines(), e.state.Steps))
	moved := e.board.Advance(dt) > 0

	reward := 0.0
	if e.board.GameOver() {
		reward = e.board.ConsumeReward() + e.endEpisode()
		e.state.TotalReward += reward
	}
	e.state.GameOver = e.board.GameOver()
	e.state.LinesCleared = e.lines()
	return e.result(moved, reward)
}

// apply performs a semantic action and reports whether it did anything.
func (e *Env) apply(a platformcore.Action) bool {
	switch a {
	case platformcore.ActionLeft:
		return e.board.Move(-1, 0)
	case platformcore.ActionRight:
		return e.board.Move(1, 0)
	case platformcore.ActionRotateCW:
		return e.board.Rotate(1)
	case platformcore.ActionRotateCCW:
		return e.board.Rotate(-1)
	case platformcore.ActionSoftDrop:
		return e.board.Move(0, -1)
	case platformcore.ActionHardDrop:
		if _, falling := e.board.Active(); !falling {
			return false
		}
		e.board.HardDrop()
		return true
	default:
		return false
	}
}

func (e *Env) finishStep(moved bool) platformcore.StepResult {
	e.state.Steps++
	e.board.AddReward(e.cfg.Reward.Survival)
	reward := e.board.ConsumeReward()

	switch {
	case e.board.GameOver():
		reward += e.endEpisode()
	case e.maxSteps > 0 && e.state.Steps >= e.maxSteps:
		e.done = true
		e.truncated = true
		e.logger.Debug("episode truncated", "steps", e.state.Steps)
	}

	e.state.TotalReward += reward
	e.state.LinesCleared = e.lines()
	e.state.GameOver = e.board.GameOver()

	return e.result(moved, reward)
}

// endEpisode marks the episode over and returns the terminal penalty.
func (e *Env) endEpisode() float64 {
	e.done = true
	e.logger.Debug("episode over",
		"steps", e.state.Steps,
		"lines", e.lines(),
		"pieces", e.board.PiecesPlaced(),
	)
	return e.cfg.Reward.GameOver
}

func (e *Env) lines() int {
	return e.board.NormalLinesCleared() + e.board.GarbageLinesCleared()
}

func (e *Env) result(moved bool, reward float64) platformcore.StepResult {
	return platformcore.StepResult{
		State:       e.state,
		Moved:       moved,
		Reward:      reward,
		Done:        e.done,
		Truncated:   e.truncated,
		Observation: e.obs.Build(e.board),
		Info: map[string]float64{
			"normal_lines":  float64(e.board.NormalLinesCleared()),
			"garbage_lines": float64(e.board.GarbageLinesCleared()),
			"pieces":        float64(e.board.PiecesPlaced()),
			"holes":         float64(e.board.HoleCount()),
			"bumpiness":     float64(e.board.Bumpiness()),
			"max_height":    float64(e.board.MaxHeight()),
		},
	}
}

// State returns the current episode state.
func (e *Env) State() platformcore.GameState {
	return e.state
}

// Actions returns the mapped action codes in ascending order.
func (e *Env) Actions() []int {
	return e.actions.Codes()
}

// ObservationSize returns the length of the observation vector.
func (e *Env) ObservationSize() int {
	return e.obs.Size()
}
