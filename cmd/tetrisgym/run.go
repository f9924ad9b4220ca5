package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-gym/internal/agent"
	"github.com/vovakirdan/tetris-gym/internal/config"
	platformcore "github.com/vovakirdan/tetris-gym/internal/core"
	"github.com/vovakirdan/tetris-gym/internal/registry"
	"github.com/vovakirdan/tetris-gym/internal/storage"
	"github.com/vovakirdan/tetris-gym/internal/telemetry"
)

var (
	flagEnv        string
	flagEpisodes   int
	flagMaxSteps   int
	flagConfig     string
	flagDifficulty string
	flagTelemetry  string
	flagNoSave     bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run episodes with the random driver",
	Long: `Run headless episodes with a uniform random policy over the
configured action codes, and record each finished episode.

Difficulty options:
  easy   - No garbage rows
  normal - Five garbage rows
  hard   - Eight garbage rows
  fixed  - Garbage rows from the config, progression off

Presets also pick a starting level (0%, 30%, 70%) for gravity
progression, which only takes effect when difficulty.enabled is
set in the config.

Examples:
  tetrisgym run
  tetrisgym run --env tetris_classic --episodes 20 --seed 7
  tetrisgym run --max-steps 500 --difficulty hard
  tetrisgym run --telemetry 127.0.0.1:5000
  tetrisgym run --config ./my-tetris.yaml --no-save`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&flagEnv, "env", "tetris", "Environment ID")
	runCmd.Flags().IntVar(&flagEpisodes, "episodes", 1, "Number of episodes to run")
	runCmd.Flags().IntVar(&flagMaxSteps, "max-steps", 0, "Step limit per episode (0 = config value)")
	runCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	runCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	runCmd.Flags().StringVar(&flagTelemetry, "telemetry", "", "Stream board snapshots to host:port")
	runCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record episodes in the database")
}

func runRun(cmd *cobra.Command, args []string) error {
	logger, err := newLogger()
	if err != nil {
		return err
	}

	if !registry.Exists(flagEnv) {
		return fmt.Errorf("unknown environment %q (run 'tetrisgym list')", flagEnv)
	}
	if flagEpisodes <= 0 {
		return fmt.Errorf("--episodes must be positive, got %d", flagEpisodes)
	}

	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}
	if flagDifficulty != "" {
		preset, ok := config.ParsePreset(flagDifficulty)
		if !ok {
			return fmt.Errorf("unknown difficulty %q", flagDifficulty)
		}
		config.ApplyTetrisPreset(&cfg, preset)
	}

	settings := registry.Settings{Config: cfg, Logger: logger}

	addr := flagTelemetry
	if addr == "" && cfg.Telemetry.Enabled {
		addr = cfg.Telemetry.Address
	}
	if addr != "" {
		sink := telemetry.NewTCPSink(addr)
		defer sink.Close()
		settings.Sink = sink
		logger.Info("telemetry enabled", "addr", addr)
	}

	env, err := registry.Create(flagEnv, settings)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			// Episodes still run without a database.
			logger.Warn("could not open episodes database", "error", err)
		} else {
			defer store.Close()
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	runID := uuid.New()
	policy := agent.NewRandom(env.Actions(), seed)
	logger.Info("run started", "run", runID, "env", env.ID(), "episodes", flagEpisodes, "seed", seed)

	var best float64
	for i := 1; i <= flagEpisodes; i++ {
		// Seeds are consecutive so a single episode can be replayed alone.
		rc := platformcore.RuntimeConfig{Seed: seed + int64(i-1), MaxSteps: flagMaxSteps}
		ep := agent.RunEpisode(env, policy, rc)

		logger.Info("episode finished",
			"episode", i,
			"steps", ep.Steps,
			"reward", fmt.Sprintf("%.3f", ep.TotalReward),
			"lines", ep.NormalLines+ep.GarbageLines,
			"pieces", ep.Pieces,
			"truncated", ep.Truncated,
		)
		if i == 1 || ep.TotalReward > best {
			best = ep.TotalReward
		}

		if store == nil {
			continue
		}
		if _, err := store.SaveEpisode(storage.EpisodeResult{
			RunID:        runID,
			EnvID:        env.ID(),
			Episode:      i,
			Seed:         ep.Seed,
			Steps:        ep.Steps,
			Pieces:       ep.Pieces,
			TotalReward:  ep.TotalReward,
			NormalLines:  ep.NormalLines,
			GarbageLines: ep.GarbageLines,
			Truncated:    ep.Truncated,
		}); err != nil {
			logger.Warn("could not record episode", "episode", i, "error", err)
		}
	}

	fmt.Printf("Run %s: %d episode(s) on %s, best reward %.3f\n", runID, flagEpisodes, env.ID(), best)
	return nil
}
