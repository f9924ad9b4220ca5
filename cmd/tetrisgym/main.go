// tetrisgym runs the Tetris training environments headlessly.
//
// Usage:
//
//	tetrisgym list              - List available environments
//	tetrisgym run               - Run episodes with the random driver
//	tetrisgym episodes <env>    - Show the best recorded episodes
//	tetrisgym config            - Print the default configuration
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible episodes
//	--db <path>          - Set database path (default: ~/.tetrisgym/episodes.db)
//	--log-level <level>  - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	// Import environments to register them
	_ "github.com/vovakirdan/tetris-gym/internal/games/tetris"
)

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tetrisgym",
	Short: "Tetris Gym - headless Tetris environments for reinforcement learning",
	Long: `Tetris Gym runs a deterministic Tetris simulation as a training
environment: integer actions in, rewards and observation vectors out.

Available commands:
  list      - Show all available environments
  run       - Run episodes with the random baseline driver
  episodes  - View the best recorded episodes
  config    - Print the default configuration

Examples:
  tetrisgym list
  tetrisgym run --env tetris --episodes 10 --seed 42
  tetrisgym run --env tetris_garbage --telemetry 127.0.0.1:5000
  tetrisgym episodes tetris`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.tetrisgym/episodes.db", "Path to episodes database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(episodesCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger. Output is JSON when stderr is not a
// terminal so that piped runs stay machine readable.
func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q", flagLogLevel)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tetrisgym",
		Level:           level,
	})
	if !term.IsTerminal(int(os.Stderr.Fd())) {
		logger.SetFormatter(log.JSONFormatter)
	}
	return logger, nil
}
