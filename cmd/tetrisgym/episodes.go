package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	platformcore "github.com/vovakirdan/tetris-gym/internal/core"
	"github.com/vovakirdan/tetris-gym/internal/registry"
	"github.com/vovakirdan/tetris-gym/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var episodesCmd = &cobra.Command{
	Use:   "episodes <env>",
	Short: "Show the best recorded episodes for an environment",
	Long: `Display the highest-reward episodes recorded for the specified
environment, followed by aggregate statistics.

Examples:
  tetrisgym episodes tetris
  tetrisgym episodes tetris_garbage --limit 25
  tetrisgym episodes tetris --clear`,
	Args: cobra.ExactArgs(1),
	Run:  runEpisodes,
}

func init() {
	episodesCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of episodes to show (1-100)")
	episodesCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded episodes for the environment")
}

func runEpisodes(cmd *cobra.Command, args []string) {
	envID := args[0]

	// Check if environment exists
	if !registry.Exists(envID) {
		fmt.Fprintf(os.Stderr, "Error: unknown environment %q\n", envID)
		fmt.Fprintln(os.Stderr, "Run 'tetrisgym list' to see available environments.")
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening episodes database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearEpisodes(envID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing episodes: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cleared recorded episodes for %s.\n", envID)
		return
	}

	episodes, err := store.TopEpisodes(envID, platformcore.Clamp(flagLimit, 1, 100))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving episodes: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best Episodes - %s\n", envID)
	fmt.Println()

	if len(episodes) == 0 {
		fmt.Println("No episodes recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'tetrisgym run --env %s' to record some.\n", envID)
		return
	}

	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-6s  %-8s  %s\n", "Rank", "Reward", "Steps", "Lines", "Pieces", "Run", "Date")
	fmt.Printf("  %-4s  %-10s  %-6s  %-6s  %-6s  %-8s  %s\n", "----", "------", "-----", "-----", "------", "---", "----")

	for i, e := range episodes {
		steps := fmt.Sprintf("%d", e.Steps)
		if e.Truncated {
			steps += "+"
		}
		fmt.Printf("  %-4d  %-10.3f  %-6s  %-6d  %-6d  %-8s  %s\n",
			i+1, e.TotalReward, steps, e.Lines(), e.Pieces,
			e.RunID.String()[:8], e.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.GetEnvStats(envID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Episodes: %d over %d run(s)\n", stats.Episodes, stats.Runs)
		fmt.Printf("Best: %.3f  Avg: %.3f  Avg steps: %.1f  Max lines: %d\n",
			stats.BestReward, stats.AvgReward, stats.AvgSteps, stats.MaxLines)
	}
}
