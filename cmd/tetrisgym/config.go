package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tetris-gym/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Prints the embedded default YAML configuration.

Save it as ~/.tetrisgym/configs/tetris.yaml or ./configs/tetris.yaml and
edit the keys you want to change; missing keys keep their defaults.

Examples:
  tetrisgym config > configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := os.Stdout.Write(config.GetDefaultYAML("tetris"))
		return err
	},
}
