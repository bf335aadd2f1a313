// voyager is a terminal endless runner: steer a craft through drifting
// enemy formations while the run speeds up.
//
// Usage:
//
//	voyager play             - Fly locally
//	voyager scores           - Show the best runs
//	voyager serve            - Start SSH server for remote play
//	voyager config           - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.voyager/scores.db)
//	--config <path>       - Load a custom config YAML
//	--difficulty <preset> - easy, normal, hard, fixed
//	--log <path>          - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogPath    string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voyager",
	Short: "Space Voyager - an endless runner in your terminal",
	Long: `Space Voyager is a terminal endless runner. Thrust to climb, fall to
dive, and slip between enemy formations as the voyage speeds up.

Available commands:
  play     - Fly locally
  scores   - View the best and most recent runs
  serve    - Start SSH server for remote play
  config   - Print the effective configuration as YAML

Examples:
  voyager play
  voyager play --difficulty hard --seed 42
  voyager serve --ssh :2222
  voyager scores --recent`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.voyager/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write logs to this file (default: discard while playing)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}
