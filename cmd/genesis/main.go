// genesis is a single-screen element-merging sandbox for the terminal.
//
// Usage:
//
//	genesis play             - Open the canvas
//	genesis serve            - Start SSH server, one canvas per user
//	genesis elements         - List elements and recipes
//	genesis history          - Show discovery history for a profile
//	genesis hint             - Spend a daily hint without opening the canvas
//	genesis reset            - Forget a profile's canvas and discoveries
//
// Global flags:
//
//	--config <path>   - Tuning config YAML (default: search order, then embedded)
//	--db <path>       - Set database path (default: ~/.genesis/genesis.db)
//	--profile <name>  - Profile to play as (default: local)
//	--fps <rate>      - Set screen refresh rate (default: 30)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/genesis/internal/config"
	"github.com/vovakirdan/genesis/internal/platform/tui"
)

// defaultProfile keeps its state under the bare persistence key.
const defaultProfile = "local"

var (
	// Global flags
	flagConfig  string
	flagDBPath  string
	flagProfile string
	flagFPS     int
	flagVerbose bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "genesis",
	Short: "Genesis - merge the elements on a canvas in your terminal",
	Long: `Genesis is a sandbox where the four base elements are summoned onto a
canvas and dragged onto each other to discover new ones.

Available commands:
  play      - Open the canvas
  serve     - Start SSH server for remote play
  elements  - List elements and recipes
  history   - Show discovery history
  hint      - Reveal a combination (3 per day)
  reset     - Start over

Examples:
  genesis play
  genesis play --profile alice
  genesis serve --ssh :2222
  genesis history`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.genesis/genesis.db", "Path to state database")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", defaultProfile, "Profile name")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Screen refresh rate")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug output")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(elementsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(hintCmd)
	rootCmd.AddCommand(resetCmd)
}

// newLogger returns the process logger.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "genesis",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadConfig loads the tuning config named by --config.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// stateKey returns the store key for the selected profile.
func stateKey(cfg config.Config) string {
	if flagProfile == defaultProfile {
		return cfg.Persistence.Key
	}
	return tui.StateKey(cfg.Persistence.Key, flagProfile)
}
