// codekriti runs the CodeKriti deep-sea scenes in the terminal.
//
// Usage:
//
//	codekriti list                - List available scenes
//	codekriti play <game>         - Play a scene
//	codekriti menu                - Start menu to pick scenes interactively
//	codekriti serve               - Start SSH server for remote play
//	codekriti scores <game>       - Show high scores for a game
//	codekriti simulate <game>     - Run a scene headless and report telemetry
//
// Global flags:
//
//	--fps <rate>         - Set frame rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible runs
//	--db <path>          - Set database path (default: ~/.codekriti/scores.db)
//	--log-file <path>    - Write debug logs to a file while the TUI runs
//	--timestep <mode>    - coupled (one update per frame) or fixed
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/frame"
	"github.com/codekriti/deepsea/internal/storage"

	// Import scenes to register them
	_ "github.com/codekriti/deepsea/internal/games/brickbreaker"
	_ "github.com/codekriti/deepsea/internal/games/bubbles"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogFile  string
	flagTimestep string
)

// logger reports to stderr outside of the TUI.
var logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: true,
	Prefix:          "codekriti",
})

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "codekriti",
	Short: "CodeKriti - deep-sea bubbles and brick breaker in your terminal",
	Long: `CodeKriti renders the deep-sea ambient bubbles and the brick breaker
mini-game in the terminal, locally or over SSH.

Available commands:
  list      - Show all available scenes
  play      - Play a specific scene directly
  menu      - Interactive scene picker menu
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run a scene headless and write telemetry

Examples:
  codekriti list
  codekriti play brickbreaker
  codekriti play bubbles --fps 30
  codekriti serve --ssh :2222
  codekriti simulate brickbreaker --frames 36000 --csv run.csv`,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		_, err := frame.ParseMode(flagTimestep)
		return err
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.codekriti/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write debug logs to this file while the TUI runs")
	rootCmd.PersistentFlags().StringVar(&flagTimestep, "timestep", "coupled", "Update timing: coupled or fixed")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(reportCmd)
}

// runtimeConfig builds the runtime config from flags and the terminal size.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW, cfg.ScreenH = w, h
	}
	if flagFPS > 0 {
		cfg.TickRate = flagFPS
	}
	cfg.Seed = flagSeed
	return cfg
}

// timestep returns the validated --timestep mode.
func timestep() frame.Mode {
	mode, err := frame.ParseMode(flagTimestep)
	if err != nil {
		return frame.Coupled
	}
	return mode
}

// openStore opens the scores database. The scenes still run without it.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// tuiLogger returns a file logger for the TUI session, or nil when
// --log-file is unset. The returned func closes the file.
func tuiLogger() (*log.Logger, func()) {
	if flagLogFile == "" {
		return nil, func() {}
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.Warn("could not open log file", "path", flagLogFile, "err", err)
		return nil, func() {}
	}
	l := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "codekriti-tui",
		Level:           log.DebugLevel,
	})
	return l, func() { f.Close() } //nolint:errcheck
}
