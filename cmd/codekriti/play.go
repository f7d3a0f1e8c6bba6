package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/codekriti/deepsea/internal/games/brickbreaker"
	"github.com/codekriti/deepsea/internal/games/bubbles"
	"github.com/codekriti/deepsea/internal/platform/tui"
	"github.com/codekriti/deepsea/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a scene",
	Long: `Start the specified scene.

Controls:
  Mouse        - Move the paddle
  Left/Right   - Nudge the paddle (also A/D)
  Space/Enter  - Start or restart
  P            - Pause
  Ctrl+S       - Save a text screenshot
  Q/Ctrl+C     - Quit

Difficulty options (brick breaker):
  easy   - Extra lives, gentler paddle speed-up
  normal - Defaults
  hard   - Fewer lives, sharper paddle speed-up

Examples:
  codekriti play bubbles
  codekriti play brickbreaker --difficulty hard
  codekriti play brickbreaker --config ./my-bricks.yaml
  codekriti play brickbreaker --timestep fixed`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// configureGame hands the config flags to a scene before it is created.
func configureGame(gameID string) {
	switch gameID {
	case "bubbles":
		bubbles.SetConfigPath(flagConfig)
	case "brickbreaker":
		brickbreaker.SetConfigPath(flagConfig)
		brickbreaker.SetDifficultyPreset(flagDifficulty)
	}
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", gameID)
		fmt.Fprintln(os.Stderr, "Run 'codekriti list' to see available scenes.")
		os.Exit(1)
	}

	configureGame(gameID)
	game, err := registry.Create(gameID)
	if err != nil {
		logger.Fatal("could not create scene", "game", gameID, "err", err)
	}

	store := openStore()
	tuiLog, closeLog := tuiLogger()

	runErr := tui.Run(game, runtimeConfig(), tui.Options{
		Store:    store,
		Logger:   tuiLog,
		Timestep: timestep(),
	})

	// Close store before potential exit
	closeLog()
	if store != nil {
		store.Close() //nolint:errcheck
	}

	if runErr != nil {
		logger.Fatal("scene stopped", "game", gameID, "err", runErr)
	}
}
