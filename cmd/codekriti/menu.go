package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/platform/tui"
	"github.com/codekriti/deepsea/internal/registry"
	"github.com/codekriti/deepsea/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scene picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scene.
Press B or Esc in a scene to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scene
  Tab          - Brick breaker records
  Q            - Quit

Examples:
  codekriti menu
  codekriti menu --fps 30
  codekriti menu --db ./scores.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	tuiLog, closeLog := tuiLogger()
	defer closeLog()

	cfg := runtimeConfig()
	for {
		res, err := tui.RunLobby(store, cfg)
		if err != nil {
			logger.Error("lobby failed", "err", err)
			return
		}
		cfg = res.Config

		switch res.Choice {
		case tui.ChoiceScores:
			back, err := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				logger.Error("records failed", "err", err)
			}
			if !back {
				return
			}
		case tui.ChoicePlay:
			playFromLobby(res.GameID, cfg, store, tuiLog)
		default:
			return
		}
	}
}

// playFromLobby runs one scene full screen and returns when it ends.
func playFromLobby(gameID string, cfg core.RuntimeConfig, store *storage.Store, tuiLog *log.Logger) {
	configureGame(gameID)
	game, err := registry.Create(gameID)
	if err != nil {
		logger.Error("could not create scene", "game", gameID, "err", err)
		return
	}

	// Fresh seed for each run unless one was pinned
	if flagSeed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if err := tui.Run(game, cfg, tui.Options{
		Store:    store,
		Logger:   tuiLog,
		Timestep: timestep(),
	}); err != nil {
		logger.Error("scene stopped", "game", gameID, "err", err)
	}
}
