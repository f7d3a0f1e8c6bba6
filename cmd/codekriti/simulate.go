package main

import (
	"errors"
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/games/brickbreaker"
	"github.com/codekriti/deepsea/internal/games/bubbles"
	"github.com/codekriti/deepsea/internal/registry"
	"github.com/codekriti/deepsea/internal/telemetry"
)

var (
	flagSimFrames int
	flagSimWindow int
	flagSimCSV    string
	flagSimWidth  int
	flagSimHeight int
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <game>",
	Short: "Run a scene headless and report telemetry",
	Long: `Step a scene without a terminal and aggregate per-frame readings.

The brick breaker is driven by an autopilot paddle that restarts finished
runs; its metric is ball speed. The bubble scene's metric is mean bubble
depth. Readings are grouped into windows and optionally written as CSV.

Examples:
  codekriti simulate bubbles --frames 6000
  codekriti simulate brickbreaker --frames 36000 --window 600 --csv run.csv
  codekriti simulate brickbreaker --seed 42 --difficulty hard`,
	Args: cobra.ExactArgs(1),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagSimFrames, "frames", 3600, "Number of frames to simulate")
	simulateCmd.Flags().IntVar(&flagSimWindow, "window", 60, "Frames per telemetry window")
	simulateCmd.Flags().StringVar(&flagSimCSV, "csv", "", "Write window stats to this CSV file")
	simulateCmd.Flags().IntVar(&flagSimWidth, "width", 80, "Virtual screen width in cells")
	simulateCmd.Flags().IntVar(&flagSimHeight, "height", 24, "Virtual screen height in cells")
	simulateCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// probe drives one scene headless: it chooses each frame's input and reads
// the frame's telemetry sample. digest is optional.
type probe struct {
	input  func() core.InputFrame
	sample func() telemetry.Sample
	digest func() uint64
}

// newProbe builds the headless driver for a scene.
func newProbe(game registry.Game) (probe, error) {
	switch g := game.(type) {
	case *brickbreaker.Game:
		return probe{
			input: g.Autopilot,
			sample: func() telemetry.Sample {
				s := g.State()
				b := g.Ball()
				return telemetry.Sample{
					Metric: math.Hypot(b.VX, b.VY),
					Score:  s.Score,
					Lives:  s.Lives,
					Level:  s.Level,
					Active: g.ActiveBricks(),
					Events: g.Destroyed(),
				}
			},
			digest: func() uint64 {
				snap := g.Snapshot()
				return snap.Hash()
			},
		}, nil
	case *bubbles.Game:
		return probe{
			input: core.NewInputFrame,
			sample: func() telemetry.Sample {
				st := g.Pool().Stats()
				return telemetry.Sample{
					Metric: st.MeanY,
					Active: st.Count,
					Events: st.Recycled,
				}
			},
		}, nil
	}
	return probe{}, fmt.Errorf("scene %q has no headless driver", game.ID())
}

// simResult is the outcome of a headless run.
type simResult struct {
	Windows []telemetry.WindowStats
	Metric  telemetry.Summary
	Final   core.GameState
	Digest  uint64 // Final state hash, 0 if the scene has none
}

// simulate steps game for the given number of frames. Windows are passed to
// emit as they complete; emit may be nil.
func simulate(game registry.Game, frames, window int, emit func(telemetry.WindowStats) error) (simResult, error) {
	p, err := newProbe(game)
	if err != nil {
		return simResult{}, err
	}

	col := telemetry.NewCollector(game.ID(), window)
	metrics := make([]float64, 0, frames)
	var res simResult

	record := func(ws telemetry.WindowStats) error {
		res.Windows = append(res.Windows, ws)
		if emit != nil {
			return emit(ws)
		}
		return nil
	}

	for f := 1; f <= frames; f++ {
		game.Step(p.input())
		s := p.sample()
		s.Frame = uint64(f)
		metrics = append(metrics, s.Metric)
		if ws, ok := col.Record(s); ok {
			if err := record(ws); err != nil {
				return res, err
			}
		}
	}
	if ws, ok := col.Flush(); ok {
		if err := record(ws); err != nil {
			return res, err
		}
	}

	res.Metric = telemetry.Summarize(metrics)
	res.Final = game.State()
	if p.digest != nil {
		res.Digest = p.digest()
	}
	return res, nil
}

// windowSink receives completed windows and is closed when the run ends.
type windowSink interface {
	Write(telemetry.WindowStats) error
	Close() error
}

// simulateTo runs simulate and closes sink afterwards. A failed close is
// reported even when the run succeeded, since the file may be truncated.
func simulateTo(game registry.Game, frames, window int, sink windowSink) (simResult, error) {
	if sink == nil {
		return simulate(game, frames, window, nil)
	}
	res, err := simulate(game, frames, window, sink.Write)
	if cerr := sink.Close(); cerr != nil {
		err = errors.Join(err, fmt.Errorf("closing telemetry output: %w", cerr))
	}
	return res, err
}

func runSimulate(_ *cobra.Command, args []string) error {
	gameID := args[0]
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown scene %q", gameID)
	}
	if flagSimFrames <= 0 {
		return fmt.Errorf("--frames must be positive, got %d", flagSimFrames)
	}

	configureGame(gameID)
	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	// Keep simulated runs away from the real high score.
	if p, ok := game.(registry.Persistent); ok {
		p.AttachStore(brickbreaker.NewMemoryStore())
	}

	seed := flagSeed
	if seed == 0 {
		seed = 1
	}
	game.Reset(core.RuntimeConfig{
		ScreenW:  flagSimWidth,
		ScreenH:  flagSimHeight,
		TickRate: flagFPS,
		Seed:     seed,
	})

	out, err := telemetry.NewCSVWriter(flagSimCSV)
	if err != nil {
		return err
	}
	var sink windowSink
	if out != nil {
		sink = out
	}

	res, err := simulateTo(game, flagSimFrames, flagSimWindow, sink)
	if err != nil {
		return err
	}

	logger.Info("simulation finished",
		"game", gameID,
		"frames", flagSimFrames,
		"windows", len(res.Windows),
		"seed", seed,
	)
	logger.Info("metric",
		"mean", fmt.Sprintf("%.3f", res.Metric.Mean),
		"std", fmt.Sprintf("%.3f", res.Metric.StdDev),
		"min", fmt.Sprintf("%.3f", res.Metric.Min),
		"p10", fmt.Sprintf("%.3f", res.Metric.P10),
		"p50", fmt.Sprintf("%.3f", res.Metric.P50),
		"p90", fmt.Sprintf("%.3f", res.Metric.P90),
		"max", fmt.Sprintf("%.3f", res.Metric.Max),
	)
	logger.Info("final state",
		"phase", res.Final.Phase,
		"score", res.Final.Score,
		"lives", res.Final.Lives,
		"level", res.Final.Level,
		"hash", fmt.Sprintf("%016x", res.Digest),
	)
	if flagSimCSV != "" {
		logger.Info("telemetry written", "path", flagSimCSV)
	}
	return nil
}
