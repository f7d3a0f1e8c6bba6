package main

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/games/brickbreaker"
	"github.com/codekriti/deepsea/internal/games/bubbles"
	"github.com/codekriti/deepsea/internal/registry"
	"github.com/codekriti/deepsea/internal/telemetry"
)

var simRuntime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}

func newSimBrickBreaker() *brickbreaker.Game {
	g := brickbreaker.New()
	g.AttachStore(brickbreaker.NewMemoryStore())
	g.Reset(simRuntime)
	return g
}

func TestSimulateWindows(t *testing.T) {
	tests := []struct {
		frames, window int
		expected       int
	}{
		{600, 60, 10},
		{610, 60, 11}, // partial window flushed
		{30, 60, 1},
	}

	for _, tt := range tests {
		res, err := simulate(newSimBrickBreaker(), tt.frames, tt.window, nil)
		if err != nil {
			t.Fatalf("simulate failed: %v", err)
		}
		if len(res.Windows) != tt.expected {
			t.Errorf("%d frames / %d window: got %d windows, expected %d",
				tt.frames, tt.window, len(res.Windows), tt.expected)
		}
		if res.Metric.N != tt.frames {
			t.Errorf("summary covers %d frames, expected %d", res.Metric.N, tt.frames)
		}
		last := res.Windows[len(res.Windows)-1]
		if last.WindowEnd != uint64(tt.frames) {
			t.Errorf("last window ends at %d, expected %d", last.WindowEnd, tt.frames)
		}
	}
}

func TestSimulateBrickBreakerPlays(t *testing.T) {
	g := newSimBrickBreaker()
	res, err := simulate(g, 3000, 100, nil)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	var events uint64
	for _, ws := range res.Windows {
		events += ws.Events
	}
	if events != g.Destroyed() {
		t.Errorf("window events sum to %d, game destroyed %d bricks", events, g.Destroyed())
	}
	if events == 0 {
		t.Error("autopilot destroyed no bricks in 3000 frames")
	}
	// Both axes at the top level's cap of 11.
	if limit := math.Hypot(11, 11); res.Metric.Max > limit+1e-9 {
		t.Errorf("ball speed %v beyond %v", res.Metric.Max, limit)
	}
}

func TestSimulateDeterministic(t *testing.T) {
	a, err := simulate(newSimBrickBreaker(), 2000, 200, nil)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	b, err := simulate(newSimBrickBreaker(), 2000, 200, nil)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	if len(a.Windows) != len(b.Windows) {
		t.Fatalf("window counts differ: %d vs %d", len(a.Windows), len(b.Windows))
	}
	for i := range a.Windows {
		if a.Windows[i] != b.Windows[i] {
			t.Errorf("window %d differs:\n%+v\n%+v", i, a.Windows[i], b.Windows[i])
		}
	}
	if a.Digest == 0 || a.Digest != b.Digest {
		t.Errorf("final state hashes differ: %x vs %x", a.Digest, b.Digest)
	}

	c, err := simulate(newSimBrickBreaker(), 2001, 200, nil)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if c.Digest == a.Digest {
		t.Error("one more frame should change the final state hash")
	}
}

func TestSimulateBubbles(t *testing.T) {
	g := bubbles.New()
	g.Reset(simRuntime)

	res, err := simulate(g, 1200, 120, nil)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	for _, ws := range res.Windows {
		if ws.Active != 25 {
			t.Errorf("window %d: %d particles, expected 25", ws.WindowEnd, ws.Active)
		}
	}
	height := float64(simRuntime.ScreenH) * 16
	if res.Metric.Min < 0 || res.Metric.Max > height {
		t.Errorf("mean depth outside the field: [%v, %v]", res.Metric.Min, res.Metric.Max)
	}
}

func TestSimulateCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "run.csv")
	w, err := telemetry.NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter failed: %v", err)
	}

	res, err := simulate(newSimBrickBreaker(), 500, 100, w.Write)
	if err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	records, err := telemetry.ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(records) != len(res.Windows) {
		t.Fatalf("read %d records, expected %d", len(records), len(res.Windows))
	}
	if records[0].Game != "brickbreaker" || records[0].WindowEnd != 100 {
		t.Errorf("unexpected first record: %+v", records[0])
	}
}

// brokenSink accepts windows but fails to close, like a full disk would.
type brokenSink struct {
	writes int
	closed bool
}

var errDiskFull = errors.New("disk full")

func (s *brokenSink) Write(telemetry.WindowStats) error { s.writes++; return nil }
func (s *brokenSink) Close() error                      { s.closed = true; return errDiskFull }

func TestSimulateToReportsCloseError(t *testing.T) {
	sink := &brokenSink{}
	res, err := simulateTo(newSimBrickBreaker(), 300, 100, sink)
	if !errors.Is(err, errDiskFull) {
		t.Fatalf("error = %v, expected the close failure", err)
	}
	if !sink.closed {
		t.Error("sink should be closed")
	}
	if sink.writes != 3 || len(res.Windows) != 3 {
		t.Errorf("writes = %d, windows = %d, expected 3", sink.writes, len(res.Windows))
	}
}

func TestSimulateToClosesCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.csv")
	w, err := telemetry.NewCSVWriter(path)
	if err != nil {
		t.Fatalf("NewCSVWriter failed: %v", err)
	}
	if _, err := simulateTo(newSimBrickBreaker(), 200, 100, w); err != nil {
		t.Fatalf("simulateTo failed: %v", err)
	}
	// A second close hits the already closed file.
	if err := w.Close(); err == nil {
		t.Error("simulateTo should have closed the writer")
	}

	records, err := telemetry.ReadCSV(path)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("read %d records, expected 2", len(records))
	}
}

func TestSimulateToWithoutSink(t *testing.T) {
	if _, err := simulateTo(newSimBrickBreaker(), 50, 10, nil); err != nil {
		t.Fatalf("simulateTo without output failed: %v", err)
	}
}

type silentGame struct{}

func (silentGame) ID() string                           { return "silent" }
func (silentGame) Title() string                        { return "Silent" }
func (silentGame) Reset(core.RuntimeConfig)             {}
func (silentGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (silentGame) Render(*core.Screen)                  {}
func (silentGame) State() core.GameState                { return core.GameState{} }

func TestSimulateUnknownScene(t *testing.T) {
	var g registry.Game = silentGame{}
	if _, err := simulate(g, 10, 5, nil); err == nil {
		t.Error("expected an error for a scene without a headless driver")
	}
}

func TestPortOf(t *testing.T) {
	tests := []struct{ addr, expected string }{
		{":23234", "23234"},
		{"localhost:2222", "2222"},
		{"nonsense", "nonsense"},
	}
	for _, tt := range tests {
		if got := portOf(tt.addr); got != tt.expected {
			t.Errorf("portOf(%q) = %q, expected %q", tt.addr, got, tt.expected)
		}
	}
}
