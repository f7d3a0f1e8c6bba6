package bubbles

import (
	"github.com/codekriti/deepsea/internal/config"
	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/registry"
)

// Bubble glyphs by radius.
const (
	GlyphSmall  = '·'
	GlyphMedium = 'o'
	GlyphLarge  = 'O'
)

// PhaseAmbient is the only phase the scene has.
const PhaseAmbient = "ambient"

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// Game wraps a Pool as a registry game. It never ends.
type Game struct {
	cfg  config.BubblesConfig
	pool *Pool
}

// New creates a new bubble scene.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "bubbles" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Deep Sea Bubbles" }

// Blurb describes the scene for pickers.
func (g *Game) Blurb() string { return "Drifting bubbles, tinted by depth. Just watch." }

// Reset loads the config and sizes the pool to the screen in logical pixels.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBubbles(configPath)
	if err != nil {
		cfg = config.DefaultBubblesConfig()
	}
	g.ResetWith(runtime, cfg)
}

// ResetWith is Reset with an explicit config, used by tests and the simulator.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.BubblesConfig) {
	g.cfg = cfg
	g.pool = NewPool(cfg, runtime.Seed)
	g.pool.Resize(
		float64(runtime.ScreenW)*cfg.Render.CellWidth,
		float64(runtime.ScreenH)*cfg.Render.CellHeight,
	)
}

// Resize re-rolls the pool for a new terminal size in cells. The RNG keeps
// its position, so the new bubbles differ from the ones drawn at reset.
func (g *Game) Resize(w, h int) {
	if g.pool == nil {
		return
	}
	g.pool.Resize(float64(w)*g.cfg.Render.CellWidth, float64(h)*g.cfg.Render.CellHeight)
}

// Pool exposes the particle pool.
func (g *Game) Pool() *Pool { return g.pool }

// Step advances the scene by one frame. Input is ignored.
func (g *Game) Step(_ core.InputFrame) core.StepResult {
	if g.pool != nil {
		g.pool.Step()
	}
	return core.StepResult{State: g.State()}
}

// Render draws each bubble into the cell under its center, tinted by depth
// and blended into the sea background by its opacity.
func (g *Game) Render(dst *core.Screen) {
	if !dst.Ready() || g.pool == nil {
		return
	}
	dst.Clear()

	r := g.cfg.Render
	for _, pt := range g.pool.Particles() {
		cx := int(pt.X / r.CellWidth)
		cy := int(pt.Y / r.CellHeight)
		alpha := core.ClampF(g.pool.Opacity(pt)*r.Gain, 0, 1)
		if alpha <= 0 {
			continue
		}
		color := g.pool.Color(pt.Y).Over(core.RGBDeepSea, alpha)
		dst.SetRGB(cx, cy, glyphFor(pt.R), color)
	}
}

func glyphFor(r float64) rune {
	switch {
	case r < 4:
		return GlyphSmall
	case r < 6:
		return GlyphMedium
	default:
		return GlyphLarge
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{Phase: PhaseAmbient}
}

// Running always reports true: the scene resumes whenever it becomes visible.
func (g *Game) Running() bool { return true }

func init() {
	registry.Register("bubbles", func() registry.Game {
		return New()
	})
}
