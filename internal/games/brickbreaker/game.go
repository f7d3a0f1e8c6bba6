package brickbreaker

import (
	"github.com/codekriti/deepsea/internal/config"
	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/physics"
	"github.com/codekriti/deepsea/internal/registry"
)

// Game phases.
const (
	PhaseIdle     = "idle"     // Waiting for the first start
	PhasePlaying  = "playing"  // Ball in play
	PhaseGameOver = "gameover" // No lives left, score frozen
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// Game implements the brick breaker.
type Game struct {
	cfg     config.BrickBreakerConfig
	runtime core.RuntimeConfig
	store   HighScoreStore

	grid   *Grid
	ball   physics.Body
	paddle *Paddle
	missed bool // Ball passed the paddle line without a hit

	phase     string
	score     int
	lives     int
	level     int
	highScore int
	frames    uint64
	destroyed uint64 // Bricks destroyed since construction, across runs
}

// New creates a new brick breaker instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return "brickbreaker" }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Brick Breaker" }

// Blurb describes the game for pickers.
func (g *Game) Blurb() string { return "Steer the paddle, clear the reef of bricks." }

// AttachStore sets where the high score is persisted. Call before Reset.
func (g *Game) AttachStore(kv registry.KV) {
	g.store = kv
}

// Reset loads the config and returns the game to idle.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadBrickBreaker(configPath)
	if err != nil {
		cfg = config.DefaultBrickBreakerConfig()
	}
	if difficultyPreset != "" {
		config.ApplyBrickBreakerPreset(&cfg, difficultyPreset)
	}
	g.ResetWith(runtime, cfg)
}

// ResetWith is Reset with an explicit config, used by tests and the simulator.
// The high score is read from the store here and nowhere else.
func (g *Game) ResetWith(runtime core.RuntimeConfig, cfg config.BrickBreakerConfig) {
	g.cfg = cfg
	g.runtime = runtime
	g.paddle = NewPaddle(cfg, runtime.TickRate)
	g.highScore = loadHighScore(g.store)
	g.frames = 0
	g.setupRun()
	g.phase = PhaseIdle
}

// Resize records new screen dimensions without touching the simulation.
func (g *Game) Resize(w, h int) {
	g.runtime.ScreenW = w
	g.runtime.ScreenH = h
}

// setupRun resets score, lives and level for a fresh run.
func (g *Game) setupRun() {
	g.score = 0
	g.lives = g.cfg.Gameplay.Lives
	g.level = 1
	g.grid = NewGrid(g.level, g.cfg.Bricks)
	g.resetBall()
}

// resetBall puts the paddle in the middle and the ball above it, moving
// up and to the right at the level's base speed.
func (g *Game) resetBall() {
	g.paddle.Center()
	speed := g.BaseSpeed()
	g.ball = physics.Body{
		X:  g.cfg.Field.Width / 2,
		Y:  g.paddle.Y - 3*g.cfg.Ball.Radius,
		VX: speed,
		VY: -speed,
		R:  g.cfg.Ball.Radius,
	}
	g.missed = false
}

// BaseSpeed is the per-axis launch speed for the current level.
func (g *Game) BaseSpeed() float64 {
	return g.cfg.Ball.BaseSpeed + g.cfg.Ball.LevelSpeedUp*float64(g.level-1)
}

// MaxSpeed is the per-axis speed cap for the current level.
func (g *Game) MaxSpeed() float64 {
	return g.cfg.Ball.MaxSpeedBase + float64(g.level)
}

// Start begins a run from idle or restarts after game over.
// It returns false and changes nothing while a run is in progress.
func (g *Game) Start() bool {
	if g.phase != PhaseIdle && g.phase != PhaseGameOver {
		return false
	}
	g.setupRun()
	g.phase = PhasePlaying
	return true
}

// Step advances the game by one frame.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
		g.Start()
	}

	if g.phase == PhaseGameOver {
		return core.StepResult{State: g.State()}
	}

	g.applyPaddleInput(in)
	g.paddle.Step()

	if g.phase != PhasePlaying {
		return core.StepResult{State: g.State()}
	}

	g.frames++
	g.stepBall()

	return core.StepResult{State: g.State()}
}

// applyPaddleInput maps pointer and key input onto the paddle.
func (g *Game) applyPaddleInput(in core.InputFrame) {
	if in.HasPointer {
		if vp, ok := fitField(g.runtime.ScreenW, g.runtime.ScreenH, g.cfg.Field); ok {
			g.paddle.Place(vp.fieldX(in.Pointer) - g.paddle.W/2)
		}
	}
	if in.Has(core.ActionLeft) {
		g.paddle.Nudge(-g.cfg.Paddle.KeyStep)
	}
	if in.Has(core.ActionRight) {
		g.paddle.Nudge(g.cfg.Paddle.KeyStep)
	}
	// Outside play the platform stops sending frames, so the spring would
	// stall after one step. Jump straight to the target instead.
	if g.phase != PhasePlaying {
		g.paddle.Place(g.paddle.Target())
	}
}

// stepBall moves the ball and resolves walls, bricks, paddle and misses.
func (g *Game) stepBall() {
	b := &g.ball
	field := physics.Bounds{W: g.cfg.Field.Width, H: g.cfg.Field.Height}

	physics.Advance(b)
	physics.ResolveWalls(b, field, g.cfg.Ball.WallDamping, physics.WallOpen)

	if _, ok := g.grid.Hit(b.X, b.Y); ok {
		b.VY = -b.VY
		g.award()
		if g.grid.ActiveCount() == 0 {
			g.advanceLevel()
			return
		}
	}

	if !g.missed && b.VY > 0 && b.Y+b.R >= g.paddle.Y {
		if g.paddle.Covers(b.X) {
			g.bounceOffPaddle()
		} else {
			g.missed = true
		}
	}

	if physics.ExitedBottom(b, field) {
		g.loseLife()
	}
}

// bounceOffPaddle reflects the ball upward and speeds it up, capped per axis.
func (g *Game) bounceOffPaddle() {
	b := &g.ball
	bc := g.cfg.Ball
	b.Y = g.paddle.Y - b.R
	b.VY = -b.VY
	b.VX = physics.SpeedUp(b.VX, bc.PaddleBoost, bc.MinAxisSpeed, g.MaxSpeed())
	b.VY = physics.SpeedUp(b.VY, bc.PaddleBoost, bc.MinAxisSpeed, g.MaxSpeed())
}

// award scores a destroyed brick and persists a new high score immediately.
func (g *Game) award() {
	g.destroyed++
	g.score += g.cfg.Gameplay.PointsPerHit * g.level
	if g.score > g.highScore {
		g.highScore = g.score
		saveHighScore(g.store, g.score)
	}
}

// advanceLevel moves to the next layout without leaving the playing phase.
func (g *Game) advanceLevel() {
	g.level = core.Min(g.level+1, g.cfg.Gameplay.MaxLevel)
	g.grid = NewGrid(g.level, g.cfg.Bricks)
	g.resetBall()
}

// loseLife handles a ball that left the field.
func (g *Game) loseLife() {
	g.lives--
	if g.lives <= 0 {
		g.lives = 0
		g.phase = PhaseGameOver
		return
	}
	g.resetBall()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		Lives:    g.lives,
		Level:    g.level,
		Phase:    g.phase,
		GameOver: g.phase == PhaseGameOver,
	}
}

// Running reports whether frames are needed: only while the ball is in play.
func (g *Game) Running() bool {
	return g.phase == PhasePlaying
}

// HighScore returns the best score seen, stored or reached this session.
func (g *Game) HighScore() int { return g.highScore }

// ActiveBricks returns the number of bricks left on the current level.
func (g *Game) ActiveBricks() int { return g.grid.ActiveCount() }

// Destroyed returns the number of bricks destroyed since construction.
func (g *Game) Destroyed() uint64 { return g.destroyed }

// Ball returns a copy of the ball.
func (g *Game) Ball() physics.Body { return g.ball }

// Autopilot returns input that keeps the paddle under the ball and
// restarts finished runs. Used by headless simulation.
func (g *Game) Autopilot() core.InputFrame {
	in := core.NewInputFrame()
	if g.phase != PhasePlaying {
		in.Set(core.ActionConfirm)
		return in
	}
	const deadZone = 10
	switch offset := g.ball.X - (g.paddle.target + g.paddle.W/2); {
	case offset < -deadZone:
		in.Set(core.ActionLeft)
	case offset > deadZone:
		in.Set(core.ActionRight)
	}
	return in
}

// Register the game with the registry
func init() {
	registry.Register("brickbreaker", func() registry.Game {
		return New()
	})
}
