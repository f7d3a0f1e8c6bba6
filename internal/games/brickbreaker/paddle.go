package brickbreaker

import (
	"github.com/charmbracelet/harmonica"

	"github.com/codekriti/deepsea/internal/config"
	"github.com/codekriti/deepsea/internal/core"
)

// Paddle is the player's paddle. X is its left edge in field pixels.
// Pointer input places it directly; key presses move a target that the
// paddle follows on a critically damped spring.
type Paddle struct {
	X, Y   float64
	W, H   float64
	fieldW float64

	target float64
	vel    float64
	spring harmonica.Spring
}

// NewPaddle creates a centered paddle for the given config.
func NewPaddle(cfg config.BrickBreakerConfig, fps int) *Paddle {
	if fps <= 0 {
		fps = 60
	}
	p := &Paddle{
		W:      cfg.Paddle.Width,
		H:      cfg.Paddle.Height,
		Y:      cfg.Field.Height - cfg.Paddle.Height - cfg.Paddle.BottomMargin,
		fieldW: cfg.Field.Width,
		spring: harmonica.NewSpring(harmonica.FPS(fps), cfg.Paddle.SpringFreq, cfg.Paddle.SpringDamp),
	}
	p.Center()
	return p
}

// Center puts the paddle in the middle of the field, at rest.
func (p *Paddle) Center() {
	p.Place((p.fieldW - p.W) / 2)
}

// Place moves the paddle's left edge to x immediately, clamped to the field.
func (p *Paddle) Place(x float64) {
	p.X = p.clamp(x)
	p.target = p.X
	p.vel = 0
}

// Nudge shifts the spring target by dx.
func (p *Paddle) Nudge(dx float64) {
	p.target = p.clamp(p.target + dx)
}

// Target returns where the spring is heading.
func (p *Paddle) Target() float64 { return p.target }

// Step advances the spring by one frame.
func (p *Paddle) Step() {
	p.X, p.vel = p.spring.Update(p.X, p.vel, p.target)
	if x := p.clamp(p.X); x != p.X {
		p.X = x
		p.vel = 0
	}
}

// Covers reports whether x lies strictly between the paddle's edges.
func (p *Paddle) Covers(x float64) bool {
	return x > p.X && x < p.X+p.W
}

func (p *Paddle) clamp(x float64) float64 {
	return core.ClampF(x, 0, p.fieldW-p.W)
}
