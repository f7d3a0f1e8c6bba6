package brickbreaker

import "math"

// Snapshot contains the complete game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Frame     uint64
	Phase     string
	Score     int
	Lives     int
	Level     int
	HighScore int

	PaddleX      float64
	PaddleTarget float64
	BallX, BallY float64
	BallVX       float64
	BallVY       float64
	Missed       bool

	// Brick statuses, row-major
	Bricks []int
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	bricks := make([]int, len(g.grid.Bricks))
	for i, b := range g.grid.Bricks {
		bricks[i] = b.Status
	}
	return Snapshot{
		Frame:        g.frames,
		Phase:        g.phase,
		Score:        g.score,
		Lives:        g.lives,
		Level:        g.level,
		HighScore:    g.highScore,
		PaddleX:      g.paddle.X,
		PaddleTarget: g.paddle.target,
		BallX:        g.ball.X,
		BallY:        g.ball.Y,
		BallVX:       g.ball.VX,
		BallVY:       g.ball.VY,
		Missed:       g.missed,
		Bricks:       bricks,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	for _, c := range snap.Phase {
		h = h*31 + uint64(c) //#nosec G115 -- hash computation
	}
	h = h*31 + uint64(snap.Score)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore) //#nosec G115 -- hash computation

	for _, f := range []float64{snap.PaddleX, snap.PaddleTarget, snap.BallX, snap.BallY, snap.BallVX, snap.BallVY} {
		h = h*31 + math.Float64bits(f)
	}
	if snap.Missed {
		h = h*31 + 1
	}

	for _, v := range snap.Bricks {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	return h
}
