package physics

import "math"

// Bounds is the rectangular viewport [0, W] x [0, H].
type Bounds struct {
	W, H float64
}

// Walls is a set of viewport edges.
type Walls uint8

const (
	WallLeft Walls = 1 << iota
	WallRight
	WallTop
	WallBottom

	WallNone  Walls = 0
	WallSides       = WallLeft | WallRight
	WallOpen        = WallLeft | WallRight | WallTop // everything except the bottom
)

// ResolveWalls clamps the body inside the requested walls and reflects the
// velocity component normal to each wall it crossed, scaled by damping.
// The bottom wall is never reflected; use ExitedBottom for it.
// Returns the walls that were hit.
func ResolveWalls(b *Body, bounds Bounds, damping float64, walls Walls) Walls {
	hit := WallNone

	if walls&WallLeft != 0 && b.X-b.R < 0 {
		b.X = b.R
		b.VX = -b.VX * damping
		hit |= WallLeft
	} else if walls&WallRight != 0 && b.X+b.R > bounds.W {
		b.X = bounds.W - b.R
		b.VX = -b.VX * damping
		hit |= WallRight
	}

	if walls&WallTop != 0 && b.Y-b.R < 0 {
		b.Y = b.R
		b.VY = -b.VY * damping
		hit |= WallTop
	}

	return hit
}

// ExitedBottom reports whether the body is entirely below the viewport.
func ExitedBottom(b *Body, bounds Bounds) bool {
	return b.Y-b.R > bounds.H
}

// SpeedUp scales one velocity component by factor and clamps its magnitude
// to [min, max], preserving direction. A zero component stays zero.
func SpeedUp(v, factor, min, max float64) float64 {
	if v == 0 {
		return 0
	}
	mag := math.Abs(v) * factor
	if mag < min {
		mag = min
	}
	if mag > max {
		mag = max
	}
	return math.Copysign(mag, v)
}
