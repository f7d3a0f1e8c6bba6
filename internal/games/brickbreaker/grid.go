// Package brickbreaker implements the brick-breaker mini-game: a ball, a
// paddle and a 7x5 brick grid whose layout changes with the level.
package brickbreaker

import (
	"github.com/codekriti/deepsea/internal/config"
	"github.com/codekriti/deepsea/internal/core"
)

// Brick status values.
const (
	StatusDestroyed = 0
	StatusActive    = 1
)

// Default grid size.
const (
	DefaultColumns = 7
	DefaultRows    = 5
)

// PatternLevels is the number of distinct level layouts. Later levels
// re-issue the last one.
const PatternLevels = 5

// Brick is one grid cell. X and Y are the top-left corner in field pixels.
type Brick struct {
	Col, Row int
	X, Y     float64
	Status   int
}

// Active reports whether the brick at (col, row) starts active on the
// given level of a 7x5 grid.
func Active(level, col, row int) bool {
	return ActiveIn(level, DefaultColumns, DefaultRows, col, row)
}

// ActiveIn is Active for an arbitrary grid size.
//
//	1: every brick
//	2: checkerboard
//	3: pillars on even columns
//	4: diamond pointing down from the top row
//	5: fortress, border plus the middle row
func ActiveIn(level, cols, rows, col, row int) bool {
	if col < 0 || col >= cols || row < 0 || row >= rows {
		return false
	}
	switch core.Clamp(level, 1, PatternLevels) {
	case 1:
		return true
	case 2:
		return (col+row)%2 == 0
	case 3:
		return col%2 == 0
	case 4:
		center := cols / 2
		return core.Abs(col-center)+row <= center+1
	default:
		return row == 0 || row == rows-1 || col == 0 || col == cols-1 || row == 2
	}
}

// Grid is the brick layout of one level.
type Grid struct {
	Cols, Rows int
	Bricks     []Brick // Row-major
	layout     config.BrickLayout
	active     int
}

// NewGrid allocates the grid for a level, activating bricks by pattern.
func NewGrid(level int, layout config.BrickLayout) *Grid {
	g := &Grid{
		Cols:   layout.Columns,
		Rows:   layout.Rows,
		Bricks: make([]Brick, layout.Columns*layout.Rows),
		layout: layout,
	}
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Cols; col++ {
			b := &g.Bricks[row*g.Cols+col]
			b.Col, b.Row = col, row
			b.X = layout.OffsetLeft + float64(col)*(layout.Width+layout.Padding)
			b.Y = layout.OffsetTop + float64(row)*(layout.Height+layout.Padding)
			if ActiveIn(level, g.Cols, g.Rows, col, row) {
				b.Status = StatusActive
				g.active++
			}
		}
	}
	return g
}

// Rect returns the brick's rectangle in field pixels.
func (g *Grid) Rect(b Brick) core.RectF {
	return core.RectF{X: b.X, Y: b.Y, W: g.layout.Width, H: g.layout.Height}
}

// At returns the brick at (col, row).
func (g *Grid) At(col, row int) Brick {
	return g.Bricks[row*g.Cols+col]
}

// Hit destroys the first active brick that strictly contains (x, y).
// Returns the brick and true on a hit.
func (g *Grid) Hit(x, y float64) (Brick, bool) {
	for i := range g.Bricks {
		b := &g.Bricks[i]
		if b.Status != StatusActive {
			continue
		}
		if g.Rect(*b).ContainsOpen(x, y) {
			b.Status = StatusDestroyed
			g.active--
			return *b, true
		}
	}
	return Brick{}, false
}

// ActiveCount returns the number of bricks still standing.
func (g *Grid) ActiveCount() int {
	return g.active
}
