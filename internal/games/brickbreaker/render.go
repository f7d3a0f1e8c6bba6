package brickbreaker

import (
	"fmt"
	"math"

	"github.com/codekriti/deepsea/internal/config"
	"github.com/codekriti/deepsea/internal/core"
)

// Visual characters for rendering
const (
	BrickChar  = '█'
	PaddleChar = '='
	BallChar   = '●'
)

// hudRows is the number of rows above the field.
const hudRows = 1

// Minimum field size in cells.
const (
	minFieldW = 28
	minFieldH = 14
)

// viewport is where the field lands on screen. Cells are about twice as
// tall as they are wide, so the square field is drawn twice as wide.
type viewport struct {
	x, y, w, h int
	sx, sy     float64 // Field pixels per cell
}

// fitField computes the largest viewport that fits below the HUD.
// Returns false if the screen is too small to play on.
func fitField(screenW, screenH int, field config.BrickField) (viewport, bool) {
	h := core.Min(screenH-hudRows, screenW/2)
	w := h * 2
	if w < minFieldW || h < minFieldH {
		return viewport{}, false
	}
	return viewport{
		x:  (screenW - w) / 2,
		y:  hudRows,
		w:  w,
		h:  h,
		sx: field.Width / float64(w),
		sy: field.Height / float64(h),
	}, true
}

func (v viewport) cellX(px float64) int {
	return v.x + core.Clamp(int(px/v.sx), 0, v.w-1)
}

func (v viewport) cellY(py float64) int {
	return v.y + core.Clamp(int(py/v.sy), 0, v.h-1)
}

// fieldX maps a screen column to the field pixel at the column's center.
func (v viewport) fieldX(col int) float64 {
	return (float64(col-v.x) + 0.5) * v.sx
}

// Render draws the HUD, bricks, paddle, ball and any overlay.
func (g *Game) Render(dst *core.Screen) {
	if !dst.Ready() || g.grid == nil {
		return
	}
	dst.Clear()

	vp, ok := fitField(dst.Width(), dst.Height(), g.cfg.Field)
	if !ok {
		dst.DrawTextCentered(dst.Height()/2-1, "Window too small")
		dst.DrawTextCentered(dst.Height()/2+1, fmt.Sprintf("Need %dx%d", minFieldW, minFieldH+hudRows))
		return
	}

	g.renderHUD(dst)
	g.renderField(dst, vp)
	g.renderBricks(dst, vp)
	g.renderPaddle(dst, vp)
	if g.phase == PhasePlaying {
		dst.SetColor(vp.cellX(g.ball.X), vp.cellY(g.ball.Y), BallChar, core.ColorBrightYellow)
	}
	g.renderOverlay(dst)
}

// renderHUD draws score, lives, level and high score on the top row.
func (g *Game) renderHUD(dst *core.Screen) {
	dst.DrawText(1, 0, fmt.Sprintf("Score: %d", g.score))
	dst.DrawTextCentered(0, fmt.Sprintf("Lives: %d  Level: %d", g.lives, g.level))
	best := fmt.Sprintf("Best: %d", g.highScore)
	dst.DrawText(dst.Width()-len(best)-1, 0, best)
}

// renderField draws the side walls of the play area.
func (g *Game) renderField(dst *core.Screen, vp viewport) {
	dst.DrawVLine(vp.x-1, vp.y, vp.h, '│')
	dst.DrawVLine(vp.x+vp.w, vp.y, vp.h, '│')
}

// span returns the cells lying fully inside [lo, hi) on one axis. When the
// interval is narrower than a cell, the cell under its midpoint is used.
func span(lo, hi, scale float64, origin, size int) (int, int) {
	a := int(math.Ceil(lo / scale))
	b := int(math.Floor(hi/scale)) - 1
	if b < a {
		a = int((lo + hi) / 2 / scale)
		b = a
	}
	return origin + core.Clamp(a, 0, size-1), origin + core.Clamp(b, 0, size-1)
}

// renderBricks draws every active brick, tinted by row from cyan to orange.
func (g *Game) renderBricks(dst *core.Screen, vp viewport) {
	for _, b := range g.grid.Bricks {
		if b.Status != StatusActive {
			continue
		}
		t := 0.0
		if g.grid.Rows > 1 {
			t = float64(b.Row) / float64(g.grid.Rows-1)
		}
		color := core.RGBCyan.Lerp(core.RGBOrange, t)

		r := g.grid.Rect(b)
		x0, x1 := span(r.X, r.X+r.W, vp.sx, vp.x, vp.w)
		y0, y1 := span(r.Y, r.Y+r.H, vp.sy, vp.y, vp.h)
		for y := y0; y <= y1; y++ {
			for x := x0; x <= x1; x++ {
				dst.SetRGB(x, y, BrickChar, color)
			}
		}
	}
}

func (g *Game) renderPaddle(dst *core.Screen, vp viewport) {
	p := g.paddle
	y := vp.cellY(p.Y)
	for x := vp.cellX(p.X); x <= vp.cellX(p.X+p.W-1); x++ {
		dst.SetColor(x, y, PaddleChar, core.ColorBrightWhite)
	}
}

// renderOverlay draws the idle and game over boxes.
func (g *Game) renderOverlay(dst *core.Screen) {
	switch g.phase {
	case PhaseIdle:
		drawCenteredBox(dst, "BRICK BREAKER", "Press SPACE to start")
	case PhaseGameOver:
		drawCenteredBox(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  SPACE to restart", g.score))
	}
}

// drawCenteredBox draws a centered message box.
func drawCenteredBox(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	dst.DrawText(boxX+(boxW-len(title))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle)
}
