package bubbles

import (
	"math"
	"testing"

	"github.com/codekriti/deepsea/internal/config"
	"github.com/codekriti/deepsea/internal/core"
)

const eps = 1e-9

func newTestPool(t *testing.T, w, h float64) *Pool {
	t.Helper()
	p := NewPool(config.DefaultBubblesConfig(), 42)
	p.Resize(w, h)
	return p
}

func TestPoolSpawnRanges(t *testing.T) {
	p := newTestPool(t, 640, 384)

	if len(p.Particles()) != 25 {
		t.Fatalf("Len() = %d, expected 25", len(p.Particles()))
	}
	for i, pt := range p.Particles() {
		if pt.R < 2 || pt.R > 8 {
			t.Errorf("particle %d radius %v outside [2, 8]", i, pt.R)
		}
		if pt.BaseOpacity < 0.1 || pt.BaseOpacity > 0.3 {
			t.Errorf("particle %d base opacity %v outside [0.1, 0.3]", i, pt.BaseOpacity)
		}
		if pt.VX < -0.5 || pt.VX > 0.5 {
			t.Errorf("particle %d vx %v outside [-0.5, 0.5]", i, pt.VX)
		}
		if pt.VY < 0 || pt.VY > 0.5 {
			t.Errorf("particle %d vy %v outside [0, 0.5]", i, pt.VY)
		}
		if pt.X < pt.R || pt.X > 640-pt.R || pt.Y < pt.R || pt.Y > 384-pt.R {
			t.Errorf("particle %d spawned outside bounds at (%v, %v)", i, pt.X, pt.Y)
		}
	}
}

func TestPoolContainmentAndOpacity(t *testing.T) {
	const w, h = 320.0, 240.0
	p := newTestPool(t, w, h)
	radii := make([]float64, len(p.Particles()))
	for i, pt := range p.Particles() {
		radii[i] = pt.R
	}

	for frame := 0; frame < 5000; frame++ {
		p.Step()
		for i, pt := range p.Particles() {
			if pt.X < pt.R-eps || pt.X > w-pt.R+eps {
				t.Fatalf("frame %d: particle %d x=%v escaped [r, w-r]", frame, i, pt.X)
			}
			if pt.Y > h+pt.R {
				t.Fatalf("frame %d: particle %d y=%v below the recycle line", frame, i, pt.Y)
			}
			if o := p.Opacity(pt); o < 0 || o > 1 {
				t.Fatalf("frame %d: particle %d opacity %v outside [0, 1]", frame, i, o)
			}
			if pt.R != radii[i] {
				t.Fatalf("frame %d: particle %d radius changed", frame, i)
			}
		}
	}

	if len(p.Particles()) != 25 {
		t.Errorf("pool size changed to %d", len(p.Particles()))
	}
	if p.Stats().Recycled == 0 {
		t.Error("expected some particles to be recycled over 5000 frames")
	}
}

func TestPoolRecycleInPlace(t *testing.T) {
	p := newTestPool(t, 200, 100)
	pt := &p.particles[0]
	r := pt.R
	pt.X, pt.Y = 100, 100+r+1
	pt.VX, pt.VY = 0, 1

	p.Step()

	if pt.Y != r {
		t.Errorf("recycled particle y = %v, expected r = %v", pt.Y, r)
	}
	if pt.R != r {
		t.Errorf("recycled particle radius changed from %v to %v", r, pt.R)
	}
	if pt.BaseOpacity < 0.1 || pt.BaseOpacity > 0.3 {
		t.Errorf("recycled base opacity %v outside range", pt.BaseOpacity)
	}
	if p.Stats().Recycled != 1 {
		t.Errorf("Recycled = %d, expected 1", p.Stats().Recycled)
	}
}

func TestOpacityFadeZone(t *testing.T) {
	p := newTestPool(t, 200, 400)

	tests := []struct {
		name string
		y    float64
		want float64
	}{
		{"above fade zone", 200, 0.2},
		{"fade zone edge", 350, 0.2},
		{"10px above bottom", 390, 0.2 * 10.0 / 50.0},
		{"at bottom", 400, 0},
		{"below bottom", 410, 0},
	}

	for _, tt := range tests {
		pt := Particle{BaseOpacity: 0.2}
		pt.Y = tt.y
		if got := p.Opacity(pt); math.Abs(got-tt.want) > eps {
			t.Errorf("%s: Opacity() = %v, expected %v", tt.name, got, tt.want)
		}
	}

	pt := Particle{BaseOpacity: 0.25}
	pt.Y = 400 - 10
	if got := p.Opacity(pt); got >= pt.BaseOpacity {
		t.Errorf("opacity in fade zone %v should be below base %v", got, pt.BaseOpacity)
	}
}

func TestColorBands(t *testing.T) {
	p := newTestPool(t, 300, 300)

	tests := []struct {
		y    float64
		want core.RGB
	}{
		{0, core.RGBCyan},
		{100, core.RGBLightBlue},
		{200, core.RGBSkyBlue},
		{300, core.RGBOrange},
		{-50, core.RGBCyan},
		{900, core.RGBOrange},
	}

	for _, tt := range tests {
		if got := p.Color(tt.y); got != tt.want {
			t.Errorf("Color(%v) = %s, expected %s", tt.y, got.Hex(), tt.want.Hex())
		}
	}
}

func TestResizeReinitializes(t *testing.T) {
	p := newTestPool(t, 200, 200)
	for i := 0; i < 500; i++ {
		p.Step()
	}

	p.Resize(800, 600)
	if p.Stats().Recycled != 0 {
		t.Error("Resize should reset the recycle counter")
	}
	for i, pt := range p.Particles() {
		if pt.X < pt.R || pt.X > 800-pt.R || pt.Y < pt.R || pt.Y > 600-pt.R {
			t.Errorf("particle %d outside new bounds at (%v, %v)", i, pt.X, pt.Y)
		}
	}
}

func TestGameResizeRerollsPool(t *testing.T) {
	cfg := config.DefaultBubblesConfig()
	g := New()
	g.ResetWith(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, Seed: 7}, cfg)
	before := append([]Particle(nil), g.Pool().Particles()...)

	g.Resize(80, 30)

	w, h := 80*cfg.Render.CellWidth, 30*cfg.Render.CellHeight
	if b := g.Pool().Bounds(); b.W != w || b.H != h {
		t.Fatalf("bounds = %+v, expected %vx%v", b, w, h)
	}
	same := 0
	for i, pt := range g.Pool().Particles() {
		if pt.R == before[i].R && pt.VY == before[i].VY && pt.BaseOpacity == before[i].BaseOpacity {
			same++
		}
		if pt.X < pt.R || pt.X > w-pt.R || pt.Y < pt.R || pt.Y > h-pt.R {
			t.Errorf("particle %d outside resized bounds at (%v, %v)", i, pt.X, pt.Y)
		}
	}
	if same == len(before) {
		t.Errorf("all %d particles kept their attributes after resize", same)
	}
}

func TestGameResizeBeforeReset(t *testing.T) {
	g := New()
	g.Resize(80, 30)
	if g.Pool() != nil {
		t.Error("resize before reset should not build a pool")
	}
}

func TestPoolDeterminism(t *testing.T) {
	a := newTestPool(t, 400, 300)
	b := newTestPool(t, 400, 300)

	for i := 0; i < 1000; i++ {
		a.Step()
		b.Step()
	}

	for i := range a.Particles() {
		if a.Particles()[i] != b.Particles()[i] {
			t.Fatalf("particle %d diverged with identical seeds", i)
		}
	}
}

func TestGameRender(t *testing.T) {
	g := New()
	g.ResetWith(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, Seed: 7}, config.DefaultBubblesConfig())
	g.Step(core.NewInputFrame())

	screen := core.NewScreen(40, 20)
	g.Render(screen)

	drawn := 0
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			cell := screen.GetCell(x, y)
			switch cell.Rune {
			case GlyphSmall, GlyphMedium, GlyphLarge:
				drawn++
				if cell.Color != core.ColorRGB {
					t.Errorf("bubble at (%d, %d) should use an RGB color", x, y)
				}
			}
		}
	}
	if drawn == 0 {
		t.Error("expected at least one bubble to be drawn")
	}
	if !g.Running() {
		t.Error("bubble scene should always be running")
	}
}

func TestGameRenderUnavailableScreen(t *testing.T) {
	g := New()
	g.ResetWith(core.RuntimeConfig{ScreenW: 40, ScreenH: 20, Seed: 7}, config.DefaultBubblesConfig())

	g.Render(nil)
	g.Render(core.NewScreen(0, 0))
}

func TestGlyphFor(t *testing.T) {
	tests := []struct {
		r    float64
		want rune
	}{
		{2, GlyphSmall},
		{3.99, GlyphSmall},
		{4, GlyphMedium},
		{5.5, GlyphMedium},
		{6, GlyphLarge},
		{7.9, GlyphLarge},
	}
	for _, tt := range tests {
		if got := glyphFor(tt.r); got != tt.want {
			t.Errorf("glyphFor(%v) = %q, expected %q", tt.r, got, tt.want)
		}
	}
}
