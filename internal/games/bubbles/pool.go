// Package bubbles implements the ambient deep-sea bubble scene: a fixed pool
// of particles that sink under light gravity, bounce off the side and top
// walls and are recycled in place once they leave through the bottom.
package bubbles

import (
	"github.com/codekriti/deepsea/internal/config"
	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/physics"
)

// Particle is one bubble. The radius is fixed for the slot's lifetime.
type Particle struct {
	physics.Body
	BaseOpacity float64
}

// Stats summarizes the pool for telemetry.
type Stats struct {
	Count       int
	MeanY       float64
	MeanOpacity float64
	Recycled    uint64 // Total recycles since the last Resize
}

// Pool owns a fixed number of particles inside a W x H pixel viewport.
type Pool struct {
	cfg       config.BubblesConfig
	rng       *core.RNG
	particles []Particle
	bounds    physics.Bounds
	recycled  uint64
}

// NewPool creates a pool of cfg.Pool.Count particles. Particles are placed
// by the first Resize.
func NewPool(cfg config.BubblesConfig, seed int64) *Pool {
	return &Pool{
		cfg:       cfg,
		rng:       core.NewRNG(seed),
		particles: make([]Particle, cfg.Pool.Count),
	}
}

// Particles exposes the particle slots for rendering. Callers must not modify them.
func (p *Pool) Particles() []Particle { return p.particles }

// Bounds returns the current viewport.
func (p *Pool) Bounds() physics.Bounds { return p.bounds }

// Resize sets the viewport and reinitializes every particle with fresh
// random attributes, positioned uniformly inside the new bounds.
func (p *Pool) Resize(w, h float64) {
	p.bounds = physics.Bounds{W: w, H: h}
	p.recycled = 0

	pool := p.cfg.Pool
	for i := range p.particles {
		pt := &p.particles[i]
		pt.R = p.rng.Range(pool.MinRadius, pool.MaxRadius)
		p.spawn(pt, p.rng.Range(pt.R, max(pt.R, h-pt.R)))
	}
}

// spawn assigns a new x, velocity and base opacity, placing the particle at y.
func (p *Pool) spawn(pt *Particle, y float64) {
	pool := p.cfg.Pool
	pt.X = p.spawnX(pt.R)
	pt.Y = y
	pt.VX = p.rng.Range(-pool.MaxDriftX, pool.MaxDriftX)
	pt.VY = p.rng.Range(0, pool.MaxDriftY)
	pt.BaseOpacity = p.rng.Range(pool.MinOpacity, pool.MaxOpacity)
}

func (p *Pool) spawnX(r float64) float64 {
	if p.bounds.W <= 2*r {
		return p.bounds.W / 2
	}
	return p.rng.Range(r, p.bounds.W-r)
}

// Step advances every particle by one frame.
func (p *Pool) Step() {
	phys := p.cfg.Physics
	for i := range p.particles {
		pt := &p.particles[i]
		physics.Integrate(&pt.Body, phys.Gravity, phys.Friction)
		physics.ResolveWalls(&pt.Body, p.bounds, phys.Damping, physics.WallOpen)
		if physics.ExitedBottom(&pt.Body, p.bounds) {
			p.recycle(pt)
		}
	}
}

// recycle overwrites the slot in place, just inside the top edge.
func (p *Pool) recycle(pt *Particle) {
	p.spawn(pt, pt.R)
	p.recycled++
}

// Color returns the depth color for a particle at y: cyan at the surface,
// through light blue and sky blue, to orange at the bottom.
func (p *Pool) Color(y float64) core.RGB {
	if p.bounds.H <= 0 {
		return core.RGBCyan
	}
	t := core.ClampF(y/p.bounds.H, 0, 1)
	switch {
	case t < 1.0/3:
		return core.RGBCyan.Lerp(core.RGBLightBlue, t*3)
	case t < 2.0/3:
		return core.RGBLightBlue.Lerp(core.RGBSkyBlue, (t-1.0/3)*3)
	default:
		return core.RGBSkyBlue.Lerp(core.RGBOrange, (t-2.0/3)*3)
	}
}

// Opacity returns the particle's opacity at its current depth. Inside the
// bottom fade zone it drops linearly to zero at the bottom edge.
func (p *Pool) Opacity(pt Particle) float64 {
	o := pt.BaseOpacity
	fade := p.cfg.Physics.FadeZone
	if edge := p.bounds.H - pt.Y; edge < fade {
		o *= edge / fade
	}
	return core.ClampF(o, 0, 1)
}

// Stats returns aggregate values over the pool.
func (p *Pool) Stats() Stats {
	s := Stats{Count: len(p.particles), Recycled: p.recycled}
	if s.Count == 0 {
		return s
	}
	for _, pt := range p.particles {
		s.MeanY += pt.Y
		s.MeanOpacity += p.Opacity(pt)
	}
	s.MeanY /= float64(s.Count)
	s.MeanOpacity /= float64(s.Count)
	return s
}
