// Package physics implements the frame-stepped kinematics and boundary
// response shared by the ambient bubbles and the brick breaker.
//
// Everything here is explicit Euler: one call advances one frame. There is no
// timestep parameter; a slower frame rate simply means a slower simulation.
package physics

// Body is a circle with a position and a per-frame velocity.
type Body struct {
	X, Y   float64 // Center
	VX, VY float64 // Velocity per frame
	R      float64 // Radius
}

// Integrate applies gravity, then friction, then moves the body one frame.
func Integrate(b *Body, gravity, friction float64) {
	b.VY += gravity
	b.VX *= friction
	b.VY *= friction
	b.X += b.VX
	b.Y += b.VY
}

// Advance moves the body one frame along its velocity, with no forces.
func Advance(b *Body) {
	b.X += b.VX
	b.Y += b.VY
}
