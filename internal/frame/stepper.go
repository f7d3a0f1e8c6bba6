package frame

import (
	"fmt"
	"time"
)

// Mode selects how wall time maps to simulation updates.
type Mode int

const (
	// Coupled runs exactly one update per frame, whatever the frame took.
	Coupled Mode = iota
	// Fixed runs as many fixed-size updates as the elapsed time covers.
	Fixed
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case Coupled:
		return "coupled"
	case Fixed:
		return "fixed"
	default:
		return "unknown"
	}
}

// ParseMode parses "coupled" or "fixed". The empty string means Coupled.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "", "coupled":
		return Coupled, nil
	case "fixed":
		return Fixed, nil
	default:
		return Coupled, fmt.Errorf("frame: unknown timestep mode %q", s)
	}
}

// Stepper converts frame arrivals into a number of simulation updates.
type Stepper struct {
	mode       Mode
	dt         time.Duration
	maxCatchUp int

	acc    time.Duration
	last   time.Time
	primed bool
}

// NewStepper creates a stepper. dt is the fixed update length and
// maxCatchUp bounds the updates run for a single frame in Fixed mode.
func NewStepper(mode Mode, dt time.Duration, maxCatchUp int) *Stepper {
	if dt <= 0 {
		dt = time.Second / 60
	}
	if maxCatchUp <= 0 {
		maxCatchUp = 1
	}
	return &Stepper{mode: mode, dt: dt, maxCatchUp: maxCatchUp}
}

// Mode returns the configured mode.
func (s *Stepper) Mode() Mode { return s.mode }

// Steps returns how many updates to run for a frame delivered at now.
// The first frame after construction or Reset always runs one update.
func (s *Stepper) Steps(now time.Time) int {
	if s.mode == Coupled {
		return 1
	}
	if !s.primed {
		s.primed = true
		s.last = now
		return 1
	}

	elapsed := now.Sub(s.last)
	s.last = now
	if elapsed > 0 {
		s.acc += elapsed
	}

	n := int(s.acc / s.dt)
	if n > s.maxCatchUp {
		// Too far behind: run the cap and drop the backlog.
		s.acc = 0
		return s.maxCatchUp
	}
	s.acc -= time.Duration(n) * s.dt
	return n
}

// Reset forgets accumulated time, e.g. after the loop was paused.
func (s *Stepper) Reset() {
	s.acc = 0
	s.primed = false
}
