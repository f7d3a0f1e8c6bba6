// Package frame schedules the per-frame update and render cycle.
//
// Driver is a small state machine that decides whether a frame may be
// scheduled and whether a delivered frame is still current. It knows nothing
// about timers; the platform layer turns each Ticket into a timer and hands
// it back to Accept when it fires.
package frame

// Ticket identifies one scheduled frame.
type Ticket uint64

// Driver tracks the single pending frame request of one animation surface.
type Driver struct {
	seq       uint64
	pending   bool
	visible   bool
	cancelled bool
	accepted  uint64
}

// NewDriver returns a visible driver with nothing scheduled.
func NewDriver() *Driver {
	return &Driver{visible: true}
}

// Request schedules the next frame. It returns false when the surface is
// hidden, the driver was cancelled or a frame is already pending.
func (d *Driver) Request() (Ticket, bool) {
	if d.cancelled || !d.visible || d.pending {
		return 0, false
	}
	d.seq++
	d.pending = true
	return Ticket(d.seq), true
}

// Accept reports whether the delivered ticket should run.
// Tickets issued before a visibility change or a cancel are stale.
func (d *Driver) Accept(t Ticket) bool {
	if d.cancelled || !d.visible || !d.pending || uint64(t) != d.seq {
		return false
	}
	d.pending = false
	d.accepted++
	return true
}

// SetVisible records a visibility transition. Hiding the surface drops the
// pending frame; showing it again does not schedule one by itself.
func (d *Driver) SetVisible(v bool) {
	if d.visible == v {
		return
	}
	d.visible = v
	if !v {
		d.invalidate()
	}
}

// Cancel tears the driver down. The pending frame is dropped and every later
// Request is refused.
func (d *Driver) Cancel() {
	d.cancelled = true
	d.invalidate()
}

func (d *Driver) invalidate() {
	if d.pending {
		d.seq++
		d.pending = false
	}
}

// Visible reports the last visibility signal.
func (d *Driver) Visible() bool { return d.visible }

// Pending reports whether a frame is scheduled.
func (d *Driver) Pending() bool { return d.pending }

// Frames returns the number of accepted frames.
func (d *Driver) Frames() uint64 { return d.accepted }
