// Package tui provides the Bubble Tea integration for the deep-sea scenes.
// It handles the terminal UI loop, input mapping, and frame scheduling.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codekriti/deepsea/internal/frame"
)

// FrameMsg delivers a scheduled frame. Ticket identifies the request it
// answers so stale frames can be dropped.
type FrameMsg struct {
	Ticket frame.Ticket
	At     time.Time
}

// frameCmd returns a command that delivers the ticket after one frame interval.
func frameCmd(t frame.Ticket, tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(at time.Time) tea.Msg {
		return FrameMsg{Ticket: t, At: at}
	})
}
