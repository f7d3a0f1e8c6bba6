package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codekriti/deepsea/internal/core"
)

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"a", keyRune('a'), core.ActionLeft, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionRight, false},
		{"d", keyRune('d'), core.ActionRight, false},
		{"space", tea.KeyMsg{Type: tea.KeySpace}, core.ActionConfirm, false},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p", keyRune('p'), core.ActionPause, false},
		{"r", keyRune('r'), core.ActionRestart, false},
		{"q", keyRune('q'), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", keyRune('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetRGB(3, 0, 'o', core.RGBCyan)
	s.SetRGB(4, 0, 'o', core.RGBCyan)
	s.SetColor(0, 1, '#', core.ColorRed)

	out := RenderScreen(s)
	lines := 0
	for _, r := range out {
		if r == '\n' {
			lines++
		}
	}
	if lines != 1 {
		t.Errorf("expected 2 rows, got %d", lines+1)
	}
	for _, want := range []string{"ab", "o", "#"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered screen missing %q", want)
		}
	}

	if RenderScreen(core.NewScreen(0, 0)) != "" {
		t.Error("unusable screen should render empty")
	}
}

func TestSameStyle(t *testing.T) {
	a := core.Cell{Rune: 'x', Color: core.ColorRGB, RGB: core.RGBCyan}
	b := core.Cell{Rune: 'y', Color: core.ColorRGB, RGB: core.RGBCyan}
	c := core.Cell{Rune: 'x', Color: core.ColorRGB, RGB: core.RGBOrange}
	d := core.Cell{Rune: 'x', Color: core.ColorDefault, RGB: core.RGBOrange}
	e := core.Cell{Rune: 'x', Color: core.ColorDefault}

	if !sameStyle(a, b) {
		t.Error("equal RGB cells should share a style")
	}
	if sameStyle(a, c) {
		t.Error("different RGB cells should not share a style")
	}
	if !sameStyle(d, e) {
		t.Error("RGB is ignored for palette colors")
	}
}
