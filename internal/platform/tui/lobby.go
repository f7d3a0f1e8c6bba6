package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/registry"
	"github.com/codekriti/deepsea/internal/storage"
)

var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	taglineStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	pickedStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	blurbStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	badgeStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpBarStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	panelBorder   = lipgloss.RoundedBorder()
	panelBorderFg = lipgloss.Color("240")
)

type lobbyKeys struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Scores key.Binding
	Quit   key.Binding
}

func (k lobbyKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Play, k.Scores, k.Quit}
}

func (k lobbyKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newLobbyKeys() lobbyKeys {
	return lobbyKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k", "w"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j", "s"), key.WithHelp("↓/j", "down")),
		Play:   key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "play")),
		Scores: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "records")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// LobbyChoice is how the player left the lobby.
type LobbyChoice int

const (
	ChoiceNone LobbyChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceQuit
)

// LobbyEntry is one scene on offer.
type LobbyEntry struct {
	registry.GameInfo
	Best int // Best finished run; 0 when none or no store
}

// Lobby lists the registered scenes and hands the pick back to its caller.
type Lobby struct {
	entries []LobbyEntry
	cursor  int
	config  core.RuntimeConfig
	keys    lobbyKeys
	help    help.Model
	choice  LobbyChoice
}

// NewLobby builds the lobby, reading best runs from store when there is one.
func NewLobby(store *storage.Store, cfg core.RuntimeConfig) Lobby {
	games := registry.List()
	entries := make([]LobbyEntry, len(games))
	for i, g := range games {
		entries[i] = LobbyEntry{GameInfo: g}
		if store == nil {
			continue
		}
		if best, err := store.HighScore(g.ID); err == nil {
			entries[i].Best = best
		}
	}

	h := help.New()
	h.Width = cfg.ScreenW
	return Lobby{
		entries: entries,
		config:  cfg,
		keys:    newLobbyKeys(),
		help:    h,
	}
}

func (m Lobby) Init() tea.Cmd { return nil }

func (m Lobby) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.choice = ChoiceQuit
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(m.cursor-1, 0)
		case key.Matches(msg, m.keys.Down):
			if m.cursor < len(m.entries)-1 {
				m.cursor++
			}
		case key.Matches(msg, m.keys.Play):
			if len(m.entries) > 0 {
				m.choice = ChoicePlay
				return m, tea.Quit
			}
		case key.Matches(msg, m.keys.Scores):
			m.choice = ChoiceScores
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Lobby) View() string {
	if m.choice == ChoiceQuit {
		return ""
	}

	var list strings.Builder
	for i, e := range m.entries {
		marker, title := "  ", e.Title
		if i == m.cursor {
			marker, title = "▸ ", pickedStyle.Render(e.Title)
		}
		list.WriteString(marker + title)
		if e.Best > 0 {
			list.WriteString(badgeStyle.Render(fmt.Sprintf("  best %d", e.Best)))
		}
		list.WriteString("\n")
		if e.Blurb != "" {
			list.WriteString("  " + blurbStyle.Render(e.Blurb) + "\n")
		}
	}
	if len(m.entries) == 0 {
		list.WriteString(blurbStyle.Render("No scenes registered."))
	}

	panel := lipgloss.NewStyle().
		Border(panelBorder).
		BorderForeground(panelBorderFg).
		Padding(0, 2).
		Render(strings.TrimRight(list.String(), "\n"))

	page := lipgloss.JoinVertical(lipgloss.Center,
		"",
		bannerStyle.Render("C O D E K R I T I"),
		taglineStyle.Render("deep sea scenes"),
		"",
		panel,
		helpBarStyle.Render(m.help.View(m.keys)),
	)
	return lipgloss.PlaceHorizontal(m.config.ScreenW, lipgloss.Center, page)
}

// Choice reports how the player left the lobby.
func (m Lobby) Choice() LobbyChoice { return m.choice }

// Picked returns the scene under the cursor.
func (m Lobby) Picked() string {
	if len(m.entries) == 0 {
		return ""
	}
	return m.entries[m.cursor].ID
}

// Config returns the runtime config, updated by resizes.
func (m Lobby) Config() core.RuntimeConfig { return m.config }

// LobbyResult is the outcome of RunLobby.
type LobbyResult struct {
	Choice LobbyChoice
	GameID string // Set for ChoicePlay
	Config core.RuntimeConfig
}

// RunLobby shows the lobby full screen until the player picks something.
func RunLobby(store *storage.Store, cfg core.RuntimeConfig) (LobbyResult, error) {
	final, err := tea.NewProgram(NewLobby(store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return LobbyResult{Choice: ChoiceQuit, Config: cfg}, err
	}

	m, ok := final.(Lobby)
	if !ok || m.Choice() == ChoiceNone {
		return LobbyResult{Choice: ChoiceQuit, Config: cfg}, nil
	}
	res := LobbyResult{Choice: m.Choice(), Config: m.Config()}
	if res.Choice == ChoicePlay {
		res.GameID = m.Picked()
	}
	return res, nil
}
