package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/registry"
)

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewLobby sessionView = iota
	viewRecords
	viewPlay
)

// SessionModel runs lobby, records and scenes inside one program, for
// hosts like SSH where each screen cannot be its own program. Child models
// end their own programs with tea.Quit; the session swallows those and
// switches screens instead.
type SessionModel struct {
	opts    Options
	config  core.RuntimeConfig
	view    sessionView
	lobby   Lobby
	records ScoreboardModel
	play    Model
	done    bool
}

// NewSessionModel starts a session in the lobby.
func NewSessionModel(cfg core.RuntimeConfig, opts Options) SessionModel {
	opts.Embedded = true
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return SessionModel{
		opts:   opts,
		config: cfg,
		lobby:  NewLobby(opts.Store, cfg),
	}
}

func (m SessionModel) Init() tea.Cmd { return nil }

func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW, m.config.ScreenH = ws.Width, ws.Height
	}

	switch m.view {
	case viewPlay:
		next, cmd := m.play.Update(msg)
		m.play = next.(Model)
		switch {
		case m.play.IsQuitting():
			return m.finish()
		case m.play.IsGoingBack():
			return m.toLobby()
		}
		return m, cmd

	case viewRecords:
		next, cmd := m.records.Update(msg)
		m.records = next.(ScoreboardModel)
		switch {
		case m.records.IsQuitting():
			return m.finish()
		case m.records.IsGoingBack():
			return m.toLobby()
		}
		return m, cmd
	}

	next, cmd := m.lobby.Update(msg)
	m.lobby = next.(Lobby)
	switch m.lobby.Choice() {
	case ChoiceQuit:
		return m.finish()
	case ChoiceScores:
		m.records = NewScoreboardModel(m.opts.Store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewRecords
		return m, nil
	case ChoicePlay:
		return m.start(m.lobby.Picked())
	}
	return m, cmd
}

// start switches to a fresh run of gameID.
func (m SessionModel) start(gameID string) (tea.Model, tea.Cmd) {
	game, err := registry.Create(gameID)
	if err != nil {
		m.opts.Logger.Warn("scene unavailable", "game", gameID, "err", err)
		return m.toLobby()
	}

	cfg := m.config
	cfg.Seed = time.Now().UnixNano()
	m.play = NewModel(game, cfg, m.opts)
	m.view = viewPlay
	return m, m.play.Init()
}

// toLobby rebuilds the lobby so best scores include the run just played.
func (m SessionModel) toLobby() (tea.Model, tea.Cmd) {
	m.play = Model{}
	m.lobby = NewLobby(m.opts.Store, m.config)
	m.view = viewLobby
	return m, nil
}

func (m SessionModel) finish() (tea.Model, tea.Cmd) {
	m.done = true
	return m, tea.Quit
}

func (m SessionModel) View() string {
	if m.done {
		return ""
	}
	switch m.view {
	case viewPlay:
		return m.play.View()
	case viewRecords:
		return m.records.View()
	}
	return m.lobby.View()
}
