package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/codekriti/deepsea/internal/core"
	"github.com/codekriti/deepsea/internal/frame"
	"github.com/codekriti/deepsea/internal/registry"
	"github.com/codekriti/deepsea/internal/storage"
)

// maxCatchUp bounds fixed-timestep updates per frame.
const maxCatchUp = 5

// Options configures a game model.
type Options struct {
	Store    *storage.Store
	Logger   *log.Logger
	Timestep frame.Mode

	// Embedded models report going back to the lobby instead of quitting the program.
	Embedded bool
}

// resizer is implemented by games that keep their state across a terminal resize.
type resizer interface {
	Resize(w, h int)
}

// Model is the Bubble Tea model for running a scene.
type Model struct {
	game        registry.Game
	screen      *core.Screen
	store       *storage.Store
	logger      *log.Logger
	config      core.RuntimeConfig
	keys        *KeyMapper
	driver      *frame.Driver
	stepper     *frame.Stepper
	inputFrame  core.InputFrame
	gameState   core.GameState
	embedded    bool
	focused     bool
	paused      bool
	quitting    bool
	backToLobby bool
	scoreSaved  bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	// A nil *storage.Store must not reach the game wrapped in an interface.
	if p, ok := game.(registry.Persistent); ok && opts.Store != nil {
		p.AttachStore(opts.Store)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		config:     cfg,
		keys:       NewKeyMapper(),
		driver:     frame.NewDriver(),
		stepper:    frame.NewStepper(opts.Timestep, time.Second/time.Duration(cfg.TickRate), maxCatchUp),
		inputFrame: core.NewInputFrame(),
		embedded:   opts.Embedded,
		focused:    true,
	}
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.logger.Debug("scene started", "game", m.game.ID(), "seed", m.config.Seed, "timestep", m.stepper.Mode())
	return m.requestFrame()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.inputFrame.MovePointer(msg.X)
		return m, m.kick()

	case tea.FocusMsg:
		m.focused = true
		return m, m.syncVisibility()

	case tea.BlurMsg:
		m.focused = false
		return m, m.syncVisibility()

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case FrameMsg:
		return m.handleFrame(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.driver.Cancel()
		m.quitting = true
		return m, tea.Quit
	}

	switch action {
	case core.ActionNone:
		return m, nil
	case core.ActionPause:
		m.paused = !m.paused
		return m, m.syncVisibility()
	case core.ActionBack:
		m.driver.Cancel()
		m.backToLobby = true
		if !m.embedded {
			return m, tea.Quit
		}
		return m, nil
	}

	m.inputFrame.Set(action)
	return m, m.kick()
}

// kick processes pending input right away when the frame loop is idle,
// which is how a stopped game hears its start key.
func (m *Model) kick() tea.Cmd {
	if m.driver.Pending() || registry.IsRunning(m.game) {
		return nil
	}
	m.step()
	return m.requestFrame()
}

// syncVisibility pushes focus and pause into the driver.
func (m *Model) syncVisibility() tea.Cmd {
	visible := m.focused && !m.paused
	was := m.driver.Visible()
	m.driver.SetVisible(visible)
	m.gameState.Paused = m.paused

	switch {
	case visible && !was:
		m.stepper.Reset()
		m.logger.Debug("frames resumed", "game", m.game.ID())
		return m.requestFrame()
	case !visible && was:
		m.logger.Debug("frames suspended", "game", m.game.ID(), "paused", m.paused)
	}
	return nil
}

// requestFrame schedules the next frame if the game still wants one.
func (m *Model) requestFrame() tea.Cmd {
	if !registry.IsRunning(m.game) {
		return nil
	}
	t, ok := m.driver.Request()
	if !ok {
		return nil
	}
	return frameCmd(t, m.config.TickRate)
}

// handleResize processes window resize events.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if r, ok := m.game.(resizer); ok {
		r.Resize(msg.Width, msg.Height)
		return m, nil
	}

	// Scenes without their own resize handling start over at the new size.
	m.game.Reset(m.config)
	m.gameState = m.game.State()
	return m, m.requestFrame()
}

// handleFrame runs the simulation for an accepted frame. Rendering follows
// in View within the same update cycle.
func (m Model) handleFrame(msg FrameMsg) (tea.Model, tea.Cmd) {
	if !m.driver.Accept(msg.Ticket) {
		return m, nil
	}

	if m.screen.Ready() {
		for range m.stepper.Steps(msg.At) {
			m.step()
		}
	}

	return m, m.requestFrame()
}

// step advances the game once with the pending input.
func (m *Model) step() {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()

	state := result.State
	state.Paused = m.paused
	if !state.GameOver {
		m.scoreSaved = false
	}
	m.gameState = state

	// Save score on game over (once)
	if state.GameOver && !m.scoreSaved {
		if m.store != nil && state.Score > 0 {
			if _, err := m.store.SaveScore(m.game.ID(), state.Score); err != nil {
				m.logger.Warn("score not saved", "game", m.game.ID(), "err", err)
			}
		}
		m.logger.Info("game over", "game", m.game.ID(), "score", state.Score, "level", state.Level, "frames", m.driver.Frames())
		m.scoreSaved = true
	}
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return
	}
	dir := filepath.Join(home, ".codekriti", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "path", path, "err", err)
	}
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// IsGoingBack reports whether the player asked to return to the lobby.
func (m Model) IsGoingBack() bool {
	return m.backToLobby
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.paused && m.screen.Ready() {
		m.screen.DrawTextCentered(m.screen.Height()/2, " PAUSED ")
	}

	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program for a single game.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(), // pointer steering without a held button
		tea.WithReportFocus(),
	)

	_, err := p.Run()
	return err
}
