package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/codekriti/deepsea/internal/games/brickbreaker"
	"github.com/codekriti/deepsea/internal/storage"
)

func openTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func lobbyUpdate(t *testing.T, m Lobby, msg tea.Msg) (Lobby, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Lobby), cmd
}

func TestLobbyListsScenesWithBest(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("brickbreaker", 340)

	m := NewLobby(store, testConfig())
	view := m.View()
	for _, want := range []string{"C O D E K R I T I", "Brick Breaker", "best 340", "Deep Sea Bubbles", "Just watch."} {
		if !strings.Contains(view, want) {
			t.Errorf("lobby view missing %q:\n%s", want, view)
		}
	}
	if m.Picked() != "brickbreaker" {
		t.Errorf("cursor starts on %q, expected brickbreaker", m.Picked())
	}
}

func TestLobbyNavigationAndChoice(t *testing.T) {
	m := NewLobby(nil, testConfig())

	m, _ = lobbyUpdate(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.Picked() != "brickbreaker" {
		t.Errorf("up at the top should stay put, got %q", m.Picked())
	}
	m, _ = lobbyUpdate(t, m, keyRune('j'))
	if m.Picked() != "bubbles" {
		t.Errorf("j should move to bubbles, got %q", m.Picked())
	}

	played, cmd := lobbyUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if played.Choice() != ChoicePlay || cmd == nil {
		t.Error("enter should pick the scene and end the lobby")
	}

	scores, _ := lobbyUpdate(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if scores.Choice() != ChoiceScores {
		t.Error("tab should open the records")
	}

	quit, _ := lobbyUpdate(t, m, keyRune('q'))
	if quit.Choice() != ChoiceQuit || quit.View() != "" {
		t.Error("q should quit with an empty view")
	}

	resized, _ := lobbyUpdate(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})
	if cfg := resized.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 40 {
		t.Errorf("config not resized: %+v", cfg)
	}
}

func TestScoreboardShowsStoredHighScore(t *testing.T) {
	store := openTestStore(t)
	store.SaveScore("brickbreaker", 120)
	store.SaveScore("brickbreaker", 560)
	// A run still in progress has already raised the stored high score.
	if err := store.Set(brickbreaker.HighScoreKey, "910"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	m := NewScoreboardModel(store, 100, 30)
	if m.highScore != 910 {
		t.Errorf("highScore = %d, expected 910", m.highScore)
	}
	view := m.View()
	for _, want := range []string{"BRICK BREAKER RECORDS", "High score", "910", "Best run", "560", "#2"} {
		if !strings.Contains(view, want) {
			t.Errorf("records view missing %q:\n%s", want, view)
		}
	}
}

func TestScoreboardEmptyAndNarrow(t *testing.T) {
	m := NewScoreboardModel(nil, 50, 30)
	if m.wide() {
		t.Error("50 columns should stack the summary above the table")
	}
	view := m.View()
	if !strings.Contains(view, "No finished runs yet.") || !strings.Contains(view, "never") {
		t.Errorf("empty records view:\n%s", view)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 90, Height: 30})
	if !next.(ScoreboardModel).wide() {
		t.Error("resizing to 90 columns should put the summary beside the table")
	}
}

func TestScoreboardKeys(t *testing.T) {
	store := openTestStore(t)
	for _, s := range []int{10, 20, 30} {
		store.SaveScore("brickbreaker", s)
	}
	m := NewScoreboardModel(store, 100, 30)

	next, _ := m.Update(keyRune('G'))
	m = next.(ScoreboardModel)
	if got := m.table.Cursor(); got != 2 {
		t.Errorf("G should jump to the last run, cursor = %d", got)
	}
	next, _ = m.Update(keyRune('g'))
	m = next.(ScoreboardModel)
	if got := m.table.Cursor(); got != 0 {
		t.Errorf("g should jump to the best run, cursor = %d", got)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if !next.(ScoreboardModel).IsGoingBack() || cmd == nil {
		t.Error("esc should go back")
	}
	next, _ = m.Update(keyRune('q'))
	if !next.(ScoreboardModel).IsQuitting() {
		t.Error("q should quit")
	}
}

func sessionUpdate(t *testing.T, s SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := s.Update(msg)
	return next.(SessionModel), cmd
}

func TestSessionLobbyToSceneAndBack(t *testing.T) {
	store := openTestStore(t)
	s := NewSessionModel(testConfig(), Options{Store: store})

	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.view != viewPlay || s.play.game.ID() != "brickbreaker" {
		t.Fatalf("enter should start brickbreaker, view = %v", s.view)
	}
	if !s.play.embedded {
		t.Error("session scenes must not quit the program on back")
	}

	s, cmd := sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewLobby || cmd != nil {
		t.Error("esc in a scene should return to the lobby without quitting")
	}

	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyTab})
	if s.view != viewRecords {
		t.Fatal("tab should open the records")
	}
	if !strings.Contains(s.View(), "RECORDS") {
		t.Error("session should render the records screen")
	}

	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEsc})
	if s.view != viewLobby {
		t.Error("esc should leave the records")
	}

	s, cmd = sessionUpdate(t, s, keyRune('q'))
	if cmd == nil || s.View() != "" {
		t.Error("q in the lobby should end the session")
	}
}

func TestSessionTracksResize(t *testing.T) {
	s := NewSessionModel(testConfig(), Options{})
	s, _ = sessionUpdate(t, s, tea.WindowSizeMsg{Width: 120, Height: 50})
	s, _ = sessionUpdate(t, s, tea.KeyMsg{Type: tea.KeyEnter})
	if s.play.config.ScreenW != 120 || s.play.config.ScreenH != 50 {
		t.Errorf("scene started at %dx%d, expected 120x50", s.play.config.ScreenW, s.play.config.ScreenH)
	}
}

func TestModelIdlePaddleFollowsKeys(t *testing.T) {
	game := brickbreaker.New()
	game.AttachStore(brickbreaker.NewMemoryStore())
	m := NewModel(game, testConfig(), Options{})
	if cmd := m.Init(); cmd != nil {
		t.Fatal("an idle brick breaker should not schedule frames")
	}
	start := game.Snapshot().PaddleX

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if cmd != nil {
		t.Error("moving the paddle while idle should not start the frame loop")
	}
	if got := game.Snapshot().PaddleX; got != start+40 {
		t.Errorf("paddle x = %v after one key, expected %v", got, start+40)
	}

	update(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if got := game.Snapshot().PaddleX; got != start {
		t.Errorf("paddle x = %v after moving back, expected %v", got, start)
	}
}
