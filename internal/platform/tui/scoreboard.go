package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codekriti/deepsea/internal/games/brickbreaker"
	"github.com/codekriti/deepsea/internal/storage"
)

// scoredGame is the only scene that finishes runs.
const scoredGame = "brickbreaker"

const (
	maxRuns       = 100 // Rows loaded into the run table
	sideBySideMin = 72  // Narrower terminals stack the summary above the table
	chromeRows    = 7   // Title, help and borders around the table
)

var (
	recordsTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	summaryLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Width(12)
	summaryValueStyle = lipgloss.NewStyle().Bold(true)
	emptyRunsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 2)
)

type recordsKeys struct {
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k recordsKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Top, k.Bottom, k.Back, k.Quit}
}

func (k recordsKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Top, k.Bottom}, {k.Back, k.Quit}}
}

func newRecordsKeys() recordsKeys {
	return recordsKeys{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Top:    key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "best")),
		Bottom: key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "worst")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows the brick breaker records: the stored high score
// next to the finished runs. The stored high score is written during play,
// so it can be ahead of the best finished run.
type ScoreboardModel struct {
	store     *storage.Store
	title     string
	highScore int
	stats     *storage.GameStats
	runs      []storage.ScoreEntry
	table     table.Model
	help      help.Model
	keys      recordsKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel loads the records from store, which may be nil.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		title:  brickbreaker.New().Title(),
		help:   help.New(),
		keys:   newRecordsKeys(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	m.table = m.newTable()
	return m
}

// load reads the stored high score and the run history.
func (m *ScoreboardModel) load() {
	if m.store == nil {
		return
	}
	if v, err := m.store.Get(brickbreaker.HighScoreKey); err == nil {
		m.highScore = brickbreaker.ParseHighScore(v)
	}
	if runs, err := m.store.TopScores(scoredGame, maxRuns); err == nil {
		m.runs = runs
	}
	if stats, err := m.store.GameStats(scoredGame); err == nil {
		m.stats = stats
	}
}

func (m ScoreboardModel) wide() bool { return m.width >= sideBySideMin }

// newTable sizes the run table for the current layout.
func (m ScoreboardModel) newTable() table.Model {
	h := m.height - chromeRows
	if !m.wide() {
		h -= lipgloss.Height(m.summary())
	}

	rows := make([]table.Row, len(m.runs))
	for i, r := range m.runs {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			fmt.Sprintf("%d", r.Score),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Score", Width: 10},
			{Title: "Finished", Width: 14},
		}),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(h, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(panelBorderFg).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("24")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// summary renders the label/value panel beside the table.
func (m ScoreboardModel) summary() string {
	best, runs, avg, last := 0, 0, "-", "never"
	if m.stats != nil && m.stats.GamesCount > 0 {
		best, runs = m.stats.HighScore, m.stats.GamesCount
		avg = fmt.Sprintf("%.0f", m.stats.AvgScore)
		last = m.stats.LastPlayed.Format("Jan 02 15:04")
	}

	lines := []string{
		summaryLabelStyle.Render("High score") + summaryValueStyle.Render(fmt.Sprint(m.highScore)),
		summaryLabelStyle.Render("Best run") + summaryValueStyle.Render(fmt.Sprint(best)),
		summaryLabelStyle.Render("Runs") + summaryValueStyle.Render(fmt.Sprint(runs)),
		summaryLabelStyle.Render("Average") + summaryValueStyle.Render(avg),
		summaryLabelStyle.Render("Last run") + summaryValueStyle.Render(last),
	}
	return lipgloss.NewStyle().
		Border(panelBorder).
		BorderForeground(panelBorderFg).
		Padding(0, 1).
		Render(strings.Join(lines, "\n"))
}

func (m ScoreboardModel) Init() tea.Cmd { return nil }

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Top):
			m.table.GotoTop()
			return m, nil
		case key.Matches(msg, m.keys.Bottom):
			m.table.GotoBottom()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	runs := emptyRunsStyle.Render("No finished runs yet.\nClear a wall of bricks to get on the board!")
	if len(m.runs) > 0 {
		runs = m.table.View()
	}
	runs = lipgloss.NewStyle().
		Border(panelBorder).
		BorderForeground(panelBorderFg).
		Padding(0, 1).
		Render(runs)

	body := lipgloss.JoinVertical(lipgloss.Left, m.summary(), runs)
	if m.wide() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.summary(), "  ", runs)
	}

	page := lipgloss.JoinVertical(lipgloss.Center,
		recordsTitleStyle.Render(strings.ToUpper(m.title)+" RECORDS"),
		"",
		body,
		helpBarStyle.Render(m.help.View(m.keys)),
	)
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, page)
}

// IsGoingBack reports whether the player asked to return to the lobby.
func (m ScoreboardModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting reports whether the player asked to quit entirely.
func (m ScoreboardModel) IsQuitting() bool { return m.quitting }

// RunScoreboard shows the records full screen. It returns true when the
// player went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int) (bool, error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
