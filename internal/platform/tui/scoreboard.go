package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80  // Minimum width to show the stats sidebar
	sidebarWidth       = 24  // Width of the stats sidebar
	maxScores          = 100 // Max scores to load
)

// Palette shared by the scoreboard widgets.
var (
	colorAccent = lipgloss.Color("229")
	colorMuted  = lipgloss.Color("241")
	colorBorder = lipgloss.Color("240")
	colorActive = lipgloss.Color("57")
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
	tabStyle       = lipgloss.NewStyle().Foreground(colorMuted).Padding(0, 1)
	activeTabStyle = tabStyle.Bold(true).Foreground(colorAccent).Background(colorActive)
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	labelStyle     = lipgloss.NewStyle().Foreground(colorMuted)
	valueStyle     = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	emptyStyle     = lipgloss.NewStyle().Foreground(colorMuted).Italic(true).Padding(2, 4)
	helpStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// ScoreView selects which runs the scoreboard lists.
type ScoreView int

const (
	ViewTop    ScoreView = iota // Best runs first
	ViewRecent                  // Newest runs first
)

// String returns the tab title.
func (v ScoreView) String() string {
	if v == ViewRecent {
		return "Recent runs"
	}
	return "Top scores"
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	ToggleView key.Binding
	Quit       key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.ToggleView, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.ToggleView, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		ToggleView: key.NewBinding(
			key.WithKeys("tab", "shift+tab", "left", "right", "h", "l"),
			key.WithHelp("tab", "top/recent"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen of a
// single game.
type ScoreboardModel struct {
	gameID      string
	title       string
	store       *storage.Store
	view        ScoreView
	scores      []storage.ScoreEntry
	stats       *storage.GameStats
	best        int
	loadErr     error
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	quitting    bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, gameID, title string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false

	m := ScoreboardModel{
		gameID:      gameID,
		title:       title,
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	m.load()

	return m
}

// createTable creates a new table with appropriate columns.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Date", Width: 18},
	}

	tableWidth := m.width - 4 // Margins
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3 // Sidebar + border + gap
	}

	if tableWidth > 40 {
		columns[1].Width = 12
		columns[2].Width = min(tableWidth-22, 20)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)), // Leave room for header, help, and margins
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorBorder).BorderBottom(true).Bold(true)
	styles.Selected = styles.Selected.Foreground(colorAccent).Background(colorActive).Bold(false)
	t.SetStyles(styles)

	return t
}

// load reads the current view, the best score and the stats from the store.
func (m *ScoreboardModel) load() {
	m.scores, m.stats, m.best, m.loadErr = nil, nil, 0, nil
	if m.store == nil {
		m.updateTableRows()
		return
	}

	var err error
	switch m.view {
	case ViewRecent:
		m.scores, err = m.store.RecentScores(m.gameID, maxScores)
	default:
		m.scores, err = m.store.TopScores(m.gameID, maxScores)
	}
	if err != nil {
		m.loadErr = err
	}

	if stats, err := m.store.GetGameStats(m.gameID); err == nil {
		m.stats = stats
	}
	if best, err := m.store.BestScore(m.gameID); err == nil {
		m.best = best
	}

	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", s.Score),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	body := panelStyle.Render(m.renderTableContent())
	if m.showSidebar {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), "  ", body)
	} else {
		body = centerText(body, m.width)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(centerText("HIGH SCORES - "+m.title, m.width)),
		centerText(m.renderTabs(), m.width),
		"",
		body,
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.ToggleView):
			m.view = (m.view + 1) % 2
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
			m.table, cmd = m.table.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// renderTabs renders the view selector.
func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, 0, 2)
	for _, v := range []ScoreView{ViewTop, ViewRecent} {
		if v == m.view {
			tabs = append(tabs, activeTabStyle.Render(v.String()))
		} else {
			tabs = append(tabs, tabStyle.Render(v.String()))
		}
	}
	return strings.Join(tabs, " ")
}

// renderSidebar renders the aggregate statistics.
func (m ScoreboardModel) renderSidebar() string {
	var sb strings.Builder
	sb.WriteString("Stats\n")
	sb.WriteString(strings.Repeat("-", sidebarWidth-4))
	sb.WriteString("\n")

	line := func(label, value string) {
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(" ")
		sb.WriteString(valueStyle.Render(value))
		sb.WriteString("\n")
	}

	line("Best:", fmt.Sprintf("%d", m.best))
	if m.stats != nil {
		line("Runs:", fmt.Sprintf("%d", m.stats.GamesCount))
		line("Average:", fmt.Sprintf("%.1f", m.stats.AvgScore))
		if !m.stats.LastPlayed.IsZero() {
			line("Last:", m.stats.LastPlayed.Format("Jan 02 15:04"))
		}
	}

	return panelStyle.Width(sidebarWidth).Render(sb.String())
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	switch {
	case m.store == nil:
		return emptyStyle.Render("Scores database is not available.")
	case m.loadErr != nil:
		return emptyStyle.Render(fmt.Sprintf("Could not load scores:\n%v", m.loadErr))
	case len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set a high score!")
	}

	return m.table.View()
}

// IsQuitting returns true if the user closed the scoreboard.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerText pads text on the left so it sits in the middle of width columns.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// RunScoreboard runs the scoreboard screen.
func RunScoreboard(store *storage.Store, gameID, title string, width, height int) error {
	model := NewScoreboardModel(store, gameID, title, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
