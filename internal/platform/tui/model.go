package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Game is the interface the platform drives. Games contain pure logic with
// no Bubble Tea dependency; the platform handles input mapping, timing and
// terminal output.
type Game interface {
	// ID identifies the game in score storage.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset sizes the game to the screen. Called once at start and again
	// on every terminal resize.
	Reset(cfg core.RuntimeConfig)

	// Step applies one frame of input and advances the simulation by one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current game state.
	State() core.GameState
}

// ModelOptions configures the collaborators of a Model. All fields are optional.
type ModelOptions struct {
	Store         *storage.Store // run history; nil plays without it
	Logger        *log.Logger
	ScreenshotDir string // defaults to ~/.flappy/screenshots
}

// Model is the Bubble Tea model running a game: one simulation tick per frame.
type Model struct {
	game       Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       KeyMap
	config     core.RuntimeConfig
	shotDir    string
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, cfg core.RuntimeConfig, opts ModelOptions) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      opts.Store,
		logger:     logger,
		keys:       DefaultKeyMap(),
		config:     cfg,
		shotDir:    opts.ScreenshotDir,
		inputFrame: core.NewInputFrame(),
	}
}

// Init initializes the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if action := MapMouse(msg); action != core.ActionNone {
			m.inputFrame.Set(action)
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input. Actions are buffered until the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}

	if key.Matches(msg, m.keys.Screenshot) {
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
		} else {
			m.logger.Info("screenshot saved", "path", path)
		}
	}

	return m, nil
}

// handleResize adopts the new terminal size. The game returns to its title
// screen with a field sized to the new window.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	m.game.Reset(m.config)
	m.gameState = m.game.State()
	m.logger.Debug("terminal resized", "width", msg.Width, "height", msg.Height)

	return m, nil
}

// handleTick runs one simulation tick with the input gathered since the last one.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.inputFrame.Empty() {
		m.logger.Debug("input", "actions", m.inputFrame.Actions())
	}
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	for _, ev := range result.Events {
		if ev.Kind == core.EventGameOver {
			m.recordRun(ev.Score)
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// recordRun appends a finished run to the score history.
func (m Model) recordRun(score int) {
	m.logger.Info("run finished", "game", m.game.ID(), "score", score)
	if m.store == nil || score <= 0 {
		return
	}
	if _, err := m.store.SaveScore(m.game.ID(), score); err != nil {
		m.logger.Warn("could not record run", "score", score, "error", err)
	}
}

// saveScreenshot writes the current screen as plain text and returns its path.
func (m Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("screenshot: cannot get home directory: %w", err)
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("screenshot: cannot create directory %s: %w", dir, err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("screenshot: %w", err)
	}
	return path, nil
}

// State returns the game state after the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting reports whether the player asked to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.gameState.Paused {
		m.screen.DrawTextCentered(m.screen.Height()-1, m.keys.HelpLine(), core.ColorWhite)
	}
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given model.
func Run(game Game, cfg core.RuntimeConfig, opts ModelOptions) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
