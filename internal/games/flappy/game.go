// Package flappy implements a Flappy Bird-style game.
// The player keeps a bird airborne through gaps in a stream of pipes.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// GameID identifies the game in score storage.
const GameID = "flappy"

// restartGrace is how many frames after a crash the jump key is ignored.
const restartGrace = 30

// Game adapts a Session to the platform: it maps terminal input to session
// requests and maps the field onto screen cells.
type Game struct {
	cfg     config.FlappyConfig
	opts    Options
	session *Session
}

// New creates a game with the given tuning and collaborators. The session
// is created on the first Reset, once the screen size is known.
func New(cfg config.FlappyConfig, opts Options) *Game {
	return &Game{cfg: cfg, opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Session exposes the running simulation. Nil before the first Reset.
func (g *Game) Session() *Session {
	return g.session
}

// Reset sizes the field to the screen and shows the title screen. The seed
// is used only when the session is created; later resets keep drawing from
// the same stream. The best score survives resets.
func (g *Game) Reset(rc core.RuntimeConfig) {
	fieldW, fieldH := g.FieldSize(rc.ScreenW, rc.ScreenH)
	if g.session == nil {
		opts := g.opts
		opts.Seed = rc.Seed
		g.session = NewSession(g.cfg, fieldW, fieldH, opts)
		return
	}
	g.session.Resize(fieldW, fieldH)
}

// FieldSize converts a terminal size to field units. The bottom row is
// reserved for the ground.
func (g *Game) FieldSize(screenW, screenH int) (w, h float64) {
	rows := max(screenH-1, 0)
	cols := max(screenW, 0)
	return float64(cols) * g.cfg.Field.CellWidth, float64(rows) * g.cfg.Field.CellHeight
}

// Step applies this frame's input and advances the simulation by one tick.
// Before the first Reset there is nothing to simulate and the input is dropped.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	s := g.session
	if s == nil {
		return core.StepResult{State: g.State()}
	}

	switch s.Phase() {
	case PhasePlaying:
		if in.Has(core.ActionPause) {
			s.TogglePause()
		}
		if in.Has(core.ActionJump) {
			s.Impulse()
		}
	case PhaseIdle:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			s.Start()
		}
	case PhaseOver:
		jumped := in.Has(core.ActionJump) && s.FramesSinceOver() >= restartGrace
		if jumped || in.Has(core.ActionConfirm) || in.Has(core.ActionRestart) {
			s.Start()
		}
	}

	events := s.Tick()
	return core.StepResult{State: g.State(), Events: events}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.session == nil {
		return core.GameState{Phase: PhaseIdle.String()}
	}
	s := g.session
	return core.GameState{
		Phase:     s.Phase().String(),
		Score:     s.Score(),
		BestScore: s.BestScore(),
		GameOver:  s.Phase() == PhaseOver,
		Paused:    s.Paused(),
	}
}
