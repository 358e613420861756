package flappy

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the session state.
type Phase int

const (
	PhaseIdle    Phase = iota // Title screen, before the first run or after a resize
	PhasePlaying              // A run is in progress
	PhaseOver                 // The last run ended
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// BestScoreStore persists the best score between processes.
type BestScoreStore interface {
	BestScore(gameID string) (int, error)
	SetBestScore(gameID string, score int) error
}

// Options configures the collaborators of a Session. All fields are optional.
type Options struct {
	Seed   int64
	Store  BestScoreStore
	Logger *log.Logger
}

// Session runs the simulation. It owns its actor and obstacle field
// exclusively; Start replaces their state wholesale.
type Session struct {
	cfg        config.FlappyConfig
	difficulty *config.DifficultyManager

	actor Actor
	field *ObstacleField
	clock Clock

	fieldW, fieldH float64

	phase     Phase
	paused    bool
	score     int
	best      int
	runStart  uint64
	overFrame uint64

	store     BestScoreStore
	logger    *log.Logger
	observers []func(core.Event)
	pending   []core.Event
}

// NewSession creates an idle session for a fieldW x fieldH field and reads
// the persisted best score once. A missing or unreadable best score counts
// as 0.
func NewSession(cfg config.FlappyConfig, fieldW, fieldH float64, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		field:      NewObstacleField(cfg.Obstacles.Width, cfg.Obstacles.Gap, fieldW, fieldH, rand.New(rand.NewSource(opts.Seed))),
		fieldW:     fieldW,
		fieldH:     fieldH,
		store:      opts.Store,
		logger:     logger,
	}
	s.actor = Actor{Width: cfg.Actor.Width, Height: cfg.Actor.Height}
	s.centerActor(0)

	if s.store != nil {
		best, err := s.store.BestScore(GameID)
		if err != nil {
			s.logger.Warn("could not read best score", "error", err)
		} else if best > 0 {
			s.best = best
		}
	}

	return s
}

// Subscribe registers fn to be called for every event, as it is emitted.
func (s *Session) Subscribe(fn func(core.Event)) {
	s.observers = append(s.observers, fn)
}

// Start begins a new run from Idle or Over. The opening flap is reported as
// a jump event. It reports false while a run is already in progress.
func (s *Session) Start() bool {
	if s.phase == PhasePlaying {
		return false
	}

	s.score = 0
	s.paused = false
	s.centerActor(s.cfg.Physics.JumpImpulse)
	s.field.Reset()
	s.runStart = s.clock.Frame()
	s.phase = PhasePlaying
	s.emit(core.EventJump)

	s.logger.Debug("run started", "field_w", s.fieldW, "field_h", s.fieldH, "best", s.best)
	return true
}

// Impulse makes the actor jump. Requests outside a running, unpaused run are
// ignored.
func (s *Session) Impulse() bool {
	if s.phase != PhasePlaying || s.paused {
		return false
	}
	s.actor.Impulse(s.cfg.Physics.JumpImpulse)
	s.emit(core.EventJump)
	return true
}

// TogglePause pauses or resumes a running session.
func (s *Session) TogglePause() bool {
	if s.phase != PhasePlaying {
		return false
	}
	s.paused = !s.paused
	return true
}

// Resize adopts new field dimensions. Any run in progress is abandoned: the
// session returns to Idle and the field is re-seeded against the new bounds.
func (s *Session) Resize(fieldW, fieldH float64) {
	if s.phase == PhasePlaying {
		s.logger.Debug("run abandoned by resize", "score", s.score)
	}
	s.fieldW = fieldW
	s.fieldH = fieldH
	s.phase = PhaseIdle
	s.paused = false
	s.score = 0
	s.centerActor(0)
	s.field.Resize(fieldW, fieldH)
}

// Tick advances the simulation by one frame and returns the events emitted
// since the previous tick. Outside a run only the clock moves.
func (s *Session) Tick() []core.Event {
	if s.paused {
		return s.flush()
	}

	s.clock.Tick()
	if s.phase != PhasePlaying {
		return s.flush()
	}

	speed := s.Speed()
	anchor := s.AnchorX()

	s.actor.ApplyGravity(s.cfg.Physics.Gravity)
	floored := s.actor.Integrate(s.fieldH)

	s.field.Advance(speed)
	for range s.field.CheckPass(anchor, speed) {
		s.score++
		if s.score > s.best {
			s.best = s.score
			s.persistBest()
		}
		s.emit(core.EventScore)
	}
	s.field.Recycle()

	if s.field.CheckCollision(s.actor.Rect(anchor)) || floored {
		s.end(floored)
	}

	return s.flush()
}

// end finalizes a run.
func (s *Session) end(floored bool) {
	s.phase = PhaseOver
	s.overFrame = s.clock.Frame()
	s.best = max(s.best, s.score)
	s.emit(core.EventGameOver)
	s.logger.Debug("run over", "score", s.score, "best", s.best, "floor", floored)
}

func (s *Session) persistBest() {
	if s.store == nil {
		return
	}
	if err := s.store.SetBestScore(GameID, s.best); err != nil {
		s.logger.Warn("could not save best score", "score", s.best, "error", err)
	}
}

func (s *Session) emit(kind core.EventKind) {
	ev := core.Event{
		Kind:      kind,
		Score:     s.score,
		BestScore: s.best,
		Frame:     s.clock.Frame(),
	}
	s.pending = append(s.pending, ev)
	for _, fn := range s.observers {
		fn(ev)
	}
}

func (s *Session) flush() []core.Event {
	events := s.pending
	s.pending = nil
	return events
}

// centerActor puts the actor in the vertical middle of the field.
func (s *Session) centerActor(velocity float64) {
	s.actor.Y = s.fieldH/2 - s.actor.Height/2
	s.actor.Velocity = velocity
}

// Speed is the obstacle scroll per tick, capped at min(pipe width, AnchorX).
func (s *Session) Speed() float64 {
	speed := s.difficulty.Speed(s.cfg.Physics.Speed, s.score, s.RunFrames())
	limit := math.Min(s.cfg.Obstacles.Width, s.AnchorX())
	if limit > 0 && speed > limit {
		speed = limit
	}
	return speed
}

// AnchorX is the actor's fixed horizontal position.
func (s *Session) AnchorX() float64 {
	return s.fieldW * s.cfg.Actor.AnchorRatio
}

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// Paused reports whether a running session is paused.
func (s *Session) Paused() bool { return s.paused }

// Score returns the score of the current or last run.
func (s *Session) Score() int { return s.score }

// BestScore returns the best score seen by this process or loaded from the store.
func (s *Session) BestScore() int { return s.best }

// Actor returns a copy of the actor.
func (s *Session) Actor() Actor { return s.actor }

// Field returns the obstacle field.
func (s *Session) Field() *ObstacleField { return s.field }

// Clock returns the frame clock.
func (s *Session) Clock() *Clock { return &s.clock }

// RunFrames returns how many frames the current or last run has lasted.
func (s *Session) RunFrames() uint64 {
	if s.phase == PhaseOver {
		return s.overFrame - s.runStart
	}
	return s.clock.Frame() - s.runStart
}

// FramesSinceOver returns how many frames passed since the last run ended.
func (s *Session) FramesSinceOver() uint64 {
	return s.clock.Frame() - s.overFrame
}

// FieldSize returns the field dimensions in field units.
func (s *Session) FieldSize() (w, h float64) { return s.fieldW, s.fieldH }
