package flappy

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

const (
	testFieldW = 800.0
	testFieldH = 480.0
)

// memStore is an in-memory BestScoreStore.
type memStore struct {
	best    map[string]int
	writes  []int
	readErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{best: make(map[string]int)}
}

func (m *memStore) BestScore(gameID string) (int, error) {
	if m.readErr != nil {
		return 0, m.readErr
	}
	return m.best[gameID], nil
}

func (m *memStore) SetBestScore(gameID string, score int) error {
	m.writes = append(m.writes, score)
	if m.saveErr != nil {
		return m.saveErr
	}
	m.best[gameID] = score
	return nil
}

func newTestSession(opts Options) *Session {
	return NewSession(config.DefaultFlappyConfig(), testFieldW, testFieldH, opts)
}

// steer parks the actor in the middle of the next gap it has to clear.
func steer(s *Session) {
	anchor := s.AnchorX()
	for _, o := range s.Field().Obstacles() {
		if o.X+s.Field().Width() >= anchor {
			s.actor.Y = o.GapY + s.Field().Gap()/2 - s.actor.Height/2
			s.actor.Velocity = 0
			return
		}
	}
}

// playUntilScore steers through gaps until the score reaches target.
func playUntilScore(t *testing.T, s *Session, target int) {
	t.Helper()
	for tick := 0; tick < 5000 && s.Score() < target; tick++ {
		steer(s)
		s.Tick()
		if s.Phase() != PhasePlaying {
			t.Fatalf("Run ended at tick %d with score %d while steering", tick, s.Score())
		}
	}
	if s.Score() < target {
		t.Fatalf("Score %d never reached %d", s.Score(), target)
	}
}

// crash lets the actor fall until the run ends.
func crash(t *testing.T, s *Session) {
	t.Helper()
	for tick := 0; tick < 1000 && s.Phase() == PhasePlaying; tick++ {
		s.Tick()
	}
	if s.Phase() != PhaseOver {
		t.Fatalf("Run did not end, phase %v", s.Phase())
	}
}

func TestSessionStartsIdle(t *testing.T) {
	s := newTestSession(Options{Seed: 1})

	if s.Phase() != PhaseIdle {
		t.Errorf("New session phase = %v, expected idle", s.Phase())
	}
	if s.Score() != 0 || s.BestScore() != 0 {
		t.Errorf("New session score/best = %d/%d, expected 0/0", s.Score(), s.BestScore())
	}
	if s.AnchorX() != 80 {
		t.Errorf("AnchorX() = %v, expected 80", s.AnchorX())
	}

	// Idle ticks only advance the clock.
	before := s.Field().Obstacles()
	s.Tick()
	if s.Clock().Frame() != 1 {
		t.Errorf("Clock should advance while idle, frame %d", s.Clock().Frame())
	}
	if s.Field().Obstacles()[0] != before[0] {
		t.Error("Obstacles should not move while idle")
	}
}

func TestSessionStart(t *testing.T) {
	s := newTestSession(Options{Seed: 1})

	if !s.Start() {
		t.Fatal("Start() from idle should succeed")
	}
	if s.Phase() != PhasePlaying {
		t.Errorf("Phase after Start = %v, expected playing", s.Phase())
	}
	a := s.Actor()
	if a.Y != testFieldH/2-a.Height/2 {
		t.Errorf("Actor should start centered, Y=%v", a.Y)
	}
	if a.Velocity != config.DefaultFlappyConfig().Physics.JumpImpulse {
		t.Errorf("Actor should start with a jump, velocity=%v", a.Velocity)
	}
	if s.Start() {
		t.Error("Start() during a run should be rejected")
	}
}

func TestSessionImpulseGating(t *testing.T) {
	s := newTestSession(Options{Seed: 1})

	if s.Impulse() {
		t.Error("Impulse should be ignored while idle")
	}

	s.Start()
	s.actor.Velocity = 4
	if !s.Impulse() {
		t.Fatal("Impulse should be accepted while playing")
	}
	if s.Actor().Velocity != -11.5 {
		t.Errorf("Impulse should set velocity to -11.5, got %v", s.Actor().Velocity)
	}

	s.TogglePause()
	if s.Impulse() {
		t.Error("Impulse should be ignored while paused")
	}
	s.TogglePause()

	crash(t, s)
	if s.Impulse() {
		t.Error("Impulse should be ignored after game over")
	}
}

func TestSessionFloorEndsRun(t *testing.T) {
	// A very wide field keeps obstacles out of reach.
	s := NewSession(config.DefaultFlappyConfig(), 1_000_000, testFieldH, Options{Seed: 1})
	s.Start()

	var ticks int
	for ticks = 0; ticks < 500 && s.Phase() == PhasePlaying; ticks++ {
		s.Tick()
	}

	if s.Phase() != PhaseOver {
		t.Fatalf("Run should end on the floor, phase %v after %d ticks", s.Phase(), ticks)
	}
	a := s.Actor()
	if a.Y != testFieldH-a.Height {
		t.Errorf("Actor should rest on the floor, Y=%v", a.Y)
	}
	if s.Score() != 0 {
		t.Errorf("No obstacle was passed, score %d", s.Score())
	}
}

func TestSessionScoresThroughGaps(t *testing.T) {
	store := newMemStore()
	s := newTestSession(Options{Seed: 3, Store: store})
	s.Start()

	playUntilScore(t, s, 3)

	if s.BestScore() != 3 {
		t.Errorf("BestScore() = %d, expected 3", s.BestScore())
	}
	if len(store.writes) != 3 || store.writes[2] != 3 {
		t.Errorf("Each new best should be persisted, writes %v", store.writes)
	}
}

func TestSessionScoreMonotonic(t *testing.T) {
	s := newTestSession(Options{Seed: 11})
	rng := rand.New(rand.NewSource(5))

	for run := 0; run < 5; run++ {
		s.Start()
		if s.Score() != 0 {
			t.Fatalf("Run %d: score %d after Start, expected 0", run, s.Score())
		}

		last := 0
		for tick := 0; tick < 3000 && s.Phase() == PhasePlaying; tick++ {
			if tick%2 == 0 {
				steer(s)
			}
			if rng.Intn(10) == 0 {
				s.Impulse()
			}
			s.Tick()
			if s.Score() < last {
				t.Fatalf("Run %d: score decreased from %d to %d", run, last, s.Score())
			}
			last = s.Score()
		}
		if s.Phase() == PhasePlaying {
			crash(t, s)
		}
	}
}

func TestSessionBestScoreAcrossRuns(t *testing.T) {
	store := newMemStore()
	s := newTestSession(Options{Seed: 9, Store: store})

	s.Start()
	playUntilScore(t, s, 3)
	crash(t, s)

	s.Start()
	playUntilScore(t, s, 1)
	crash(t, s)

	if s.BestScore() != 3 {
		t.Errorf("BestScore() = %d, expected max of runs 3", s.BestScore())
	}
	if len(store.writes) != 3 {
		t.Errorf("Lower run should not be persisted, writes %v", store.writes)
	}

	// A new process picks the best score up from the store.
	s2 := newTestSession(Options{Seed: 9, Store: store})
	if s2.BestScore() != 3 {
		t.Errorf("Restored BestScore() = %d, expected 3", s2.BestScore())
	}
}

func TestSessionStoreFailures(t *testing.T) {
	store := newMemStore()
	store.readErr = errors.New("disk on fire")
	store.saveErr = errors.New("read-only")

	s := newTestSession(Options{Seed: 3, Store: store})
	if s.BestScore() != 0 {
		t.Errorf("Unreadable best score should count as 0, got %d", s.BestScore())
	}

	s.Start()
	playUntilScore(t, s, 2)
	if s.BestScore() != 2 {
		t.Errorf("Failed saves should not affect the in-memory best, got %d", s.BestScore())
	}
	if len(store.writes) != 2 {
		t.Errorf("Each new best should still be attempted, writes %v", store.writes)
	}
}

func TestSessionEvents(t *testing.T) {
	s := newTestSession(Options{Seed: 3})

	var observed []core.EventKind
	s.Subscribe(func(ev core.Event) {
		observed = append(observed, ev.Kind)
	})

	s.Start()
	s.Impulse()
	events := s.Tick()
	if len(events) != 2 || events[0].Kind != core.EventJump || events[1].Kind != core.EventJump {
		t.Fatalf("Tick after Start and Impulse returned %v, expected two jump events", events)
	}
	if events[0].Score != 0 {
		t.Errorf("Opening jump should report score 0, got %d", events[0].Score)
	}

	var scored []core.Event
	for tick := 0; tick < 5000 && len(scored) == 0; tick++ {
		steer(s)
		for _, ev := range s.Tick() {
			if ev.Kind == core.EventScore {
				scored = append(scored, ev)
			}
		}
	}
	if len(scored) != 1 || scored[0].Score != 1 || scored[0].BestScore != 1 {
		t.Fatalf("Expected one score event with score 1, got %+v", scored)
	}

	var over []core.Event
	for tick := 0; tick < 1000 && len(over) == 0; tick++ {
		for _, ev := range s.Tick() {
			if ev.Kind == core.EventGameOver {
				over = append(over, ev)
			}
		}
	}
	if len(over) != 1 || over[0].Score != 1 {
		t.Fatalf("Expected one game over event with score 1, got %+v", over)
	}

	expected := []core.EventKind{core.EventJump, core.EventJump, core.EventScore, core.EventGameOver}
	if len(observed) != len(expected) {
		t.Fatalf("Subscriber saw %v, expected %v", observed, expected)
	}
	for i := range expected {
		if observed[i] != expected[i] {
			t.Errorf("Subscriber event %d = %v, expected %v", i, observed[i], expected[i])
		}
	}
}

func TestSessionPauseFreezes(t *testing.T) {
	s := newTestSession(Options{Seed: 1})
	s.Start()
	s.Tick()

	if !s.TogglePause() || !s.Paused() {
		t.Fatal("TogglePause should pause a running session")
	}

	frame := s.Clock().Frame()
	actor := s.Actor()
	front := s.Field().Obstacles()[0]
	for range 10 {
		s.Tick()
	}
	if s.Clock().Frame() != frame || s.Actor() != actor || s.Field().Obstacles()[0] != front {
		t.Error("Nothing should move while paused")
	}

	s.TogglePause()
	s.Tick()
	if s.Clock().Frame() != frame+1 {
		t.Error("Clock should resume after unpausing")
	}
}

func TestSessionResize(t *testing.T) {
	s := newTestSession(Options{Seed: 3})
	s.Start()
	playUntilScore(t, s, 1)

	s.Resize(400, 300)

	if s.Phase() != PhaseIdle {
		t.Errorf("Resize should return to idle, got %v", s.Phase())
	}
	if s.Score() != 0 {
		t.Errorf("Resize should reset the score, got %d", s.Score())
	}
	if s.BestScore() != 1 {
		t.Errorf("Resize should keep the best score, got %d", s.BestScore())
	}
	w, h := s.FieldSize()
	if w != 400 || h != 300 {
		t.Errorf("FieldSize() = %v x %v, expected 400 x 300", w, h)
	}
	lo, hi := s.Field().GapBounds()
	for _, o := range s.Field().Obstacles() {
		if o.GapY < lo || o.GapY > hi {
			t.Errorf("Gap offset %v outside the resized bounds [%v, %v]", o.GapY, lo, hi)
		}
	}
}

func TestSessionSpeedCap(t *testing.T) {
	tests := []struct {
		name     string
		speed    float64
		fieldW   float64
		expected float64
	}{
		{"default speed", 6.2, 800, 6.2},
		{"capped at pipe width", 500, 1000, 78},
		{"capped at anchor", 500, 400, 40},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultFlappyConfig()
			cfg.Physics.Speed = tc.speed
			s := NewSession(cfg, tc.fieldW, testFieldH, Options{})
			if got := s.Speed(); got != tc.expected {
				t.Errorf("Speed() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestSessionStartEmitsJump(t *testing.T) {
	s := newTestSession(Options{Seed: 1})

	var observed []core.Event
	s.Subscribe(func(ev core.Event) { observed = append(observed, ev) })

	s.Start()
	if len(observed) != 1 || observed[0].Kind != core.EventJump {
		t.Fatalf("Start should notify subscribers of the opening flap, got %+v", observed)
	}
	if s.Start() || len(observed) != 1 {
		t.Error("A rejected Start must not emit events")
	}
}

func TestSessionTimeProgressionPerRun(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Difficulty = config.DifficultyConfig{
		Enabled:     true,
		Progression: config.ProgressionConfig{Type: "time", MaxAt: 600},
		Scaling:     config.ScalingConfig{SpeedMultiplier: 1},
	}
	base := cfg.Physics.Speed
	s := NewSession(cfg, testFieldW, testFieldH, Options{Seed: 5})

	for range 100 {
		s.Tick()
	}
	s.Start()
	if got := s.Speed(); got != base {
		t.Fatalf("First run should start at base speed %v, got %v", base, got)
	}

	crash(t, s)
	lasted := s.RunFrames()
	if lasted == 0 {
		t.Fatal("Run should have lasted some frames")
	}
	for range 1000 {
		s.Tick()
	}
	if s.RunFrames() != lasted {
		t.Errorf("Frames on the game over screen should not count, %d became %d", lasted, s.RunFrames())
	}

	s.Start()
	if s.RunFrames() != 0 {
		t.Errorf("RunFrames() after restart = %d, expected 0", s.RunFrames())
	}
	if got := s.Speed(); got != base {
		t.Errorf("New run should start at base speed %v, got %v", base, got)
	}

	s.Tick()
	if got := s.Speed(); got <= base {
		t.Errorf("Speed should ramp during the run, got %v", got)
	}
}

func TestSessionDeterminism(t *testing.T) {
	run := func() (int, []Obstacle) {
		s := newTestSession(Options{Seed: 12345})
		s.Start()
		for tick := 0; tick < 400 && s.Phase() == PhasePlaying; tick++ {
			if tick%14 == 0 {
				s.Impulse()
			}
			s.Tick()
		}
		return s.Score(), s.Field().Obstacles()
	}

	score1, obs1 := run()
	score2, obs2 := run()
	if score1 != score2 {
		t.Errorf("Scores differ: %d vs %d", score1, score2)
	}
	for i := range obs1 {
		if obs1[i] != obs2[i] {
			t.Errorf("Obstacle %d differs: %+v vs %+v", i, obs1[i], obs2[i])
		}
	}
}
