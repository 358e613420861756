package core

// EventKind identifies something observable that happened during a tick.
type EventKind int

const (
	EventScore    EventKind = iota + 1 // An obstacle was passed
	EventJump                          // The actor received an impulse
	EventGameOver                      // The run ended on collision or floor contact
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventScore:
		return "score"
	case EventJump:
		return "jump"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is emitted by the simulation for renderers and audio to react to.
type Event struct {
	Kind      EventKind
	Score     int
	BestScore int
	Frame     uint64
}
