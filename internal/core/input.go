package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, Up, W, mouse click - flap, or start from the title screen
	ActionConfirm        // Enter - start a run
	ActionRestart        // R - start again after game over
	ActionPause          // P, Esc - pause/unpause
	ActionQuit           // Q, Ctrl+C - exit
)

var actionNames = [...]string{
	ActionNone:    "None",
	ActionJump:    "Jump",
	ActionConfirm: "Confirm",
	ActionRestart: "Restart",
	ActionPause:   "Pause",
	ActionQuit:    "Quit",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "Unknown"
	}
	return actionNames[a]
}

// InputFrame is the set of actions triggered during one simulation tick.
// The zero value is an empty frame.
type InputFrame struct {
	bits uint32
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{}
}

// Set marks an action as triggered for this frame. ActionNone is ignored.
func (f *InputFrame) Set(a Action) {
	if a <= ActionNone || a >= 32 {
		return
	}
	f.bits |= 1 << uint(a)
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if a <= ActionNone || a >= 32 {
		return false
	}
	return f.bits&(1<<uint(a)) != 0
}

// Empty reports whether no action was triggered.
func (f InputFrame) Empty() bool {
	return f.bits == 0
}

// Actions lists the triggered actions in declaration order.
func (f InputFrame) Actions() []Action {
	var out []Action
	for a := ActionJump; int(a) < len(actionNames); a++ {
		if f.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	f.bits = 0
}
