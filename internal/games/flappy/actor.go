package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Actor is the player sprite. Only its vertical motion is simulated; the
// horizontal position is the session's fixed anchor.
type Actor struct {
	Y        float64 // Top of the hitbox
	Velocity float64 // Positive = falling
	Width    float64
	Height   float64
}

// ApplyGravity accelerates the actor downward.
func (a *Actor) ApplyGravity(g float64) {
	a.Velocity += g
}

// Integrate moves the actor by its velocity, keeping it inside
// [0, fieldH-Height]. It reports whether the actor is resting on the floor.
func (a *Actor) Integrate(fieldH float64) (floored bool) {
	floor := math.Max(fieldH-a.Height, 0)
	a.Y = math.Min(a.Y+a.Velocity, floor)
	if a.Y < 0 {
		a.Y = 0
	}
	return a.Y >= floor
}

// Impulse replaces the current velocity.
func (a *Actor) Impulse(v float64) {
	a.Velocity = v
}

// Rect returns the hitbox with its left edge at anchorX.
func (a Actor) Rect(anchorX float64) core.RectF {
	return core.RectF{X: anchorX, Y: a.Y, W: a.Width, H: a.Height}
}
