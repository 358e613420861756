package flappy

import "math"

// Clock counts simulation ticks. One tick is scheduled per rendered frame,
// so the count doubles as the animation clock. It never resets while the
// process runs; consumers wrap it with modulo.
type Clock struct {
	frame uint64
}

// Tick advances the clock and returns the new frame number.
func (c *Clock) Tick() uint64 {
	c.frame++
	return c.frame
}

// Frame returns the number of ticks so far.
func (c *Clock) Frame() uint64 {
	return c.frame
}

// AnimationPhase cycles 0, 1, 2 holding each value for three frames.
func (c *Clock) AnimationPhase() int {
	return int((c.frame % 9) / 3)
}

// ScrollOffset is the background offset in [0, width), scrolling at half
// the given speed.
func (c *Clock) ScrollOffset(speed, width float64) float64 {
	if width <= 0 {
		return 0
	}
	return math.Mod(float64(c.frame)*speed/2, width)
}
