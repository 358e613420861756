package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ObstacleCount is the number of obstacles alive at any time.
const ObstacleCount = 3

// Obstacle is a top/bottom pipe pair with a vertical gap between them.
type Obstacle struct {
	X    float64 // Leading (left) edge
	GapY float64 // Top of the gap, measured from the field top
}

// ObstacleField owns the obstacles, ordered front (leftmost) to back.
// Obstacles live in a fixed ring so recycling never allocates.
type ObstacleField struct {
	ring   [ObstacleCount]Obstacle
	head   int // ring index of the front obstacle
	width  float64
	gap    float64
	fieldW float64
	fieldH float64
	rng    *rand.Rand
}

// NewObstacleField creates a field of obstacles with the given pipe width and
// gap height, seeded just past the right edge of a fieldW x fieldH area.
func NewObstacleField(width, gap, fieldW, fieldH float64, rng *rand.Rand) *ObstacleField {
	f := &ObstacleField{
		width: width,
		gap:   gap,
		rng:   rng,
	}
	f.Resize(fieldW, fieldH)
	return f
}

// Resize updates the field bounds and re-seeds every obstacle, so no gap
// offset computed for the old height survives.
func (f *ObstacleField) Resize(fieldW, fieldH float64) {
	f.fieldW = fieldW
	f.fieldH = fieldH
	f.Reset()
}

// Reset places ObstacleCount obstacles starting at the right boundary,
// one spacing apart.
func (f *ObstacleField) Reset() {
	f.head = 0
	for i := range f.ring {
		f.ring[i] = Obstacle{
			X:    f.fieldW + float64(i)*f.Spacing(),
			GapY: f.RandomGapOffset(),
		}
	}
}

// Spacing is the horizontal distance between consecutive leading edges.
func (f *ObstacleField) Spacing() float64 {
	return f.gap + f.width
}

// Width returns the pipe width.
func (f *ObstacleField) Width() float64 {
	return f.width
}

// Gap returns the gap height.
func (f *ObstacleField) Gap() float64 {
	return f.gap
}

// at returns the i-th obstacle counted from the front.
func (f *ObstacleField) at(i int) *Obstacle {
	return &f.ring[(f.head+i)%ObstacleCount]
}

// Obstacles returns a front-to-back copy of the live obstacles.
func (f *ObstacleField) Obstacles() []Obstacle {
	out := make([]Obstacle, ObstacleCount)
	for i := range out {
		out[i] = *f.at(i)
	}
	return out
}

// Advance moves every obstacle left by delta.
func (f *ObstacleField) Advance(delta float64) {
	for i := range f.ring {
		f.ring[i].X -= delta
	}
}

// Recycle evicts obstacles whose trailing edge reached the left boundary and
// appends a replacement one spacing behind the rearmost. Returns how many
// obstacles were replaced.
func (f *ObstacleField) Recycle() int {
	n := 0
	for f.at(0).X+f.width <= 0 {
		rear := *f.at(ObstacleCount - 1)
		// The front slot becomes the new rear once head moves on.
		*f.at(0) = Obstacle{
			X:    rear.X + f.Spacing(),
			GapY: f.RandomGapOffset(),
		}
		f.head = (f.head + 1) % ObstacleCount
		n++
	}
	return n
}

// GapBounds returns the allowed range for a gap offset at the current field
// height: one pipe width of margin above the gap and below it. When the field
// is too short the range collapses to the top margin.
func (f *ObstacleField) GapBounds() (lo, hi float64) {
	lo = f.width
	hi = f.fieldH - (f.gap + f.width)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// RandomGapOffset samples a gap offset uniformly from GapBounds.
func (f *ObstacleField) RandomGapOffset() float64 {
	lo, hi := f.GapBounds()
	if hi <= lo {
		return lo
	}
	return lo + f.rng.Float64()*(hi-lo)
}

// CheckPass counts obstacles whose trailing edge crossed anchor during the
// last advance of delta. Each obstacle crosses a given anchor exactly once.
func (f *ObstacleField) CheckPass(anchor, delta float64) int {
	passed := 0
	for i := range f.ring {
		trailing := f.ring[i].X + f.width
		if trailing < anchor && trailing+delta >= anchor {
			passed++
		}
	}
	return passed
}

// CheckCollision reports whether the actor box overlaps an obstacle
// horizontally while sticking out of its gap.
func (f *ObstacleField) CheckCollision(actor core.RectF) bool {
	for i := range f.ring {
		o := f.ring[i]
		span := core.RectF{X: o.X, W: f.width}
		if !actor.OverlapsX(span) {
			continue
		}
		if actor.Y < o.GapY || actor.Bottom() > o.GapY+f.gap {
			return true
		}
	}
	return false
}
