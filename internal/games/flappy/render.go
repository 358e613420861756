package flappy

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Visual characters for rendering
const (
	PipeChar      = '█'
	PipeCapTop    = '▄'
	PipeCapBottom = '▀'
	ActorBody     = "(o)>"
)

var (
	// actorWings holds one wing row per animation phase.
	actorWings = [3]string{" ^^ ", " -- ", " vv "}
	// groundPattern scrolls along the bottom row.
	groundPattern = []rune("▓▒░▒")
	cloud         = ".-~~-."
)

const cloudPeriod = 24 // columns between clouds

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.session == nil {
		return
	}
	s := g.session

	g.drawBackground(dst)
	for _, o := range s.Field().Obstacles() {
		g.drawObstacle(dst, o)
	}
	g.drawActor(dst)
	g.drawHUD(dst)

	switch {
	case s.Phase() == PhaseIdle:
		g.drawCenteredMessage(dst, core.ColorBrightYellow,
			"FLAPPY BIRD",
			fmt.Sprintf("Best score : %d", s.BestScore()),
			"Press Space to play",
		)
	case s.Phase() == PhaseOver:
		result := fmt.Sprintf("Score: %d  |  Best: %d", s.Score(), s.BestScore())
		if s.Score() > 0 && s.Score() == s.BestScore() {
			result = fmt.Sprintf("New best: %d!", s.Score())
		}
		g.drawCenteredMessage(dst, core.ColorBrightRed,
			"GAME OVER",
			result,
			"Space/R to play again  |  Q to quit",
		)
	case s.Paused():
		g.drawCenteredMessage(dst, core.ColorBrightCyan, "PAUSED", "Press P to resume")
	}
}

// col converts a horizontal field position to a screen column.
func (g *Game) col(x float64) int {
	return int(math.Floor(x / g.cfg.Field.CellWidth))
}

// row converts a vertical field position to the nearest screen row boundary.
func (g *Game) row(y float64) int {
	return int(math.Round(y / g.cfg.Field.CellHeight))
}

// drawBackground draws drifting clouds and the ground, both scrolling at half
// the obstacle speed.
func (g *Game) drawBackground(dst *core.Screen) {
	s := g.session
	w, h := dst.Width(), dst.Height()
	clock := s.Clock()
	speed := s.Speed()

	cloudShift := g.col(clock.ScrollOffset(speed, cloudPeriod*g.cfg.Field.CellWidth))
	for _, y := range []int{h / 5, h / 3} {
		offset := cloudShift
		if y != h/5 {
			offset += cloudPeriod / 2
		}
		for x := -offset; x < w; x += cloudPeriod {
			dst.DrawTextColor(x, y, cloud, core.ColorGray)
		}
	}

	period := len(groundPattern)
	groundShift := g.col(clock.ScrollOffset(speed, float64(period)*g.cfg.Field.CellWidth))
	for x := 0; x < w; x++ {
		dst.SetColor(x, h-1, groundPattern[(x+groundShift)%period], core.ColorOrange)
	}
}

// drawObstacle renders a single pipe pair.
func (g *Game) drawObstacle(dst *core.Screen, o Obstacle) {
	field := g.session.Field()
	playRows := dst.Height() - 1

	left := g.col(o.X)
	right := int(math.Ceil((o.X + field.Width()) / g.cfg.Field.CellWidth))
	topEnd := g.row(o.GapY)
	bottomStart := g.row(o.GapY + field.Gap())

	for x := left; x < right; x++ {
		for y := 0; y < topEnd && y < playRows; y++ {
			ch := PipeChar
			if y == topEnd-1 {
				ch = PipeCapTop
			}
			dst.SetColor(x, y, ch, core.ColorGreen)
		}
		for y := max(bottomStart, 0); y < playRows; y++ {
			ch := PipeChar
			if y == bottomStart {
				ch = PipeCapBottom
			}
			dst.SetColor(x, y, ch, core.ColorGreen)
		}
	}
}

// drawActor draws the bird with its wing animation. On the title screen it
// hovers in the middle of the field.
func (g *Game) drawActor(dst *core.Screen) {
	s := g.session
	actor := s.Actor()

	x := s.AnchorX()
	if s.Phase() == PhaseIdle {
		fieldW, _ := s.FieldSize()
		x = fieldW/2 - actor.Width/2
	}

	color := core.ColorBrightYellow
	if s.Phase() == PhaseOver {
		color = core.ColorBrightRed
	}

	col := g.col(x)
	top := g.row(actor.Y)
	bodyRow := max(g.row(actor.Y+actor.Height)-1, top)

	wing := actorWings[s.Clock().AnimationPhase()]
	if bodyRow > top {
		dst.DrawTextColor(col, top, wing, color)
	}
	dst.DrawTextColor(col, bodyRow, ActorBody, color)
}

// drawHUD renders current and best score on the top row.
func (g *Game) drawHUD(dst *core.Screen) {
	s := g.session
	dst.DrawTextColor(2, 0, fmt.Sprintf(" Score: %d ", s.Score()), core.ColorBrightWhite)

	best := fmt.Sprintf(" Best: %d ", s.BestScore())
	dst.DrawTextColor(dst.Width()-len(best)-2, 0, best, core.ColorYellow)
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, color core.Color, title string, lines ...string) {
	w := dst.Width()
	h := dst.Height()

	boxW := len([]rune(title))
	for _, l := range lines {
		boxW = max(boxW, len([]rune(l)))
	}
	boxW += 4
	boxH := len(lines) + 4
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	box := core.NewRect(boxX, boxY, boxW, boxH)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, color)

	dst.DrawTextCentered(boxY+1, title, color)
	for i, l := range lines {
		dst.DrawTextCentered(boxY+3+i, l, core.ColorWhite)
	}
}
