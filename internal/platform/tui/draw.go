package tui

import (
	"fmt"
	"math"

	"github.com/vovakirdan/neon-flip/internal/core"
	"github.com/vovakirdan/neon-flip/internal/games/neonflip"
	"github.com/vovakirdan/neon-flip/internal/session"
)

// Rendering characters
const (
	BallChar      = '●'
	WallChar      = '█'
	CapTopChar    = '▀'
	CapBottomChar = '▄'
	StarChar      = '·'
)

// hudRows is the number of rows above the playfield.
const hudRows = 1

// cellAspect is the height of a terminal cell relative to its width.
const cellAspect = 2.0

// Field maps the logical playfield onto terminal cells.
type Field struct {
	Rect   core.Rect
	Width  float64
	Height float64
}

// NewField places a width×height logical playfield below the HUD.
func NewField(screenW, screenH int, width, height float64) Field {
	return Field{
		Rect:   core.NewRect(0, hudRows, screenW, core.Max(screenH-hudRows, 1)),
		Width:  width,
		Height: height,
	}
}

// Col returns the screen column for logical x.
func (f Field) Col(x float64) int {
	return f.Rect.X + int(math.Floor(x/f.Width*float64(f.Rect.W)))
}

// Row returns the screen row for logical y.
func (f Field) Row(y float64) int {
	return f.Rect.Y + int(math.Floor(y/f.Height*float64(f.Rect.H)))
}

// LogicalViewport returns a logical width for a terminal of cols×rows so that
// one logical unit looks the same size in both directions.
func LogicalViewport(cols, rows int, height float64) (float64, float64) {
	fieldRows := rows - hudRows
	if cols <= 0 || fieldRows <= 0 {
		return 0, 0
	}
	width := height * float64(cols) / (float64(fieldRows) * cellAspect)
	return math.Round(width), height
}

// Frame is everything one screen redraw needs.
type Frame struct {
	State   neonflip.State
	Session session.View
	Flash   FlashKind
	Notice  string
}

// DrawFrame renders a full frame into dst.
func DrawFrame(dst *core.Screen, f Frame) {
	dst.Clear()
	if dst.Width() == 0 || dst.Height() == 0 || f.State.Width <= 0 || f.State.Height <= 0 {
		return
	}

	field := NewField(dst.Width(), dst.Height(), f.State.Width, f.State.Height)

	drawBackdrop(dst, field)
	// The engine keeps the last run's field until the next Start
	if f.Session.Status != session.StatusReady {
		for _, o := range f.State.Obstacles {
			drawObstacle(dst, field, o)
		}
		drawBall(dst, field, f.State.Player, f.Flash)
	}
	drawHUD(dst, f)

	switch f.Session.Status {
	case session.StatusReady:
		drawReady(dst, f)
	case session.StatusPlaying:
		if f.State.Paused {
			drawCard(dst, []cardLine{
				{"PAUSED", core.ColorCyan},
				{"", core.ColorDefault},
				{"P to resume", core.ColorGray},
			})
		}
	default:
		drawGameOver(dst, f)
	}
}

// drawBackdrop scatters a sparse star grid so motion is visible.
func drawBackdrop(dst *core.Screen, field Field) {
	for y := field.Rect.Y; y < field.Rect.Bottom(); y += 3 {
		for x := field.Rect.X + (y % 7); x < field.Rect.Right(); x += 11 {
			dst.SetColored(x, y, StarChar, core.ColorPurple)
		}
	}
}

func drawObstacle(dst *core.Screen, field Field, o neonflip.Obstacle) {
	c0 := field.Col(o.X)
	c1 := core.Max(field.Col(o.Right()), c0+1)

	gapTop := field.Row(o.GapY)
	gapBottom := field.Row(o.GapY + o.GapHeight)

	for x := c0; x < c1; x++ {
		for y := field.Rect.Y; y < gapTop; y++ {
			dst.SetColored(x, y, WallChar, core.ColorMagenta)
		}
		for y := gapBottom; y < field.Rect.Bottom(); y++ {
			dst.SetColored(x, y, WallChar, core.ColorMagenta)
		}
		// Caps facing the gap
		if gapTop > field.Rect.Y {
			dst.SetColored(x, gapTop-1, CapTopChar, core.ColorPink)
		}
		if gapBottom < field.Rect.Bottom() {
			dst.SetColored(x, gapBottom, CapBottomChar, core.ColorPink)
		}
	}
}

func drawBall(dst *core.Screen, field Field, p neonflip.PlayerState, flash FlashKind) {
	x := field.Col(p.X)
	y := core.Clamp(field.Row(p.Y), field.Rect.Y, field.Rect.Bottom()-1)

	color := core.ColorCyan
	if flash == FlashScore {
		color = core.ColorYellow
	}
	dst.SetColored(x, y, BallChar, color)
}

func drawHUD(dst *core.Screen, f Frame) {
	dst.DrawRect(core.NewRect(0, 0, dst.Width(), hudRows), ' ', core.ColorDefault)

	arrow := "↓"
	if f.State.Gravity == neonflip.GravityUp {
		arrow = "↑"
	}
	left := fmt.Sprintf(" SCORE %d  %s", f.State.Score, arrow)
	dst.DrawText(0, 0, left, core.ColorCyan)

	best := fmt.Sprintf("BEST %d ", core.Max(f.Session.Best, 0))
	if f.State.Autoplay && f.Session.Status == session.StatusPlaying {
		best = "AUTO  " + best
	}
	dst.DrawText(dst.Width()-len([]rune(best)), 0, best, core.ColorYellow)

	if f.Flash == FlashGameOver {
		dst.DrawText(0, 0, left, core.ColorRed)
	}
}

func drawReady(dst *core.Screen, f Frame) {
	lines := []cardLine{
		{"N E O N   F L I P", core.ColorCyan},
		{"", core.ColorDefault},
		{"SPACE to start", core.ColorDefault},
		{fmt.Sprintf("A autoplay (%d left)", f.Session.AutoplaysLeft), core.ColorGray},
		{"L leaderboard", core.ColorGray},
	}
	if f.Session.Best > 0 {
		lines = append(lines, cardLine{fmt.Sprintf("Best: %d", f.Session.Best), core.ColorYellow})
	}
	if f.Notice != "" {
		lines = append(lines, cardLine{f.Notice, core.ColorRed})
	}
	drawCard(dst, lines)
}

func drawGameOver(dst *core.Screen, f Frame) {
	v := f.Session
	lines := []cardLine{
		{"GAME OVER", core.ColorRed},
		{"", core.ColorDefault},
		{fmt.Sprintf("Score: %d", v.Score), core.ColorDefault},
	}
	if v.NewBest {
		lines = append(lines, cardLine{"NEW HIGH SCORE!", core.ColorYellow})
	} else {
		lines = append(lines, cardLine{fmt.Sprintf("Best: %d", v.Best), core.ColorGray})
	}
	lines = append(lines, cardLine{"", core.ColorDefault})

	switch v.Status {
	case session.StatusGameOver:
		lines = append(lines, cardLine{"S submit  R restart  A autoplay", core.ColorGray})
	case session.StatusSubmitting:
		lines = append(lines, cardLine{"Submitting score...", core.ColorCyan})
	case session.StatusSubmitted:
		lines = append(lines,
			cardLine{"SCORE SUBMITTED!", core.ColorGreen},
			cardLine{"R restart  L leaderboard", core.ColorGray},
		)
	case session.StatusFailed:
		lines = append(lines,
			cardLine{"Failed to submit score", core.ColorRed},
			cardLine{"S retry  R restart", core.ColorGray},
		)
	}
	if f.Notice != "" {
		lines = append(lines, cardLine{f.Notice, core.ColorRed})
	}
	drawCard(dst, lines)
}

type cardLine struct {
	text  string
	color core.Color
}

// drawCard draws a message box in the center of the screen.
func drawCard(dst *core.Screen, lines []cardLine) {
	inner := 0
	for _, l := range lines {
		inner = core.Max(inner, len([]rune(l.text)))
	}

	box := dst.Bounds().Centered(inner+4, len(lines)+2)
	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorPurple)

	for i, l := range lines {
		dst.DrawTextCentered(box, box.Y+1+i, l.text, l.color)
	}
}
