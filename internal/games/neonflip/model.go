// Package neonflip implements the Neon Flip gravity-flip game engine.
// A ball sits at a fixed horizontal position while gravity pulls it up or
// down; flipping gravity dodges obstacles that scroll in from the right.
package neonflip

import "github.com/vovakirdan/neon-flip/internal/core"

// Gravity is the direction the player is currently pulled.
type Gravity int

const (
	GravityDown Gravity = iota
	GravityUp
)

// Flipped returns the opposite direction.
func (g Gravity) Flipped() Gravity {
	if g == GravityDown {
		return GravityUp
	}
	return GravityDown
}

func (g Gravity) String() string {
	if g == GravityUp {
		return "up"
	}
	return "down"
}

// Phase is the session lifecycle stage.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// PlayerState is the ball. X never changes after spawn.
type PlayerState struct {
	X         float64
	Y         float64
	VelocityY float64
	Radius    float64
}

// HSpan returns the horizontal extent of the ball.
func (p PlayerState) HSpan() core.Span {
	return core.SpanAround(p.X, p.Radius)
}

// VSpan returns the vertical extent of the ball.
func (p PlayerState) VSpan() core.Span {
	return core.SpanAround(p.Y, p.Radius)
}

// Obstacle is a vertical wall with a pass-through gap.
type Obstacle struct {
	X         float64 // Left edge
	Width     float64
	GapY      float64 // Top of the gap
	GapHeight float64
	Passed    bool // Trailing edge has scrolled behind the player
}

// Right returns the x-coordinate of the trailing edge.
func (o Obstacle) Right() float64 {
	return o.X + o.Width
}

// HSpan returns the horizontal extent of the obstacle.
func (o Obstacle) HSpan() core.Span {
	return core.Span{Lo: o.X, Hi: o.Right()}
}

// Gap returns the vertical extent of the gap.
func (o Obstacle) Gap() core.Span {
	return core.Span{Lo: o.GapY, Hi: o.GapY + o.GapHeight}
}

// State is one immutable snapshot of a game session. Every tick and every
// command produces a new State; the Obstacles slice of a published State is
// never written again.
type State struct {
	Player    PlayerState
	Gravity   Gravity
	Obstacles []Obstacle // Spawn order
	Score     int
	Phase     Phase
	GameOver  bool
	Autoplay  bool
	Paused    bool
	Width     float64 // Logical viewport
	Height    float64
	Tick      uint64
}

// Clone returns a deep copy safe to hand to observers.
func (s State) Clone() State {
	if s.Obstacles != nil {
		obs := make([]Obstacle, len(s.Obstacles))
		copy(obs, s.Obstacles)
		s.Obstacles = obs
	}
	return s
}

// Playing reports whether ticks and flips currently apply.
func (s State) Playing() bool {
	return s.Phase == PhasePlaying && !s.Paused
}
