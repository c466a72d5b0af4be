package neonflip

import (
	"github.com/vovakirdan/neon-flip/internal/config"
	"github.com/vovakirdan/neon-flip/internal/core"
)

// StepPlayer advances the ball by one tick under gravity.
// The top and bottom edges are soft walls: the ball is clamped inside and
// its velocity zeroed, which does not end the game.
func StepPlayer(p PlayerState, g Gravity, height float64, phys config.Physics) PlayerState {
	accel := phys.Gravity
	if g == GravityUp {
		accel = -phys.Gravity
	}

	vel := core.ClampF(p.VelocityY+accel, -phys.MaxVelocity, phys.MaxVelocity)
	y := p.Y + vel

	// Boundary checks (top and bottom)
	if y-p.Radius < 0 {
		y = p.Radius
		vel = 0
	}
	if y+p.Radius > height {
		y = height - p.Radius
		vel = 0
	}

	p.Y = y
	p.VelocityY = vel
	return p
}

// FlipGravity reverses gravity and replaces the velocity with an impulse
// against the pre-flip direction.
func FlipGravity(g Gravity, jumpForce float64) (Gravity, float64) {
	if g == GravityDown {
		return GravityUp, -jumpForce
	}
	return GravityDown, jumpForce
}
