package neonflip

import (
	"testing"

	"github.com/vovakirdan/neon-flip/internal/config"
)

func TestStepPlayer(t *testing.T) {
	phys := config.Default().Physics
	const height = 1920

	tests := []struct {
		name    string
		in      PlayerState
		gravity Gravity
		wantY   float64
		wantV   float64
	}{
		{
			name:    "falls from rest",
			in:      PlayerState{X: 200, Y: 500, Radius: 30},
			gravity: GravityDown,
			wantY:   500.5,
			wantV:   0.5,
		},
		{
			name:    "rises under flipped gravity",
			in:      PlayerState{X: 200, Y: 500, Radius: 30},
			gravity: GravityUp,
			wantY:   499.5,
			wantV:   -0.5,
		},
		{
			name:    "terminal velocity",
			in:      PlayerState{X: 200, Y: 500, VelocityY: 14.8, Radius: 30},
			gravity: GravityDown,
			wantY:   515,
			wantV:   15,
		},
		{
			name:    "bottom wall",
			in:      PlayerState{X: 200, Y: 1885, VelocityY: 10, Radius: 30},
			gravity: GravityDown,
			wantY:   1890,
			wantV:   0,
		},
		{
			name:    "top wall",
			in:      PlayerState{X: 200, Y: 35, VelocityY: -10, Radius: 30},
			gravity: GravityUp,
			wantY:   30,
			wantV:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := StepPlayer(tt.in, tt.gravity, height, phys)
			if got.Y != tt.wantY {
				t.Errorf("Y = %v, want %v", got.Y, tt.wantY)
			}
			if got.VelocityY != tt.wantV {
				t.Errorf("VelocityY = %v, want %v", got.VelocityY, tt.wantV)
			}
			if got.X != tt.in.X {
				t.Errorf("X changed: %v -> %v", tt.in.X, got.X)
			}
		})
	}
}

func TestStepPlayerStaysInBounds(t *testing.T) {
	phys := config.Default().Physics
	const height = 1920

	p := PlayerState{X: 200, Y: 500, Radius: 30}
	g := GravityDown
	for i := 0; i < 2000; i++ {
		if i%37 == 0 {
			g, p.VelocityY = FlipGravity(g, phys.JumpForce)
		}
		p = StepPlayer(p, g, height, phys)

		if p.VelocityY > phys.MaxVelocity || p.VelocityY < -phys.MaxVelocity {
			t.Fatalf("tick %d: velocity %v outside ±%v", i, p.VelocityY, phys.MaxVelocity)
		}
		if p.Y < p.Radius || p.Y > height-p.Radius {
			t.Fatalf("tick %d: y %v outside [%v, %v]", i, p.Y, p.Radius, height-p.Radius)
		}
	}
}

func TestFlipGravity(t *testing.T) {
	g, v := FlipGravity(GravityDown, 12)
	if g != GravityUp || v != -12 {
		t.Errorf("flip from down = (%v, %v), want (up, -12)", g, v)
	}

	g, v = FlipGravity(GravityUp, 12)
	if g != GravityDown || v != 12 {
		t.Errorf("flip from up = (%v, %v), want (down, 12)", g, v)
	}
}
