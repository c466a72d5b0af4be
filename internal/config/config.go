// Package config provides YAML-based game configuration loading and
// difficulty management for Neon Flip.
package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidConfig is returned by Validate for unusable settings.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config contains all tunables for the gravity-flip game.
type Config struct {
	Physics    Physics    `yaml:"physics"`
	Player     Player     `yaml:"player"`
	Obstacles  Obstacles  `yaml:"obstacles"`
	Difficulty Difficulty `yaml:"difficulty"`
	Autopilot  Autopilot  `yaml:"autopilot"`
	Timing     Timing     `yaml:"timing"`
	Viewport   Viewport   `yaml:"viewport"`
}

// Physics defines per-tick physics parameters in logical units.
type Physics struct {
	Gravity       float64 `yaml:"gravity"`        // Acceleration added to velocity each tick
	JumpForce     float64 `yaml:"jump_force"`     // Velocity magnitude set by a flip
	MaxVelocity   float64 `yaml:"max_velocity"`   // Terminal velocity in either direction
	ObstacleSpeed float64 `yaml:"obstacle_speed"` // Leftward scroll per tick
}

// Player defines the player ball.
type Player struct {
	X      float64 `yaml:"x"`       // Fixed horizontal position
	StartY float64 `yaml:"start_y"` // Vertical position on start
	Radius float64 `yaml:"radius"`
}

// Obstacles defines obstacle geometry and gap placement.
type Obstacles struct {
	Width          float64 `yaml:"width"`
	SpawnMargin    float64 `yaml:"spawn_margin"`     // Distance beyond the right edge at spawn
	GapMinFraction float64 `yaml:"gap_min_fraction"` // Lowest gap start as a fraction of height
	GapMaxFraction float64 `yaml:"gap_max_fraction"` // Highest gap start (exclusive)
}

// Difficulty defines how the gap shrinks with score.
type Difficulty struct {
	BaseGap float64 `yaml:"base_gap"`
	GapStep float64 `yaml:"gap_step"` // Shrink per point scored
	MinGap  float64 `yaml:"min_gap"`  // Hard floor
}

// Autopilot defines the rule-based controller.
type Autopilot struct {
	Threshold float64 `yaml:"threshold"` // Tolerance band around the gap center
	MaxPlays  int     `yaml:"max_plays"` // Autoplay runs allowed per player
}

// Timing defines the two periodic cadences.
type Timing struct {
	TickMS  int `yaml:"tick_ms"`
	SpawnMS int `yaml:"spawn_ms"`
}

// TickInterval returns the physics tick period.
func (t Timing) TickInterval() time.Duration {
	return time.Duration(t.TickMS) * time.Millisecond
}

// SpawnInterval returns the obstacle spawn period.
func (t Timing) SpawnInterval() time.Duration {
	return time.Duration(t.SpawnMS) * time.Millisecond
}

// TicksPerSpawn converts the spawn period into whole ticks, rounding up.
// Used by tick-driven hosts that have no wall clock.
func (t Timing) TicksPerSpawn() int {
	if t.TickMS <= 0 {
		return 1
	}
	n := (t.SpawnMS + t.TickMS - 1) / t.TickMS
	if n < 1 {
		n = 1
	}
	return n
}

// Viewport is the logical coordinate space of the playfield.
type Viewport struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Physics.MaxVelocity <= 0:
		return fmt.Errorf("%w: physics.max_velocity must be positive", ErrInvalidConfig)
	case c.Physics.ObstacleSpeed <= 0:
		return fmt.Errorf("%w: physics.obstacle_speed must be positive", ErrInvalidConfig)
	case c.Player.Radius <= 0:
		return fmt.Errorf("%w: player.radius must be positive", ErrInvalidConfig)
	case c.Obstacles.Width <= 0:
		return fmt.Errorf("%w: obstacles.width must be positive", ErrInvalidConfig)
	case c.Obstacles.GapMinFraction < 0 || c.Obstacles.GapMaxFraction > 1 ||
		c.Obstacles.GapMinFraction >= c.Obstacles.GapMaxFraction:
		return fmt.Errorf("%w: gap fractions must satisfy 0 <= min < max <= 1", ErrInvalidConfig)
	case c.Difficulty.MinGap <= 0:
		return fmt.Errorf("%w: difficulty.min_gap must be positive", ErrInvalidConfig)
	case c.Difficulty.MinGap > c.Difficulty.BaseGap:
		return fmt.Errorf("%w: difficulty.min_gap exceeds base_gap", ErrInvalidConfig)
	case c.Difficulty.GapStep < 0:
		return fmt.Errorf("%w: difficulty.gap_step must not be negative", ErrInvalidConfig)
	case c.Timing.TickMS <= 0 || c.Timing.SpawnMS <= 0:
		return fmt.Errorf("%w: timing intervals must be positive", ErrInvalidConfig)
	}
	return ValidateViewport(c.Viewport.Width, c.Viewport.Height, c)
}

// ValidateViewport checks that a playfield of the given size can hold the
// player and a minimum gap.
func ValidateViewport(width, height float64, c Config) error {
	if !isFinite(width) || !isFinite(height) {
		return fmt.Errorf("%w: viewport %gx%g must be finite", ErrInvalidConfig, width, height)
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: viewport %gx%g must be positive", ErrInvalidConfig, width, height)
	}
	if height < c.Difficulty.MinGap || height < 2*c.Player.Radius {
		return fmt.Errorf("%w: viewport height %g cannot fit a %g gap", ErrInvalidConfig, height, c.Difficulty.MinGap)
	}
	return nil
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a flag value to a preset. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown difficulty %q", ErrInvalidConfig, s)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
