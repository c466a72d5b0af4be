package config

import (
	_ "embed"
)

//go:embed defaults/neonflip.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Physics: Physics{
			Gravity:       0.5,
			JumpForce:     12,
			MaxVelocity:   15,
			ObstacleSpeed: 5,
		},
		Player: Player{
			X:      200,
			StartY: 500,
			Radius: 30,
		},
		Obstacles: Obstacles{
			Width:          100,
			SpawnMargin:    50,
			GapMinFraction: 0.2,
			GapMaxFraction: 0.8,
		},
		Difficulty: Difficulty{
			BaseGap: 500,
			GapStep: 15,
			MinGap:  200,
		},
		Autopilot: Autopilot{
			Threshold: 50,
			MaxPlays:  3,
		},
		Timing: Timing{
			TickMS:  16,
			SpawnMS: 1500,
		},
		Viewport: Viewport{
			Width:  1080,
			Height: 1920,
		},
	}
}

// DefaultYAML returns the embedded default YAML, useful as a template for
// user config files.
func DefaultYAML() []byte {
	return defaultYAML
}
