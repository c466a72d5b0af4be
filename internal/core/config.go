package core

// RuntimeConfig contains per-session settings chosen by the platform layer.
type RuntimeConfig struct {
	ScreenW int    // Terminal width in characters
	ScreenH int    // Terminal height in characters
	Seed    int64  // RNG seed for obstacle placement; 0 means time-based
	Player  string // Name scores are recorded under
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW: 80,
		ScreenH: 24,
		Seed:    0, // 0 means use current time in platform layer
		Player:  "player",
	}
}
