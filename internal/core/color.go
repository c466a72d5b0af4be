package core

// Color represents a foreground color for a screen cell.
// The platform layer maps these to terminal colors.
type Color uint8

// Neon palette used by the game renderer.
const (
	ColorDefault Color = iota
	ColorCyan          // Player ball
	ColorMagenta       // Obstacles
	ColorPink          // Obstacle caps
	ColorPurple        // Frame and HUD chrome
	ColorYellow        // High score
	ColorGreen         // Success messages
	ColorRed           // Game over and errors
	ColorGray          // Secondary text
)
