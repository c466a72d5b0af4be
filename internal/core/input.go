package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game screen to work with intents rather than raw input.
type Action int

const (
	ActionNone        Action = iota
	ActionFlip               // Space, Up, W, Enter, click - flip gravity (or start)
	ActionPause              // P - pause/resume
	ActionRestart            // R - new game after game over
	ActionAutoplay           // A - start an autopilot run
	ActionSubmit             // S - submit the finished run
	ActionLeaderboard        // L - show leaderboard
	ActionBack               // B, Escape - leave the current overlay
	ActionQuit               // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionFlip:
		return "Flip"
	case ActionPause:
		return "Pause"
	case ActionRestart:
		return "Restart"
	case ActionAutoplay:
		return "Autoplay"
	case ActionSubmit:
		return "Submit"
	case ActionLeaderboard:
		return "Leaderboard"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
