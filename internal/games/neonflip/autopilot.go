package neonflip

// NextObstacle returns the first obstacle in spawn order whose trailing edge
// is still ahead of the player.
func NextObstacle(s State) (Obstacle, bool) {
	for _, o := range s.Obstacles {
		if o.Right() > s.Player.X {
			return o, true
		}
	}
	return Obstacle{}, false
}

// Decide is the greedy autoplay rule. It flips when the ball is
// drifting away from the next gap's center by more than threshold in the
// direction gravity is already pulling it. It keeps no memory between ticks.
func Decide(s State, threshold float64) bool {
	next, ok := NextObstacle(s)
	if !ok {
		return false
	}

	diff := s.Player.Y - next.Gap().Center()

	switch s.Gravity {
	case GravityDown:
		// Pulled down while already below the target
		return diff > threshold
	case GravityUp:
		// Pulled up while already above the target
		return diff < -threshold
	}
	return false
}
