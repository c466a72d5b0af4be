package config

import "math"

// DifficultyManager calculates score-dependent game parameters.
type DifficultyManager struct {
	cfg Difficulty
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg Difficulty) *DifficultyManager {
	return &DifficultyManager{cfg: cfg}
}

// GapHeight returns the gap size for an obstacle spawned at the given score.
// The gap shrinks linearly and never drops below MinGap.
func (d *DifficultyManager) GapHeight(score int) float64 {
	if score < 0 {
		score = 0
	}
	gap := d.cfg.BaseGap - d.cfg.GapStep*float64(score)
	return math.Max(d.cfg.MinGap, gap)
}

// Level returns how far the gap has shrunk toward the floor, from 0.0 to 1.0.
func (d *DifficultyManager) Level(score int) float64 {
	span := d.cfg.BaseGap - d.cfg.MinGap
	if span <= 0 {
		return 1.0
	}
	return clampF((d.cfg.BaseGap-d.GapHeight(score))/span, 0.0, 1.0)
}

// MaxedAt returns the first score at which the gap reaches the floor,
// or -1 if it never does.
func (d *DifficultyManager) MaxedAt() int {
	if d.cfg.GapStep <= 0 {
		if d.cfg.BaseGap <= d.cfg.MinGap {
			return 0
		}
		return -1
	}
	return int(math.Ceil((d.cfg.BaseGap - d.cfg.MinGap) / d.cfg.GapStep))
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
