package neonflip

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-flip/internal/config"
)

// Spawner creates obstacles with random gap placement.
// It is not safe for concurrent use; the engine calls it from its loop only.
type Spawner struct {
	rng        *rand.Rand
	cfg        config.Obstacles
	difficulty *config.DifficultyManager
}

// NewSpawner creates a spawner whose gap placement is fully determined by seed.
func NewSpawner(seed int64, cfg config.Obstacles, diff *config.DifficultyManager) *Spawner {
	return &Spawner{
		rng:        rand.New(rand.NewSource(seed)),
		cfg:        cfg,
		difficulty: diff,
	}
}

// Reseed restarts the random sequence.
func (sp *Spawner) Reseed(seed int64) {
	sp.rng = rand.New(rand.NewSource(seed))
}

// Spawn creates an obstacle just beyond the right edge of a width×height
// playfield. The gap shrinks with score down to the configured floor and is
// placed so it lies entirely inside [0, height].
func (sp *Spawner) Spawn(width, height float64, score int) Obstacle {
	gapHeight := math.Min(sp.difficulty.GapHeight(score), height)

	lo := int(height * sp.cfg.GapMinFraction)
	hi := int(height * sp.cfg.GapMaxFraction)

	// Keep the whole gap on screen
	if maxStart := int(height-gapHeight) + 1; hi > maxStart {
		hi = maxStart
	}

	gapY := float64(lo)
	if hi > lo {
		gapY = float64(lo + sp.rng.Intn(hi-lo))
	}
	gapY = math.Min(gapY, height-gapHeight)

	return Obstacle{
		X:         width + sp.cfg.SpawnMargin,
		Width:     sp.cfg.Width,
		GapY:      gapY,
		GapHeight: gapHeight,
		Passed:    false,
	}
}

// AdvanceObstacles moves obstacles left by speed, marks the ones whose
// trailing edge is now behind playerX, and drops those fully off-screen.
// Returns a new slice (the input is not modified) and the number of
// obstacles passed this tick.
func AdvanceObstacles(obstacles []Obstacle, speed, playerX float64) ([]Obstacle, int) {
	passed := 0
	next := make([]Obstacle, 0, len(obstacles))

	for _, o := range obstacles {
		o.X -= speed

		// Check for passed obstacles (trailing edge behind the player)
		if !o.Passed && o.Right() < playerX {
			o.Passed = true
			passed++
		}

		// Remove obstacles that have moved off the left side
		if o.Right() < 0 {
			continue
		}
		next = append(next, o)
	}

	return next, passed
}
