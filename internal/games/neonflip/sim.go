package neonflip

import (
	"github.com/vovakirdan/neon-flip/internal/config"
)

// TickEvents describes what happened during one tick.
type TickEvents struct {
	AutoFlipped bool // Autopilot flipped gravity before the physics step
	Passed      int  // Obstacles passed this tick
	GameOver    bool // Collision ended the session this tick
}

// Sim holds the pure game rules. It never mutates a State it was given;
// every method returns a fresh one. Only the spawner's RNG carries state.
type Sim struct {
	cfg        config.Config
	difficulty *config.DifficultyManager
	spawner    *Spawner
}

// NewSim creates a simulation with a seeded obstacle spawner.
func NewSim(cfg config.Config, seed int64) *Sim {
	diff := config.NewDifficultyManager(cfg.Difficulty)
	return &Sim{
		cfg:        cfg,
		difficulty: diff,
		spawner:    NewSpawner(seed, cfg.Obstacles, diff),
	}
}

// Config returns the rules the simulation was built with.
func (s *Sim) Config() config.Config {
	return s.cfg
}

// Difficulty returns the difficulty manager shared with the spawner.
func (s *Sim) Difficulty() *config.DifficultyManager {
	return s.difficulty
}

// Reseed restarts the spawner's random sequence.
func (s *Sim) Reseed(seed int64) {
	s.spawner.Reseed(seed)
}

// Idle returns a pre-game state for a width×height viewport.
func (s *Sim) Idle(width, height float64) State {
	st := s.Start(false, width, height)
	st.Phase = PhaseIdle
	return st
}

// Start returns a fresh Playing state: ball at its spawn point, no
// obstacles, zero score, gravity down.
func (s *Sim) Start(autoplay bool, width, height float64) State {
	return State{
		Player: PlayerState{
			X:      s.cfg.Player.X,
			Y:      s.cfg.Player.StartY,
			Radius: s.cfg.Player.Radius,
		},
		Gravity:  GravityDown,
		Phase:    PhasePlaying,
		Autoplay: autoplay,
		Width:    width,
		Height:   height,
	}
}

// Flip applies a gravity flip. It reports false and returns st unchanged
// when the session is not accepting input.
func (s *Sim) Flip(st State) (State, bool) {
	if !st.Playing() {
		return st, false
	}
	st.Gravity, st.Player.VelocityY = FlipGravity(st.Gravity, s.cfg.Physics.JumpForce)
	return st, true
}

// Spawn appends a new obstacle sized for the current score.
func (s *Sim) Spawn(st State) State {
	if !st.Playing() {
		return st
	}
	o := s.spawner.Spawn(st.Width, st.Height, st.Score)

	obs := make([]Obstacle, len(st.Obstacles), len(st.Obstacles)+1)
	copy(obs, st.Obstacles)
	st.Obstacles = append(obs, o)
	return st
}

// Tick advances the session by one fixed step:
// autopilot, physics, obstacles, collision, score.
func (s *Sim) Tick(st State) (State, TickEvents) {
	var ev TickEvents
	if !st.Playing() {
		return st, ev
	}

	// Autopilot sees the pre-step state of this tick
	if st.Autoplay && Decide(st, s.cfg.Autopilot.Threshold) {
		st, ev.AutoFlipped = s.Flip(st)
	}

	st.Player = StepPlayer(st.Player, st.Gravity, st.Height, s.cfg.Physics)
	st.Obstacles, ev.Passed = AdvanceObstacles(st.Obstacles, s.cfg.Physics.ObstacleSpeed, st.Player.X)

	if Collides(st.Player, st.Obstacles) {
		st.GameOver = true
		st.Phase = PhaseGameOver
		ev.GameOver = true
	}

	st.Score += ev.Passed
	st.Tick++
	return st, ev
}

// IsNewBest reports whether score beats a previously recorded best.
func IsNewBest(score, best int) bool {
	return score > 0 && score > best
}

// Simulate runs a headless autopilot game for at most maxTicks, spawning on
// the tick cadence derived from the configured intervals. The same config
// and seed always produce the same final state.
func Simulate(cfg config.Config, seed int64, maxTicks int) State {
	sim := NewSim(cfg, seed)
	st := sim.Start(true, cfg.Viewport.Width, cfg.Viewport.Height)
	every := cfg.Timing.TicksPerSpawn()

	for i := 1; i <= maxTicks && st.Playing(); i++ {
		if i%every == 0 {
			st = sim.Spawn(st)
		}
		st, _ = sim.Tick(st)
	}
	return st
}
