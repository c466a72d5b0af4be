package neonflip

import (
	"math"
	"testing"

	"github.com/vovakirdan/neon-flip/internal/config"
)

func newTestSpawner(seed int64) *Spawner {
	cfg := config.Default()
	return NewSpawner(seed, cfg.Obstacles, config.NewDifficultyManager(cfg.Difficulty))
}

func TestSpawnPlacement(t *testing.T) {
	sp := newTestSpawner(1)
	const w, h = 1080.0, 1920.0

	for i := 0; i < 500; i++ {
		o := sp.Spawn(w, h, 0)

		if o.X != w+50 {
			t.Fatalf("X = %v, want %v", o.X, w+50)
		}
		if o.Width != 100 || o.GapHeight != 500 {
			t.Fatalf("size = %vx%v, want 100x500", o.Width, o.GapHeight)
		}
		if o.GapY < 384 || o.GapY >= 1536 {
			t.Fatalf("GapY = %v, want in [384, 1536)", o.GapY)
		}
		if o.GapY+o.GapHeight > h {
			t.Fatalf("gap [%v, %v] leaves the screen", o.GapY, o.GapY+o.GapHeight)
		}
		if o.GapY != math.Trunc(o.GapY) {
			t.Fatalf("GapY = %v, want whole number", o.GapY)
		}
		if o.Passed {
			t.Fatal("new obstacle already passed")
		}
	}
}

func TestSpawnGapShrinksWithScore(t *testing.T) {
	sp := newTestSpawner(1)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 500},
		{1, 485},
		{10, 350},
		{20, 200},
		{100, 200},
	}
	for _, tt := range tests {
		if got := sp.Spawn(1080, 1920, tt.score).GapHeight; got != tt.want {
			t.Errorf("score %d: gap = %v, want %v", tt.score, got, tt.want)
		}
	}
}

func TestSpawnShortViewport(t *testing.T) {
	sp := newTestSpawner(3)

	// Gap as tall as the screen must start at the top
	o := sp.Spawn(400, 500, 0)
	if o.GapY != 0 || o.GapHeight != 500 {
		t.Errorf("gap = [%v, +%v], want [0, +500]", o.GapY, o.GapHeight)
	}

	for i := 0; i < 200; i++ {
		o := sp.Spawn(400, 600, 0)
		if o.GapY < 0 || o.GapY+o.GapHeight > 600 {
			t.Fatalf("gap [%v, %v] outside [0, 600]", o.GapY, o.GapY+o.GapHeight)
		}
	}
}

func TestSpawnDeterministic(t *testing.T) {
	a := newTestSpawner(99)
	b := newTestSpawner(99)
	for i := 0; i < 50; i++ {
		if oa, ob := a.Spawn(1080, 1920, i), b.Spawn(1080, 1920, i); oa != ob {
			t.Fatalf("spawn %d differs: %+v vs %+v", i, oa, ob)
		}
	}

	a.Reseed(5)
	b.Reseed(5)
	if oa, ob := a.Spawn(1080, 1920, 0), b.Spawn(1080, 1920, 0); oa != ob {
		t.Errorf("after reseed: %+v vs %+v", oa, ob)
	}
}

func TestAdvanceObstacles(t *testing.T) {
	const playerX = 200

	in := []Obstacle{
		{X: 96, Width: 100, GapY: 400, GapHeight: 300},                // right edge 191 after move: passed
		{X: 300, Width: 100, GapY: 400, GapHeight: 300},               // still ahead
		{X: -90, Width: 100, GapY: 400, GapHeight: 300, Passed: true}, // right edge 5 after move: kept
		{X: -98, Width: 100, GapY: 400, GapHeight: 300, Passed: true}, // right edge -3: dropped
	}
	orig := append([]Obstacle(nil), in...)

	out, passed := AdvanceObstacles(in, 5, playerX)

	if passed != 1 {
		t.Errorf("passed = %d, want 1", passed)
	}
	if len(out) != 3 {
		t.Fatalf("len = %d, want 3", len(out))
	}
	if !out[0].Passed || out[1].Passed {
		t.Errorf("passed flags = %v, %v; want true, false", out[0].Passed, out[1].Passed)
	}
	if out[0].X != 91 || out[1].X != 295 || out[2].X != -95 {
		t.Errorf("positions = %v, %v, %v", out[0].X, out[1].X, out[2].X)
	}
	for i := range in {
		if in[i] != orig[i] {
			t.Errorf("input obstacle %d modified", i)
		}
	}
}

func TestAdvanceObstaclesCountsOnce(t *testing.T) {
	obs := []Obstacle{{X: 250, Width: 100, GapY: 0, GapHeight: 1920}}

	total := 0
	for i := 0; i < 100; i++ {
		var n int
		obs, n = AdvanceObstacles(obs, 5, 200)
		total += n
	}
	if total != 1 {
		t.Errorf("obstacle counted %d times, want 1", total)
	}
}

func TestAdvanceObstaclesEdgeExactlyZero(t *testing.T) {
	// Trailing edge at exactly 0 is still on screen
	out, _ := AdvanceObstacles([]Obstacle{{X: -95, Width: 100, Passed: true}}, 5, 200)
	if len(out) != 1 {
		t.Errorf("len = %d, want 1", len(out))
	}
}
