package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedDefaultsMatchBuiltins(t *testing.T) {
	cfg, err := parse(DefaultYAML())
	if err != nil {
		t.Fatalf("parse(embedded) failed: %v", err)
	}
	if cfg != Default() {
		t.Errorf("embedded YAML differs from Default():\n got  %+v\n want %+v", cfg, Default())
	}
}

func TestLoadCustomPathPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("physics:\n  obstacle_speed: 7\nautopilot:\n  threshold: 40\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Physics.ObstacleSpeed != 7 {
		t.Errorf("obstacle_speed = %v, want 7", cfg.Physics.ObstacleSpeed)
	}
	if cfg.Autopilot.Threshold != 40 {
		t.Errorf("threshold = %v, want 40", cfg.Autopilot.Threshold)
	}
	// Untouched sections keep defaults
	if cfg.Physics.Gravity != 0.5 || cfg.Difficulty.MinGap != 200 {
		t.Errorf("defaults not preserved: %+v", cfg)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() of missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("difficulty:\n  min_gap: 900\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() with min_gap > base_gap: got %v, want ErrInvalidConfig", err)
	}
}

func TestValidateViewport(t *testing.T) {
	cfg := Default()
	tests := []struct {
		name string
		w, h float64
		ok   bool
	}{
		{"default", 1080, 1920, true},
		{"zero width", 0, 1920, false},
		{"negative height", 1080, -1, false},
		{"height below min gap", 1080, 150, false},
		{"height equals min gap", 1080, 200, true},
		{"NaN width", math.NaN(), 1920, false},
		{"NaN height", 1080, math.NaN(), false},
		{"infinite width", math.Inf(1), 1920, false},
		{"infinite height", 1080, math.Inf(1), false},
		{"negative infinite height", 1080, math.Inf(-1), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateViewport(tc.w, tc.h, cfg)
			if (err == nil) != tc.ok {
				t.Errorf("ValidateViewport(%v, %v) = %v, ok=%v", tc.w, tc.h, err, tc.ok)
			}
		})
	}
}

func TestGapHeightFloor(t *testing.T) {
	d := NewDifficultyManager(Default().Difficulty)

	tests := []struct {
		score int
		want  float64
	}{
		{0, 500},
		{1, 485},
		{10, 350},
		{20, 200},
		{21, 200},
		{1_000_000, 200},
		{-5, 500},
	}
	for _, tc := range tests {
		if got := d.GapHeight(tc.score); got != tc.want {
			t.Errorf("GapHeight(%d) = %v, want %v", tc.score, got, tc.want)
		}
	}

	if got := d.MaxedAt(); got != 20 {
		t.Errorf("MaxedAt() = %d, want 20", got)
	}
	if lvl := d.Level(10); lvl != 0.5 {
		t.Errorf("Level(10) = %v, want 0.5", lvl)
	}
	if lvl := d.Level(500); lvl != 1.0 {
		t.Errorf("Level(500) = %v, want 1.0", lvl)
	}
}

func TestApplyPreset(t *testing.T) {
	cfg := Default()
	ApplyPreset(&cfg, DifficultyFixed)
	if cfg.Difficulty.GapStep != 0 {
		t.Errorf("fixed preset should disable gap shrinking, got step %v", cfg.Difficulty.GapStep)
	}

	cfg = Default()
	ApplyPreset(&cfg, DifficultyHard)
	if err := cfg.Validate(); err != nil {
		t.Errorf("hard preset produced invalid config: %v", err)
	}
	if cfg.Difficulty.BaseGap >= Default().Difficulty.BaseGap {
		t.Errorf("hard preset should shrink base gap, got %v", cfg.Difficulty.BaseGap)
	}

	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset should reject unknown presets")
	}
	if p, _ := ParsePreset(""); p != DifficultyNormal {
		t.Errorf("ParsePreset(\"\") = %q, want normal", p)
	}
}

func TestTimingConversions(t *testing.T) {
	tm := Timing{TickMS: 16, SpawnMS: 1500}
	if tm.TickInterval() != 16*time.Millisecond {
		t.Errorf("TickInterval() = %v", tm.TickInterval())
	}
	if tm.SpawnInterval() != 1500*time.Millisecond {
		t.Errorf("SpawnInterval() = %v", tm.SpawnInterval())
	}
	if got := tm.TicksPerSpawn(); got != 94 {
		t.Errorf("TicksPerSpawn() = %d, want 94", got)
	}
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("NEONFLIP_SSH_ADDR", ":2222")
	t.Setenv("NEONFLIP_IDLE_TIMEOUT", "5m")

	se := ServerEnv{Address: ":23234", DBPath: "keep.db"}
	if err := ParseEnv(&se); err != nil {
		t.Fatalf("ParseEnv() failed: %v", err)
	}
	if se.Address != ":2222" {
		t.Errorf("Address = %q, want :2222", se.Address)
	}
	if se.IdleTimeout != 5*time.Minute {
		t.Errorf("IdleTimeout = %v, want 5m", se.IdleTimeout)
	}
	if se.DBPath != "keep.db" {
		t.Errorf("unset variable should keep DBPath, got %q", se.DBPath)
	}
}

func TestLoadDotEnvMissingFile(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), ".env")); err != nil {
		t.Errorf("missing .env should be ignored, got %v", err)
	}
}
