package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/neon-flip/internal/core"
	"github.com/vovakirdan/neon-flip/internal/games/neonflip"
	"github.com/vovakirdan/neon-flip/internal/session"
)

// testState is a 1000x2000 field, which maps 10 units per column and
// 100 units per row on a 100x21 screen.
func testState() neonflip.State {
	return neonflip.State{
		Player:  neonflip.PlayerState{X: 200, Y: 1000, Radius: 30},
		Gravity: neonflip.GravityDown,
		Obstacles: []neonflip.Obstacle{
			{X: 500, Width: 100, GapY: 800, GapHeight: 400},
		},
		Score:  7,
		Phase:  neonflip.PhasePlaying,
		Width:  1000,
		Height: 2000,
	}
}

func playingView() session.View {
	return session.View{Player: "neo", Status: session.StatusPlaying, Best: 12, AutoplaysLeft: 3}
}

func TestFieldMapping(t *testing.T) {
	f := NewField(100, 21, 1000, 2000)

	if f.Rect != core.NewRect(0, 1, 100, 20) {
		t.Fatalf("field rect = %+v", f.Rect)
	}

	tests := []struct {
		x, y     float64
		col, row int
	}{
		{0, 0, 0, 1},
		{200, 1000, 20, 11},
		{999, 1999, 99, 20},
		{505, 850, 50, 9},
	}
	for _, tt := range tests {
		if got := f.Col(tt.x); got != tt.col {
			t.Errorf("Col(%g) = %d, want %d", tt.x, got, tt.col)
		}
		if got := f.Row(tt.y); got != tt.row {
			t.Errorf("Row(%g) = %d, want %d", tt.y, got, tt.row)
		}
	}
}

func TestLogicalViewport(t *testing.T) {
	tests := []struct {
		cols, rows int
		wantW      float64
	}{
		{80, 25, 3200},
		{100, 21, 4800},
		{40, 41, 960},
		{0, 25, 0},
		{80, 1, 0},
	}
	for _, tt := range tests {
		w, h := LogicalViewport(tt.cols, tt.rows, 1920)
		if w != tt.wantW {
			t.Errorf("LogicalViewport(%d, %d) width = %g, want %g", tt.cols, tt.rows, w, tt.wantW)
		}
		if tt.wantW > 0 && h != 1920 {
			t.Errorf("LogicalViewport(%d, %d) height = %g, want 1920", tt.cols, tt.rows, h)
		}
	}
}

func TestDrawFramePlayfield(t *testing.T) {
	s := core.NewScreen(100, 21)
	DrawFrame(s, Frame{State: testState(), Session: playingView()})

	if got := s.Get(20, 11); got != BallChar {
		t.Errorf("ball cell = %q, want %q", got, BallChar)
	}

	// Obstacle columns 50-59, gap rows 9-12
	for _, x := range []int{50, 55, 59} {
		if got := s.Get(x, 1); got != WallChar {
			t.Errorf("(%d,1) = %q, want wall", x, got)
		}
		if got := s.Get(x, 8); got != CapTopChar {
			t.Errorf("(%d,8) = %q, want top cap", x, got)
		}
		for y := 9; y <= 12; y++ {
			if got := s.Get(x, y); got == WallChar {
				t.Errorf("(%d,%d) is a wall inside the gap", x, y)
			}
		}
		if got := s.Get(x, 13); got != CapBottomChar {
			t.Errorf("(%d,13) = %q, want bottom cap", x, got)
		}
		if got := s.Get(x, 20); got != WallChar {
			t.Errorf("(%d,20) = %q, want wall", x, got)
		}
	}
	if got := s.Get(60, 1); got == WallChar {
		t.Error("wall drawn past the obstacle's trailing edge")
	}
}

func TestDrawFrameHUD(t *testing.T) {
	s := core.NewScreen(100, 21)
	st := testState()
	st.Gravity = neonflip.GravityUp
	st.Autoplay = true
	DrawFrame(s, Frame{State: st, Session: playingView()})

	hud := s.Row(0)
	for _, want := range []string{"SCORE 7", "↑", "AUTO", "BEST 12"} {
		if !strings.Contains(hud, want) {
			t.Errorf("HUD %q missing %q", hud, want)
		}
	}
}

func TestDrawFrameReady(t *testing.T) {
	s := core.NewScreen(100, 21)
	v := playingView()
	v.Status = session.StatusReady
	DrawFrame(s, Frame{State: testState(), Session: v, Notice: "No autoplays left"})

	out := s.String()
	for _, want := range []string{"N E O N   F L I P", "SPACE to start", "A autoplay (3 left)", "Best: 12", "No autoplays left"} {
		if !strings.Contains(out, want) {
			t.Errorf("ready screen missing %q", want)
		}
	}
	if strings.ContainsRune(out, BallChar) || strings.ContainsRune(out, WallChar) {
		t.Error("ready screen shows the previous run's field")
	}
}

func TestDrawFramePaused(t *testing.T) {
	s := core.NewScreen(100, 21)
	st := testState()
	st.Paused = true
	DrawFrame(s, Frame{State: st, Session: playingView()})

	if !strings.Contains(s.String(), "PAUSED") {
		t.Error("paused card not drawn")
	}
}

func TestDrawFrameGameOver(t *testing.T) {
	tests := []struct {
		name   string
		view   session.View
		want   []string
		absent []string
	}{
		{
			name:   "new best",
			view:   session.View{Status: session.StatusGameOver, Score: 15, Best: 12, NewBest: true},
			want:   []string{"GAME OVER", "Score: 15", "NEW HIGH SCORE!", "S submit"},
			absent: []string{"Best: 12"},
		},
		{
			name:   "below best",
			view:   session.View{Status: session.StatusGameOver, Score: 3, Best: 12},
			want:   []string{"GAME OVER", "Score: 3", "Best: 12"},
			absent: []string{"NEW HIGH SCORE!"},
		},
		{
			name: "submitting",
			view: session.View{Status: session.StatusSubmitting, Score: 3, Best: 12},
			want: []string{"Submitting score..."},
		},
		{
			name: "submitted",
			view: session.View{Status: session.StatusSubmitted, Score: 3, Best: 12},
			want: []string{"SCORE SUBMITTED!"},
		},
		{
			name: "failed",
			view: session.View{Status: session.StatusFailed, Score: 3, Best: 12},
			want: []string{"Failed to submit score", "S retry"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := core.NewScreen(100, 21)
			st := testState()
			st.Phase = neonflip.PhaseGameOver
			st.GameOver = true
			DrawFrame(s, Frame{State: st, Session: tt.view})

			out := s.String()
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("missing %q", w)
				}
			}
			for _, a := range tt.absent {
				if strings.Contains(out, a) {
					t.Errorf("unexpected %q", a)
				}
			}
		})
	}
}

func TestDrawFrameEmpty(t *testing.T) {
	s := core.NewScreen(10, 5)
	DrawFrame(s, Frame{Session: playingView()})

	if strings.TrimSpace(strings.ReplaceAll(s.String(), "\n", "")) != "" {
		t.Error("frame without a viewport should stay blank")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(20, 2)
	s.DrawText(0, 0, "NEON", core.ColorCyan)
	s.DrawText(5, 0, "FLIP", core.ColorMagenta)

	out := RenderScreen(s)
	if !strings.Contains(out, "NEON") || !strings.Contains(out, "FLIP") {
		t.Errorf("RenderScreen() lost text: %q", out)
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, want 1", got)
	}
}
