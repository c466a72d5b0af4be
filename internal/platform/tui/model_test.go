package tui

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-flip/internal/config"
	"github.com/vovakirdan/neon-flip/internal/core"
	"github.com/vovakirdan/neon-flip/internal/games/neonflip"
	"github.com/vovakirdan/neon-flip/internal/leaderboard"
	"github.com/vovakirdan/neon-flip/internal/session"
	"github.com/vovakirdan/neon-flip/internal/storage"
)

func newTestModel(t *testing.T) (GameModel, *leaderboard.Service) {
	t.Helper()

	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("storage.Open() failed: %v", err)
	}
	board := leaderboard.New(store, 3)

	ctx, cancel := context.WithCancel(context.Background())
	sess := NewSession(ctx, Options{
		Config:  config.Default(),
		Board:   board,
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 25, Seed: 1, Player: "neo"},
	})
	m := NewGameModel(ctx, sess, board, nil, 80, 25)

	t.Cleanup(func() {
		m.Close()
		cancel()
		if err := sess.Close(); err != nil {
			t.Errorf("Session.Close() failed: %v", err)
		}
		store.Close()
	})
	return m, board
}

func press(t *testing.T, m GameModel, msg tea.Msg) (GameModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	gm, ok := next.(GameModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	return gm, cmd
}

func TestGameModelStartsRun(t *testing.T) {
	m, _ := newTestModel(t)

	if m.view.Status != session.StatusReady {
		t.Fatalf("initial status = %v, want ready", m.view.Status)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.view.Status != session.StatusPlaying {
		t.Fatalf("status after space = %v, want playing", m.view.Status)
	}
	if st := m.sess.Engine.Snapshot(); st.Phase != neonflip.PhasePlaying || st.Autoplay {
		t.Errorf("engine phase = %v autoplay = %v", st.Phase, st.Autoplay)
	}

	// Autoplay and leaderboard are ignored mid-run
	m, _ = press(t, m, runeKey('a'))
	if m.sess.Engine.Snapshot().Autoplay {
		t.Error("autoplay started during a manual run")
	}
	m, _ = press(t, m, runeKey('l'))
	if m.showBoard {
		t.Error("leaderboard opened during a run")
	}
}

func TestGameModelAutoplayQuota(t *testing.T) {
	m, board := newTestModel(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := board.StartAutoplay(ctx, "neo"); err != nil {
			t.Fatalf("StartAutoplay() failed: %v", err)
		}
	}

	m, _ = press(t, m, runeKey('a'))
	if m.view.Status != session.StatusReady {
		t.Errorf("status = %v, want ready", m.view.Status)
	}
	if m.notice != "No autoplays left" {
		t.Errorf("notice = %q", m.notice)
	}
	if !strings.Contains(m.View(), "No autoplays left") {
		t.Error("notice not rendered")
	}
}

func TestGameModelSubmitWithoutRun(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, runeKey('s'))
	if m.notice != "Nothing to submit" {
		t.Errorf("notice = %q", m.notice)
	}
}

func TestGameModelLeaderboard(t *testing.T) {
	m, board := newTestModel(t)
	if err := board.Submit(context.Background(), "trinity", 42); err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}

	m, cmd := press(t, m, runeKey('l'))
	if !m.showBoard {
		t.Fatal("leaderboard not shown")
	}
	if cmd == nil {
		t.Fatal("leaderboard opened without a load command")
	}
	m, _ = press(t, m, cmd())

	view := m.View()
	for _, want := range []string{"LEADERBOARD", "trinity", "42"} {
		if !strings.Contains(view, want) {
			t.Errorf("leaderboard view missing %q", want)
		}
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.showBoard {
		t.Error("esc did not close the leaderboard")
	}
	if !strings.Contains(m.View(), "N E O N") {
		t.Error("ready screen not shown after closing the leaderboard")
	}
}

func TestGameModelResize(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = press(t, m, tea.WindowSizeMsg{Width: 80, Height: 26})
	st := m.sess.Engine.Snapshot()
	if st.Width != 3200 || st.Height != 1920 {
		t.Errorf("viewport = %gx%g, want 3200x1920", st.Width, st.Height)
	}
	if m.screen.Width() != 80 || m.screen.Height() != 25 {
		t.Errorf("screen = %dx%d, want 80x25", m.screen.Width(), m.screen.Height())
	}
}

func TestGameModelQuit(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := press(t, m, runeKey('q'))
	if !m.quitting {
		t.Error("quitting not set")
	}
	if cmd == nil {
		t.Fatal("no command returned")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("view not cleared on quit")
	}
}

func TestGameModelEngineClosed(t *testing.T) {
	m, _ := newTestModel(t)

	m.sess.Engine.Stop()
	for {
		st, ok := <-m.snaps
		if !ok {
			break
		}
		m, _ = press(t, m, snapshotMsg(st))
	}

	next, cmd := press(t, m, waitForSnapshot(m.snaps)())
	if !next.quitting || cmd == nil {
		t.Error("closed engine did not end the program")
	}
}

func TestNoticeFor(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{leaderboard.ErrAutoplayExhausted, "No autoplays left"},
		{session.ErrAlreadySubmitted, "Already submitted"},
		{session.ErrNothingToSubmit, "Nothing to submit"},
		{neonflip.ErrEngineStopped, "Game stopped"},
		{errors.New("boom"), "Error: boom"},
	}
	for _, tt := range tests {
		if got := noticeFor(tt.err); got != tt.want {
			t.Errorf("noticeFor(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestFlashFades(t *testing.T) {
	m, _ := newTestModel(t)

	m.sess.Flash.Score()
	m.pollFlash()
	if m.flashKind != FlashScore {
		t.Fatalf("flash = %v, want score", m.flashKind)
	}
	for i := 0; i < flashFrames; i++ {
		m.pollFlash()
	}
	if m.flashKind != FlashNone {
		t.Errorf("flash = %v after %d frames, want none", m.flashKind, flashFrames)
	}
}
