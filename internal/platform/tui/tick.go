// Package tui provides the Bubble Tea front end for Neon Flip, locally and
// over SSH. Screens are redrawn from engine snapshots; the engine keeps its
// own clock.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/neon-flip/internal/games/neonflip"
)

// snapshotMsg carries a newly published engine state.
type snapshotMsg neonflip.State

// engineClosedMsg is sent when the engine stops publishing.
type engineClosedMsg struct{}

// sessionChangedMsg is sent when the session controller changes state.
type sessionChangedMsg struct{}

// refreshedMsg reports the result of loading best score and quota.
type refreshedMsg struct{ err error }

// waitForSnapshot blocks until the engine publishes again.
func waitForSnapshot(ch <-chan neonflip.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return engineClosedMsg{}
		}
		return snapshotMsg(st)
	}
}

// waitForChange blocks until the session controller signals or ctx ends.
func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ch:
			return sessionChangedMsg{}
		case <-ctx.Done():
			return nil
		}
	}
}
