package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-flip/internal/config"
	"github.com/vovakirdan/neon-flip/internal/core"
	"github.com/vovakirdan/neon-flip/internal/games/neonflip"
	"github.com/vovakirdan/neon-flip/internal/leaderboard"
	"github.com/vovakirdan/neon-flip/internal/session"
)

// Options configure one play session.
type Options struct {
	Config     config.Config
	Board      *leaderboard.Service
	Logger     *log.Logger
	Runtime    core.RuntimeConfig
	AutoSubmit bool
	// Bell, when set, receives terminal bell cues.
	Bell io.Writer
	// SubmitContext bounds score submissions. Defaults to the session context.
	SubmitContext context.Context
}

// Session is a running engine with its controller.
type Session struct {
	Engine     *neonflip.Engine
	Controller *session.Controller
	Flash      *Flash
	done       chan error
}

// NewSession wires an engine to a session controller and starts the engine
// loop. The engine stops when ctx is done.
func NewSession(ctx context.Context, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	seed := opts.Runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	flash := &Flash{}
	var cues neonflip.Cues = flash
	if opts.Bell != nil {
		cues = neonflip.MultiCues{flash, neonflip.NewAsyncCues(ctx, Bell{W: opts.Bell}, 4)}
	}

	submitCtx := opts.SubmitContext
	if submitCtx == nil {
		submitCtx = ctx
	}
	ctrl := session.New(submitCtx, opts.Runtime.Player, opts.Board,
		session.WithLogger(logger),
		session.WithAutoSubmit(opts.AutoSubmit),
	)
	engine := neonflip.NewEngine(opts.Config,
		neonflip.WithSeed(seed),
		neonflip.WithLogger(logger),
		neonflip.WithCues(cues),
		neonflip.WithHooks(ctrl.Hooks()),
	)
	ctrl.Bind(engine)

	s := &Session{Engine: engine, Controller: ctrl, Flash: flash, done: make(chan error, 1)}
	go func() {
		err := engine.Run(ctx)
		if errors.Is(err, context.Canceled) {
			err = nil
		}
		s.done <- err
	}()
	return s
}

// Close stops the engine and waits for pending submissions.
func (s *Session) Close() error {
	s.Engine.Stop()
	err := <-s.done
	s.Controller.Wait()
	return err
}

// GameModel is the Bubble Tea model for one player's game screen.
type GameModel struct {
	ctx         context.Context
	sess        *Session
	log         *log.Logger
	snaps       <-chan neonflip.State
	unsubscribe func()

	screen     *core.Screen
	keys       KeyMap
	help       help.Model
	scoreboard ScoreboardModel
	showBoard  bool

	state     neonflip.State
	view      session.View
	flashSeq  uint64
	flashKind FlashKind
	flashLeft int
	notice    string
	width     int
	height    int
	quitting  bool
}

// NewGameModel creates the game screen for sess.
func NewGameModel(ctx context.Context, sess *Session, board TopLister, logger *log.Logger, width, height int) GameModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	snaps, unsubscribe := sess.Engine.Subscribe()
	view := sess.Controller.View()
	seq, _ := sess.Flash.Last()

	return GameModel{
		ctx:         ctx,
		sess:        sess,
		log:         logger,
		snaps:       snaps,
		unsubscribe: unsubscribe,
		screen:      core.NewScreen(width, core.Max(height-1, 1)),
		keys:        DefaultKeyMap(),
		help:        help.New(),
		scoreboard:  NewScoreboardModel(ctx, board, view.Player, width, height),
		state:       sess.Engine.Snapshot(),
		view:        view,
		flashSeq:    seq,
		width:       width,
		height:      height,
	}
}

// Init starts listening to the engine and the controller.
func (m GameModel) Init() tea.Cmd {
	ctrl := m.sess.Controller
	return tea.Batch(
		waitForSnapshot(m.snaps),
		waitForChange(m.ctx, ctrl.Changes()),
		func() tea.Msg { return refreshedMsg{err: ctrl.Refresh()} },
	)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case snapshotMsg:
		m.state = neonflip.State(msg)
		m.pollFlash()
		return m, waitForSnapshot(m.snaps)

	case engineClosedMsg:
		m.quitting = true
		return m, tea.Quit

	case sessionChangedMsg:
		m.view = m.sess.Controller.View()
		return m, waitForChange(m.ctx, m.sess.Controller.Changes())

	case refreshedMsg:
		if msg.err != nil {
			m.log.Warn("cannot load player data", "err", msg.err)
			m.notice = "leaderboard unavailable"
		}
		return m, nil

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case scoresLoadedMsg:
		var cmd tea.Cmd
		m.scoreboard, cmd = m.scoreboard.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showBoard {
			return m.updateScoreboard(msg)
		}
		return m.handleKey(msg)
	}

	return m, nil
}

// pollFlash picks up cues fired since the previous snapshot.
func (m *GameModel) pollFlash() {
	seq, kind := m.sess.Flash.Last()
	if seq != m.flashSeq {
		m.flashSeq = seq
		m.flashKind = kind
		m.flashLeft = flashFrames
		return
	}
	if m.flashLeft > 0 {
		m.flashLeft--
		if m.flashLeft == 0 {
			m.flashKind = FlashNone
		}
	}
}

func (m GameModel) updateScoreboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.scoreboard, cmd = m.scoreboard.Update(msg)
	switch {
	case m.scoreboard.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.scoreboard.IsGoingBack():
		m.showBoard = false
		m.scoreboard.goingBack = false
		return m, nil
	}
	return m, cmd
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	ctrl := m.sess.Controller
	status := m.view.Status
	m.notice = ""

	var err error
	switch m.keys.Action(msg) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionFlip:
		switch status {
		case session.StatusReady:
			err = ctrl.Start(false)
		case session.StatusPlaying:
			err = ctrl.Tap()
		}

	case core.ActionAutoplay:
		if status != session.StatusPlaying && status != session.StatusSubmitting {
			err = ctrl.Start(true)
		}

	case core.ActionPause:
		if status == session.StatusPlaying {
			if m.state.Paused {
				err = m.sess.Engine.Resume()
			} else {
				err = m.sess.Engine.Pause()
			}
		}

	case core.ActionRestart:
		if status != session.StatusPlaying && status != session.StatusSubmitting {
			ctrl.Restart()
		}

	case core.ActionSubmit:
		err = ctrl.Submit()

	case core.ActionLeaderboard:
		if status != session.StatusPlaying || m.state.Paused {
			m.showBoard = true
			return m, m.scoreboard.Load()
		}
	}

	if err != nil {
		m.notice = noticeFor(err)
		m.log.Debug("command rejected", "err", err)
	}
	m.view = ctrl.View()
	return m, nil
}

// noticeFor turns a command error into a short message for the player.
func noticeFor(err error) string {
	switch {
	case errors.Is(err, leaderboard.ErrAutoplayExhausted):
		return "No autoplays left"
	case errors.Is(err, session.ErrAlreadySubmitted):
		return "Already submitted"
	case errors.Is(err, session.ErrNothingToSubmit):
		return "Nothing to submit"
	case errors.Is(err, neonflip.ErrEngineStopped):
		return "Game stopped"
	}
	return "Error: " + err.Error()
}

// handleResize processes window resize events.
func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.screen.Resize(msg.Width, core.Max(msg.Height-1, 1))
	m.help.Width = msg.Width

	var cmd tea.Cmd
	m.scoreboard, cmd = m.scoreboard.Update(msg)

	w, h := LogicalViewport(msg.Width, msg.Height-1, m.sess.Engine.Config().Viewport.Height)
	if w > 0 {
		if err := m.sess.Engine.SetViewport(w, h); err != nil {
			m.log.Warn("viewport rejected", "cols", msg.Width, "rows", msg.Height, "err", err)
			m.notice = "Terminal too small"
		}
	}
	return m, cmd
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	DrawFrame(m.screen, m.frame())

	dir := filepath.Join(os.Getenv("HOME"), ".neonflip", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("neonflip_%s.txt", timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

func (m GameModel) frame() Frame {
	return Frame{
		State:   m.state,
		Session: m.view,
		Flash:   m.flashKind,
		Notice:  m.notice,
	}
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}
	if m.showBoard {
		return m.scoreboard.View()
	}

	DrawFrame(m.screen, m.frame())
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Close releases the snapshot subscription.
func (m GameModel) Close() {
	m.unsubscribe()
}

// Run plays one local session until the player quits.
func Run(ctx context.Context, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sess := NewSession(ctx, opts)
	model := NewGameModel(ctx, sess, opts.Board, opts.Logger, opts.Runtime.ScreenW, opts.Runtime.ScreenH)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}

	if cerr := sess.Close(); err == nil {
		err = cerr
	}
	return err
}
