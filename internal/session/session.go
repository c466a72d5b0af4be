// Package session ties one player's engine to the leaderboard: it tracks the
// Ready → Playing → GameOver → Submitting → Submitted/Failed lifecycle that
// the screens render.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-flip/internal/games/neonflip"
)

// Status is the screen-level lifecycle stage.
type Status int

const (
	StatusReady Status = iota
	StatusPlaying
	StatusGameOver
	StatusSubmitting
	StatusSubmitted
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusReady:
		return "ready"
	case StatusPlaying:
		return "playing"
	case StatusGameOver:
		return "game_over"
	case StatusSubmitting:
		return "submitting"
	case StatusSubmitted:
		return "submitted"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrNotBound         = errors.New("session: no engine bound")
	ErrNothingToSubmit  = errors.New("session: no finished run to submit")
	ErrAlreadySubmitted = errors.New("session: run already submitted")
)

// Engine is the part of the game engine the controller drives.
type Engine interface {
	Start(autoplay bool) error
	Flip() error
}

// Board is the leaderboard the controller reports to.
type Board interface {
	Submit(ctx context.Context, player string, score int) error
	Best(ctx context.Context, player string) (int, error)
	StartAutoplay(ctx context.Context, player string) (int, error)
	RefundAutoplay(ctx context.Context, player string) (int, error)
	AutoplaysLeft(ctx context.Context, player string) (int, error)
}

// View is a consistent copy of the controller's state for rendering.
type View struct {
	Player        string
	Status        Status
	Score         int
	Best          int
	NewBest       bool
	Autoplay      bool
	AutoplaysLeft int
	Err           error
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the controller logger.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// WithAutoSubmit submits manual runs as soon as they end.
func WithAutoSubmit(on bool) Option {
	return func(c *Controller) {
		c.autoSubmit = on
	}
}

// WithSubmitTimeout bounds each submission.
func WithSubmitTimeout(d time.Duration) Option {
	return func(c *Controller) {
		c.submitTimeout = d
	}
}

// Controller is safe for concurrent use. Its hooks run on the engine
// goroutine; submissions run on their own goroutines.
type Controller struct {
	ctx           context.Context
	player        string
	board         Board
	log           *log.Logger
	autoSubmit    bool
	submitTimeout time.Duration

	mu     sync.Mutex
	engine Engine
	view   View

	changes chan struct{}
	wg      sync.WaitGroup
}

// New creates a controller for player. ctx bounds background submissions.
func New(ctx context.Context, player string, board Board, opts ...Option) *Controller {
	c := &Controller{
		ctx:           ctx,
		player:        player,
		board:         board,
		log:           log.New(io.Discard),
		submitTimeout: 5 * time.Second,
		view:          View{Player: player, Status: StatusReady},
		changes:       make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Hooks returns the engine callbacks that feed this controller.
func (c *Controller) Hooks() neonflip.Hooks {
	return neonflip.Hooks{
		OnScoreChanged: c.onScore,
		OnGameOver:     c.onGameOver,
	}
}

// Bind attaches the engine created with Hooks.
func (c *Controller) Bind(e Engine) {
	c.mu.Lock()
	c.engine = e
	c.mu.Unlock()
}

// Refresh reloads the best score and autoplay quota.
func (c *Controller) Refresh() error {
	best, err := c.board.Best(c.ctx, c.player)
	if err != nil {
		return fmt.Errorf("session: load best: %w", err)
	}
	left, err := c.board.AutoplaysLeft(c.ctx, c.player)
	if err != nil {
		return fmt.Errorf("session: load autoplay quota: %w", err)
	}

	c.update(func(v *View) {
		v.Best = best
		v.AutoplaysLeft = left
	})
	return nil
}

// Start begins a run. An autoplay run consumes one unit of the player's
// quota and fails once it is used up. The unit is given back if the
// engine refuses to start.
func (c *Controller) Start(autoplay bool) error {
	c.mu.Lock()
	e := c.engine
	c.mu.Unlock()
	if e == nil {
		return ErrNotBound
	}

	if autoplay {
		left, err := c.board.StartAutoplay(c.ctx, c.player)
		if err != nil {
			return err
		}
		c.update(func(v *View) { v.AutoplaysLeft = left })
	}

	if best, err := c.board.Best(c.ctx, c.player); err == nil {
		c.update(func(v *View) { v.Best = best })
	} else {
		c.log.Warn("cannot load best score", "player", c.player, "err", err)
	}

	// Status first so a fast game over cannot be overwritten
	c.update(func(v *View) {
		v.Status = StatusPlaying
		v.Score = 0
		v.NewBest = false
		v.Autoplay = autoplay
		v.Err = nil
	})

	if err := e.Start(autoplay); err != nil {
		c.update(func(v *View) { v.Status = StatusReady })
		if autoplay {
			c.refundAutoplay()
		}
		return fmt.Errorf("session: start: %w", err)
	}
	return nil
}

func (c *Controller) refundAutoplay() {
	left, err := c.board.RefundAutoplay(c.ctx, c.player)
	if err != nil {
		c.log.Warn("cannot refund autoplay run", "player", c.player, "err", err)
		return
	}
	c.update(func(v *View) {
		v.AutoplaysLeft = left
		v.Autoplay = false
	})
}

// Tap flips gravity while a run is in progress and is ignored otherwise.
func (c *Controller) Tap() error {
	c.mu.Lock()
	e, status := c.engine, c.view.Status
	c.mu.Unlock()

	if e == nil {
		return ErrNotBound
	}
	if status != StatusPlaying {
		return nil
	}
	return e.Flip()
}

// Submit sends the finished run to the leaderboard in the background.
func (c *Controller) Submit() error {
	c.mu.Lock()
	switch c.view.Status {
	case StatusGameOver, StatusFailed:
	case StatusSubmitting, StatusSubmitted:
		c.mu.Unlock()
		return ErrAlreadySubmitted
	default:
		c.mu.Unlock()
		return ErrNothingToSubmit
	}
	c.view.Status = StatusSubmitting
	c.view.Err = nil
	score := c.view.Score
	c.mu.Unlock()
	c.notify()

	c.wg.Add(1)
	go c.submit(score)
	return nil
}

// Restart returns to the ready screen.
func (c *Controller) Restart() {
	c.update(func(v *View) {
		v.Status = StatusReady
		v.Score = 0
		v.NewBest = false
		v.Autoplay = false
		v.Err = nil
	})
}

// View returns the current state.
func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.view
}

// Changes signals after every state change. Signals coalesce.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Wait blocks until background submissions finish.
func (c *Controller) Wait() {
	c.wg.Wait()
}

func (c *Controller) submit(score int) {
	defer c.wg.Done()

	ctx, cancel := context.WithTimeout(c.ctx, c.submitTimeout)
	defer cancel()

	err := c.board.Submit(ctx, c.player, score)
	if err != nil {
		c.log.Error("score submission failed", "player", c.player, "score", score, "err", err)
		c.update(func(v *View) {
			v.Status = StatusFailed
			v.Err = err
		})
		return
	}

	c.log.Info("score submitted", "player", c.player, "score", score)
	c.update(func(v *View) {
		v.Status = StatusSubmitted
		v.Best = max(v.Best, score)
	})
}

func (c *Controller) onScore(score int) {
	c.update(func(v *View) { v.Score = score })
}

func (c *Controller) onGameOver(final neonflip.State) {
	c.mu.Lock()
	c.view.Status = StatusGameOver
	c.view.Score = final.Score
	c.view.NewBest = neonflip.IsNewBest(final.Score, c.view.Best)
	auto := c.autoSubmit && !final.Autoplay
	c.mu.Unlock()
	c.notify()

	if auto {
		if err := c.Submit(); err != nil {
			c.log.Warn("auto submit skipped", "err", err)
		}
	}
}

func (c *Controller) update(fn func(*View)) {
	c.mu.Lock()
	fn(&c.view)
	c.mu.Unlock()
	c.notify()
}

func (c *Controller) notify() {
	select {
	case c.changes <- struct{}{}:
	default:
	}
}
