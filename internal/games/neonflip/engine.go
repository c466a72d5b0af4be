package neonflip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-flip/internal/config"
)

var (
	// ErrEngineStopped is returned by commands issued after Run has exited.
	ErrEngineStopped = errors.New("neonflip: engine stopped")
	// ErrInvalidViewport is returned by SetViewport for unusable dimensions.
	ErrInvalidViewport = errors.New("neonflip: invalid viewport")
	// ErrAlreadyRunning is returned by a second call to Run.
	ErrAlreadyRunning = errors.New("neonflip: engine already running")
)

// Hooks are called on the engine goroutine. They must return quickly and
// must not issue engine commands synchronously.
type Hooks struct {
	OnScoreChanged func(score int)
	OnGameOver     func(final State)
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithCues sets the audio cue sink.
func WithCues(c Cues) Option {
	return func(e *Engine) {
		if c != nil {
			e.cues = c
		}
	}
}

// WithHooks sets the score and game-over callbacks.
func WithHooks(h Hooks) Option {
	return func(e *Engine) {
		e.hooks = h
	}
}

// WithSeed sets the obstacle RNG seed.
func WithSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

type command struct {
	fn    func() error
	reply chan error
}

// Engine owns one game session. All mutation happens on the goroutine
// running Run; everything else talks to it through commands and reads
// published snapshots.
type Engine struct {
	cfg   config.Config
	seed  int64
	log   *log.Logger
	cues  Cues
	hooks Hooks

	inbox    chan command
	done     chan struct{}
	doneOnce sync.Once
	running  atomic.Bool

	snapshot atomic.Pointer[State]

	subsMu   sync.Mutex
	subs     map[int]chan State
	nextSub  int
	subsDone bool

	// Owned by the Run goroutine
	sim     *Sim
	state   State
	physics *time.Ticker
	spawner *time.Ticker
}

// NewEngine creates an idle engine for the configured viewport.
func NewEngine(cfg config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:   cfg,
		seed:  time.Now().UnixNano(),
		log:   log.New(io.Discard),
		cues:  NopCues{},
		inbox: make(chan command),
		done:  make(chan struct{}),
		subs:  make(map[int]chan State),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.sim = NewSim(cfg, e.seed)
	e.state = e.sim.Idle(cfg.Viewport.Width, cfg.Viewport.Height)
	e.publish()
	return e
}

// Config returns the engine's tuning.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Run drives the session until ctx is cancelled or Stop is called.
func (e *Engine) Run(ctx context.Context) error {
	if !e.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer e.shutdown()

	e.log.Debug("engine started", "seed", e.seed,
		"tick", e.cfg.Timing.TickInterval(), "spawn", e.cfg.Timing.SpawnInterval())

	for {
		select {
		case <-tickerC(e.physics):
			e.onTick()

		case <-tickerC(e.spawner):
			e.state = e.sim.Spawn(e.state)
			e.publish()

		case cmd := <-e.inbox:
			cmd.reply <- cmd.fn()

		case <-e.done:
			return nil

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop ends Run. Safe to call more than once.
func (e *Engine) Stop() {
	e.doneOnce.Do(func() {
		close(e.done)
	})
}

func (e *Engine) shutdown() {
	e.Stop()
	e.stopTickers()

	e.subsMu.Lock()
	for id, ch := range e.subs {
		close(ch)
		delete(e.subs, id)
	}
	e.subsDone = true
	e.subsMu.Unlock()

	e.log.Debug("engine stopped")
}

// do runs fn on the engine goroutine and waits for its result.
func (e *Engine) do(fn func() error) error {
	cmd := command{fn: fn, reply: make(chan error, 1)}
	select {
	case e.inbox <- cmd:
	case <-e.done:
		return ErrEngineStopped
	}
	select {
	case err := <-cmd.reply:
		return err
	case <-e.done:
		return ErrEngineStopped
	}
}

// Start begins a new session, discarding any previous one.
func (e *Engine) Start(autoplay bool) error {
	return e.do(func() error {
		e.state = e.sim.Start(autoplay, e.state.Width, e.state.Height)
		e.startTickers()
		e.log.Info("game started", "autoplay", autoplay)
		e.publish()
		return nil
	})
}

// Pause freezes a running session. Both cadences stop; state is kept.
func (e *Engine) Pause() error {
	return e.do(func() error {
		if e.state.Phase != PhasePlaying || e.state.Paused {
			return nil
		}
		e.state.Paused = true
		e.stopTickers()
		e.publish()
		return nil
	})
}

// Resume continues a paused session from exactly where it stopped.
func (e *Engine) Resume() error {
	return e.do(func() error {
		if e.state.Phase != PhasePlaying || !e.state.Paused {
			return nil
		}
		e.state.Paused = false
		e.startTickers()
		e.publish()
		return nil
	})
}

// Flip reverses gravity. Ignored unless a session is running.
func (e *Engine) Flip() error {
	return e.do(func() error {
		st, ok := e.sim.Flip(e.state)
		if !ok {
			return nil
		}
		e.state = st
		e.cues.Jump()
		e.publish()
		return nil
	})
}

// SetViewport changes the logical playfield size. The ball is pulled back
// inside the new bounds if needed.
func (e *Engine) SetViewport(width, height float64) error {
	if err := config.ValidateViewport(width, height, e.cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidViewport, err)
	}
	return e.do(func() error {
		e.state.Width = width
		e.state.Height = height

		p := e.state.Player
		if p.Y+p.Radius > height {
			e.state.Player.Y = height - p.Radius
			e.state.Player.VelocityY = 0
		}
		e.publish()
		return nil
	})
}

// Snapshot returns a copy of the latest published state.
func (e *Engine) Snapshot() State {
	return e.snapshot.Load().Clone()
}

// Subscribe returns a channel that always holds the most recent state.
// Slow readers skip intermediate snapshots. The channel is closed when
// the engine stops or cancel is called.
func (e *Engine) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	// Seeding under subsMu orders it against publish: a snapshot stored
	// after this load reaches ch through the registered entry.
	e.subsMu.Lock()
	ch <- *e.snapshot.Load()
	if e.subsDone {
		e.subsMu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := e.nextSub
	e.nextSub++
	e.subs[id] = ch
	e.subsMu.Unlock()

	cancel := func() {
		e.subsMu.Lock()
		defer e.subsMu.Unlock()
		if c, ok := e.subs[id]; ok {
			close(c)
			delete(e.subs, id)
		}
	}
	return ch, cancel
}

func (e *Engine) onTick() {
	prev := e.state.Score

	st, ev := e.sim.Tick(e.state)
	e.state = st

	if ev.AutoFlipped {
		e.cues.Jump()
	}
	if st.Score != prev {
		e.cues.Score()
		if e.hooks.OnScoreChanged != nil {
			e.hooks.OnScoreChanged(st.Score)
		}
	}
	if ev.GameOver {
		e.stopTickers()
		e.cues.GameOver()
		e.log.Info("game over", "score", st.Score, "ticks", st.Tick, "autoplay", st.Autoplay)
		if e.hooks.OnGameOver != nil {
			e.hooks.OnGameOver(st.Clone())
		}
	}

	e.publish()
}

// publish stores the current state and offers it to every subscriber.
// Published obstacle slices are never written again, so readers may share them.
func (e *Engine) publish() {
	st := e.state
	e.snapshot.Store(&st)

	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	for _, ch := range e.subs {
		// Replace any unread snapshot with the newest one
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- st:
		default:
		}
	}
}

func (e *Engine) startTickers() {
	e.stopTickers()
	e.physics = time.NewTicker(e.cfg.Timing.TickInterval())
	e.spawner = time.NewTicker(e.cfg.Timing.SpawnInterval())
}

func (e *Engine) stopTickers() {
	if e.physics != nil {
		e.physics.Stop()
		e.physics = nil
	}
	if e.spawner != nil {
		e.spawner.Stop()
		e.spawner = nil
	}
}

// tickerC returns nil for a stopped ticker; receiving from nil blocks forever.
func tickerC(t *time.Ticker) <-chan time.Time {
	if t == nil {
		return nil
	}
	return t.C
}
