package neonflip

import "context"

// Cues receives fire-and-forget audio triggers. Implementations are called
// on the engine loop and must return immediately.
type Cues interface {
	Jump()
	Score()
	GameOver()
}

// NopCues ignores every cue.
type NopCues struct{}

func (NopCues) Jump()     {}
func (NopCues) Score()    {}
func (NopCues) GameOver() {}

// MultiCues fans every cue out to each member in order.
type MultiCues []Cues

func (m MultiCues) Jump() {
	for _, c := range m {
		c.Jump()
	}
}

func (m MultiCues) Score() {
	for _, c := range m {
		c.Score()
	}
}

func (m MultiCues) GameOver() {
	for _, c := range m {
		c.GameOver()
	}
}

// Cue names a single trigger.
type Cue int

const (
	CueJump Cue = iota
	CueScore
	CueGameOver
)

// AsyncCues forwards cues to a slower player on its own goroutine.
// When the buffer is full the cue is dropped rather than stalling the caller.
type AsyncCues struct {
	ch chan Cue
}

// NewAsyncCues starts a forwarding goroutine that lives until ctx is done.
func NewAsyncCues(ctx context.Context, player Cues, buffer int) *AsyncCues {
	a := &AsyncCues{ch: make(chan Cue, buffer)}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case c := <-a.ch:
				switch c {
				case CueJump:
					player.Jump()
				case CueScore:
					player.Score()
				case CueGameOver:
					player.GameOver()
				}
			}
		}
	}()
	return a
}

func (a *AsyncCues) send(c Cue) {
	select {
	case a.ch <- c:
	default:
		// Channel full, drop cue
	}
}

func (a *AsyncCues) Jump()     { a.send(CueJump) }
func (a *AsyncCues) Score()    { a.send(CueScore) }
func (a *AsyncCues) GameOver() { a.send(CueGameOver) }
