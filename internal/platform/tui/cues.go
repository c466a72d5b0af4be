package tui

import (
	"io"
	"sync/atomic"
)

// FlashKind selects the color of a short visual cue.
type FlashKind int32

const (
	FlashNone FlashKind = iota
	FlashJump
	FlashScore
	FlashGameOver
)

// flashFrames is how many snapshots a flash stays visible.
const flashFrames = 6

// Flash turns engine cues into visual flashes. The engine writes, the
// screen model polls.
type Flash struct {
	seq  atomic.Uint64
	kind atomic.Int32
}

func (f *Flash) fire(k FlashKind) {
	f.kind.Store(int32(k))
	f.seq.Add(1)
}

func (f *Flash) Jump()     { f.fire(FlashJump) }
func (f *Flash) Score()    { f.fire(FlashScore) }
func (f *Flash) GameOver() { f.fire(FlashGameOver) }

// Last returns the sequence number and kind of the latest cue.
func (f *Flash) Last() (uint64, FlashKind) {
	return f.seq.Load(), FlashKind(f.kind.Load())
}

// Bell rings the terminal bell on scoring and game over.
// Writes may block, so wrap it in neonflip.AsyncCues.
type Bell struct {
	W io.Writer
}

func (b Bell) Jump() {}

func (b Bell) Score() {
	//nolint:errcheck // Best-effort cue
	b.W.Write([]byte{'\a'})
}

func (b Bell) GameOver() {
	//nolint:errcheck // Best-effort cue
	b.W.Write([]byte{'\a', '\a'})
}
