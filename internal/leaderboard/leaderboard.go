// Package leaderboard records finished runs, keeps failed submissions for
// retry and enforces the per-player autoplay quota.
package leaderboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-flip/internal/storage"
)

var (
	ErrNegativeScore     = errors.New("leaderboard: score must not be negative")
	ErrNoPlayer          = errors.New("leaderboard: player name required")
	ErrAutoplayExhausted = errors.New("leaderboard: autoplay quota used up")
)

// Store is the persistence the service needs. *storage.Store satisfies it.
type Store interface {
	SaveScore(ctx context.Context, player string, score int) (int64, error)
	TopScores(ctx context.Context, limit int) ([]storage.ScoreEntry, error)
	HighScore(ctx context.Context, player string) (int, error)

	SetPending(ctx context.Context, player string, score int) error
	Pending(ctx context.Context, player string) (int, bool, error)
	AllPending(ctx context.Context) ([]storage.PendingScore, error)
	ClearPending(ctx context.Context, player string) error

	AutoplayCount(ctx context.Context, player string) (int, error)
	IncrementAutoplayCount(ctx context.Context, player string) (int, error)
	DecrementAutoplayCount(ctx context.Context, player string) (int, error)
}

var _ Store = (*storage.Store)(nil)

// Entry is one ranked leaderboard row.
type Entry struct {
	Rank   int
	Player string
	Score  int
	At     time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the service logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// Service is safe for concurrent use by many sessions.
type Service struct {
	store        Store
	maxAutoplays int
	log          *log.Logger

	// Serializes quota check-and-increment
	quotaMu sync.Mutex
}

// New creates a leaderboard over store. maxAutoplays caps autoplay runs per player.
func New(store Store, maxAutoplays int, opts ...Option) *Service {
	s := &Service{
		store:        store,
		maxAutoplays: maxAutoplays,
		log:          log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Submit records a finished run. If the store rejects it, the score is kept
// as the player's pending submission and the error is returned.
func (s *Service) Submit(ctx context.Context, player string, score int) error {
	if player == "" {
		return ErrNoPlayer
	}
	if score < 0 {
		return ErrNegativeScore
	}

	if _, err := s.store.SaveScore(ctx, player, score); err != nil {
		s.keepPending(ctx, player, score)
		return fmt.Errorf("leaderboard: submit %s: %w", player, err)
	}

	s.log.Debug("score submitted", "player", player, "score", score)
	return nil
}

// keepPending stores score for a later retry. A player has at most one
// pending score; the higher one wins.
func (s *Service) keepPending(ctx context.Context, player string, score int) {
	if prev, ok, err := s.store.Pending(ctx, player); err == nil && ok && prev >= score {
		return
	}
	if err := s.store.SetPending(ctx, player, score); err != nil {
		s.log.Error("cannot keep pending score", "player", player, "score", score, "err", err)
		return
	}
	s.log.Warn("score kept for retry", "player", player, "score", score)
}

// FlushPending retries player's pending score. Reports whether a score was
// submitted.
func (s *Service) FlushPending(ctx context.Context, player string) (bool, error) {
	score, ok, err := s.store.Pending(ctx, player)
	if err != nil {
		return false, fmt.Errorf("leaderboard: read pending: %w", err)
	}
	if !ok {
		return false, nil
	}

	if _, err := s.store.SaveScore(ctx, player, score); err != nil {
		return false, fmt.Errorf("leaderboard: retry %s: %w", player, err)
	}
	if err := s.store.ClearPending(ctx, player); err != nil {
		return true, fmt.Errorf("leaderboard: clear pending: %w", err)
	}

	s.log.Info("pending score submitted", "player", player, "score", score)
	return true, nil
}

// FlushAllPending retries every pending score and returns how many went through.
// It keeps going past individual failures and returns the first error seen.
func (s *Service) FlushAllPending(ctx context.Context) (int, error) {
	pending, err := s.store.AllPending(ctx)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: list pending: %w", err)
	}

	var firstErr error
	flushed := 0
	for _, p := range pending {
		ok, err := s.FlushPending(ctx, p.Player)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if ok {
			flushed++
		}
	}
	return flushed, firstErr
}

// Top returns the n best runs across all players.
func (s *Service) Top(ctx context.Context, n int) ([]Entry, error) {
	rows, err := s.store.TopScores(ctx, n)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: top: %w", err)
	}

	entries := make([]Entry, len(rows))
	for i, r := range rows {
		entries[i] = Entry{Rank: i + 1, Player: r.Player, Score: r.Score, At: r.CreatedAt}
	}
	return entries, nil
}

// Best returns player's best recorded score, counting a pending one.
func (s *Service) Best(ctx context.Context, player string) (int, error) {
	best, err := s.store.HighScore(ctx, player)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: best: %w", err)
	}
	if pending, ok, err := s.store.Pending(ctx, player); err == nil && ok && pending > best {
		best = pending
	}
	return best, nil
}

// StartAutoplay consumes one autoplay run and returns how many remain.
func (s *Service) StartAutoplay(ctx context.Context, player string) (int, error) {
	if player == "" {
		return 0, ErrNoPlayer
	}

	s.quotaMu.Lock()
	defer s.quotaMu.Unlock()

	used, err := s.store.AutoplayCount(ctx, player)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: autoplay count: %w", err)
	}
	if used >= s.maxAutoplays {
		return 0, ErrAutoplayExhausted
	}

	used, err = s.store.IncrementAutoplayCount(ctx, player)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: autoplay count: %w", err)
	}

	left := max(s.maxAutoplays-used, 0)
	s.log.Info("autoplay started", "player", player, "left", left)
	return left, nil
}

// RefundAutoplay returns one run taken by StartAutoplay, for a run that
// never started. It reports how many runs remain afterwards.
func (s *Service) RefundAutoplay(ctx context.Context, player string) (int, error) {
	if player == "" {
		return 0, ErrNoPlayer
	}

	s.quotaMu.Lock()
	defer s.quotaMu.Unlock()

	used, err := s.store.DecrementAutoplayCount(ctx, player)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: autoplay refund: %w", err)
	}

	left := max(s.maxAutoplays-used, 0)
	s.log.Info("autoplay refunded", "player", player, "left", left)
	return left, nil
}

// AutoplaysLeft returns how many autoplay runs player may still start.
func (s *Service) AutoplaysLeft(ctx context.Context, player string) (int, error) {
	used, err := s.store.AutoplayCount(ctx, player)
	if err != nil {
		return 0, fmt.Errorf("leaderboard: autoplay count: %w", err)
	}
	return max(s.maxAutoplays-used, 0), nil
}
