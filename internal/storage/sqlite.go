// Package storage provides SQLite-based persistence for scores, pending
// submissions and per-player settings.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished run.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	CreatedAt time.Time
}

// PendingScore is a score whose submission failed and awaits a retry.
type PendingScore struct {
	Player    string
	Score     int
	UpdatedAt time.Time
}

// PlayerStats contains aggregated statistics for one player.
type PlayerStats struct {
	Player     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	dbPath, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// One writer at a time; SSH sessions share this handle
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);

		CREATE TABLE IF NOT EXISTS pending_scores (
			player TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS player_settings (
			player TEXT PRIMARY KEY,
			autoplay_count INTEGER NOT NULL DEFAULT 0
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run for player.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(ctx context.Context, player string, score int) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO scores (player, score) VALUES (?, ?)",
		player, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the best runs across all players.
// Ties go to the earlier run.
func (s *Store) TopScores(ctx context.Context, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(ctx,
		`SELECT id, player, score, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
}

// PlayerScores retrieves one player's best runs.
func (s *Store) PlayerScores(ctx context.Context, player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryScores(ctx,
		`SELECT id, player, score, created_at
		 FROM scores
		 WHERE player = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		player, limit,
	)
}

func (s *Store) queryScores(ctx context.Context, query string, args ...any) ([]ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for player, or across all players
// when player is empty. Returns 0 if no scores exist.
func (s *Store) HighScore(ctx context.Context, player string) (int, error) {
	query := "SELECT MAX(score) FROM scores WHERE player = ?"
	args := []any{player}
	if player == "" {
		query = "SELECT MAX(score) FROM scores"
		args = nil
	}

	var score sql.NullInt64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for player, or every score when player is empty.
func (s *Store) ClearScores(ctx context.Context, player string) error {
	var err error
	if player == "" {
		_, err = s.db.ExecContext(ctx, "DELETE FROM scores")
	} else {
		_, err = s.db.ExecContext(ctx, "DELETE FROM scores WHERE player = ?", player)
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats retrieves aggregated statistics for a player.
func (s *Store) Stats(ctx context.Context, player string) (*PlayerStats, error) {
	stats := &PlayerStats{Player: player}

	var lastPlayed any
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE player = ?`,
		player,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get player stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// SetPending stores score as player's pending submission, replacing any
// earlier one.
func (s *Store) SetPending(ctx context.Context, player string, score int) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pending_scores (player, score, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at`,
		player, score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save pending score: %w", err)
	}
	return nil
}

// Pending returns player's pending score, if any.
func (s *Store) Pending(ctx context.Context, player string) (int, bool, error) {
	var score int
	err := s.db.QueryRowContext(ctx,
		"SELECT score FROM pending_scores WHERE player = ?",
		player,
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot query pending score: %w", err)
	}
	return score, true, nil
}

// AllPending lists every pending submission, oldest first.
func (s *Store) AllPending(ctx context.Context) ([]PendingScore, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT player, score, updated_at FROM pending_scores ORDER BY updated_at ASC, player ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query pending scores: %w", err)
	}
	defer rows.Close()

	var pending []PendingScore
	for rows.Next() {
		var p PendingScore
		var updatedAt any
		if err := rows.Scan(&p.Player, &p.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updatedAt)
		pending = append(pending, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return pending, nil
}

// ClearPending removes player's pending score.
func (s *Store) ClearPending(ctx context.Context, player string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pending_scores WHERE player = ?", player); err != nil {
		return fmt.Errorf("storage: cannot clear pending score: %w", err)
	}
	return nil
}

// AutoplayCount returns how many autoplay runs player has started.
func (s *Store) AutoplayCount(ctx context.Context, player string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT autoplay_count FROM player_settings WHERE player = ?",
		player,
	).Scan(&count)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query autoplay count: %w", err)
	}
	return count, nil
}

// IncrementAutoplayCount bumps player's autoplay counter and returns the new value.
func (s *Store) IncrementAutoplayCount(ctx context.Context, player string) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`INSERT INTO player_settings (player, autoplay_count) VALUES (?, 1)
		 ON CONFLICT(player) DO UPDATE SET autoplay_count = autoplay_count + 1
		 RETURNING autoplay_count`,
		player,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update autoplay count: %w", err)
	}
	return count, nil
}

// DecrementAutoplayCount gives back one autoplay run, never going below zero,
// and returns the new value.
func (s *Store) DecrementAutoplayCount(ctx context.Context, player string) (int, error) {
	if _, err := s.db.ExecContext(ctx,
		"UPDATE player_settings SET autoplay_count = MAX(autoplay_count - 1, 0) WHERE player = ?",
		player,
	); err != nil {
		return 0, fmt.Errorf("storage: cannot update autoplay count: %w", err)
	}
	return s.AutoplayCount(ctx, player)
}

// parseTime handles both time.Time and the SQLite text layout.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
