// Package store owns everything claude-pulse persists between invocations:
// the usage history database, the streak stats file, the render cache, and
// the animation-state flag. Readers treat corrupt or missing state as "no
// data"; a damaged file must never take the status line down with it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	// Import modernc.org/sqlite as a blank import to register the driver
	_ "modernc.org/sqlite"

	"github.com/mrukavishnikov/claude-pulse/internal/analytics"
	"github.com/mrukavishnikov/claude-pulse/internal/models"
)

// History wraps the SQLite connection holding usage samples.
type History struct {
	db   *sql.DB
	path string
}

// OpenHistory opens (creating if needed) the sample database.
func OpenHistory(path string) (*History, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	h := &History{db: db, path: path}
	if err := h.configure(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to configure history database: %w", err)
	}
	if err := h.createSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}
	return h, nil
}

// Close releases the database connection.
func (h *History) Close() error {
	return h.db.Close()
}

// Path returns the database file path.
func (h *History) Path() string {
	return h.path
}

func (h *History) configure() error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := h.db.ExecContext(context.Background(), pragma); err != nil {
			return fmt.Errorf("failed to execute %s: %w", pragma, err)
		}
	}
	return nil
}

func (h *History) createSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS samples (
		t INTEGER PRIMARY KEY,
		session_pct REAL NOT NULL,
		weekly_pct REAL NOT NULL
	)`
	_, err := h.db.ExecContext(context.Background(), query)
	if err != nil {
		return fmt.Errorf("failed to create samples table: %w", err)
	}
	return nil
}

// Append records one sample and enforces the retention window and length
// cap. A sample older than the newest stored one is dropped silently
// (backward clock between invocations).
func (h *History) Append(ctx context.Context, s models.HistorySample) error {
	var newest sql.NullInt64
	if err := h.db.QueryRowContext(ctx, "SELECT MAX(t) FROM samples").Scan(&newest); err != nil {
		return fmt.Errorf("failed to read newest sample: %w", err)
	}
	if newest.Valid && s.T < newest.Int64 {
		return nil
	}

	_, err := h.db.ExecContext(ctx,
		"INSERT OR REPLACE INTO samples (t, session_pct, weekly_pct) VALUES (?, ?, ?)",
		s.T, s.SessionPct, s.WeeklyPct)
	if err != nil {
		return fmt.Errorf("failed to insert sample: %w", err)
	}

	cutoff := s.T - int64(analytics.RetentionWindow.Seconds())
	if _, err := h.db.ExecContext(ctx, "DELETE FROM samples WHERE t < ?", cutoff); err != nil {
		return fmt.Errorf("failed to prune samples: %w", err)
	}
	_, err = h.db.ExecContext(ctx, `
		DELETE FROM samples WHERE t NOT IN (
			SELECT t FROM samples ORDER BY t DESC LIMIT ?
		)`, analytics.MaxSamples)
	if err != nil {
		return fmt.Errorf("failed to cap samples: %w", err)
	}
	return nil
}

// Recent returns samples from the last span, oldest first.
func (h *History) Recent(ctx context.Context, now time.Time, span time.Duration) ([]models.HistorySample, error) {
	cutoff := now.Unix() - int64(span.Seconds())
	rows, err := h.db.QueryContext(ctx,
		"SELECT t, session_pct, weekly_pct FROM samples WHERE t >= ? ORDER BY t ASC", cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to query samples: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var samples []models.HistorySample
	for rows.Next() {
		var s models.HistorySample
		if err := rows.Scan(&s.T, &s.SessionPct, &s.WeeklyPct); err != nil {
			return nil, fmt.Errorf("failed to scan sample: %w", err)
		}
		samples = append(samples, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading samples: %w", err)
	}
	return samples, nil
}

// All returns every retained sample, oldest first.
func (h *History) All(ctx context.Context) ([]models.HistorySample, error) {
	return h.Recent(ctx, time.Now(), analytics.RetentionWindow)
}
