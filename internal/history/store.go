package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"gifcast/internal/config"
)

// Entry is one finished recording job, successful or not.
type Entry struct {
	ID              string
	CreatedAt       time.Time
	Format          string
	DurationSeconds int
	FrameRate       int
	OutputWidth     int
	HasRegion       bool
	Phase           string
	OutputPath      string
	ErrorMessage    string
}

// Store persists job history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	format TEXT NOT NULL,
	duration_seconds INTEGER NOT NULL,
	frame_rate INTEGER NOT NULL,
	output_width INTEGER NOT NULL,
	has_region INTEGER NOT NULL DEFAULT 0,
	phase TEXT NOT NULL,
	output_path TEXT NOT NULL DEFAULT '',
	error_message TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_jobs_created_at ON jobs(created_at DESC);
`

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.LogDir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: dbPath}, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts a finished job.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		return fmt.Errorf("history entry requires an id")
	}
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO jobs (id, created_at, format, duration_seconds, frame_rate, output_width, has_region, phase, output_path, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ID,
		createdAt.UTC().Format(time.RFC3339),
		entry.Format,
		entry.DurationSeconds,
		entry.FrameRate,
		entry.OutputWidth,
		boolToInt(entry.HasRegion),
		entry.Phase,
		entry.OutputPath,
		entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, format, duration_seconds, frame_rate, output_width, has_region, phase, output_path, error_message
		FROM jobs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var entry Entry
		var createdAt string
		var hasRegion int
		if err := rows.Scan(
			&entry.ID,
			&createdAt,
			&entry.Format,
			&entry.DurationSeconds,
			&entry.FrameRate,
			&entry.OutputWidth,
			&hasRegion,
			&entry.Phase,
			&entry.OutputPath,
			&entry.ErrorMessage,
		); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		if parsed, err := time.Parse(time.RFC3339, createdAt); err == nil {
			entry.CreatedAt = parsed
		}
		entry.HasRegion = hasRegion != 0
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
