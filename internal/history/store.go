package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"plexart/internal/config"
)

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond

	// timeLayout has fixed width so stored timestamps sort as text.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open connects to (and if needed creates) the database at path.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.ExecContext(ctx, pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenFromConfig opens the database named by [history] path.
func OpenFromConfig(ctx context.Context, cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	return Open(ctx, cfg.History.Path)
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// Close releases the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// StartRun inserts a run in the running state.
func (s *Store) StartRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		return errors.New("history: run id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	if run.Status == "" {
		run.Status = StatusRunning
	}
	return s.exec(ctx,
		`INSERT INTO runs (id, library_id, library_title, library_kind, mode, status, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.LibraryID, run.LibraryTitle, run.LibraryKind, run.Mode, string(run.Status), formatTime(run.StartedAt),
	)
}

// UpdateLibrary fills in the section details once they are known.
func (s *Store) UpdateLibrary(ctx context.Context, runID, title, kind string) error {
	return s.exec(ctx, `UPDATE runs SET library_title = ?, library_kind = ? WHERE id = ?`, title, kind, runID)
}

// RecordAttempt appends an artwork attempt to a run.
func (s *Store) RecordAttempt(ctx context.Context, attempt Attempt) error {
	if attempt.RecordedAt.IsZero() {
		attempt.RecordedAt = time.Now()
	}
	return s.exec(ctx,
		`INSERT INTO attempts (run_id, kind, title, path, outcome, detail, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		attempt.RunID, attempt.Kind, attempt.Title, attempt.Path, attempt.Outcome, attempt.Detail, formatTime(attempt.RecordedAt),
	)
}

// FinishRun marks a run as ended.
func (s *Store) FinishRun(ctx context.Context, runID string, status RunStatus, message string) error {
	return s.exec(ctx,
		`UPDATE runs SET status = ?, error_message = ?, finished_at = ? WHERE id = ?`,
		string(status), message, formatTime(time.Now()), runID,
	)
}

// RecentRuns returns up to limit runs, newest first, with attempt totals.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.library_id, r.library_title, r.library_kind, r.mode, r.status,
		       r.error_message, r.started_at, COALESCE(r.finished_at, ''),
		       COALESCE(SUM(CASE WHEN a.outcome = 'downloaded' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN a.outcome = 'skipped' THEN 1 ELSE 0 END), 0)
		FROM runs r
		LEFT JOIN attempts a ON a.run_id = r.id
		GROUP BY r.id
		ORDER BY r.started_at DESC, r.rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []RunSummary
	for rows.Next() {
		var (
			summary           RunSummary
			status            string
			started, finished string
		)
		if err := rows.Scan(
			&summary.ID, &summary.LibraryID, &summary.LibraryTitle, &summary.LibraryKind, &summary.Mode,
			&status, &summary.ErrorMessage, &started, &finished,
			&summary.Downloaded, &summary.Skipped,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		summary.Status = RunStatus(status)
		summary.StartedAt = parseTime(started)
		summary.FinishedAt = parseTime(finished)
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Attempts returns the attempts recorded for a run in insertion order.
func (s *Store) Attempts(ctx context.Context, runID string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, kind, title, path, outcome, detail, recorded_at FROM attempts WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			attempt  Attempt
			recorded string
		)
		if err := rows.Scan(&attempt.RunID, &attempt.Kind, &attempt.Title, &attempt.Path, &attempt.Outcome, &attempt.Detail, &recorded); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		attempt.RecordedAt = parseTime(recorded)
		out = append(out, attempt)
	}
	return out, rows.Err()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, query, args...)
		return err
	})
}

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
