/*
Package sqlite provides the SQLite-backed analysis run log.

PURPOSE:
  Records one row of METADATA per analyzed upload: file name, selected
  month, counts and the months present. Uploaded attendance rows, employee
  names and clock times are never written.

KEY TABLES:
  analysis_runs: one row per upload analysis

INDEXES:
  - idx_analysis_runs_created: newest-first listing and retention pruning

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. Handlers write from concurrent
  requests while the retention scheduler prunes in the background.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) so listing does not block
  on writers.

USAGE:
  store, err := sqlite.New("./data/analyzer.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

MIGRATION:
  Schema is auto-migrated on New().

SEE ALSO:
  - api/handlers.go: records runs after each upload
  - api/scheduler.go: prunes old runs
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Fixed-width UTC timestamps so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrRunNotFound is returned by GetRun for an unknown id.
var ErrRunNotFound = errors.New("analysis run not found")

// Store implements the run log using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// Each connection to ":memory:" is its own database.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS analysis_runs (
		id TEXT PRIMARY KEY,
		file_name TEXT NOT NULL,
		selected_month TEXT,
		row_count INTEGER NOT NULL,
		employee_count INTEGER NOT NULL,
		leave_count INTEGER NOT NULL,
		unparsed_dates INTEGER NOT NULL DEFAULT 0,
		months TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_analysis_runs_created
		ON analysis_runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// ANALYSIS RUNS
// =============================================================================

// AnalysisRun is the stored summary of one upload analysis.
type AnalysisRun struct {
	ID            string
	FileName      string
	SelectedMonth string
	RowCount      int
	EmployeeCount int
	LeaveCount    int
	UnparsedDates int
	Months        []string
	CreatedAt     time.Time
}

// SaveRun inserts a run. CreatedAt defaults to now.
func (s *Store) SaveRun(ctx context.Context, r AnalysisRun) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now()
	}
	months := r.Months
	if months == nil {
		months = []string{}
	}
	monthsJSON, err := json.Marshal(months)
	if err != nil {
		return fmt.Errorf("failed to encode months: %w", err)
	}

	query := `
		INSERT INTO analysis_runs (id, file_name, selected_month, row_count, employee_count,
			leave_count, unparsed_dates, months, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = s.db.ExecContext(ctx, query,
		r.ID, r.FileName, nullString(r.SelectedMonth), r.RowCount, r.EmployeeCount,
		r.LeaveCount, r.UnparsedDates, string(monthsJSON), r.CreatedAt.UTC().Format(timeLayout),
	)
	return err
}

// GetRun returns a single run or ErrRunNotFound.
func (s *Store) GetRun(ctx context.Context, id string) (*AnalysisRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs, err := s.queryRuns(ctx, `
		SELECT id, file_name, selected_month, row_count, employee_count,
			leave_count, unparsed_dates, months, created_at
		FROM analysis_runs
		WHERE id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, ErrRunNotFound
	}
	return &runs[0], nil
}

// ListRuns returns runs newest first. limit <= 0 means no limit.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]AnalysisRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = -1
	}
	return s.queryRuns(ctx, `
		SELECT id, file_name, selected_month, row_count, employee_count,
			leave_count, unparsed_dates, months, created_at
		FROM analysis_runs
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
}

// PruneRuns deletes runs created before the cutoff and reports how many
// were removed.
func (s *Store) PruneRuns(ctx context.Context, before time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM analysis_runs WHERE created_at < ?`,
		before.UTC().Format(timeLayout),
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// Reset clears all data. For development/testing only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `DELETE FROM analysis_runs`)
	return err
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]AnalysisRun, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []AnalysisRun{}
	for rows.Next() {
		var r AnalysisRun
		var selectedMonth sql.NullString
		var months, createdAt string
		if err := rows.Scan(
			&r.ID, &r.FileName, &selectedMonth, &r.RowCount, &r.EmployeeCount,
			&r.LeaveCount, &r.UnparsedDates, &months, &createdAt,
		); err != nil {
			return nil, err
		}

		r.SelectedMonth = selectedMonth.String
		if err := json.Unmarshal([]byte(months), &r.Months); err != nil {
			return nil, fmt.Errorf("corrupt months for run %s: %w", r.ID, err)
		}
		r.CreatedAt, _ = time.Parse(timeLayout, createdAt)

		runs = append(runs, r)
	}

	return runs, rows.Err()
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
