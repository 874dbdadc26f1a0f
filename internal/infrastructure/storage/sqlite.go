package storage

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Storage provides SQLite database access for cleaning run history.
// It implements the Repository interface.
type Storage struct {
	db *sql.DB
}

// Compile-time check that Storage implements Repository
var _ Repository = (*Storage)(nil)

// NewStorage creates a new storage instance with SQLite database
func NewStorage(dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	s := &Storage{db: db}

	if err := s.runMigrations(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	return s.db.Close()
}

// SaveRun persists a cleaning run record
func (s *Storage) SaveRun(run *CleaningRun) error {
	query := `
	INSERT OR REPLACE INTO cleaning_runs
	(id, source, started_at, finished_at, status, error_message,
	 raw_rows, cleaned_rows, skipped_rows, order_count,
	 total_revenue, total_discounts, total_points, total_paid)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		run.ID,
		run.Source,
		run.StartedAt,
		run.FinishedAt,
		run.Status,
		run.ErrorMessage,
		run.RawRows,
		run.CleanedRows,
		run.SkippedRows,
		run.OrderCount,
		run.TotalRevenue,
		run.TotalDiscounts,
		run.TotalPoints,
		run.TotalPaid,
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun retrieves a run by ID. Returns nil without error when not found.
func (s *Storage) GetRun(id string) (*CleaningRun, error) {
	query := selectRunColumns + ` WHERE id = ?`

	run, err := scanRun(s.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return run, nil
}

// ListRuns returns the most recent runs, newest first
func (s *Storage) ListRuns(limit int) ([]CleaningRun, error) {
	if limit <= 0 {
		limit = 20
	}

	query := selectRunColumns + ` ORDER BY started_at DESC LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []CleaningRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// GetStats returns aggregate statistics across runs
func (s *Storage) GetStats() (*Stats, error) {
	query := `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN status = 'success' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN status = 'failed' THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(cleaned_rows), 0),
		COALESCE(SUM(total_revenue), 0),
		COALESCE(SUM(total_discounts), 0)
	FROM cleaning_runs
	`

	stats := &Stats{}
	err := s.db.QueryRow(query).Scan(
		&stats.TotalRuns,
		&stats.SuccessCount,
		&stats.FailedCount,
		&stats.TotalRowsCleaned,
		&stats.TotalRevenue,
		&stats.TotalDiscounts,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats: %w", err)
	}

	if stats.TotalRevenue > 0 {
		stats.AvgDiscountPct = stats.TotalDiscounts / stats.TotalRevenue * 100
	}

	return stats, nil
}

const selectRunColumns = `
	SELECT id, source, started_at, finished_at, status, error_message,
	       raw_rows, cleaned_rows, skipped_rows, order_count,
	       total_revenue, total_discounts, total_points, total_paid
	FROM cleaning_runs`

// rowScanner covers both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*CleaningRun, error) {
	run := &CleaningRun{}
	err := row.Scan(
		&run.ID,
		&run.Source,
		&run.StartedAt,
		&run.FinishedAt,
		&run.Status,
		&run.ErrorMessage,
		&run.RawRows,
		&run.CleanedRows,
		&run.SkippedRows,
		&run.OrderCount,
		&run.TotalRevenue,
		&run.TotalDiscounts,
		&run.TotalPoints,
		&run.TotalPaid,
	)
	if err != nil {
		return nil, err
	}
	return run, nil
}
