package storage

// Repository defines the complete storage interface.
// This interface allows swapping implementations (SQLite, PostgreSQL, etc.)
// and makes testing with mocks straightforward.
type Repository interface {
	// SaveRun persists a cleaning run record
	SaveRun(run *CleaningRun) error

	// GetRun retrieves a run by ID, nil if not found
	GetRun(id string) (*CleaningRun, error)

	// ListRuns returns the most recent runs, newest first
	ListRuns(limit int) ([]CleaningRun, error)

	// GetStats returns aggregate statistics across runs
	GetStats() (*Stats, error)

	Close() error
}
