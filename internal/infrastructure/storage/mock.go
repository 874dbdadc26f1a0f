package storage

import "sort"

// MockRepository is an in-memory implementation of Repository for testing.
type MockRepository struct {
	runs map[string]*CleaningRun

	// Hooks for test assertions
	SaveRunCalled bool
	LastSavedRun  *CleaningRun

	// Error injection for testing error paths
	SaveRunErr  error
	GetRunErr   error
	ListRunsErr error
	GetStatsErr error
}

// Compile-time check that MockRepository implements Repository
var _ Repository = (*MockRepository)(nil)

// NewMockRepository creates a new mock repository for testing
func NewMockRepository() *MockRepository {
	return &MockRepository{runs: make(map[string]*CleaningRun)}
}

// SaveRun persists a run in memory
func (m *MockRepository) SaveRun(run *CleaningRun) error {
	m.SaveRunCalled = true
	m.LastSavedRun = run
	if m.SaveRunErr != nil {
		return m.SaveRunErr
	}
	copied := *run
	m.runs[run.ID] = &copied
	return nil
}

// GetRun retrieves a run by ID, nil if not found
func (m *MockRepository) GetRun(id string) (*CleaningRun, error) {
	if m.GetRunErr != nil {
		return nil, m.GetRunErr
	}
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	copied := *run
	return &copied, nil
}

// ListRuns returns runs newest first
func (m *MockRepository) ListRuns(limit int) ([]CleaningRun, error) {
	if m.ListRunsErr != nil {
		return nil, m.ListRunsErr
	}
	if limit <= 0 {
		limit = 20
	}

	runs := make([]CleaningRun, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, *run)
	}
	sort.Slice(runs, func(i, j int) bool {
		return runs[i].StartedAt.After(runs[j].StartedAt)
	})

	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs, nil
}

// GetStats aggregates across stored runs
func (m *MockRepository) GetStats() (*Stats, error) {
	if m.GetStatsErr != nil {
		return nil, m.GetStatsErr
	}

	stats := &Stats{}
	for _, run := range m.runs {
		stats.TotalRuns++
		switch run.Status {
		case StatusSuccess:
			stats.SuccessCount++
		case StatusFailed:
			stats.FailedCount++
		}
		stats.TotalRowsCleaned += run.CleanedRows
		stats.TotalRevenue += run.TotalRevenue
		stats.TotalDiscounts += run.TotalDiscounts
	}
	if stats.TotalRevenue > 0 {
		stats.AvgDiscountPct = stats.TotalDiscounts / stats.TotalRevenue * 100
	}
	return stats, nil
}

// Close is a no-op for the mock
func (m *MockRepository) Close() error {
	return nil
}
