package dto

import (
	"time"

	"github.com/eshaffer321/transaction-cleaner/internal/domain/allocator"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/storage"
	"github.com/eshaffer321/transaction-cleaner/internal/summary"
)

// HealthResponse is returned by the health check endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// CleanResponse is returned by a successful clean upload.
type CleanResponse struct {
	RunID       string                    `json:"run_id"`
	RawRows     int                       `json:"raw_rows"`
	SkippedRows int                       `json:"skipped_rows"`
	Summary     *summary.Report           `json:"summary"`
	Records     []allocator.CleanedRecord `json:"records"`
}

// RunResponse represents a cleaning run in API responses.
type RunResponse struct {
	ID             string  `json:"id"`
	Source         string  `json:"source"`
	StartedAt      string  `json:"started_at"`
	FinishedAt     string  `json:"finished_at"`
	Status         string  `json:"status"`
	ErrorMessage   string  `json:"error_message,omitempty"`
	RawRows        int     `json:"raw_rows"`
	CleanedRows    int     `json:"cleaned_rows"`
	SkippedRows    int     `json:"skipped_rows"`
	OrderCount     int     `json:"order_count"`
	TotalRevenue   float64 `json:"total_revenue"`
	TotalDiscounts float64 `json:"total_discounts"`
	TotalPoints    float64 `json:"total_points"`
	TotalPaid      float64 `json:"total_paid"`
}

// RunListResponse wraps a list of runs.
type RunListResponse struct {
	Runs  []RunResponse `json:"runs"`
	Count int           `json:"count"`
}

// StatsResponse carries aggregate statistics across runs.
type StatsResponse struct {
	TotalRuns        int     `json:"total_runs"`
	SuccessCount     int     `json:"success_count"`
	FailedCount      int     `json:"failed_count"`
	TotalRowsCleaned int     `json:"total_rows_cleaned"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalDiscounts   float64 `json:"total_discounts"`
	AvgDiscountPct   float64 `json:"avg_discount_pct"`
}

// ToRunResponse converts a storage run to an API response.
func ToRunResponse(run storage.CleaningRun) RunResponse {
	return RunResponse{
		ID:             run.ID,
		Source:         run.Source,
		StartedAt:      run.StartedAt.Format(time.RFC3339),
		FinishedAt:     run.FinishedAt.Format(time.RFC3339),
		Status:         run.Status,
		ErrorMessage:   run.ErrorMessage,
		RawRows:        run.RawRows,
		CleanedRows:    run.CleanedRows,
		SkippedRows:    run.SkippedRows,
		OrderCount:     run.OrderCount,
		TotalRevenue:   run.TotalRevenue,
		TotalDiscounts: run.TotalDiscounts,
		TotalPoints:    run.TotalPoints,
		TotalPaid:      run.TotalPaid,
	}
}
