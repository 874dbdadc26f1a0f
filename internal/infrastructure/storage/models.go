package storage

import "time"

// Run statuses
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// CleaningRun records one allocator invocation over an uploaded export.
type CleaningRun struct {
	ID           string    `json:"id"` // uuid
	Source       string    `json:"source"`
	StartedAt    time.Time `json:"started_at"`
	FinishedAt   time.Time `json:"finished_at"`
	Status       string    `json:"status"`
	ErrorMessage string    `json:"error_message,omitempty"`

	RawRows     int `json:"raw_rows"`
	CleanedRows int `json:"cleaned_rows"`
	SkippedRows int `json:"skipped_rows"`
	OrderCount  int `json:"order_count"`

	TotalRevenue   float64 `json:"total_revenue"`
	TotalDiscounts float64 `json:"total_discounts"`
	TotalPoints    float64 `json:"total_points"`
	TotalPaid      float64 `json:"total_paid"`
}

// Stats contains aggregate statistics across all recorded runs.
type Stats struct {
	TotalRuns        int     `json:"total_runs"`
	SuccessCount     int     `json:"success_count"`
	FailedCount      int     `json:"failed_count"`
	TotalRowsCleaned int     `json:"total_rows_cleaned"`
	TotalRevenue     float64 `json:"total_revenue"`
	TotalDiscounts   float64 `json:"total_discounts"`
	AvgDiscountPct   float64 `json:"avg_discount_pct"`
}
