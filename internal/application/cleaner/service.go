// Package cleaner wires ingestion, allocation, summarization, and run
// history into the one operation both binaries expose: clean an uploaded
// export.
package cleaner

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/eshaffer321/transaction-cleaner/internal/domain/allocator"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/storage"
	"github.com/eshaffer321/transaction-cleaner/internal/ingest"
	"github.com/eshaffer321/transaction-cleaner/internal/summary"
)

// Service runs the cleaning pipeline and records run history.
type Service struct {
	repo    storage.Repository // nil disables run history
	logger  *slog.Logger
	workers int
	topN    int
}

// Options tunes a Service.
type Options struct {
	Workers int
	TopN    int
}

// NewService creates a cleaning service. repo may be nil to skip run history.
func NewService(repo storage.Repository, logger *slog.Logger, opts Options) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.TopN <= 0 {
		opts.TopN = summary.DefaultTopN
	}
	return &Service{repo: repo, logger: logger, workers: opts.Workers, topN: opts.TopN}
}

// Outcome is the result of one cleaning run.
type Outcome struct {
	RunID       string
	Records     []allocator.CleanedRecord
	Report      *summary.Report
	RawRows     int
	SkippedRows int
}

// Clean reads a raw export, allocates discounts, and summarizes the output.
// Failed runs are recorded in history too, with the error message, so a bad
// export still shows up in the run list.
func (s *Service) Clean(source string, r io.Reader) (*Outcome, error) {
	runID := uuid.NewString()
	startedAt := time.Now().UTC()

	s.logger.Info("cleaning export", "run_id", runID, "source", source)

	rows, err := ingest.ReadRows(r)
	if err != nil {
		s.recordFailure(runID, source, startedAt, err)
		return nil, err
	}

	result, err := allocator.AllocateParallel(rows, s.workers)
	if err != nil {
		s.recordFailure(runID, source, startedAt, err)
		return nil, err
	}

	report := summary.BuildTopN(result.Records, s.topN)

	if s.repo != nil {
		run := &storage.CleaningRun{
			ID:             runID,
			Source:         source,
			StartedAt:      startedAt,
			FinishedAt:     time.Now().UTC(),
			Status:         storage.StatusSuccess,
			RawRows:        result.RawRowCount,
			CleanedRows:    len(result.Records),
			SkippedRows:    result.SkippedRows,
			OrderCount:     report.OrderCount,
			TotalRevenue:   report.TotalRevenue,
			TotalDiscounts: report.TotalDiscounts,
			TotalPoints:    report.TotalPoints,
			TotalPaid:      report.TotalPaid,
		}
		if err := s.repo.SaveRun(run); err != nil {
			// History is best-effort; the cleaned output is still good.
			s.logger.Warn("failed to record run", "run_id", runID, "error", err)
		}
	}

	s.logger.Info("cleaning finished",
		"run_id", runID,
		"raw_rows", result.RawRowCount,
		"cleaned_rows", len(result.Records),
		"skipped_rows", result.SkippedRows,
		"orders", report.OrderCount)

	return &Outcome{
		RunID:       runID,
		Records:     result.Records,
		Report:      report,
		RawRows:     result.RawRowCount,
		SkippedRows: result.SkippedRows,
	}, nil
}

func (s *Service) recordFailure(runID, source string, startedAt time.Time, cause error) {
	if s.repo == nil {
		return
	}
	run := &storage.CleaningRun{
		ID:           runID,
		Source:       source,
		StartedAt:    startedAt,
		FinishedAt:   time.Now().UTC(),
		Status:       storage.StatusFailed,
		ErrorMessage: cause.Error(),
	}
	if err := s.repo.SaveRun(run); err != nil {
		s.logger.Warn("failed to record failed run", "run_id", runID, "error", err)
	}
}

// IsInputError reports whether err is a problem with the uploaded export
// rather than with the service itself.
func IsInputError(err error) bool {
	var schemaErr *allocator.SchemaError
	var valueErr *allocator.MalformedValueError
	return errors.As(err, &schemaErr) || errors.As(err, &valueErr)
}
