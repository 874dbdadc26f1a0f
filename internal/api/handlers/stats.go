package handlers

import (
	"net/http"

	"github.com/eshaffer321/transaction-cleaner/internal/api/dto"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/storage"
)

// StatsHandler handles stats-related HTTP requests.
type StatsHandler struct {
	Base
	repo storage.Repository
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(repo storage.Repository) *StatsHandler {
	return &StatsHandler{repo: repo}
}

// Get handles GET /api/stats - returns aggregate statistics.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	stats, err := h.repo.GetStats()
	if err != nil {
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.StatsResponse{
		TotalRuns:        stats.TotalRuns,
		SuccessCount:     stats.SuccessCount,
		FailedCount:      stats.FailedCount,
		TotalRowsCleaned: stats.TotalRowsCleaned,
		TotalRevenue:     stats.TotalRevenue,
		TotalDiscounts:   stats.TotalDiscounts,
		AvgDiscountPct:   stats.AvgDiscountPct,
	})
}
