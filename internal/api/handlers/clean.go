package handlers

import (
	"fmt"
	"net/http"

	"github.com/eshaffer321/transaction-cleaner/internal/api/dto"
	"github.com/eshaffer321/transaction-cleaner/internal/application/cleaner"
	"github.com/eshaffer321/transaction-cleaner/internal/ingest"
)

// maxUploadBytes caps the multipart form held in memory before spilling
// to disk.
const maxUploadBytes = 32 << 20

// CleanHandler handles export upload and cleaning requests.
type CleanHandler struct {
	Base
	service *cleaner.Service
}

// NewCleanHandler creates a new clean handler.
func NewCleanHandler(service *cleaner.Service) *CleanHandler {
	return &CleanHandler{service: service}
}

// Upload handles POST /api/clean - accepts a multipart CSV upload in the
// "file" field, cleans it, and responds with JSON or, when ?format=csv,
// the cleaned CSV as an attachment.
func (h *CleanHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("expected multipart form upload"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, dto.BadRequestError("missing form file \"file\""))
		return
	}
	defer func() { _ = file.Close() }()

	outcome, err := h.service.Clean(header.Filename, file)
	if err != nil {
		if cleaner.IsInputError(err) {
			h.WriteError(w, http.StatusBadRequest, dto.ValidationError(err.Error()))
			return
		}
		h.WriteError(w, http.StatusInternalServerError, dto.InternalError())
		return
	}

	if r.URL.Query().Get("format") == "csv" {
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "cleaned_transactions.csv"))
		if err := ingest.WriteRecords(w, outcome.Records); err != nil {
			// Headers already sent; nothing better to do than stop.
			return
		}
		return
	}

	h.WriteJSON(w, http.StatusOK, dto.CleanResponse{
		RunID:       outcome.RunID,
		RawRows:     outcome.RawRows,
		SkippedRows: outcome.SkippedRows,
		Summary:     outcome.Report,
		Records:     outcome.Records,
	})
}
