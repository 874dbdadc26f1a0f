package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/transaction-cleaner/internal/api/dto"
	"github.com/eshaffer321/transaction-cleaner/internal/api/handlers"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/storage"
)

func seedRun(t *testing.T, repo *storage.MockRepository, id string, startedAt time.Time) {
	t.Helper()
	require.NoError(t, repo.SaveRun(&storage.CleaningRun{
		ID:          id,
		Source:      "export.csv",
		StartedAt:   startedAt,
		FinishedAt:  startedAt.Add(time.Second),
		Status:      storage.StatusSuccess,
		RawRows:     10,
		CleanedRows: 8,
	}))
}

func TestRunsHandler_List(t *testing.T) {
	t.Run("returns empty list when no runs", func(t *testing.T) {
		handler := handlers.NewRunsHandler(storage.NewMockRepository())

		req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.RunListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Empty(t, response.Runs)
		assert.Equal(t, 0, response.Count)
	})

	t.Run("returns runs newest first", func(t *testing.T) {
		repo := storage.NewMockRepository()
		now := time.Now().UTC()
		seedRun(t, repo, "run-old", now.Add(-time.Hour))
		seedRun(t, repo, "run-new", now)

		handler := handlers.NewRunsHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		var response dto.RunListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		require.Equal(t, 2, response.Count)
		assert.Equal(t, "run-new", response.Runs[0].ID)
		assert.Equal(t, "run-old", response.Runs[1].ID)
	})

	t.Run("respects limit parameter", func(t *testing.T) {
		repo := storage.NewMockRepository()
		now := time.Now().UTC()
		for i := 0; i < 5; i++ {
			seedRun(t, repo, string(rune('a'+i)), now.Add(time.Duration(i)*time.Minute))
		}

		handler := handlers.NewRunsHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/runs?limit=3", nil)
		rec := httptest.NewRecorder()

		handler.List(rec, req)

		var response dto.RunListResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, 3, response.Count)
	})
}

func TestRunsHandler_Get(t *testing.T) {
	withURLParam := func(req *http.Request, key, value string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add(key, value)
		return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	}

	t.Run("returns run by id", func(t *testing.T) {
		repo := storage.NewMockRepository()
		seedRun(t, repo, "run-1", time.Now().UTC())

		handler := handlers.NewRunsHandler(repo)

		req := httptest.NewRequest(http.MethodGet, "/api/runs/run-1", nil)
		req = withURLParam(req, "id", "run-1")
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)

		var response dto.RunResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))
		assert.Equal(t, "run-1", response.ID)
		assert.Equal(t, "export.csv", response.Source)
	})

	t.Run("returns 404 for unknown run", func(t *testing.T) {
		handler := handlers.NewRunsHandler(storage.NewMockRepository())

		req := httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil)
		req = withURLParam(req, "id", "nope")
		rec := httptest.NewRecorder()

		handler.Get(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeNotFound, apiErr.Code)
	})
}
