package handlers_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/transaction-cleaner/internal/api/dto"
	"github.com/eshaffer321/transaction-cleaner/internal/api/handlers"
	"github.com/eshaffer321/transaction-cleaner/internal/application/cleaner"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/storage"
)

const exportCSV = `created_at_myt,order_number,customer_email,CarrierCode,item_name,item_ref_id,item_quantity,myr_item_unit_amount,myr_total_amount,myr_paid_amount,myr_points_redeemed_value,discountName
2024-03-01,O1,a@example.com,JT,Shampoo,SKU-1,1,100.00,130.00,80.00,,
2024-03-01,O1,a@example.com,JT,Soap,SKU-2,1,50.00,130.00,50.00,,
2024-03-01,O1,a@example.com,JT,Shampoo,SKU-1,1,100.00,130.00,80.00,,SALE10
`

func uploadRequest(t *testing.T, target, csv string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "export.csv")
	require.NoError(t, err)
	_, err = fw.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func newCleanHandler(repo storage.Repository) *handlers.CleanHandler {
	service := cleaner.NewService(repo, nil, cleaner.Options{})
	return handlers.NewCleanHandler(service)
}

func TestCleanHandler_Upload(t *testing.T) {
	t.Run("returns cleaned records as JSON", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newCleanHandler(repo)

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "/api/clean", exportCSV))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

		var response dto.CleanResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&response))

		assert.NotEmpty(t, response.RunID)
		assert.Equal(t, 3, response.RawRows)
		require.Len(t, response.Records, 2)
		assert.Equal(t, "SKU-1", response.Records[0].ItemRefID)
		assert.Equal(t, "SALE10", response.Records[0].DiscountName)
		assert.InDelta(t, 13.33, response.Records[0].DiscountAmount, 0.01)
		assert.Equal(t, 1, response.Summary.OrderCount)

		assert.True(t, repo.SaveRunCalled)
	})

	t.Run("returns CSV attachment with format=csv", func(t *testing.T) {
		handler := newCleanHandler(storage.NewMockRepository())

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "/api/clean?format=csv", exportCSV))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "cleaned_transactions.csv")

		lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
		require.Len(t, lines, 3) // header + 2 records
		assert.Contains(t, lines[0], "item_proportion_pct")
	})

	t.Run("rejects export with missing columns", func(t *testing.T) {
		repo := storage.NewMockRepository()
		handler := newCleanHandler(repo)

		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "/api/clean", "a,b\n1,2\n"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
		assert.Contains(t, apiErr.Message, "order_number")

		// Failed run still recorded
		assert.True(t, repo.SaveRunCalled)
		assert.Equal(t, storage.StatusFailed, repo.LastSavedRun.Status)
	})

	t.Run("rejects malformed numeric cell", func(t *testing.T) {
		handler := newCleanHandler(storage.NewMockRepository())

		bad := strings.Replace(exportCSV, "100.00,130.00", "oops,130.00", 1)
		rec := httptest.NewRecorder()
		handler.Upload(rec, uploadRequest(t, "/api/clean", bad))

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr dto.APIError
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		assert.Equal(t, dto.ErrCodeValidation, apiErr.Code)
	})

	t.Run("rejects request without file field", func(t *testing.T) {
		handler := newCleanHandler(storage.NewMockRepository())

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		require.NoError(t, mw.WriteField("other", "value"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/clean", &body)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		rec := httptest.NewRecorder()

		handler.Upload(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects non-multipart request", func(t *testing.T) {
		handler := newCleanHandler(storage.NewMockRepository())

		req := httptest.NewRequest(http.MethodPost, "/api/clean", strings.NewReader("plain body"))
		rec := httptest.NewRecorder()

		handler.Upload(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
