package cleaner

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eshaffer321/transaction-cleaner/internal/domain/allocator"
	"github.com/eshaffer321/transaction-cleaner/internal/infrastructure/storage"
)

const exportCSV = `created_at_myt,order_number,customer_email,CarrierCode,item_name,item_ref_id,item_quantity,myr_item_unit_amount,myr_total_amount,myr_paid_amount,myr_points_redeemed_value,discountName
2024-03-01,O1,a@example.com,JT,Shampoo,SKU-1,1,100.00,130.00,80.00,,
2024-03-01,O1,a@example.com,JT,Soap,SKU-2,1,50.00,130.00,50.00,,
2024-03-01,O1,a@example.com,JT,Shampoo,SKU-1,1,100.00,130.00,80.00,,SALE10
`

func TestService_Clean(t *testing.T) {
	repo := storage.NewMockRepository()
	svc := NewService(repo, nil, Options{})

	outcome, err := svc.Clean("export.csv", strings.NewReader(exportCSV))
	require.NoError(t, err)

	require.Len(t, outcome.Records, 2)
	assert.Equal(t, 3, outcome.RawRows)
	assert.Equal(t, 0, outcome.SkippedRows)
	assert.NotEmpty(t, outcome.RunID)

	// SALE10 gated SKU-1's 20 gap; spread across 150 of order value.
	assert.InDelta(t, 20.0*(100.0/150.0), outcome.Records[0].DiscountAmount, 1e-9)
	assert.InDelta(t, 20.0*(50.0/150.0), outcome.Records[1].DiscountAmount, 1e-9)

	assert.Equal(t, 1, outcome.Report.OrderCount)
	assert.InDelta(t, 150.0, outcome.Report.TotalRevenue, 1e-9)

	// Run history recorded
	require.True(t, repo.SaveRunCalled)
	saved := repo.LastSavedRun
	assert.Equal(t, outcome.RunID, saved.ID)
	assert.Equal(t, "export.csv", saved.Source)
	assert.Equal(t, storage.StatusSuccess, saved.Status)
	assert.Equal(t, 2, saved.CleanedRows)
	assert.Equal(t, 1, saved.OrderCount)
}

func TestService_CleanRecordsFailure(t *testing.T) {
	repo := storage.NewMockRepository()
	svc := NewService(repo, nil, Options{})

	_, err := svc.Clean("bad.csv", strings.NewReader("not,a,real,header\n1,2,3,4\n"))
	require.Error(t, err)

	var schemaErr *allocator.SchemaError
	assert.True(t, errors.As(err, &schemaErr))

	require.True(t, repo.SaveRunCalled)
	assert.Equal(t, storage.StatusFailed, repo.LastSavedRun.Status)
	assert.NotEmpty(t, repo.LastSavedRun.ErrorMessage)
}

func TestService_CleanWithoutRepo(t *testing.T) {
	svc := NewService(nil, nil, Options{Workers: 4})

	outcome, err := svc.Clean("export.csv", strings.NewReader(exportCSV))
	require.NoError(t, err)
	assert.Len(t, outcome.Records, 2)
}

func TestService_CleanSurvivesHistoryFailure(t *testing.T) {
	repo := storage.NewMockRepository()
	repo.SaveRunErr = errors.New("disk full")
	svc := NewService(repo, nil, Options{})

	outcome, err := svc.Clean("export.csv", strings.NewReader(exportCSV))
	require.NoError(t, err)
	assert.Len(t, outcome.Records, 2)
}

func TestIsInputError(t *testing.T) {
	assert.True(t, IsInputError(&allocator.SchemaError{Columns: []string{"x"}}))
	assert.True(t, IsInputError(&allocator.MalformedValueError{Line: 2, Column: "x"}))
	assert.False(t, IsInputError(errors.New("boom")))
}
