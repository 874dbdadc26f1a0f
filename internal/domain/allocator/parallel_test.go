package allocator

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyOrders(n int) []RawRow {
	var rows []RawRow
	for i := 0; i < n; i++ {
		order := fmt.Sprintf("O%04d", i)
		rows = append(rows,
			baseRow(order, "A", 100, 1, 80),
			baseRow(order, "B", 50, 1, 50),
			baseRow(order, "A", 100, 1, 80), // duplicate
			discountRow(order, "A", "SALE"),
		)
	}
	return rows
}

func TestAllocateParallel_MatchesSequential(t *testing.T) {
	rows := manyOrders(200)

	sequential, err := Allocate(rows)
	require.NoError(t, err)

	for _, workers := range []int{1, 2, 4, 8, 64} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			parallel, err := AllocateParallel(rows, workers)
			require.NoError(t, err)
			assert.Equal(t, sequential.Records, parallel.Records)
			assert.Equal(t, sequential.SkippedRows, parallel.SkippedRows)
		})
	}
}

func TestAllocateParallel_MoreWorkersThanOrders(t *testing.T) {
	rows := []RawRow{
		baseRow("O1", "A", 10, 1, 10),
		baseRow("O2", "B", 20, 1, 20),
	}

	result, err := AllocateParallel(rows, 16)
	require.NoError(t, err)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "O1", result.Records[0].OrderNumber)
	assert.Equal(t, "O2", result.Records[1].OrderNumber)
}

func TestAllocateParallel_PropagatesErrors(t *testing.T) {
	rows := []RawRow{baseRow("O1", "A", -1, 1, 0)}
	_, err := AllocateParallel(rows, 4)
	assert.Error(t, err)
}

func TestAllocateParallel_EmptyInput(t *testing.T) {
	result, err := AllocateParallel(nil, 8)
	require.NoError(t, err)
	assert.Empty(t, result.Records)
}
