// Package ingest reads raw transaction exports and writes cleaned output.
//
// The column names are the external contract with the export source; the
// allocator itself never sees them. Schema problems are detected here,
// before any aggregation starts, and fail the whole batch.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/eshaffer321/transaction-cleaner/internal/domain/allocator"
)

// Input column names, as exported by the transaction source.
const (
	ColCreatedAt      = "created_at_myt"
	ColOrderNumber    = "order_number"
	ColCustomerEmail  = "customer_email"
	ColCarrierCode    = "CarrierCode"
	ColItemName       = "item_name"
	ColItemRefID      = "item_ref_id"
	ColQuantity       = "item_quantity"
	ColUnitPrice      = "myr_item_unit_amount"
	ColOrderTotal     = "myr_total_amount"
	ColPaidAmount     = "myr_paid_amount"
	ColPointsRedeemed = "myr_points_redeemed_value"
	ColDiscountName   = "discountName"
)

// requiredColumns is the full input contract. discountName and the points
// column must exist as columns even though their cell values may be empty.
var requiredColumns = []string{
	ColCreatedAt,
	ColOrderNumber,
	ColCustomerEmail,
	ColCarrierCode,
	ColItemName,
	ColItemRefID,
	ColQuantity,
	ColUnitPrice,
	ColOrderTotal,
	ColPaidAmount,
	ColPointsRedeemed,
	ColDiscountName,
}

// ReadRows parses a raw transaction export into allocator rows.
// It returns *allocator.SchemaError when required columns are missing and
// *allocator.MalformedValueError when a required numeric cell cannot be
// parsed. Empty discountName and points cells are treated as absent values.
func ReadRows(r io.Reader) ([]allocator.RawRow, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &allocator.SchemaError{Columns: requiredColumns}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, &allocator.SchemaError{Columns: missing}
	}

	var rows []allocator.RawRow
	line := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		line++

		field := func(col string) string {
			return strings.TrimSpace(record[idx[col]])
		}

		row := allocator.RawRow{
			CreatedAt:     field(ColCreatedAt),
			OrderNumber:   field(ColOrderNumber),
			CustomerEmail: field(ColCustomerEmail),
			CarrierCode:   field(ColCarrierCode),
			ItemName:      field(ColItemName),
			ItemRefID:     field(ColItemRefID),
			DiscountName:  field(ColDiscountName),
		}

		if row.Quantity, err = parseAmount(field(ColQuantity), ColQuantity, line); err != nil {
			return nil, err
		}
		if row.UnitPrice, err = parseAmount(field(ColUnitPrice), ColUnitPrice, line); err != nil {
			return nil, err
		}
		if row.OrderTotal, err = parseAmount(field(ColOrderTotal), ColOrderTotal, line); err != nil {
			return nil, err
		}
		if row.PaidAmount, err = parseAmount(field(ColPaidAmount), ColPaidAmount, line); err != nil {
			return nil, err
		}
		if row.PointsRedeemed, err = parseOptionalAmount(field(ColPointsRedeemed), ColPointsRedeemed, line); err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}

// parseAmount parses a required numeric cell.
func parseAmount(value, column string, line int) (float64, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &allocator.MalformedValueError{Line: line, Column: column, Value: value}
	}
	return f, nil
}

// parseOptionalAmount parses a numeric cell where an empty value means 0.
func parseOptionalAmount(value, column string, line int) (float64, error) {
	if value == "" {
		return 0, nil
	}
	return parseAmount(value, column, line)
}
