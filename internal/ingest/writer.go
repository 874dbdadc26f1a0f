package ingest

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/eshaffer321/transaction-cleaner/internal/domain/allocator"
)

// outputHeader is the cleaned-output contract, one row per ItemKey.
var outputHeader = []string{
	"created_at_myt",
	"order_number",
	"customer_email",
	"CarrierCode",
	"item_name",
	"item_ref_id",
	"item_quantity",
	"item_unit_price",
	"item_total_price",
	"discount_name",
	"discount_amount",
	"points_redeemed",
	"final_paid_amount",
	"order_total",
	"item_proportion_pct",
}

// WriteRecords serializes cleaned records as CSV. Money columns are
// formatted to 2 decimals here; the allocator itself never rounds them.
func WriteRecords(w io.Writer, records []allocator.CleanedRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(outputHeader); err != nil {
		return err
	}

	for _, rec := range records {
		row := []string{
			rec.CreatedAt,
			rec.OrderNumber,
			rec.CustomerEmail,
			rec.CarrierCode,
			rec.ItemName,
			rec.ItemRefID,
			formatQuantity(rec.Quantity),
			formatMoney(rec.UnitPrice),
			formatMoney(rec.ItemTotal),
			rec.DiscountName,
			formatMoney(rec.DiscountAmount),
			formatMoney(rec.PointsRedeemed),
			formatMoney(rec.FinalPaidAmount),
			formatMoney(rec.OrderTotal),
			formatMoney(rec.ItemProportionPct),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatMoney(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

func formatQuantity(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
