// Package allocator cleans duplicated transaction export rows and allocates
// order-level discounts across items.
//
// Exports carry one base row per order item plus extra discount-bearing rows
// when a discount applied. Allocate collapses the duplicates to exactly one
// record per (order, item) and apportions each order's discount to its items
// by their share of order value:
//
//	proportion = item_total / sum(order item totals)
//	allocated  = order_discount_total * proportion
//
// Discount rows act purely as existence markers: an item contributes to the
// order's discount total only when a discount row with the same ItemKey
// exists, and the contributed amount comes from the base row's own
// item_total - paid_amount gap, never from the discount row's fields.
package allocator

import (
	"fmt"
	"math"
)

// Allocate transforms raw export rows into one cleaned record per ItemKey.
// It is a pure function of its input: no state survives between calls, and
// output order follows the first-seen order of items in the input.
//
// Rows with an empty order_number or item_ref_id are excluded from grouping
// and counted in Result.SkippedRows. Negative prices or quantities fail the
// whole batch.
func Allocate(rows []RawRow) (*Result, error) {
	p, res, err := prepare(rows)
	if err != nil {
		return nil, err
	}

	for _, order := range p.orders {
		res.Records = append(res.Records, allocateOrder(order, p.discountNames)...)
	}

	return res, nil
}

// partition holds the intermediate groupings for one invocation.
type partition struct {
	// orders are the deduplicated items grouped by order, both levels in
	// first-seen input order.
	orders []orderGroup

	// discountNames maps an ItemKey to the name of the first discount row
	// that carries it. Presence in the map is what gates an item's
	// contribution to its order's discount total.
	discountNames map[ItemKey]string
}

type orderGroup struct {
	number string
	items  []RawRow
}

// prepare runs the passes that precede per-order allocation: validation,
// base/discount partitioning, deduplication, and order grouping.
func prepare(rows []RawRow) (*partition, *Result, error) {
	res := &Result{RawRowCount: len(rows)}

	// Validate and drop rows without a usable identity.
	kept := make([]RawRow, 0, len(rows))
	for _, row := range rows {
		if row.UnitPrice < 0 {
			return nil, nil, fmt.Errorf("order %s item %s: unit price cannot be negative", row.OrderNumber, row.ItemRefID)
		}
		if row.Quantity < 0 {
			return nil, nil, fmt.Errorf("order %s item %s: quantity cannot be negative", row.OrderNumber, row.ItemRefID)
		}
		if row.OrderNumber == "" || row.ItemRefID == "" {
			res.SkippedRows++
			continue
		}
		kept = append(kept, row)
	}

	// Partition on the discount marker.
	var baseRows, discountRows []RawRow
	for _, row := range kept {
		if row.HasDiscount() {
			discountRows = append(discountRows, row)
		} else {
			baseRows = append(baseRows, row)
		}
	}

	// Degenerate input where every row carries the marker: treat the whole
	// set as base rows so each item still gets a representative.
	if len(baseRows) == 0 {
		baseRows = kept
	}

	// First discount row per ItemKey wins for the display name.
	discountNames := make(map[ItemKey]string, len(discountRows))
	for _, row := range discountRows {
		key := row.Key()
		if _, ok := discountNames[key]; !ok {
			discountNames[key] = row.DiscountName
		}
	}

	// Deduplicate base rows: first row per ItemKey wins, insert order kept.
	seen := make(map[ItemKey]bool, len(baseRows))
	deduped := make([]RawRow, 0, len(baseRows))
	for _, row := range baseRows {
		key := row.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, row)
	}

	// Group deduplicated items by order, preserving first-seen order at
	// both levels.
	orderIdx := make(map[string]int, len(deduped))
	var orders []orderGroup
	for _, row := range deduped {
		i, ok := orderIdx[row.OrderNumber]
		if !ok {
			i = len(orders)
			orderIdx[row.OrderNumber] = i
			orders = append(orders, orderGroup{number: row.OrderNumber})
		}
		orders[i].items = append(orders[i].items, row)
	}

	return &partition{orders: orders, discountNames: discountNames}, res, nil
}

// allocateOrder computes the cleaned records for one order. Orders share no
// state, so callers may run this concurrently across orders.
func allocateOrder(order orderGroup, discountNames map[ItemKey]string) []CleanedRecord {
	// Total order value from the deduplicated items.
	var valueSum float64
	for _, item := range order.items {
		valueSum += item.UnitPrice * item.Quantity
	}

	// Total order discount: only items with a matching discount row
	// contribute, and the amount is the base row's price-vs-paid gap.
	var discountTotal float64
	for _, item := range order.items {
		if _, ok := discountNames[item.Key()]; ok {
			discountTotal += item.UnitPrice*item.Quantity - item.PaidAmount
		}
	}

	records := make([]CleanedRecord, 0, len(order.items))
	for _, item := range order.items {
		itemTotal := item.UnitPrice * item.Quantity

		// When the order's summed item value is zero the proportion is zero
		// for every item, so a non-zero discount total is allocated to no
		// item at all. That drop is intentional and must stay.
		var proportion float64
		if valueSum > 0 {
			proportion = itemTotal / valueSum
		}

		allocated := discountTotal * proportion

		records = append(records, CleanedRecord{
			CreatedAt:         item.CreatedAt,
			OrderNumber:       item.OrderNumber,
			CustomerEmail:     item.CustomerEmail,
			CarrierCode:       item.CarrierCode,
			ItemName:          item.ItemName,
			ItemRefID:         item.ItemRefID,
			Quantity:          item.Quantity,
			UnitPrice:         item.UnitPrice,
			ItemTotal:         itemTotal,
			DiscountName:      discountNames[item.Key()],
			DiscountAmount:    allocated,
			PointsRedeemed:    item.PointsRedeemed,
			FinalPaidAmount:   itemTotal - allocated - item.PointsRedeemed,
			OrderTotal:        item.OrderTotal,
			ItemProportionPct: roundToCents(proportion * 100),
		})
	}

	return records
}

// roundToCents rounds a float to 2 decimal places.
func roundToCents(amount float64) float64 {
	return math.Round(amount*100) / 100
}
