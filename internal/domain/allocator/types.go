package allocator

// RawRow is one row of a transaction export. Exports carry duplicate rows
// per order item when a discount applies: one base row for the sale and one
// or more discount-bearing rows for the adjustment.
type RawRow struct {
	CreatedAt      string
	OrderNumber    string
	CustomerEmail  string
	CarrierCode    string
	ItemName       string
	ItemRefID      string
	Quantity       float64
	UnitPrice      float64
	PaidAmount     float64
	PointsRedeemed float64
	OrderTotal     float64
	DiscountName   string // empty means the row carries no discount marker
}

// ItemKey uniquely identifies one order-item line across duplicated rows.
type ItemKey struct {
	OrderNumber string
	ItemRefID   string
}

// Key returns the row's ItemKey.
func (r *RawRow) Key() ItemKey {
	return ItemKey{OrderNumber: r.OrderNumber, ItemRefID: r.ItemRefID}
}

// HasDiscount reports whether the row carries a discount marker.
func (r *RawRow) HasDiscount() bool {
	return r.DiscountName != ""
}

// CleanedRecord is one output row per ItemKey with the order-level discount
// apportioned to the item by its share of order value.
type CleanedRecord struct {
	CreatedAt         string  `json:"created_at_myt"`
	OrderNumber       string  `json:"order_number"`
	CustomerEmail     string  `json:"customer_email"`
	CarrierCode       string  `json:"carrier_code"`
	ItemName          string  `json:"item_name"`
	ItemRefID         string  `json:"item_ref_id"`
	Quantity          float64 `json:"item_quantity"`
	UnitPrice         float64 `json:"item_unit_price"`
	ItemTotal         float64 `json:"item_total_price"`
	DiscountName      string  `json:"discount_name"`
	DiscountAmount    float64 `json:"discount_amount"`
	PointsRedeemed    float64 `json:"points_redeemed"`
	FinalPaidAmount   float64 `json:"final_paid_amount"`
	OrderTotal        float64 `json:"order_total"`
	ItemProportionPct float64 `json:"item_proportion_pct"`
}

// Result contains the cleaned records plus bookkeeping about the input.
type Result struct {
	Records []CleanedRecord

	// RawRowCount is the number of input rows seen.
	RawRowCount int

	// SkippedRows counts rows excluded because order_number or item_ref_id
	// was empty. They never participate in grouping or allocation.
	SkippedRows int
}
