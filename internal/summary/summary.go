// Package summary computes aggregate statistics over cleaned records for
// display and for run history.
package summary

import (
	"sort"

	"github.com/eshaffer321/transaction-cleaner/internal/domain/allocator"
)

// DefaultTopN is how many entries the top-product and top-discount
// rankings carry by default.
const DefaultTopN = 10

// Report aggregates one batch of cleaned records.
type Report struct {
	OrderCount        int     `json:"order_count"`
	RecordCount       int     `json:"record_count"`
	TotalItemQuantity float64 `json:"total_item_quantity"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalDiscounts    float64 `json:"total_discounts"`
	TotalPoints       float64 `json:"total_points"`
	TotalPaid         float64 `json:"total_paid"`

	// AvgDiscountPct is total discounts over total revenue, as a percent.
	AvgDiscountPct float64 `json:"avg_discount_pct"`

	UniqueProducts int `json:"unique_products"`

	TopProducts  []Ranking `json:"top_products"`
	TopDiscounts []Ranking `json:"top_discounts"`
}

// Ranking is one entry in a top-N grouping.
type Ranking struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
}

// Build computes a Report over cleaned records with DefaultTopN rankings.
func Build(records []allocator.CleanedRecord) *Report {
	return BuildTopN(records, DefaultTopN)
}

// BuildTopN computes a Report with rankings truncated to n entries.
func BuildTopN(records []allocator.CleanedRecord, n int) *Report {
	report := &Report{RecordCount: len(records)}

	orders := make(map[string]bool)
	products := make(map[string]bool)
	revenueByProduct := make(map[string]float64)
	discountByCode := make(map[string]float64)

	for _, rec := range records {
		orders[rec.OrderNumber] = true
		products[rec.ItemRefID] = true

		report.TotalItemQuantity += rec.Quantity
		report.TotalRevenue += rec.ItemTotal
		report.TotalDiscounts += rec.DiscountAmount
		report.TotalPoints += rec.PointsRedeemed
		report.TotalPaid += rec.FinalPaidAmount

		revenueByProduct[rec.ItemName] += rec.ItemTotal
		if rec.DiscountName != "" {
			discountByCode[rec.DiscountName] += rec.DiscountAmount
		}
	}

	report.OrderCount = len(orders)
	report.UniqueProducts = len(products)
	if report.TotalRevenue > 0 {
		report.AvgDiscountPct = report.TotalDiscounts / report.TotalRevenue * 100
	}

	report.TopProducts = topN(revenueByProduct, n)
	report.TopDiscounts = topN(discountByCode, n)

	return report
}

// topN ranks map entries by amount descending, name ascending on ties so
// the ranking is stable across runs.
func topN(amounts map[string]float64, n int) []Ranking {
	rankings := make([]Ranking, 0, len(amounts))
	for name, amount := range amounts {
		rankings = append(rankings, Ranking{Name: name, Amount: amount})
	}

	sort.Slice(rankings, func(i, j int) bool {
		if rankings[i].Amount != rankings[j].Amount {
			return rankings[i].Amount > rankings[j].Amount
		}
		return rankings[i].Name < rankings[j].Name
	})

	if len(rankings) > n {
		rankings = rankings[:n]
	}
	return rankings
}
