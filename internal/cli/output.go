package cli

import (
	"fmt"
	"strings"

	"github.com/eshaffer321/transaction-cleaner/internal/application/cleaner"
	"github.com/eshaffer321/transaction-cleaner/internal/summary"
)

// PrintHeader prints the application header
func PrintHeader(source string, workers int) {
	fmt.Printf("txn-clean: %s (workers=%d)\n\n", source, workers)
}

// PrintOutcome prints the cleaning result summary
func PrintOutcome(outcome *cleaner.Outcome) {
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("Run %s: %d raw rows -> %d cleaned records", outcome.RunID, outcome.RawRows, len(outcome.Records))
	if outcome.SkippedRows > 0 {
		fmt.Printf(" (%d skipped: missing order/item id)", outcome.SkippedRows)
	}
	fmt.Println()

	report := outcome.Report
	fmt.Printf("Orders=%d Items=%.0f Products=%d\n", report.OrderCount, report.TotalItemQuantity, report.UniqueProducts)
	fmt.Printf("Revenue=RM%.2f Discounts=RM%.2f (%.2f%%) Points=RM%.2f Paid=RM%.2f\n",
		report.TotalRevenue,
		report.TotalDiscounts,
		report.AvgDiscountPct,
		report.TotalPoints,
		report.TotalPaid)

	printRankings("Top products by revenue", report.TopProducts)
	printRankings("Top discount codes", report.TopDiscounts)
}

func printRankings(title string, rankings []summary.Ranking) {
	if len(rankings) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for i, r := range rankings {
		fmt.Printf("  %2d. %-40s RM%.2f\n", i+1, r.Name, r.Amount)
	}
}
