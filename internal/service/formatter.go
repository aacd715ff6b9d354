package service

import (
	"fmt"
	"strconv"
	"strings"
)

// Answer headings for grouped results. The wording is fixed; consumers
// may key off it.
const (
	HeadingRevenueByRegion    = "Revenue by region"
	HeadingRevenueByCategory  = "Revenue by category"
	HeadingSalesByRegion      = "Sales by region"
	HeadingTopSellingProducts = "Top-selling products"
	HeadingSalesByProduct     = "Sales by product"
	HeadingSalesByCategory    = "Sales by category"
)

// FormatNumber renders a sum without trailing zeros. Raw sums are
// surfaced as-is; there is no currency rounding.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// TotalRevenueAnswer renders the scalar total-revenue answer.
func TotalRevenueAnswer(total float64) string {
	return fmt.Sprintf("The total revenue is %s", FormatNumber(total))
}

// GroupedAnswer renders a heading plus one "key: value" line per
// entry, in the order the entries were computed. Same input, same
// output: iteration order is fixed by the slice, never a map.
func GroupedAnswer(heading string, entries []GroupEntry) string {
	var b strings.Builder
	b.WriteString(heading)
	b.WriteString(":")
	for _, e := range entries {
		b.WriteString("\n")
		b.WriteString(e.Key)
		b.WriteString(": ")
		b.WriteString(FormatNumber(e.Value))
	}
	return b.String()
}

// Date-scoped top-product answers, matching the tense of the question.

func LastMonthTopProductAnswer(product string) string {
	return fmt.Sprintf("The highest-selling product last month was %s", product)
}

func ThisYearTopProductAnswer(product string) string {
	return fmt.Sprintf("The highest-selling product this year is %s", product)
}

func Q1TopProductAnswer(product string) string {
	return fmt.Sprintf("The highest-selling product in Q1 was %s", product)
}

// MissingColumnAnswer is the user-facing answer when a required column
// is absent. For Date this is exactly "Date column is missing in the
// dataset."
func MissingColumnAnswer(column string) string {
	return fmt.Sprintf("%s column is missing in the dataset.", column)
}

// No-data answers for date-scoped questions over zero qualifying rows.
const (
	NoDataLastMonthAnswer = "No sales data available for the last month."
	NoDataThisYearAnswer  = "No sales data available for this year."
	NoDataQ1Answer        = "No sales data available for Q1."
	NoDataAnswer          = "No data available to answer that question."
)

// FallbackApologyAnswer is returned when the generative fallback is
// unavailable, fails, or times out. A degraded answer, never an error.
const FallbackApologyAnswer = "Sorry, I couldn't generate an answer for that question."

// ClarifyAnswer is returned in strict-partial mode when a top-level
// keyword matched but no recognized sub-phrase did.
const ClarifyAnswer = "Could you be more specific? For example: 'total revenue', 'revenue by region', or 'top selling products'."
