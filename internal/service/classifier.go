package service

import (
	"strings"

	"retail-insight/internal/model"
)

// Classification is the outcome of the keyword classifier. Partial is
// set when a top-level keyword (revenue, sales/units) matched but no
// sub-phrase did: such queries drop to the generative fallback without
// consulting later branches, and the engine may answer with a
// clarification instead when strict-partial mode is on.
type Classification struct {
	Intent  model.Intent
	Partial bool
}

// Classify maps a normalized (lower-cased) query to exactly one
// intent. Checks run in a fixed precedence order, first match wins: a
// query containing both "revenue" and "product" classifies under the
// revenue branch and never reaches the product branch.
func Classify(query string) Classification {
	switch {
	case strings.Contains(query, "last month"):
		return Classification{Intent: model.IntentDateLastMonth}
	case strings.Contains(query, "this year"):
		return Classification{Intent: model.IntentDateThisYear}
	case strings.Contains(query, "q1"):
		return Classification{Intent: model.IntentDateQ1}

	case strings.Contains(query, "revenue"):
		switch {
		case strings.Contains(query, "total"):
			return Classification{Intent: model.IntentTotalRevenue}
		case strings.Contains(query, "by region"):
			return Classification{Intent: model.IntentRevenueByRegion}
		case strings.Contains(query, "by category"):
			return Classification{Intent: model.IntentRevenueByCategory}
		}
		// Matched "revenue" but no sub-phrase: deliberate fallthrough
		// to the generative fallback, later branches are not consulted.
		return Classification{Intent: model.IntentFallback, Partial: true}

	case strings.Contains(query, "sales"), strings.Contains(query, "units"), strings.Contains(query, "top selling"):
		switch {
		case strings.Contains(query, "by region"):
			return Classification{Intent: model.IntentSalesByRegion}
		case strings.Contains(query, "top"), strings.Contains(query, "highest"):
			return Classification{Intent: model.IntentTopSellingProducts}
		}
		return Classification{Intent: model.IntentFallback, Partial: true}

	case strings.Contains(query, "category"):
		return Classification{Intent: model.IntentSalesByCategory}
	case strings.Contains(query, "product"):
		return Classification{Intent: model.IntentSalesByProduct}
	}

	return Classification{Intent: model.IntentFallback}
}

// HasDateKeyword reports whether the normalized query is date-scoped.
// A date-scoped query against a dataset without a Date column gets the
// missing-column answer before any classification-driven work runs.
func HasDateKeyword(query string) bool {
	return strings.Contains(query, "last month") ||
		strings.Contains(query, "this year") ||
		strings.Contains(query, "q1")
}

// ChartHintFor picks a chart template from the ORIGINAL query text.
// This is a second, independent keyword pass, deliberately not derived
// from the classified intent: a query can be answered by one branch
// while unrelated words in it still select a chart.
func ChartHintFor(rawQuery string) model.ChartHint {
	q := strings.ToLower(rawQuery)
	switch {
	case strings.Contains(q, "region"):
		return model.ChartRegion
	case strings.Contains(q, "category"):
		return model.ChartCategory
	case strings.Contains(q, "top selling products"):
		return model.ChartTopProducts
	}
	return model.ChartNone
}
