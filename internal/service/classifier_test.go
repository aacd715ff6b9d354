package service

import (
	"testing"

	"retail-insight/internal/model"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		intent  model.Intent
		partial bool
	}{
		{"total revenue", "what is the total revenue?", model.IntentTotalRevenue, false},
		{"revenue by region", "show revenue by region", model.IntentRevenueByRegion, false},
		{"revenue by category", "revenue by category please", model.IntentRevenueByCategory, false},
		{"sales by region", "sales by region", model.IntentSalesByRegion, false},
		{"units by region", "units by region", model.IntentSalesByRegion, false},
		{"top selling products", "top selling products", model.IntentTopSellingProducts, false},
		{"highest sales", "highest sales", model.IntentTopSellingProducts, false},
		{"sales by category", "category breakdown", model.IntentSalesByCategory, false},
		{"sales by product", "numbers per product", model.IntentSalesByProduct, false},
		{"gibberish", "tell me a story", model.IntentFallback, false},
		{"empty", "", model.IntentFallback, false},

		// Date keywords take precedence over everything.
		{"last month wins over revenue", "revenue last month", model.IntentDateLastMonth, false},
		{"this year wins over product", "best product this year", model.IntentDateThisYear, false},
		{"q1 wins over sales", "q1 sales", model.IntentDateQ1, false},
		{"last month wins over this year", "last month vs this year", model.IntentDateLastMonth, false},

		// Revenue branch wins over later branches, first match wins.
		{"revenue beats product branch", "revenue for each product", model.IntentFallback, true},
		{"revenue beats category branch", "revenue per category", model.IntentFallback, true},
		{"total beats by region inside revenue", "total revenue by region", model.IntentTotalRevenue, false},

		// Partial matches fall through without consulting later branches.
		{"bare revenue", "revenue", model.IntentFallback, true},
		{"bare sales", "sales figures", model.IntentFallback, true},
		{"sales mentioning category stays partial", "sales for each category", model.IntentFallback, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.query)
			if got.Intent != tt.intent {
				t.Errorf("Classify(%q).Intent = %s, want %s", tt.query, got.Intent, tt.intent)
			}
			if got.Partial != tt.partial {
				t.Errorf("Classify(%q).Partial = %t, want %t", tt.query, got.Partial, tt.partial)
			}
		})
	}
}

func TestHasDateKeyword(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"sales last month", true},
		{"revenue this year", true},
		{"q1 results", true},
		{"total revenue", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := HasDateKeyword(tt.query); got != tt.want {
			t.Errorf("HasDateKeyword(%q) = %t, want %t", tt.query, got, tt.want)
		}
	}
}

func TestChartHintFor(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  model.ChartHint
	}{
		{"region", "Revenue by Region", model.ChartRegion},
		{"category", "sales by category", model.ChartCategory},
		{"top products", "show top selling products", model.ChartTopProducts},
		{"none", "total revenue", model.ChartNone},
		// Region is checked before category.
		{"region beats category", "region and category", model.ChartRegion},
		// "top products" alone does not match the full phrase.
		{"partial phrase", "top products", model.ChartNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChartHintFor(tt.query); got != tt.want {
				t.Errorf("ChartHintFor(%q) = %s, want %s", tt.query, got, tt.want)
			}
		})
	}
}
