package model

// Intent is the classified purpose of a query, drawn from a fixed
// closed set. Exactly one intent is selected per query.
type Intent string

const (
	IntentTotalRevenue       Intent = "total_revenue"
	IntentRevenueByRegion    Intent = "revenue_by_region"
	IntentRevenueByCategory  Intent = "revenue_by_category"
	IntentSalesByRegion      Intent = "sales_by_region"
	IntentTopSellingProducts Intent = "top_selling_products"
	IntentSalesByProduct     Intent = "sales_by_product"
	IntentSalesByCategory    Intent = "sales_by_category"
	IntentDateLastMonth      Intent = "date_last_month"
	IntentDateThisYear       Intent = "date_this_year"
	IntentDateQ1             Intent = "date_q1"
	IntentFallback           Intent = "fallback"
)

// ChartHint tells the external visualization layer which chart
// template applies to the current answer. It is derived from a second
// keyword pass over the raw query text, not from the Intent.
type ChartHint string

const (
	ChartNone        ChartHint = "none"
	ChartRegion      ChartHint = "region"
	ChartCategory    ChartHint = "category"
	ChartTopProducts ChartHint = "top_products"
)
