package model

import "time"

// Column names the canned aggregations depend on. Matching is case-
// and whitespace-exact against the uploaded header.
const (
	ColRegion       = "Region"
	ColCategory     = "Category"
	ColProduct      = "Product"
	ColUnitsSold    = "Units Sold"
	ColTotalRevenue = "Total Revenue"
	ColDate         = "Date"
)

// Row is a single record keyed by column name. Cells are kept as raw
// strings; numeric and date interpretation happens at aggregation time.
type Row map[string]string

// Dataset is a rectangular table with ordered, named columns. It is
// treated as read-only once built: filters return new views that share
// row maps with the original, so concurrent queries over the same base
// table are safe.
type Dataset struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Columns   []string  `json:"columns"`
	Rows      []Row     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// HasColumn reports whether the dataset carries the named column.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// RowCount returns the number of rows.
func (d *Dataset) RowCount() int {
	return len(d.Rows)
}

// WithRows returns a view over the given rows that keeps the dataset's
// identity and column order.
func (d *Dataset) WithRows(rows []Row) *Dataset {
	return &Dataset{
		ID:        d.ID,
		Name:      d.Name,
		Columns:   d.Columns,
		Rows:      rows,
		CreatedAt: d.CreatedAt,
	}
}

// Preview returns up to n leading rows.
func (d *Dataset) Preview(n int) []Row {
	if n > len(d.Rows) {
		n = len(d.Rows)
	}
	return d.Rows[:n]
}

// DatasetInfo is the wire representation of a stored dataset.
type DatasetInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Columns   []string  `json:"columns"`
	RowCount  int       `json:"row_count"`
	CreatedAt time.Time `json:"created_at"`
}

// Info returns the wire representation.
func (d *Dataset) Info() DatasetInfo {
	return DatasetInfo{
		ID:        d.ID,
		Name:      d.Name,
		Columns:   d.Columns,
		RowCount:  len(d.Rows),
		CreatedAt: d.CreatedAt,
	}
}
