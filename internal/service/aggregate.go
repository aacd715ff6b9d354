package service

import (
	"sort"
	"strings"
	"time"

	"retail-insight/internal/model"
	"retail-insight/internal/utils"
)

// Aggregations are pure functions over a Dataset. They never mutate
// their input: date filters return views sharing row maps with the
// base table. Unparseable numeric cells count as 0; rows with
// unparseable dates are excluded rather than erroring.

// GroupEntry is one group's summed value. GroupSum keeps first-seen
// key order so formatted answers are deterministic.
type GroupEntry struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
}

// TotalRevenue sums the `Total Revenue` column.
func TotalRevenue(ds *model.Dataset) (float64, error) {
	if !ds.HasColumn(model.ColTotalRevenue) {
		return 0, &MissingColumnError{Column: model.ColTotalRevenue}
	}
	var total float64
	for _, row := range ds.Rows {
		if v, ok := utils.ParseNumber(row[model.ColTotalRevenue]); ok {
			total += v
		}
	}
	return total, nil
}

// GroupSum sums valueCol per distinct value of groupCol. Rows with an
// empty group key are omitted.
func GroupSum(ds *model.Dataset, groupCol, valueCol string) ([]GroupEntry, error) {
	if !ds.HasColumn(groupCol) {
		return nil, &MissingColumnError{Column: groupCol}
	}
	if !ds.HasColumn(valueCol) {
		return nil, &MissingColumnError{Column: valueCol}
	}

	index := make(map[string]int)
	var entries []GroupEntry
	for _, row := range ds.Rows {
		key := strings.TrimSpace(row[groupCol])
		if key == "" {
			continue
		}
		v, _ := utils.ParseNumber(row[valueCol])
		if i, ok := index[key]; ok {
			entries[i].Value += v
		} else {
			index[key] = len(entries)
			entries = append(entries, GroupEntry{Key: key, Value: v})
		}
	}
	return entries, nil
}

// TopN returns the n largest groups by summed value, descending. Ties
// keep first-occurrence order from the source table. n <= 0 means the
// default of 5.
func TopN(ds *model.Dataset, groupCol, valueCol string, n int) ([]GroupEntry, error) {
	if n <= 0 {
		n = 5
	}
	entries, err := GroupSum(ds, groupCol, valueCol)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// FilterByMonth keeps rows whose Date month component equals month.
func FilterByMonth(ds *model.Dataset, month time.Month) (*model.Dataset, error) {
	return filterByDate(ds, func(t time.Time) bool {
		return t.Month() == month
	})
}

// FilterByYear keeps rows whose Date year component equals year.
func FilterByYear(ds *model.Dataset, year int) (*model.Dataset, error) {
	return filterByDate(ds, func(t time.Time) bool {
		return t.Year() == year
	})
}

// FilterByQuarter keeps rows whose Date month component lies in
// [from, to]. The Q1 intent calls (January, March).
func FilterByQuarter(ds *model.Dataset, from, to time.Month) (*model.Dataset, error) {
	return filterByDate(ds, func(t time.Time) bool {
		return t.Month() >= from && t.Month() <= to
	})
}

func filterByDate(ds *model.Dataset, keep func(time.Time) bool) (*model.Dataset, error) {
	if !ds.HasColumn(model.ColDate) {
		return nil, &MissingColumnError{Column: model.ColDate}
	}
	var rows []model.Row
	for _, row := range ds.Rows {
		t, ok := utils.ParseDate(row[model.ColDate])
		if !ok {
			continue
		}
		if keep(t) {
			rows = append(rows, row)
		}
	}
	return ds.WithRows(rows), nil
}

// TopProductByUnits returns the product with the largest summed
// `Units Sold`. Ties keep the first-seen product.
func TopProductByUnits(ds *model.Dataset) (string, error) {
	entries, err := GroupSum(ds, model.ColProduct, model.ColUnitsSold)
	if err != nil {
		return "", err
	}
	if len(entries) == 0 {
		return "", &EmptyResultError{Op: "top product by units"}
	}
	best := entries[0]
	for _, e := range entries[1:] {
		if e.Value > best.Value {
			best = e
		}
	}
	return best.Key, nil
}

// FilterEquals keeps rows whose column cell equals value exactly. Used
// by the pre-query row filter.
func FilterEquals(ds *model.Dataset, column, value string) (*model.Dataset, error) {
	if !ds.HasColumn(column) {
		return nil, &MissingColumnError{Column: column}
	}
	var rows []model.Row
	for _, row := range ds.Rows {
		if row[column] == value {
			rows = append(rows, row)
		}
	}
	return ds.WithRows(rows), nil
}
