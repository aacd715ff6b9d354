package service

import (
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"retail-insight/internal/model"

	"github.com/brianvoe/gofakeit/v6"
)

func testDataset(columns []string, rows []model.Row) *model.Dataset {
	return &model.Dataset{
		ID:      "test",
		Name:    "test.csv",
		Columns: columns,
		Rows:    rows,
	}
}

func salesDataset() *model.Dataset {
	return testDataset(
		[]string{model.ColRegion, model.ColCategory, model.ColProduct, model.ColUnitsSold, model.ColTotalRevenue, model.ColDate},
		[]model.Row{
			{model.ColRegion: "East", model.ColCategory: "Toys", model.ColProduct: "Blocks", model.ColUnitsSold: "10", model.ColTotalRevenue: "100", model.ColDate: "2026-07-10"},
			{model.ColRegion: "West", model.ColCategory: "Toys", model.ColProduct: "Dolls", model.ColUnitsSold: "4", model.ColTotalRevenue: "50", model.ColDate: "2026-03-02"},
		},
	)
}

func TestTotalRevenue(t *testing.T) {
	total, err := TotalRevenue(salesDataset())
	if err != nil {
		t.Fatalf("TotalRevenue() error = %v", err)
	}
	if total != 150 {
		t.Errorf("TotalRevenue() = %v, want 150", total)
	}
}

func TestTotalRevenueMissingColumn(t *testing.T) {
	ds := testDataset([]string{model.ColRegion}, []model.Row{{model.ColRegion: "East"}})
	_, err := TotalRevenue(ds)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("TotalRevenue() error = %v, want MissingColumnError", err)
	}
	if missing.Column != model.ColTotalRevenue {
		t.Errorf("missing column = %q, want %q", missing.Column, model.ColTotalRevenue)
	}
}

func TestTotalRevenueUnparseableCells(t *testing.T) {
	ds := testDataset(
		[]string{model.ColTotalRevenue},
		[]model.Row{
			{model.ColTotalRevenue: "$1,200.50"},
			{model.ColTotalRevenue: "n/a"},
			{model.ColTotalRevenue: ""},
			{model.ColTotalRevenue: "99.5"},
		},
	)
	total, err := TotalRevenue(ds)
	if err != nil {
		t.Fatalf("TotalRevenue() error = %v", err)
	}
	if total != 1300 {
		t.Errorf("TotalRevenue() = %v, want 1300", total)
	}
}

func TestGroupSum(t *testing.T) {
	entries, err := GroupSum(salesDataset(), model.ColRegion, model.ColTotalRevenue)
	if err != nil {
		t.Fatalf("GroupSum() error = %v", err)
	}
	want := []GroupEntry{{Key: "East", Value: 100}, {Key: "West", Value: 50}}
	assertEntries(t, entries, want)
}

func TestGroupSumFirstSeenOrder(t *testing.T) {
	ds := testDataset(
		[]string{model.ColRegion, model.ColUnitsSold},
		[]model.Row{
			{model.ColRegion: "West", model.ColUnitsSold: "1"},
			{model.ColRegion: "East", model.ColUnitsSold: "2"},
			{model.ColRegion: "West", model.ColUnitsSold: "3"},
			{model.ColRegion: "", model.ColUnitsSold: "100"},
		},
	)
	entries, err := GroupSum(ds, model.ColRegion, model.ColUnitsSold)
	if err != nil {
		t.Fatalf("GroupSum() error = %v", err)
	}
	want := []GroupEntry{{Key: "West", Value: 4}, {Key: "East", Value: 2}}
	assertEntries(t, entries, want)
}

func TestGroupSumMissingColumns(t *testing.T) {
	ds := testDataset([]string{model.ColRegion}, nil)
	if _, err := GroupSum(ds, model.ColRegion, model.ColUnitsSold); err == nil {
		t.Error("GroupSum() with missing value column: want error")
	}
	if _, err := GroupSum(ds, model.ColCategory, model.ColRegion); err == nil {
		t.Error("GroupSum() with missing group column: want error")
	}
}

func TestTopN(t *testing.T) {
	ds := testDataset(
		[]string{model.ColProduct, model.ColUnitsSold},
		[]model.Row{
			{model.ColProduct: "A", model.ColUnitsSold: "10"},
			{model.ColProduct: "B", model.ColUnitsSold: "60"},
			{model.ColProduct: "C", model.ColUnitsSold: "30"},
			{model.ColProduct: "D", model.ColUnitsSold: "20"},
			{model.ColProduct: "E", model.ColUnitsSold: "50"},
			{model.ColProduct: "F", model.ColUnitsSold: "40"},
		},
	)

	entries, err := TopN(ds, model.ColProduct, model.ColUnitsSold, 5)
	if err != nil {
		t.Fatalf("TopN() error = %v", err)
	}
	want := []GroupEntry{
		{Key: "B", Value: 60},
		{Key: "E", Value: 50},
		{Key: "F", Value: 40},
		{Key: "C", Value: 30},
		{Key: "D", Value: 20},
	}
	assertEntries(t, entries, want)
}

func TestTopNDefaultAndTies(t *testing.T) {
	ds := testDataset(
		[]string{model.ColProduct, model.ColUnitsSold},
		[]model.Row{
			{model.ColProduct: "First", model.ColUnitsSold: "5"},
			{model.ColProduct: "Second", model.ColUnitsSold: "5"},
		},
	)

	// n <= 0 uses the default of 5; ties keep first-occurrence order.
	entries, err := TopN(ds, model.ColProduct, model.ColUnitsSold, 0)
	if err != nil {
		t.Fatalf("TopN() error = %v", err)
	}
	want := []GroupEntry{{Key: "First", Value: 5}, {Key: "Second", Value: 5}}
	assertEntries(t, entries, want)
}

func TestFilterByMonth(t *testing.T) {
	ds := salesDataset()
	filtered, err := FilterByMonth(ds, time.July)
	if err != nil {
		t.Fatalf("FilterByMonth() error = %v", err)
	}
	if filtered.RowCount() != 1 {
		t.Fatalf("FilterByMonth() rows = %d, want 1", filtered.RowCount())
	}
	if got := filtered.Rows[0][model.ColProduct]; got != "Blocks" {
		t.Errorf("kept product = %q, want Blocks", got)
	}
	// The base table is untouched.
	if ds.RowCount() != 2 {
		t.Errorf("base dataset mutated: rows = %d, want 2", ds.RowCount())
	}
}

func TestFilterByMonthUnparseableDates(t *testing.T) {
	ds := testDataset(
		[]string{model.ColDate, model.ColProduct},
		[]model.Row{
			{model.ColDate: "not a date", model.ColProduct: "A"},
			{model.ColDate: "2026-07-01", model.ColProduct: "B"},
		},
	)
	filtered, err := FilterByMonth(ds, time.July)
	if err != nil {
		t.Fatalf("FilterByMonth() error = %v", err)
	}
	if filtered.RowCount() != 1 {
		t.Errorf("FilterByMonth() rows = %d, want 1 (unparseable dates excluded)", filtered.RowCount())
	}
}

func TestFilterByYear(t *testing.T) {
	filtered, err := FilterByYear(salesDataset(), 2026)
	if err != nil {
		t.Fatalf("FilterByYear() error = %v", err)
	}
	if filtered.RowCount() != 2 {
		t.Errorf("FilterByYear() rows = %d, want 2", filtered.RowCount())
	}
}

func TestFilterByQuarter(t *testing.T) {
	filtered, err := FilterByQuarter(salesDataset(), time.January, time.March)
	if err != nil {
		t.Fatalf("FilterByQuarter() error = %v", err)
	}
	if filtered.RowCount() != 1 {
		t.Fatalf("FilterByQuarter() rows = %d, want 1", filtered.RowCount())
	}
	if got := filtered.Rows[0][model.ColProduct]; got != "Dolls" {
		t.Errorf("kept product = %q, want Dolls", got)
	}
}

func TestTopProductByUnits(t *testing.T) {
	product, err := TopProductByUnits(salesDataset())
	if err != nil {
		t.Fatalf("TopProductByUnits() error = %v", err)
	}
	if product != "Blocks" {
		t.Errorf("TopProductByUnits() = %q, want Blocks", product)
	}
}

func TestTopProductByUnitsEmpty(t *testing.T) {
	ds := testDataset([]string{model.ColProduct, model.ColUnitsSold}, nil)
	_, err := TopProductByUnits(ds)
	var empty *EmptyResultError
	if !errors.As(err, &empty) {
		t.Fatalf("TopProductByUnits() error = %v, want EmptyResultError", err)
	}
}

func TestFilterEquals(t *testing.T) {
	filtered, err := FilterEquals(salesDataset(), model.ColRegion, "East")
	if err != nil {
		t.Fatalf("FilterEquals() error = %v", err)
	}
	if filtered.RowCount() != 1 {
		t.Errorf("FilterEquals() rows = %d, want 1", filtered.RowCount())
	}
	if _, err := FilterEquals(salesDataset(), "Nope", "x"); err == nil {
		t.Error("FilterEquals() with unknown column: want error")
	}
}

// Row order must not change group sums, only the order groups appear
// in. Verified over generated data.
func TestGroupSumOrderInvariance(t *testing.T) {
	faker := gofakeit.New(42)
	regions := []string{"North", "South", "East", "West"}

	rows := make([]model.Row, 200)
	for i := range rows {
		rows[i] = model.Row{
			model.ColRegion:    regions[faker.Number(0, 3)],
			model.ColUnitsSold: fmt.Sprintf("%d", faker.Number(1, 500)),
		}
	}
	ds := testDataset([]string{model.ColRegion, model.ColUnitsSold}, rows)

	base, err := GroupSum(ds, model.ColRegion, model.ColUnitsSold)
	if err != nil {
		t.Fatalf("GroupSum() error = %v", err)
	}
	baseTotals := make(map[string]float64, len(base))
	for _, e := range base {
		baseTotals[e.Key] = e.Value
	}

	shuffled := make([]model.Row, len(rows))
	copy(shuffled, rows)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	got, err := GroupSum(ds.WithRows(shuffled), model.ColRegion, model.ColUnitsSold)
	if err != nil {
		t.Fatalf("GroupSum() error = %v", err)
	}
	if len(got) != len(base) {
		t.Fatalf("group count changed after shuffle: %d vs %d", len(got), len(base))
	}
	for _, e := range got {
		if baseTotals[e.Key] != e.Value {
			t.Errorf("group %s: sum = %v after shuffle, want %v", e.Key, e.Value, baseTotals[e.Key])
		}
	}
}

func assertEntries(t *testing.T, got, want []GroupEntry) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("entries = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entries[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
