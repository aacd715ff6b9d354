package parser

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

// writeTestXLSX builds a minimal workbook: a shared-string table and
// one worksheet.
func writeTestXLSX(t *testing.T, sharedXML, sheetXML string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create xlsx: %v", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	parts := map[string]string{
		"xl/sharedStrings.xml":     sharedXML,
		"xl/worksheets/sheet1.xml": sheetXML,
		"[Content_Types].xml":      `<?xml version="1.0"?><Types/>`,
		"xl/workbook.xml":          `<?xml version="1.0"?><workbook/>`,
	}
	for name, content := range parts {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("failed to add %s: %v", name, err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("failed to finish xlsx: %v", err)
	}
	return path
}

func TestParseFileXLSX(t *testing.T) {
	shared := `<?xml version="1.0"?>
<sst><si><t>Region</t></si><si><t>Units Sold</t></si><si><t>East</t></si><si><t>West</t></si></sst>`
	sheet := `<?xml version="1.0"?>
<worksheet><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c></row>
<row r="2"><c r="A2" t="s"><v>2</v></c><c r="B2"><v>10</v></c></row>
<row r="3"><c r="A3" t="s"><v>3</v></c><c r="B3"><v>4</v></c></row>
</sheetData></worksheet>`

	ds, err := ParseFile(writeTestXLSX(t, shared, sheet))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if len(ds.Columns) != 2 || ds.Columns[0] != "Region" || ds.Columns[1] != "Units Sold" {
		t.Fatalf("Columns = %v", ds.Columns)
	}
	if ds.RowCount() != 2 {
		t.Fatalf("RowCount() = %d, want 2", ds.RowCount())
	}
	if ds.Rows[0]["Region"] != "East" || ds.Rows[0]["Units Sold"] != "10" {
		t.Errorf("Rows[0] = %v", ds.Rows[0])
	}
	if ds.Rows[1]["Region"] != "West" || ds.Rows[1]["Units Sold"] != "4" {
		t.Errorf("Rows[1] = %v", ds.Rows[1])
	}
}

func TestParseFileXLSXSparseRow(t *testing.T) {
	shared := `<sst><si><t>A</t></si><si><t>B</t></si><si><t>C</t></si><si><t>x</t></si></sst>`
	// Second data cell skips column B entirely.
	sheet := `<worksheet><sheetData>
<row r="1"><c r="A1" t="s"><v>0</v></c><c r="B1" t="s"><v>1</v></c><c r="C1" t="s"><v>2</v></c></row>
<row r="2"><c r="A2" t="s"><v>3</v></c><c r="C2"><v>7</v></c></row>
</sheetData></worksheet>`

	ds, err := ParseFile(writeTestXLSX(t, shared, sheet))
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if ds.RowCount() != 1 {
		t.Fatalf("RowCount() = %d, want 1", ds.RowCount())
	}
	row := ds.Rows[0]
	if row["A"] != "x" || row["B"] != "" || row["C"] != "7" {
		t.Errorf("row = %v", row)
	}
}

func TestColIndexFromRef(t *testing.T) {
	tests := []struct {
		ref  string
		want int
	}{
		{"A1", 0},
		{"C12", 2},
		{"Z9", 25},
		{"AA3", 26},
		{"", -1},
		{"123", -1},
	}
	for _, tt := range tests {
		if got := colIndexFromRef(tt.ref); got != tt.want {
			t.Errorf("colIndexFromRef(%q) = %d, want %d", tt.ref, got, tt.want)
		}
	}
}
