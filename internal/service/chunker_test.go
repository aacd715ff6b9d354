package service

import (
	"strings"
	"testing"

	"retail-insight/internal/model"
)

func TestRenderRow(t *testing.T) {
	columns := []string{"Region", "Product", "Units Sold"}
	row := model.Row{"Region": "East", "Product": "Blocks", "Units Sold": "10"}

	got := RenderRow(columns, row)
	want := "Region: East | Product: Blocks | Units Sold: 10"
	if got != want {
		t.Errorf("RenderRow() = %q, want %q", got, want)
	}
}

func TestChunkRows(t *testing.T) {
	ds := salesDataset()
	chunks := ChunkRows(ds)

	if len(chunks) != 2 {
		t.Fatalf("ChunkRows() = %d chunks, want 2", len(chunks))
	}
	if chunks[0].DatasetID != "test" || chunks[0].RowIndex != 0 {
		t.Errorf("chunks[0] identity = %s/%d", chunks[0].DatasetID, chunks[0].RowIndex)
	}
	if !strings.Contains(chunks[0].Text, "Product: Blocks") {
		t.Errorf("chunks[0].Text = %q", chunks[0].Text)
	}
	if chunks[1].Metadata["Product"] != "Dolls" {
		t.Errorf("chunks[1].Metadata = %v", chunks[1].Metadata)
	}
}

func TestSampleBlock(t *testing.T) {
	ds := salesDataset()
	block := SampleBlock(ds, 5)

	lines := strings.Split(block, "\n")
	if len(lines) != 2 {
		t.Fatalf("SampleBlock() = %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[1], "Product: Dolls") {
		t.Errorf("line 2 = %q", lines[1])
	}

	// n caps the sample.
	if got := SampleBlock(ds, 1); strings.Contains(got, "Dolls") {
		t.Errorf("SampleBlock(1) = %q, want first row only", got)
	}
}
