package service

import (
	"fmt"
	"strings"

	"retail-insight/internal/model"
)

// RenderRow renders one row as "col: value | col: value" pairs in
// column order. The same rendering feeds both fallback prompts and the
// vector index, so a chunk found by similarity search reads like the
// prompt sample.
func RenderRow(columns []string, row model.Row) string {
	parts := make([]string, 0, len(columns))
	for _, col := range columns {
		parts = append(parts, fmt.Sprintf("%s: %s", col, row[col]))
	}
	return strings.Join(parts, " | ")
}

// ChunkRows converts every dataset row into a text chunk with the raw
// row attached as metadata.
func ChunkRows(ds *model.Dataset) []model.RowChunk {
	chunks := make([]model.RowChunk, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		meta := make(model.JSONMap, len(row))
		for k, v := range row {
			meta[k] = v
		}
		chunks = append(chunks, model.RowChunk{
			DatasetID: ds.ID,
			RowIndex:  i,
			Text:      RenderRow(ds.Columns, row),
			Metadata:  meta,
		})
	}
	return chunks
}

// SampleBlock renders the first n rows, one per line, for embedding
// into a fallback prompt.
func SampleBlock(ds *model.Dataset, n int) string {
	rows := ds.Preview(n)
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, RenderRow(ds.Columns, row))
	}
	return strings.Join(lines, "\n")
}
