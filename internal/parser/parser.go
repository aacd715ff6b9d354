// Package parser turns uploaded tabular files into model.Dataset
// values. Fully-empty rows are dropped and exact duplicate rows are
// removed, so the engine always sees a clean rectangular table.
package parser

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"retail-insight/internal/model"
)

// ParseFile reads a CSV, TSV, or XLSX file into a Dataset. The dataset
// name is the base filename; the ID is assigned by the store.
func ParseFile(path string) (*model.Dataset, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".tsv":
		return parseCSVFile(path)
	case ".xlsx":
		return parseXLSXFile(path)
	default:
		return nil, fmt.Errorf("unsupported file format %q: must be .csv, .tsv or .xlsx", ext)
	}
}

// buildDataset assembles a Dataset from a header and raw records,
// applying header cleanup, empty-row dropping and deduplication.
func buildDataset(name string, header []string, records [][]string) *model.Dataset {
	columns := make([]string, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		h = strings.ReplaceAll(h, `"`, "")
		columns[i] = h
	}

	rows := make([]model.Row, 0, len(records))
	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		empty := true
		for _, cell := range rec {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		// Unit separator keeps the dedup key unambiguous.
		key := strings.Join(rec, "\x1f")
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = strings.TrimSpace(rec[i])
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}

	return &model.Dataset{
		Name:      name,
		Columns:   columns,
		Rows:      rows,
		CreatedAt: time.Now().UTC(),
	}
}
