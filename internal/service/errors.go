package service

import "fmt"

// MissingColumnError reports an aggregation that requires a column the
// dataset does not carry. The column name matches the header exactly.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q is missing from the dataset", e.Column)
}

// EmptyResultError reports an aggregation that ran over zero
// qualifying rows.
type EmptyResultError struct {
	Op string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: no qualifying rows", e.Op)
}
