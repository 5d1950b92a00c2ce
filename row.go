package harvest

import (
	"context"
	"time"
)

// StoredRow is one row appended to a local tabular store.
type StoredRow struct {
	ID          string
	Table       string
	ColumnRange string

	// Position is the zero-based row index within Table.
	Position int

	Cells      []string
	CellsHash  string
	AppendedAt time.Time
}

// RowFilter represents a filter for FindRows.
type RowFilter struct {
	Table *string

	Limit  int
	Offset int
}

// RowService reads back rows written by a local sink.
type RowService interface {
	FindRows(ctx context.Context, filter RowFilter) ([]*StoredRow, error)
}
