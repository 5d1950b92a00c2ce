package sqlite

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/harvest"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ harvest.Sink       = (*Sink)(nil)
	_ harvest.RowService = (*Sink)(nil)
)

// Sink implements harvest.Sink by appending rows to the appended_rows table.
// It stands in for the spreadsheet when harvesting locally.
type Sink struct {
	db  *DB
	now func() time.Time
}

// NewSink creates a new Sink.
func NewSink(db *DB) *Sink {
	return &Sink{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// hashCells returns the big-endian hex xxHash of the cells joined by the
// unit separator.
func hashCells(cells []string) string {
	h := xxhash.Sum64String(strings.Join(cells, "\x1f"))
	return hex.EncodeToString(binary.BigEndian.AppendUint64(nil, h))
}

// paginate appends the window of a row query. SQLite only accepts OFFSET
// after LIMIT, so an offset without a limit uses LIMIT -1 (no bound).
func paginate(query *strings.Builder, args *[]any, limit, offset int) {
	switch {
	case limit > 0:
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	case offset > 0:
		query.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}

// Append stores rows after the last row of table. The batch is written in
// one transaction: either every row is stored or none is.
func (s *Sink) Append(ctx context.Context, table, columnRange string, rows [][]string) error {
	if table == "" {
		return harvest.Errorf(harvest.EINVALID, "table required")
	}
	if len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(position) + 1, 0) FROM appended_rows WHERE table_name = ?", table,
	).Scan(&next); err != nil {
		return fmt.Errorf("failed to read last position: %w", err)
	}

	appendedAt := s.now().Format(time.RFC3339)
	for i, cells := range rows {
		encoded, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("failed to encode row %d: %w", i, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO appended_rows (id, table_name, column_range, position, cells, cells_hash, appended_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), table, columnRange, next+i, string(encoded), hashCells(cells), appendedAt); err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// FindRows retrieves stored rows matching the filter, ordered by table and
// position.
func (s *Sink) FindRows(ctx context.Context, filter harvest.RowFilter) ([]*harvest.StoredRow, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, table_name, column_range, position, cells, cells_hash, appended_at FROM appended_rows WHERE 1=1")

	if filter.Table != nil {
		query.WriteString(" AND table_name = ?")
		args = append(args, *filter.Table)
	}

	query.WriteString(" ORDER BY table_name ASC, position ASC")
	paginate(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*harvest.StoredRow
	for rows.Next() {
		var row harvest.StoredRow
		var cells, appendedAt string

		if err := rows.Scan(&row.ID, &row.Table, &row.ColumnRange, &row.Position,
			&cells, &row.CellsHash, &appendedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cells), &row.Cells); err != nil {
			return nil, fmt.Errorf("failed to decode cells: %w", err)
		}
		if row.AppendedAt, err = time.Parse(time.RFC3339, appendedAt); err != nil {
			return nil, fmt.Errorf("failed to parse appended_at: %w", err)
		}

		result = append(result, &row)
	}

	return result, rows.Err()
}
