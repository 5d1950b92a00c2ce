// Package fs provides file-based sinks for harvested rows.
package fs

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/harvest"
)

// TableToPath converts a table name to a relative file path.
// Example: "DAM Research" → DAM_Research.csv
func TableToPath(table string) (string, error) {
	name := strings.TrimSpace(table)
	if name == "" {
		return "", harvest.Errorf(harvest.EINVALID, "table required")
	}
	if strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", harvest.Errorf(harvest.EINVALID, "invalid table name %q", table)
	}
	return strings.Join(strings.Fields(name), "_") + ".csv", nil
}

// Ensure CSVSink implements harvest.Sink at compile time.
var _ harvest.Sink = (*CSVSink)(nil)

// CSVSink appends rows to one CSV file per table in a directory.
type CSVSink struct {
	baseDir string
}

// NewCSVSink creates a new CSVSink that writes to the given base directory.
func NewCSVSink(baseDir string) *CSVSink {
	return &CSVSink{baseDir: baseDir}
}

// Append writes rows to the end of the table's file. A new file starts with
// a header row naming the columns.
func (s *CSVSink) Append(ctx context.Context, table, columnRange string, rows [][]string) error {
	relPath, err := TableToPath(table)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := os.MkdirAll(s.baseDir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(s.baseDir, relPath), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(header(len(rows[0]))); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write rows to %s: %w", relPath, err)
	}

	return f.Close()
}

func header(width int) []string {
	if width < 1 || width > len(harvest.Columns) {
		width = len(harvest.Columns)
	}
	return harvest.Columns[:width]
}
