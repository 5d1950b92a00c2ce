package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the rows command.
func (c *RowsCmd) Run(deps *Dependencies) error {
	filter := harvest.RowFilter{Limit: c.Limit}
	if c.Table != "" {
		filter.Table = &c.Table
	}

	rows, err := deps.Rows.FindRows(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", harvest.ErrorMessage(err))
		return err
	}

	if len(rows) == 0 {
		fmt.Fprintln(deps.Stdout, "No rows found. Use 'harvest run --sink sqlite' to store some.")
		return nil
	}

	t := newTable(deps.Stdout, table.Row{"Table", "#", "Title", "URL", "Date", "Appended"})
	for _, r := range rows {
		t.AppendRow(table.Row{
			r.Table,
			r.Position,
			truncate(cell(r.Cells, 0), 60),
			cell(r.Cells, 1),
			cell(r.Cells, 2),
			r.AppendedAt.Format("2006-01-02 15:04"),
		})
	}
	t.Render()
	return nil
}

func cell(cells []string, i int) string {
	if i < len(cells) {
		return cells[i]
	}
	return ""
}
