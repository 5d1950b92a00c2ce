package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the sources command.
func (c *SourcesCmd) Run(deps *Dependencies) error {
	if len(deps.Sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources configured.")
		return nil
	}

	t := newTable(deps.Stdout, table.Row{"Name", "URL", "Container", "Max", "Columns", "Table", "JS"})
	for _, s := range deps.Sources {
		js := "no"
		if s.RequiresJS {
			js = "yes"
		}
		t.AppendRow(table.Row{s.Name, s.URL, s.ContainerSelector, s.MaxCards, s.ColumnRange(), s.Table, js})
	}
	t.Render()
	return nil
}
