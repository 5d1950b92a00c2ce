package main

import (
	"fmt"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/pipeline"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the run command. Every selected source is attempted; the
// command fails if any of them failed.
func (c *RunCmd) Run(deps *Dependencies) error {
	if len(deps.Sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources configured.")
		return nil
	}

	reports, err := deps.Harvester.RunAll(deps.Ctx, deps.Sources)

	if c.DryRun {
		printRecords(deps, reports)
	}
	printSummary(deps, reports)

	for _, r := range reports {
		if r.Err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s: %s\n", r.Source, harvest.ErrorMessage(r.Err))
		}
	}
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}
	return nil
}

func printSummary(deps *Dependencies, reports []*pipeline.Report) {
	t := newTable(deps.Stdout, table.Row{"Source", "Cards", "Records", "Written", "Sponsored", "Duplicate", "No link", "Errors", "Status"})
	for _, r := range reports {
		status := "ok"
		if r.Err != nil {
			status = harvest.ErrorCode(r.Err)
		}
		t.AppendRow(table.Row{
			r.Source,
			len(r.Cards),
			len(r.Records),
			r.Written,
			r.Skipped(pipeline.SkipSponsored),
			r.Skipped(pipeline.SkipDuplicate),
			r.Skipped(pipeline.SkipMissingLink),
			r.Skipped(pipeline.SkipError),
			status,
		})
	}
	t.Render()
}

func printRecords(deps *Dependencies, reports []*pipeline.Report) {
	t := newTable(deps.Stdout, table.Row{"Source", "Date", "Title", "URL", "Author"})
	n := 0
	for _, r := range reports {
		for _, rec := range r.Records {
			t.AppendRow(table.Row{rec.Source, rec.PublishedDate, truncate(rec.Title, 60), rec.URL, rec.Author})
			n++
		}
	}
	if n == 0 {
		fmt.Fprintln(deps.Stdout, "No records extracted.")
		return
	}
	t.Render()
}
