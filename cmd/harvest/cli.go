package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/pipeline"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Sources   []*harvest.Source
	Harvester *pipeline.Harvester
	Rows      harvest.RowService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool   `short:"v" help:"Enable debug logging"`
	SourcesFile string `name:"sources-file" type:"path" env:"HARVEST_SOURCES" help:"YAML file replacing the built-in source adapters"`

	Run     RunCmd     `cmd:"" help:"Harvest sources and append records"`
	Sources SourcesCmd `cmd:"" help:"List configured source adapters"`
	Rows    RowsCmd    `cmd:"" help:"List rows stored by the sqlite sink"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Source      []string `short:"s" name:"source" help:"Source adapter to run (repeatable, default all)"`
	Sink        string   `default:"sheets" enum:"sheets,sqlite,csv" env:"HARVEST_SINK" help:"Destination for records (sheets, sqlite, csv)"`
	DB          string   `name:"db" default:"harvest.db" env:"HARVEST_DB" help:"SQLite database path for the sqlite sink"`
	CSVDir      string   `name:"csv-dir" default:"." env:"HARVEST_CSV_DIR" help:"Directory for the csv sink"`
	DryRun      bool     `name:"dry-run" short:"n" help:"Print records instead of appending them"`
	ShowBrowser bool     `name:"show-browser" help:"Run the browser with a visible window"`
	Rate        float64  `default:"1" help:"Requests per second per host (0 disables the limit)"`
}

// SourcesCmd is the "sources" subcommand.
type SourcesCmd struct{}

// RowsCmd is the "rows" subcommand.
type RowsCmd struct {
	Table string `arg:"" optional:"" help:"Only rows of this table"`
	DB    string `name:"db" default:"harvest.db" env:"HARVEST_DB" help:"SQLite database path"`
	Limit int    `short:"l" default:"50" help:"Maximum number of rows"`
}
