package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/harvest"
	hfs "github.com/fwojciec/harvest/fs"
	"github.com/fwojciec/harvest/goquery"
	hhttp "github.com/fwojciec/harvest/http"
	"github.com/fwojciec/harvest/pipeline"
	"github.com/fwojciec/harvest/rod"
	"github.com/fwojciec/harvest/sheets"
	hslog "github.com/fwojciec/harvest/slog"
	"github.com/fwojciec/harvest/sources"
	"github.com/fwojciec/harvest/sqlite"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env not loaded: %v\n", err)
	}

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Getenv reads credentials. Defaults to os.Getenv.
	Getenv func(string) string

	// Now stamps records without a date. Defaults to UTC now.
	Now func() time.Time

	// Services for end-to-end testing. Real implementations are built when
	// nil.
	Fetcher       harvest.Fetcher
	StaticFetcher harvest.Fetcher
	Sink          harvest.Sink

	// SQLite database opened for the sqlite sink and the rows command.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Getenv: os.Getenv,
		Now:    func() time.Time { return time.Now().UTC() },
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("harvest"),
		kong.Description("Harvest article teasers into a research sheet"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'harvest --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	deps.Sources = sources.Builtin()
	if cli.SourcesFile != "" {
		deps.Sources, err = sources.Load(cli.SourcesFile)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
	}

	defer m.Close()

	switch command(kongCtx) {
	case "run":
		selected, err := sources.Select(deps.Sources, cli.Run.Source)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", harvest.ErrorMessage(err))
			return err
		}
		deps.Sources = selected

		h, closeFetchers, err := m.harvester(ctx, &cli.Run, selected, deps.Logger, stderr)
		if err != nil {
			return err
		}
		defer closeFetchers()
		deps.Harvester = h

	case "rows":
		if err := m.openDB(cli.Rows.DB, stderr); err != nil {
			return err
		}
		deps.Rows = sqlite.NewSink(m.DB)
	}

	return kongCtx.Run(deps)
}

// harvester wires the pipeline for the run command. The browser is only
// launched when a selected source requires JavaScript; the returned func
// releases it.
func (m *Main) harvester(ctx context.Context, c *RunCmd, selected []*harvest.Source, logger *slog.Logger, stderr io.Writer) (*pipeline.Harvester, func(), error) {
	var closers []func() error
	closeAll := func() {
		for _, fn := range closers {
			_ = fn()
		}
	}

	browser := m.Fetcher
	if browser == nil && needsBrowser(selected) {
		f, err := rod.NewFetcher(rod.WithHeadless(!c.ShowBrowser))
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return nil, nil, fmt.Errorf("failed to start browser: %w", err)
		}
		closers = append(closers, f.Close)
		browser = f
	}

	static := m.StaticFetcher
	if static == nil {
		static = hhttp.NewFetcher()
	}
	if browser == nil {
		browser = static
	}

	var sink harvest.Sink
	if !c.DryRun {
		s, err := m.sink(ctx, c, stderr)
		if err != nil {
			closeAll()
			return nil, nil, err
		}
		sink = hslog.NewLoggingSink(s, logger)
	}

	h := &pipeline.Harvester{
		Fetcher:       hslog.NewLoggingFetcher(browser, logger),
		StaticFetcher: hslog.NewLoggingFetcher(static, logger),
		Parser:        hslog.NewLoggingCardParser(goquery.NewParser(), logger),
		Sink:          sink,
		DryRun:        c.DryRun,
		Logger:        logger,
		Now:           m.Now,
	}
	if c.Rate > 0 {
		h.RateLimiter = pipeline.NewDomainLimiter(c.Rate)
	}
	return h, closeAll, nil
}

func (m *Main) sink(ctx context.Context, c *RunCmd, stderr io.Writer) (harvest.Sink, error) {
	if m.Sink != nil {
		return m.Sink, nil
	}

	switch c.Sink {
	case "sqlite":
		if err := m.openDB(c.DB, stderr); err != nil {
			return nil, err
		}
		return sqlite.NewSink(m.DB), nil
	case "csv":
		return hfs.NewCSVSink(c.CSVDir), nil
	default:
		cfg, err := sheets.LoadConfig(m.Getenv)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: set %s and %s, or use --sink sqlite\n", sheets.CredentialsEnv, sheets.SpreadsheetIDEnv)
			return nil, err
		}
		s, err := sheets.NewSink(ctx, cfg)
		if err != nil {
			fmt.Fprintf(stderr, "Hint: check that %s holds a service account key\n", sheets.CredentialsEnv)
			return nil, err
		}
		return s, nil
	}
}

func (m *Main) openDB(path string, stderr io.Writer) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		m.DB = nil
		fmt.Fprintf(stderr, "Hint: Set HARVEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	return nil
}

func needsBrowser(selected []*harvest.Source) bool {
	for _, src := range selected {
		if src.RequiresJS {
			return true
		}
	}
	return false
}

// command returns the name of the selected subcommand without its args.
func command(ctx *kong.Context) string {
	fields := strings.Fields(ctx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
