// Package pipeline runs the harvest pipeline for source adapters:
// fetch, extract, sanitize, filter, assemble and append.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
	"github.com/google/uuid"
)

// SkipReason explains why a card produced no record.
type SkipReason string

// Skip reasons.
const (
	SkipNone        SkipReason = ""
	SkipSponsored   SkipReason = "sponsored"
	SkipDuplicate   SkipReason = "duplicate"
	SkipMissingLink SkipReason = "missing_link"
	SkipError       SkipReason = "error"
)

// CardOutcome is the result of processing one card: either a record or a
// skip reason. Err is set only for SkipError.
type CardOutcome struct {
	Index  int
	Record *harvest.ArticleRecord
	Skip   SkipReason
	Err    error
}

// Report is the result of one source run. Err holds the fatal fetch or
// sink error, if any; Records hold the batch extracted before a sink
// failure.
type Report struct {
	RunID     string
	Source    string
	StartedAt time.Time
	Cards     []CardOutcome
	Records   []harvest.ArticleRecord
	Written   int
	Err       error
}

// Skipped returns the number of cards skipped for reason.
func (r *Report) Skipped(reason SkipReason) int {
	n := 0
	for _, c := range r.Cards {
		if c.Record == nil && c.Skip == reason {
			n++
		}
	}
	return n
}

// Harvester runs sources one at a time through the pipeline.
type Harvester struct {
	// Fetcher renders sources that require JavaScript.
	Fetcher harvest.Fetcher

	// StaticFetcher loads plain HTML sources. Fetcher is used when nil.
	StaticFetcher harvest.Fetcher

	Parser harvest.CardParser

	// Sink receives the batch of every run. A nil Sink, or DryRun, keeps
	// the records in the report only.
	Sink   harvest.Sink
	DryRun bool

	// RateLimiter, if set, spaces fetches to the same host.
	RateLimiter harvest.DomainLimiter

	Logger *slog.Logger

	// Now returns the run time used for missing dates. Defaults to UTC now.
	Now func() time.Time

	// NewRunID defaults to a random UUID.
	NewRunID func() string
}

// RunAll runs every source in order. A failed source does not stop the
// following ones; the returned error joins the failures.
func (h *Harvester) RunAll(ctx context.Context, sources []*harvest.Source) ([]*Report, error) {
	reports := make([]*Report, 0, len(sources))
	var errs []error
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		report, err := h.Run(ctx, src)
		reports = append(reports, report)
		if err != nil {
			errs = append(errs, fmt.Errorf("source %s: %w", src.Name, err))
		}
	}
	return reports, errors.Join(errs...)
}

// Run harvests one source. A fetch or parse failure is returned as an
// EFETCH error and a sink failure as an ESINK error; both are also stored
// in the report. Card failures never fail the run.
func (h *Harvester) Run(ctx context.Context, src *harvest.Source) (*Report, error) {
	logger := h.logger().With("source", src.Name)
	now := h.now()

	report := &Report{
		RunID:     h.runID(),
		Source:    src.Name,
		StartedAt: now,
	}
	logger = logger.With("run", report.RunID)

	cards, err := h.fetchCards(ctx, src)
	if err != nil {
		report.Err = err
		logger.Error("fetch failed", "url", src.URL, "err", err)
		return report, err
	}
	logger.Info("fetched cards", "url", src.URL, "cards", len(cards))

	seen := harvest.NewDeduplicator()
	for i, card := range cards {
		out := ProcessCard(i, card, src, now, seen)
		report.Cards = append(report.Cards, out)

		switch {
		case out.Record != nil:
			report.Records = append(report.Records, *out.Record)
		case out.Skip == SkipError:
			logger.Warn("card skipped", "index", i, "reason", out.Skip, "err", out.Err)
		default:
			logger.Info("card skipped", "index", i, "reason", out.Skip)
		}
	}

	if len(report.Records) == 0 {
		logger.Info("nothing to write")
		return report, nil
	}
	if h.DryRun || h.Sink == nil {
		logger.Info("dry run, records not written", "records", len(report.Records))
		return report, nil
	}

	rows := harvest.Rows(report.Records, src.Columns)
	if err := h.Sink.Append(ctx, src.Table, src.ColumnRange(), rows); err != nil {
		report.Err = harvest.WrapError(harvest.ESINK, err, "appending %d rows to %s", len(rows), src.Table)
		logger.Error("append failed", "rows", len(rows), "err", err)
		return report, report.Err
	}
	report.Written = len(rows)
	logger.Info("appended rows", "table", src.Table, "range", src.ColumnRange(), "rows", len(rows))

	return report, nil
}

// fetchCards loads the listing page and splits it into cards. The page is
// fully released by the fetcher before cards are processed.
func (h *Harvester) fetchCards(ctx context.Context, src *harvest.Source) ([]harvest.Card, error) {
	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, src.Host()); err != nil {
			return nil, harvest.WrapError(harvest.EFETCH, err, "waiting to fetch %s", src.URL)
		}
	}

	html, err := h.fetcherFor(src).Fetch(ctx, harvest.PageRequest{
		URL:     src.URL,
		Timeout: src.Timeout,
		Settle:  src.Settle,
	})
	if err != nil {
		return nil, harvest.WrapError(harvest.EFETCH, err, "loading %s", src.URL)
	}

	cards, err := h.Parser.ParseCards(html, src.ContainerSelector, src.MaxCards)
	if err != nil {
		return nil, harvest.WrapError(harvest.EFETCH, err, "parsing %s", src.URL)
	}
	return cards, nil
}

func (h *Harvester) fetcherFor(src *harvest.Source) harvest.Fetcher {
	if !src.RequiresJS && h.StaticFetcher != nil {
		return h.StaticFetcher
	}
	return h.Fetcher
}

func (h *Harvester) logger() *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger
}

func (h *Harvester) now() time.Time {
	if h.Now == nil {
		return time.Now().UTC()
	}
	return h.Now()
}

func (h *Harvester) runID() string {
	if h.NewRunID == nil {
		return uuid.New().String()
	}
	return h.NewRunID()
}

// ProcessCard turns one card into a record or a skip outcome. Sponsored
// cards are rejected before extraction; only accepted links are added to
// seen. A panic while reading the card is recovered as an ECARD outcome.
func ProcessCard(index int, card harvest.Card, src *harvest.Source, now time.Time, seen *harvest.Deduplicator) (out CardOutcome) {
	defer func() {
		if r := recover(); r != nil {
			out = CardOutcome{
				Index: index,
				Skip:  SkipError,
				Err:   harvest.Errorf(harvest.ECARD, "card %d: unexpected failure: %v", index, r),
			}
		}
	}()

	out.Index = index

	if harvest.IsSponsored(card.Raw(), src.SponsoredMarkers) {
		out.Skip = SkipSponsored
		return out
	}

	fields, err := harvest.Sanitize(harvest.ExtractFields(card, src.Fields), src, now)
	if err != nil {
		out.Skip = SkipError
		out.Err = harvest.WrapError(harvest.ECARD, err, "card %d: %s", index, harvest.ErrorMessage(err))
		return out
	}
	if fields.Link == "" {
		out.Skip = SkipMissingLink
		return out
	}

	rec := harvest.AssembleRecord(fields, src)
	if err := rec.Validate(); err != nil {
		out.Skip = SkipError
		out.Err = harvest.WrapError(harvest.ECARD, err, "card %d: %s", index, harvest.ErrorMessage(err))
		return out
	}

	if !seen.Accept(rec.URL) {
		out.Skip = SkipDuplicate
		return out
	}

	out.Record = &rec
	return out
}
