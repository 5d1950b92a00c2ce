package harvest

import (
	"context"
	"time"
)

// Settle describes how a fetcher waits for client-side rendering after the
// page load event. The page's async content is not signalled, so waiting is
// bounded by time.
type Settle struct {
	// Delay is the fixed wait after load. When Selector is set, Delay is
	// the upper bound of the polling wait instead.
	Delay time.Duration `yaml:"delay"`

	// Selector switches to polling: the fetcher waits until the number of
	// elements matching Selector is unchanged for Rounds polls.
	Selector string        `yaml:"selector"`
	Interval time.Duration `yaml:"interval"`
	Rounds   int           `yaml:"rounds"`
}

// Polling reports whether the policy waits for a stable element count.
func (s Settle) Polling() bool {
	return s.Selector != ""
}

// PageRequest describes one page to render.
type PageRequest struct {
	URL string

	// Timeout bounds navigation, load and settle together.
	Timeout time.Duration

	Settle Settle
}

// Fetcher retrieves rendered HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch navigates to the URL, waits according to the settle policy,
	// and returns the rendered HTML.
	// The context controls cancellation.
	Fetch(ctx context.Context, req PageRequest) (html string, err error)

	// Close releases browser resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Sink appends rows to a named table range.
type Sink interface {
	// Append writes rows after the last row of columnRange in table.
	Append(ctx context.Context, table, columnRange string, rows [][]string) error
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
