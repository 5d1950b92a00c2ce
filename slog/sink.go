package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingSink implements harvest.Sink.
var _ harvest.Sink = (*LoggingSink)(nil)

// LoggingSink wraps a Sink with logging.
type LoggingSink struct {
	next   harvest.Sink
	logger *slog.Logger
}

// NewLoggingSink creates a new LoggingSink.
func NewLoggingSink(next harvest.Sink, logger *slog.Logger) *LoggingSink {
	return &LoggingSink{next: next, logger: logger}
}

// Append delegates to the wrapped sink and logs the operation.
func (s *LoggingSink) Append(ctx context.Context, table, columnRange string, rows [][]string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("append",
			"table", table,
			"range", columnRange,
			"rows", len(rows),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Append(ctx, table, columnRange, rows)
}
