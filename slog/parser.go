package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/harvest"
)

// Ensure LoggingCardParser implements harvest.CardParser.
var _ harvest.CardParser = (*LoggingCardParser)(nil)

// LoggingCardParser wraps a CardParser with debug logging for card selection.
type LoggingCardParser struct {
	next   harvest.CardParser
	logger *slog.Logger
}

// NewLoggingCardParser creates a new LoggingCardParser.
func NewLoggingCardParser(next harvest.CardParser, logger *slog.Logger) *LoggingCardParser {
	return &LoggingCardParser{next: next, logger: logger}
}

// ParseCards delegates to the wrapped parser and logs how many cards matched.
func (p *LoggingCardParser) ParseCards(html, containerSelector string, max int) (cards []harvest.Card, err error) {
	defer func(begin time.Time) {
		p.logger.Debug("card selection",
			"selector", containerSelector,
			"max", max,
			"cards", len(cards),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return p.next.ParseCards(html, containerSelector, max)
}
