package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.Sink = (*Sink)(nil)

// Sink is a mock implementation of harvest.Sink.
type Sink struct {
	AppendFn func(ctx context.Context, table, columnRange string, rows [][]string) error
}

func (s *Sink) Append(ctx context.Context, table, columnRange string, rows [][]string) error {
	return s.AppendFn(ctx, table, columnRange, rows)
}
