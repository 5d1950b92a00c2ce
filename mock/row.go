package mock

import (
	"context"

	"github.com/fwojciec/harvest"
)

var _ harvest.RowService = (*RowService)(nil)

// RowService is a mock implementation of harvest.RowService.
type RowService struct {
	FindRowsFn func(ctx context.Context, filter harvest.RowFilter) ([]*harvest.StoredRow, error)
}

func (s *RowService) FindRows(ctx context.Context, filter harvest.RowFilter) ([]*harvest.StoredRow, error) {
	return s.FindRowsFn(ctx, filter)
}
