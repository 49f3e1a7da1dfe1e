package services

import (
	"context"
	"fmt"
	"io"

	"github.com/custodia-labs/cdcx/internal/aggregate"
	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
	"github.com/custodia-labs/cdcx/internal/logger"
)

// Ensure RecordService implements the interface.
var _ driving.RecordService = (*RecordService)(nil)

// RecordService lists, exports, restores and clears stored records.
type RecordService struct {
	store driven.RecordStore
	codec driven.RecordCodec
}

// NewRecordService creates a new record service.
func NewRecordService(store driven.RecordStore, codec driven.RecordCodec) *RecordService {
	return &RecordService{store: store, codec: codec}
}

// List returns stored records matching the filter.
func (s *RecordService) List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load records: %w", err)
	}
	return aggregate.Filter(records, filter), nil
}

// Count returns the number of stored records.
func (s *RecordService) Count(ctx context.Context) (int, error) {
	return s.store.Count(ctx)
}

// Clear removes every stored record.
func (s *RecordService) Clear(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("clear records: %w", err)
	}
	logger.Info("record store cleared")
	return nil
}

// Export writes matching records through the codec.
func (s *RecordService) Export(ctx context.Context, w io.Writer, filter domain.RecordFilter) (int, error) {
	records, err := s.List(ctx, filter)
	if err != nil {
		return 0, err
	}
	if err := s.codec.Encode(w, records); err != nil {
		return 0, err
	}
	logger.Debug("exported %d records", len(records))
	return len(records), nil
}

// Restore decodes records and appends them to the store.
// A decode error stores nothing.
func (s *RecordService) Restore(ctx context.Context, r io.Reader) (int, error) {
	records, err := s.codec.Decode(r)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	if err := s.store.AddMany(ctx, records); err != nil {
		return 0, fmt.Errorf("store records: %w", err)
	}
	logger.Info("restored %d records", len(records))
	return len(records), nil
}
