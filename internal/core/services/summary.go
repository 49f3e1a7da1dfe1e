package services

import (
	"context"

	"github.com/custodia-labs/cdcx/internal/aggregate"
	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
	"github.com/custodia-labs/cdcx/internal/logger"
)

// Ensure SummaryService implements the interface.
var _ driving.SummaryService = (*SummaryService)(nil)

// SummaryService aggregates stored records.
type SummaryService struct {
	store driven.RecordStore
}

// NewSummaryService creates a new summary service.
func NewSummaryService(store driven.RecordStore) *SummaryService {
	return &SummaryService{store: store}
}

// Summarise totals and groups the records matching the filter.
func (s *SummaryService) Summarise(ctx context.Context, filter domain.RecordFilter) (*domain.Summary, error) {
	records, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	filter.Limit = 0
	selected := aggregate.Filter(records, filter)
	summary := aggregate.Summarise(selected)
	logger.Debug("summarised %d of %d records into %d symbols", len(selected), len(records), len(summary.Groups))
	return &summary, nil
}
