package driving

import (
	"context"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// SummaryService aggregates stored records.
type SummaryService interface {
	// Summarise aggregates the records matching the filter.
	// The filter's Limit is ignored.
	Summarise(ctx context.Context, filter domain.RecordFilter) (*domain.Summary, error)
}
