package driven

import (
	"context"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// RecordStore persists extracted records.
// It is append-only: records are never updated and never deduplicated.
type RecordStore interface {
	// AddMany appends records in order, assigning IDs to records without one.
	AddMany(ctx context.Context, records []domain.Record) error

	// GetAll returns every stored record in insertion order.
	GetAll(ctx context.Context) ([]domain.Record, error)

	// Clear removes every stored record.
	Clear(ctx context.Context) error

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)
}
