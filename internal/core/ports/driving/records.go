package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// RecordService manages stored records.
type RecordService interface {
	// List returns stored records matching the filter, in insertion order.
	List(ctx context.Context, filter domain.RecordFilter) ([]domain.Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int, error)

	// Clear removes every stored record.
	Clear(ctx context.Context) error

	// Export writes matching records as CSV and returns how many were written.
	Export(ctx context.Context, w io.Writer, filter domain.RecordFilter) (int, error)

	// Restore reads CSV written by Export and appends the records to the store.
	Restore(ctx context.Context, r io.Reader) (int, error)
}
