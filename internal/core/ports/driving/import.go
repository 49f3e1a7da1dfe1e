package driving

import (
	"context"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// ImportOptions controls a single import.
type ImportOptions struct {
	// DryRun extracts records without persisting them.
	DryRun bool
}

// ImportService reads statements and stores the extracted records.
type ImportService interface {
	// Import extracts records from the statement at path and appends them to the store.
	// A document that yields no records is not an error; check ImportResult.Extract.Empty.
	Import(ctx context.Context, path string, opts ImportOptions) (*domain.ImportResult, error)
}
