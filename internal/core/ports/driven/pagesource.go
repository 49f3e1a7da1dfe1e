package driven

import (
	"context"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// PageSource reads the text of a statement file page by page, in page order.
type PageSource interface {
	// Pages returns every page of the file at path.
	Pages(ctx context.Context, path string) ([]domain.Page, error)

	// Name identifies the engine for logging.
	Name() string
}
