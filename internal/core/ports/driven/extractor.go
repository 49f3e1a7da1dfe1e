package driven

import "github.com/custodia-labs/cdcx/internal/core/domain"

// Extractor turns statement pages into records.
// Implementations are pure: the same pages always yield the same records,
// apart from the ImportedAt timestamp.
type Extractor interface {
	Extract(pages []domain.Page) domain.ExtractResult
}
