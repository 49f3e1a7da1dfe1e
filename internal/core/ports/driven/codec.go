package driven

import (
	"io"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// RecordCodec writes and reads records in an interchange format.
type RecordCodec interface {
	// Encode writes a header followed by one row per record.
	Encode(w io.Writer, records []domain.Record) error

	// Decode reads records previously written by Encode.
	Decode(r io.Reader) ([]domain.Record, error)
}
