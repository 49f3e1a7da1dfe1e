package pdf

import (
	"fmt"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
)

// New returns the page source for the given engine.
func New(engine domain.PDFEngine) (driven.PageSource, error) {
	switch engine {
	case domain.PDFEngineNative, "":
		return NewReader(), nil
	case domain.PDFEnginePDFToText:
		return NewPDFToText(), nil
	default:
		return nil, fmt.Errorf("%w: pdf engine %q", domain.ErrUnsupportedType, engine)
	}
}
