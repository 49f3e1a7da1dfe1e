package mcp

import (
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Summary aggregates stored records.
	Summary driving.SummaryService

	// Records lists stored records.
	Records driving.RecordService

	// Import reads new statements. When nil the import_pdf tool is not offered.
	Import driving.ImportService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Summary == nil {
		return ErrMissingSummaryService
	}
	if p.Records == nil {
		return ErrMissingRecordService
	}
	return nil
}
