// Package mcp serves cdcx over the Model Context Protocol.
//
// Tools:
//
//   - summary: per-symbol gross, tax, zakat and net with symbol and date filters
//   - list_records: stored rows in import order, default limit 50
//   - import_pdf: extract and store a statement, offered only with an import service
//
// Resources are cdcx://summary (the plain-text report), cdcx://records and the
// template cdcx://symbols/{symbol}/records. Amounts are decimal strings with two
// places.
package mcp

import "errors"

var (
	// ErrMissingSummaryService is returned when the summary service is not provided.
	ErrMissingSummaryService = errors.New("mcp: summary service is required")

	// ErrMissingRecordService is returned when the record service is not provided.
	ErrMissingRecordService = errors.New("mcp: record service is required")
)
