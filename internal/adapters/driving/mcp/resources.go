package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/report"
)

const (
	// uriScheme is the custom URI scheme for cdcx resources.
	uriScheme = "cdcx://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	// Static resource for the plain-text summary report.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "summary",
		Name:        "summary",
		Description: "Dividend, tax and zakat totals per symbol as a text report",
		MIMEType:    "text/plain",
	}, s.handleSummaryResource)

	// Static resource for every stored record.
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "records",
		Name:        "records",
		Description: "All imported dividend records",
		MIMEType:    "application/json",
	}, s.handleRecordsResource)

	// Template for the records of one symbol.
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "symbols/{symbol}/records",
		Name:        "symbol-records",
		Description: "Imported dividend records for a specific symbol",
		MIMEType:    "application/json",
	}, s.handleSymbolRecordsResource)
}

// handleSummaryResource renders the text summary of every stored record.
func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	summary, err := s.ports.Summary.Summarise(ctx, domain.RecordFilter{})
	if err != nil {
		return nil, fmt.Errorf("summarising records: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     report.Text(*summary, report.DefaultSymbolWidth),
		}},
	}, nil
}

// handleRecordsResource returns every stored record.
func (s *Server) handleRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return s.recordsResource(ctx, req.Params.URI, domain.RecordFilter{})
}

// handleSymbolRecordsResource returns the stored records of one symbol.
func (s *Server) handleSymbolRecordsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	// Extract symbol from URI: cdcx://symbols/{symbol}/records
	symbol := extractSymbol(req.Params.URI)
	if symbol == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	return s.recordsResource(ctx, req.Params.URI, domain.RecordFilter{Symbol: symbol})
}

func (s *Server) recordsResource(
	ctx context.Context,
	uri string,
	filter domain.RecordFilter,
) (*mcp.ReadResourceResult, error) {
	records, err := s.ports.Records.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}

	outputs := make([]RecordOutput, len(records))
	for i := range records {
		outputs[i] = recordOutput(&records[i])
	}

	data, err := json.MarshalIndent(outputs, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling records: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractSymbol extracts the symbol from a URI like cdcx://symbols/{symbol}/records.
func extractSymbol(uri string) string {
	const prefix = uriScheme + "symbols/"
	const suffix = "/records"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	uri = strings.TrimPrefix(uri, prefix)
	if !strings.HasSuffix(uri, suffix) {
		return ""
	}

	symbol, err := url.PathUnescape(strings.TrimSuffix(uri, suffix))
	if err != nil || strings.Contains(symbol, "/") {
		return ""
	}
	return symbol
}
