package mcp

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
)

// defaultListLimit caps list_records when no limit is given.
const defaultListLimit = 50

// SummaryInput is the input schema for the summary tool.
type SummaryInput struct {
	Symbol string `json:"symbol,omitempty" jsonschema:"case-insensitive symbol substring to filter by"`
	From   string `json:"from,omitempty" jsonschema:"earliest payment date, dd/mm/yyyy"`
	To     string `json:"to,omitempty" jsonschema:"latest payment date, dd/mm/yyyy"`
}

// AmountsOutput holds the five monetary columns as fixed two-decimal strings.
type AmountsOutput struct {
	Gross       string `json:"gross"`
	Tax         string `json:"tax"`
	JHTax       string `json:"jh_tax"`
	Zakat       string `json:"zakat"`
	Net         string `json:"net"`
	TaxDeducted string `json:"tax_deducted"`
}

// GroupOutput is one symbol row of a summary.
type GroupOutput struct {
	Symbol  string        `json:"symbol"`
	Count   int           `json:"count"`
	Amounts AmountsOutput `json:"amounts"`
}

// SummaryOutput is the output schema for the summary tool.
type SummaryOutput struct {
	Count  int           `json:"count"`
	Totals AmountsOutput `json:"totals"`
	Groups []GroupOutput `json:"groups"`
}

// ListRecordsInput is the input schema for the list_records tool.
type ListRecordsInput struct {
	Symbol string `json:"symbol,omitempty" jsonschema:"case-insensitive symbol substring to filter by"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of records to return (default 50)"`
}

// RecordOutput is one stored record.
type RecordOutput struct {
	ID           string        `json:"id"`
	PaymentDate  string        `json:"payment_date"`
	IssueDate    string        `json:"issue_date"`
	Symbol       string        `json:"symbol"`
	SecurityName string        `json:"security_name"`
	Securities   int64         `json:"securities"`
	Amounts      AmountsOutput `json:"amounts"`
}

// ListRecordsOutput is the output schema for the list_records tool.
type ListRecordsOutput struct {
	Records []RecordOutput `json:"records"`
	Count   int            `json:"count"`
}

// ImportInput is the input schema for the import_pdf tool.
type ImportInput struct {
	Path   string `json:"path" jsonschema:"absolute path of the CDC statement PDF"`
	DryRun bool   `json:"dry_run,omitempty" jsonschema:"extract without storing"`
}

// ImportOutput is the output schema for the import_pdf tool.
type ImportOutput struct {
	Found    int      `json:"found"`
	Stored   int      `json:"stored"`
	Rejected int      `json:"rejected"`
	Empty    bool     `json:"empty"`
	Symbols  []string `json:"symbols,omitempty"`
	Message  string   `json:"message"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summary",
		Description: "Total dividend, tax and zakat per security symbol across imported CDC statements",
	}, s.handleSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_records",
		Description: "List imported dividend records in import order",
	}, s.handleListRecords)

	if s.ports.Import != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "import_pdf",
			Description: "Extract dividend records from a CDC statement PDF and store them",
		}, s.handleImport)
	}
}

// handleSummary handles the summary tool invocation.
func (s *Server) handleSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SummaryInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	filter := domain.RecordFilter{Symbol: input.Symbol}
	var err error
	if filter.From, err = parseOptionalDate(input.From); err != nil {
		return nil, SummaryOutput{}, err
	}
	if filter.To, err = parseOptionalDate(input.To); err != nil {
		return nil, SummaryOutput{}, err
	}

	summary, err := s.ports.Summary.Summarise(ctx, filter)
	if err != nil {
		return nil, SummaryOutput{}, err
	}

	output := SummaryOutput{
		Count:  summary.Totals.Count,
		Totals: amountsOutput(summary.Totals.Amounts),
		Groups: make([]GroupOutput, len(summary.Groups)),
	}
	for i, g := range summary.Groups {
		output.Groups[i] = GroupOutput{
			Symbol:  g.Symbol,
			Count:   g.Count,
			Amounts: amountsOutput(g.Amounts),
		}
	}

	return nil, output, nil
}

// handleListRecords handles the list_records tool invocation.
func (s *Server) handleListRecords(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListRecordsInput,
) (*mcp.CallToolResult, ListRecordsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	records, err := s.ports.Records.List(ctx, domain.RecordFilter{Symbol: input.Symbol, Limit: limit})
	if err != nil {
		return nil, ListRecordsOutput{}, err
	}

	output := ListRecordsOutput{
		Records: make([]RecordOutput, len(records)),
		Count:   len(records),
	}
	for i := range records {
		output.Records[i] = recordOutput(&records[i])
	}

	return nil, output, nil
}

// handleImport handles the import_pdf tool invocation.
func (s *Server) handleImport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ImportInput,
) (*mcp.CallToolResult, ImportOutput, error) {
	if strings.TrimSpace(input.Path) == "" {
		return nil, ImportOutput{}, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	result, err := s.ports.Import.Import(ctx, input.Path, driving.ImportOptions{DryRun: input.DryRun})
	if err != nil {
		return nil, ImportOutput{}, err
	}

	output := ImportOutput{
		Found:    len(result.Extract.Records),
		Stored:   result.Stored,
		Rejected: len(result.Extract.Rejections),
		Empty:    result.Extract.Empty(),
	}

	seen := make(map[string]bool)
	for _, r := range result.Extract.Records {
		if !seen[r.Symbol] {
			seen[r.Symbol] = true
			output.Symbols = append(output.Symbols, r.Symbol)
		}
	}

	switch {
	case output.Empty:
		output.Message = "No rows detected. The PDF layout may differ from the CDC dividend report."
	case input.DryRun:
		output.Message = fmt.Sprintf("Found %d records (dry run, nothing stored)", output.Found)
	default:
		output.Message = fmt.Sprintf("Imported %d records", output.Stored)
	}

	return nil, output, nil
}

// parseOptionalDate parses a dd/mm/yyyy bound. Empty leaves the bound open.
func parseOptionalDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	return domain.ParseReportDate(s)
}

func amountsOutput(a domain.Amounts) AmountsOutput {
	return AmountsOutput{
		Gross:       a.Gross.StringFixed(2),
		Tax:         a.Tax.StringFixed(2),
		JHTax:       a.JHTax.StringFixed(2),
		Zakat:       a.Zakat.StringFixed(2),
		Net:         a.Net.StringFixed(2),
		TaxDeducted: a.TaxDeducted().StringFixed(2),
	}
}

func recordOutput(r *domain.Record) RecordOutput {
	return RecordOutput{
		ID:           r.ID,
		PaymentDate:  r.PaymentDate,
		IssueDate:    r.IssueDate,
		Symbol:       r.Symbol,
		SecurityName: r.SecurityName,
		Securities:   r.Securities,
		Amounts: amountsOutput(domain.Amounts{
			Gross: r.Gross, Tax: r.Tax, JHTax: r.JHTax, Zakat: r.Zakat, Net: r.Net,
		}),
	}
}
