package mcp

import (
	"context"
	"io"

	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
)

// mockSummaryService is a mock implementation of driving.SummaryService.
type mockSummaryService struct {
	summary *domain.Summary
	err     error
	filter  domain.RecordFilter
}

func (m *mockSummaryService) Summarise(_ context.Context, filter domain.RecordFilter) (*domain.Summary, error) {
	m.filter = filter
	return m.summary, m.err
}

// mockRecordService is a mock implementation of driving.RecordService.
type mockRecordService struct {
	records []domain.Record
	err     error
	filter  domain.RecordFilter
}

func (m *mockRecordService) List(_ context.Context, filter domain.RecordFilter) ([]domain.Record, error) {
	m.filter = filter
	return m.records, m.err
}

func (m *mockRecordService) Count(_ context.Context) (int, error) {
	return len(m.records), m.err
}

func (m *mockRecordService) Clear(_ context.Context) error {
	return m.err
}

func (m *mockRecordService) Export(_ context.Context, _ io.Writer, _ domain.RecordFilter) (int, error) {
	return len(m.records), m.err
}

func (m *mockRecordService) Restore(_ context.Context, _ io.Reader) (int, error) {
	return 0, m.err
}

// mockImportService is a mock implementation of driving.ImportService.
type mockImportService struct {
	result *domain.ImportResult
	err    error
	path   string
	opts   driving.ImportOptions
}

func (m *mockImportService) Import(_ context.Context, path string, opts driving.ImportOptions) (*domain.ImportResult, error) {
	m.path = path
	m.opts = opts
	return m.result, m.err
}

func efertRecord() domain.Record {
	return domain.Record{
		ID:           "rec-1",
		PaymentDate:  "20/08/2024",
		IssueDate:    "20/08/2024",
		Symbol:       "EFERT",
		SecurityName: "ENGRO FERTILIZERS LIMITED",
		Securities:   450,
		Gross:        decimal.RequireFromString("1350"),
		Tax:          decimal.RequireFromString("405"),
		JHTax:        decimal.RequireFromString("10.5"),
		Zakat:        decimal.Zero,
		Net:          decimal.RequireFromString("934.5"),
		Source:       domain.DefaultSource,
	}
}

func sampleSummary() *domain.Summary {
	rec := efertRecord()
	var amounts domain.Amounts
	amounts.Add(rec)
	return &domain.Summary{
		Totals: domain.Totals{Amounts: amounts, Count: 1},
		Groups: []domain.SymbolAggregate{{Symbol: "EFERT", Amounts: amounts, Count: 1}},
	}
}

func validPorts() *Ports {
	return &Ports{
		Summary: &mockSummaryService{summary: sampleSummary()},
		Records: &mockRecordService{records: []domain.Record{efertRecord()}},
		Import:  &mockImportService{},
	}
}
