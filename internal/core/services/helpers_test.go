package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// mockPageSource is a test double for driven.PageSource.
type mockPageSource struct {
	pages []domain.Page
	err   error
	calls int
}

func (m *mockPageSource) Pages(_ context.Context, _ string) ([]domain.Page, error) {
	m.calls++
	return m.pages, m.err
}

func (m *mockPageSource) Name() string { return "mock" }

// failingStore is a driven.RecordStore whose every call fails.
type failingStore struct{}

var errStoreDown = errors.New("store down")

func (failingStore) AddMany(context.Context, []domain.Record) error   { return errStoreDown }
func (failingStore) GetAll(context.Context) ([]domain.Record, error) { return nil, errStoreDown }
func (failingStore) Clear(context.Context) error                      { return errStoreDown }
func (failingStore) Count(context.Context) (int, error)               { return 0, errStoreDown }

func fixedClock() time.Time {
	return time.Date(2024, 9, 1, 10, 0, 0, 0, time.UTC)
}

func statementPages() []domain.Page {
	return []domain.Page{
		{Number: 1, Fragments: []string{
			"Dividend / Zakat and Tax Deduction Report",
			"Payment Date Issue Date Security Symbol Security Name",
			"20/08/2024 20/08/2024 EFERT - ENGRO FERTILIZERS LIMITED 450 1,350.00 405.00 0.00 0.00 945.00",
			"01/07/2024 28/06/2024 HUBC - THE HUB POWER COMPANY LIMITED 1,000 2,500.00 375.00 0.00 0.00 2,125.00",
			"15/05/2024 10/05/2024 EFERT - ENGRO FERTILIZERS LIMITED 300 900.00 270.00 0.00 0.00 630.00",
			"20/04/2024 18/04/2024 PSO - PAKISTAN STATE OIL 100 500.00 75.00 0.00 425.00",
		}},
	}
}

// touchPDF creates an empty file the import service can stat.
func touchPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4"), 0600))
	return path
}
