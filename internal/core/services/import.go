package services

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
	"github.com/custodia-labs/cdcx/internal/logger"
)

// Ensure ImportService implements the interface.
var _ driving.ImportService = (*ImportService)(nil)

// ImportService reads statements through a page source, extracts records and
// appends them to the record store.
type ImportService struct {
	pages     driven.PageSource
	extractor driven.Extractor
	store     driven.RecordStore
}

// NewImportService creates a new import service.
func NewImportService(pages driven.PageSource, extractor driven.Extractor, store driven.RecordStore) *ImportService {
	return &ImportService{
		pages:     pages,
		extractor: extractor,
		store:     store,
	}
}

// Import extracts records from the statement at path.
// Nothing is stored when the document yields no records or opts.DryRun is set.
func (s *ImportService) Import(ctx context.Context, path string, opts driving.ImportOptions) (*domain.ImportResult, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: path is required", domain.ErrInvalidInput)
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	logger.Section("Import")
	logger.Debug("file: %s (%d bytes), engine: %s", path, info.Size(), s.pages.Name())

	pages, err := s.pages.Pages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	extracted := s.extractor.Extract(pages)
	logger.Debug("pages: %d, lines: %d, blocks: %d, records: %d, rejected: %d",
		extracted.Pages, extracted.Lines, extracted.Blocks, len(extracted.Records), len(extracted.Rejections))
	for _, r := range extracted.Rejections {
		logger.Debug("rejected: %v", r.Cause)
	}

	result := &domain.ImportResult{Path: path, Extract: extracted}
	if extracted.Empty() {
		logger.Warn("no rows detected in %s", path)
		return result, nil
	}
	if opts.DryRun {
		logger.Info("dry run: %d records not stored", len(extracted.Records))
		return result, nil
	}

	for i := range result.Extract.Records {
		if result.Extract.Records[i].ID == "" {
			result.Extract.Records[i].ID = uuid.New().String()
		}
	}

	if err := s.store.AddMany(ctx, result.Extract.Records); err != nil {
		return nil, fmt.Errorf("store records: %w", err)
	}
	result.Stored = len(result.Extract.Records)

	logger.Info("stored %d records from %s", result.Stored, path)
	return result, nil
}
