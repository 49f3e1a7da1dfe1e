// Command cdcx turns CDC dividend statement PDFs into stored records and
// dividend, tax and zakat summaries.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/custodia-labs/cdcx/internal/adapters/driven/config/file"
	"github.com/custodia-labs/cdcx/internal/adapters/driven/export/csv"
	"github.com/custodia-labs/cdcx/internal/adapters/driven/pdf"
	"github.com/custodia-labs/cdcx/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/cdcx/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/cdcx/internal/adapters/driving/cli"
	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
	"github.com/custodia-labs/cdcx/internal/core/services"
	"github.com/custodia-labs/cdcx/internal/extract"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// homeEnv overrides the ~/.cdcx directory.
const homeEnv = "CDCX_HOME"

func main() {
	if err := run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	home := os.Getenv(homeEnv)

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	store, closeStore, err := openRecordStore(settings.Storage, home)
	if err != nil {
		return err
	}
	defer closeStore()

	pages, err := pdf.New(settings.PDF.Engine)
	if err != nil {
		return fmt.Errorf("failed to create pdf reader: %w", err)
	}

	extractor := extract.New(extract.Options{
		Mode:              settings.Extract.Mode,
		SkipPrefixes:      settings.Extract.SkipPrefixes,
		StripNameSuffixes: settings.Extract.StripNameSuffixes,
		Source:            settings.Extract.SourceTag,
	})

	return cli.Execute(ctx, version, cli.Services{
		Import:   services.NewImportService(pages, extractor, store),
		Records:  services.NewRecordService(store, csv.New()),
		Summary:  services.NewSummaryService(store),
		Settings: settingsService,
	})
}

// openRecordStore opens the configured backend. The returned func releases it.
func openRecordStore(cfg domain.StorageSettings, home string) (driven.RecordStore, func(), error) {
	if cfg.Backend == domain.StorageMemory {
		return memory.NewRecordStore(), func() {}, nil
	}

	dataDir := cfg.DataDir
	if dataDir == "" && home != "" {
		dataDir = filepath.Join(home, "data")
	}

	store, err := sqlite.NewStore(dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open record store: %w", err)
	}
	return store.RecordStore(), func() { _ = store.Close() }, nil
}
