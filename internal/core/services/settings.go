package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend    = "storage.backend"
	keyStorageDataDir    = "storage.data_dir"
	keyPDFEngine         = "pdf.engine"
	keyExtractMode       = "extract.mode"
	keySkipPrefixes      = "extract.skip_prefixes"
	keyStripNameSuffixes = "extract.strip_name_suffixes"
	keySourceTag         = "extract.source_tag"
	keySymbolWidth       = "report.symbol_width"
	keyPreviewRows       = "report.preview_rows"
	keyImportsPerMinute  = "watch.imports_per_minute"
)

// settingKeys lists every key in display order.
var settingKeys = []string{
	keyStorageBackend,
	keyStorageDataDir,
	keyPDFEngine,
	keyExtractMode,
	keySkipPrefixes,
	keyStripNameSuffixes,
	keySourceTag,
	keySymbolWidth,
	keyPreviewRows,
	keyImportsPerMinute,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Missing or invalid stored values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir), // Empty means ~/.cdcx/data
		},
		PDF: domain.PDFSettings{
			Engine: s.getEngine(defaults.PDF.Engine),
		},
		Extract: domain.ExtractSettings{
			Mode:              s.getMode(defaults.Extract.Mode),
			SkipPrefixes:      s.configStore.GetStringSlice(keySkipPrefixes),
			StripNameSuffixes: s.getBool(keyStripNameSuffixes, defaults.Extract.StripNameSuffixes),
			SourceTag:         s.getString(keySourceTag, defaults.Extract.SourceTag),
		},
		Report: domain.ReportSettings{
			SymbolWidth: s.getPositiveInt(keySymbolWidth, defaults.Report.SymbolWidth),
			PreviewRows: s.getNonNegativeInt(keyPreviewRows, defaults.Report.PreviewRows),
		},
		Watch: domain.WatchSettings{
			ImportsPerMinute: s.getPositiveInt(keyImportsPerMinute, defaults.Watch.ImportsPerMinute),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: settings are required", domain.ErrInvalidInput)
	}

	values := map[string]any{
		keyStorageBackend:    settings.Storage.Backend.String(),
		keyStorageDataDir:    settings.Storage.DataDir,
		keyPDFEngine:         settings.PDF.Engine.String(),
		keyExtractMode:       settings.Extract.Mode.String(),
		keySkipPrefixes:      settings.Extract.SkipPrefixes,
		keyStripNameSuffixes: settings.Extract.StripNameSuffixes,
		keySourceTag:         settings.Extract.SourceTag,
		keySymbolWidth:       settings.Report.SymbolWidth,
		keyPreviewRows:       settings.Report.PreviewRows,
		keyImportsPerMinute:  settings.Watch.ImportsPerMinute,
	}
	for _, key := range settingKeys {
		if err := s.configStore.Set(key, values[key]); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Keys returns every supported key in display order.
func (s *SettingsService) Keys() []string {
	keys := make([]string, len(settingKeys))
	copy(keys, settingKeys)
	return keys
}

// Lookup returns the effective value of key as text.
func (s *SettingsService) Lookup(key string) (string, error) {
	settings, err := s.Get()
	if err != nil {
		return "", err
	}

	switch key {
	case keyStorageBackend:
		return settings.Storage.Backend.String(), nil
	case keyStorageDataDir:
		return settings.Storage.DataDir, nil
	case keyPDFEngine:
		return settings.PDF.Engine.String(), nil
	case keyExtractMode:
		return settings.Extract.Mode.String(), nil
	case keySkipPrefixes:
		return strings.Join(settings.Extract.SkipPrefixes, ","), nil
	case keyStripNameSuffixes:
		return strconv.FormatBool(settings.Extract.StripNameSuffixes), nil
	case keySourceTag:
		return settings.Extract.SourceTag, nil
	case keySymbolWidth:
		return strconv.Itoa(settings.Report.SymbolWidth), nil
	case keyPreviewRows:
		return strconv.Itoa(settings.Report.PreviewRows), nil
	case keyImportsPerMinute:
		return strconv.Itoa(settings.Watch.ImportsPerMinute), nil
	default:
		return "", fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

// SetValue parses raw for the key's type, validates it and persists it.
func (s *SettingsService) SetValue(key, raw string) error {
	value, err := parseSetting(key, strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	return s.configStore.Set(key, value)
}

func parseSetting(key, raw string) (any, error) {
	switch key {
	case keyStorageBackend:
		if !domain.StorageBackend(raw).IsValid() {
			return nil, invalidValue(key, raw, "sqlite or memory")
		}
		return raw, nil
	case keyPDFEngine:
		if !domain.PDFEngine(raw).IsValid() {
			return nil, invalidValue(key, raw, "one of "+engineNames())
		}
		return raw, nil
	case keyExtractMode:
		if !domain.SegmentMode(raw).IsValid() {
			return nil, invalidValue(key, raw, "lines or stream")
		}
		return raw, nil
	case keyStorageDataDir:
		return raw, nil
	case keySourceTag:
		if raw == "" {
			return nil, invalidValue(key, raw, "a non-empty tag")
		}
		return raw, nil
	case keySkipPrefixes:
		return splitList(raw), nil
	case keyStripNameSuffixes:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, invalidValue(key, raw, "true or false")
		}
		return b, nil
	case keySymbolWidth, keyImportsPerMinute:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, invalidValue(key, raw, "a positive integer")
		}
		return n, nil
	case keyPreviewRows:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return nil, invalidValue(key, raw, "zero or a positive integer")
		}
		return n, nil
	default:
		return nil, fmt.Errorf("%w: unknown setting %q", domain.ErrNotFound, key)
	}
}

func engineNames() string {
	engines := domain.AllPDFEngines()
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.String()
	}
	return strings.Join(names, ", ")
}

func invalidValue(key, raw, want string) error {
	return fmt.Errorf("%w: %s must be %s, got %q", domain.ErrInvalidInput, key, want, raw)
}

// splitList splits a comma-separated value, keeping inner spaces so that
// prefixes such as "Page " survive.
func splitList(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper methods for reading config values with defaults

func (s *SettingsService) getString(key, defaultVal string) string {
	if val := s.configStore.GetString(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, ok := s.configStore.Get(key); ok {
		return s.configStore.GetBool(key)
	}
	return defaultVal
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	if val := s.configStore.GetInt(key); val > 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getNonNegativeInt(key string, defaultVal int) int {
	if _, ok := s.configStore.Get(key); !ok {
		return defaultVal
	}
	if val := s.configStore.GetInt(key); val >= 0 {
		return val
	}
	return defaultVal
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	if b := domain.StorageBackend(s.configStore.GetString(keyStorageBackend)); b.IsValid() {
		return b
	}
	return defaultVal
}

func (s *SettingsService) getEngine(defaultVal domain.PDFEngine) domain.PDFEngine {
	if e := domain.PDFEngine(s.configStore.GetString(keyPDFEngine)); e.IsValid() {
		return e
	}
	return defaultVal
}

func (s *SettingsService) getMode(defaultVal domain.SegmentMode) domain.SegmentMode {
	if m := domain.SegmentMode(s.configStore.GetString(keyExtractMode)); m.IsValid() {
		return m
	}
	return defaultVal
}
