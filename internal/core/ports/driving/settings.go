package driving

import "github.com/custodia-labs/cdcx/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings

	// Keys returns every supported configuration key in display order.
	Keys() []string

	// Lookup returns the effective value of a key as text.
	Lookup(key string) (string, error)

	// SetValue parses raw for the key's type, validates it and persists it.
	SetValue(key, raw string) error
}
