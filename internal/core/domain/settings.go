package domain

const unknownDescription = "Unknown"

// StorageBackend selects where imported records are kept.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists records in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps records for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// PDFEngine selects how page text is pulled out of a statement.
type PDFEngine string

// Available PDF engines.
const (
	// PDFEngineNative reads page text in-process, one fragment per visual row.
	PDFEngineNative PDFEngine = "native"

	// PDFEnginePDFToText shells out to poppler's pdftotext in layout mode.
	PDFEnginePDFToText PDFEngine = "pdftotext"
)

// IsValid returns true if the engine is recognised.
func (e PDFEngine) IsValid() bool {
	switch e {
	case PDFEngineNative, PDFEnginePDFToText:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (e PDFEngine) String() string {
	return string(e)
}

// Description returns a human-readable description of the engine.
func (e PDFEngine) Description() string {
	switch e {
	case PDFEngineNative:
		return "Native (built-in PDF reader)"
	case PDFEnginePDFToText:
		return "pdftotext (poppler-utils)"
	default:
		return unknownDescription
	}
}

// SegmentMode selects how normalised text is split into row blocks.
type SegmentMode string

// Available segmentation modes.
const (
	// SegmentLines treats each visual line separately and applies discard rules.
	SegmentLines SegmentMode = "lines"

	// SegmentStream flattens each page to one string and splits at two-date markers.
	SegmentStream SegmentMode = "stream"
)

// IsValid returns true if the mode is recognised.
func (m SegmentMode) IsValid() bool {
	switch m {
	case SegmentLines, SegmentStream:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (m SegmentMode) String() string {
	return string(m)
}

// StorageSettings configures record persistence.
type StorageSettings struct {
	Backend StorageBackend

	// DataDir is the SQLite directory. Empty means ~/.cdcx/data.
	DataDir string
}

// PDFSettings configures page text extraction.
type PDFSettings struct {
	Engine PDFEngine
}

// ExtractSettings configures the extraction pipeline.
type ExtractSettings struct {
	Mode SegmentMode

	// SkipPrefixes are appended to the built-in discard prefixes.
	SkipPrefixes []string

	// StripNameSuffixes enables the filer-status suffix cut on security names.
	StripNameSuffixes bool

	// SourceTag is stamped on every extracted record.
	SourceTag string
}

// ReportSettings configures text output.
type ReportSettings struct {
	// SymbolWidth is the right-pad width of symbols in the text summary.
	SymbolWidth int

	// PreviewRows is the number of rows shown after an import.
	PreviewRows int
}

// WatchSettings configures inbox watching.
type WatchSettings struct {
	// ImportsPerMinute throttles imports triggered by file events.
	ImportsPerMinute int
}

// AppSettings contains all user-configurable settings.
type AppSettings struct {
	Storage StorageSettings
	PDF     PDFSettings
	Extract ExtractSettings
	Report  ReportSettings
	Watch   WatchSettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		PDF: PDFSettings{
			Engine: PDFEngineNative,
		},
		Extract: ExtractSettings{
			Mode:      SegmentLines,
			SourceTag: DefaultSource,
		},
		Report: ReportSettings{
			SymbolWidth: 8,
			PreviewRows: 15,
		},
		Watch: WatchSettings{
			ImportsPerMinute: 30,
		},
	}
}

// AllPDFEngines returns all available PDF engines.
func AllPDFEngines() []PDFEngine {
	return []PDFEngine{
		PDFEngineNative,
		PDFEnginePDFToText,
	}
}
