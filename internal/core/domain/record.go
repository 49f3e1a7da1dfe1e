package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultSource is the provenance tag stamped on records extracted from a statement.
const DefaultSource = "CDC PDF"

// ReportDateLayout is the dd/mm/yyyy layout used by the statement date columns.
const ReportDateLayout = "02/01/2006"

// Record is one dividend payment row of a CDC statement.
// Dates are kept verbatim as printed; amounts are signed.
type Record struct {
	// ID is assigned when the record is persisted.
	ID string `json:"id,omitempty"`

	// PaymentDate is the first date column (dd/mm/yyyy).
	PaymentDate string `json:"paymentDate"`

	// IssueDate is the second date column (dd/mm/yyyy).
	IssueDate string `json:"issueDate"`

	// Symbol is the upper-cased security symbol, never empty.
	Symbol string `json:"symbol"`

	// SecurityName is the free text name following the symbol. May be empty.
	SecurityName string `json:"secName"`

	// Securities is the number of securities held.
	Securities int64 `json:"securities"`

	Gross decimal.Decimal `json:"gross"`
	Tax   decimal.Decimal `json:"tax"`
	JHTax decimal.Decimal `json:"jhTax"`
	Zakat decimal.Decimal `json:"zakat"`
	Net   decimal.Decimal `json:"net"`

	// Source is the provenance tag, normally DefaultSource.
	Source string `json:"source"`

	// ImportedAt is when the record was extracted.
	ImportedAt time.Time `json:"importedAt"`
}

// ParsedPaymentDate parses PaymentDate.
func (r Record) ParsedPaymentDate() (time.Time, error) {
	return ParseReportDate(r.PaymentDate)
}

// ParseReportDate parses a dd/mm/yyyy statement date.
func ParseReportDate(s string) (time.Time, error) {
	t, err := time.Parse(ReportDateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: date %q is not dd/mm/yyyy", ErrInvalidInput, s)
	}
	return t, nil
}

// Page is the ordered text of one statement page.
// Fragments are visual lines or text runs in reading order.
type Page struct {
	Number    int
	Fragments []string
}

// Rejection records a block that could not be parsed into a Record.
type Rejection struct {
	// Block is the joined block text.
	Block string

	// Cause is one of ErrMalformedHead, ErrMissingTail or ErrNoSymbol.
	Cause error
}

// ExtractResult is the outcome of running the extraction pipeline on one document.
type ExtractResult struct {
	Records    []Record
	Rejections []Rejection
	Pages      int
	Lines      int
	Blocks     int
}

// Empty reports whether the document produced no records at all.
func (r *ExtractResult) Empty() bool {
	return len(r.Records) == 0
}

// ImportResult is the outcome of importing one statement file.
type ImportResult struct {
	Path    string
	Extract ExtractResult

	// Stored is the number of records persisted. Zero for dry runs and empty documents.
	Stored int
}
