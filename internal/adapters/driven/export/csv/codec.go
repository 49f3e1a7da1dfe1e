// Package csv encodes records as CSV for export and decodes them for restore.
package csv

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driven"
)

// Ensure Codec implements the interface.
var _ driven.RecordCodec = (*Codec)(nil)

// TimestampLayout is RFC 3339 with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// row is the CSV shape of a record. Field order is column order.
type row struct {
	PaymentDate  string `csv:"paymentDate"`
	IssueDate    string `csv:"issueDate"`
	Symbol       string `csv:"symbol"`
	SecurityName string `csv:"secName"`
	Securities   string `csv:"securities"`
	Gross        string `csv:"gross"`
	Tax          string `csv:"tax"`
	JHTax        string `csv:"jhTax"`
	Zakat        string `csv:"zakat"`
	Net          string `csv:"net"`
	Source       string `csv:"source"`
	ImportedAt   string `csv:"importedAt"`
}

// Codec is the CSV record codec.
type Codec struct{}

// New creates a CSV codec.
func New() *Codec {
	return &Codec{}
}

// Encode writes the header and one row per record.
func (c *Codec) Encode(w io.Writer, records []domain.Record) error {
	rows := make([]*row, 0, len(records))
	for i := range records {
		rows = append(rows, toRow(&records[i]))
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("encode csv: %w", err)
	}
	return nil
}

// Decode reads rows written by Encode. Each record gets a fresh ID.
func (c *Codec) Decode(r io.Reader) ([]domain.Record, error) {
	var rows []*row
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, fmt.Errorf("%w: decode csv: %v", domain.ErrInvalidInput, err)
	}

	records := make([]domain.Record, 0, len(rows))
	for i, rw := range rows {
		rec, err := fromRow(rw)
		if err != nil {
			// Header is line 1.
			return nil, fmt.Errorf("%w: csv line %d: %v", domain.ErrInvalidInput, i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func toRow(r *domain.Record) *row {
	return &row{
		PaymentDate:  r.PaymentDate,
		IssueDate:    r.IssueDate,
		Symbol:       r.Symbol,
		SecurityName: r.SecurityName,
		Securities:   strconv.FormatInt(r.Securities, 10),
		Gross:        r.Gross.String(),
		Tax:          r.Tax.String(),
		JHTax:        r.JHTax.String(),
		Zakat:        r.Zakat.String(),
		Net:          r.Net.String(),
		Source:       r.Source,
		ImportedAt:   r.ImportedAt.UTC().Format(TimestampLayout),
	}
}

func fromRow(rw *row) (domain.Record, error) {
	securities, err := strconv.ParseInt(rw.Securities, 10, 64)
	if err != nil {
		return domain.Record{}, fmt.Errorf("securities %q: %w", rw.Securities, err)
	}

	var amounts [5]decimal.Decimal
	for i, raw := range []string{rw.Gross, rw.Tax, rw.JHTax, rw.Zakat, rw.Net} {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Record{}, fmt.Errorf("amount %q: %w", raw, err)
		}
		amounts[i] = d
	}

	var importedAt time.Time
	if rw.ImportedAt != "" {
		importedAt, err = time.Parse(time.RFC3339Nano, rw.ImportedAt)
		if err != nil {
			return domain.Record{}, fmt.Errorf("importedAt %q: %w", rw.ImportedAt, err)
		}
	}

	return domain.Record{
		ID:           uuid.NewString(),
		PaymentDate:  rw.PaymentDate,
		IssueDate:    rw.IssueDate,
		Symbol:       rw.Symbol,
		SecurityName: rw.SecurityName,
		Securities:   securities,
		Gross:        amounts[0],
		Tax:          amounts[1],
		JHTax:        amounts[2],
		Zakat:        amounts[3],
		Net:          amounts[4],
		Source:       rw.Source,
		ImportedAt:   importedAt.UTC(),
	}, nil
}
