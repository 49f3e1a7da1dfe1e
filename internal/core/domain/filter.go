package domain

import "time"

// RecordFilter narrows a record set before listing, exporting or aggregating.
// The zero value matches every record.
type RecordFilter struct {
	// Symbol is a case-insensitive substring matched against Record.Symbol.
	Symbol string

	// From and To bound PaymentDate inclusively. Zero values leave the side open.
	From time.Time
	To   time.Time

	// Limit caps the number of records returned. Zero means no limit.
	Limit int
}

// HasDateBounds reports whether either date bound is set.
func (f RecordFilter) HasDateBounds() bool {
	return !f.From.IsZero() || !f.To.IsZero()
}
