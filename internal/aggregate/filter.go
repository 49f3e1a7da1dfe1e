package aggregate

import (
	"strings"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// Filter returns the records matching f, preserving order.
//
// Symbol matching is a case-insensitive substring test. When a date bound is
// set, records whose payment date does not parse are excluded.
func Filter(records []domain.Record, f domain.RecordFilter) []domain.Record {
	needle := strings.ToUpper(strings.TrimSpace(f.Symbol))

	out := make([]domain.Record, 0, len(records))
	for _, r := range records {
		if f.Limit > 0 && len(out) >= f.Limit {
			break
		}
		if needle != "" && !strings.Contains(strings.ToUpper(r.Symbol), needle) {
			continue
		}
		if f.HasDateBounds() && !withinDates(r, f) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func withinDates(r domain.Record, f domain.RecordFilter) bool {
	paid, err := r.ParsedPaymentDate()
	if err != nil {
		return false
	}
	if !f.From.IsZero() && paid.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && paid.After(f.To) {
		return false
	}
	return true
}
