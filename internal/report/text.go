package report

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// DefaultSymbolWidth is the minimum width symbols are padded to in Text.
const DefaultSymbolWidth = 8

// Text renders the plain-text dividend summary:
//
//	Dividend total: <gross>
//	 - <SYMBOL> <gross>      one line per group
//	                         blank line
//	Total tax deducted: <tax + jh tax>
//	Total zakat deducted: <zakat>
//	Total dividend earned: <net>
//
// A width below 1 uses DefaultSymbolWidth. There is no trailing newline.
func Text(s domain.Summary, width int) string {
	if width < 1 {
		width = DefaultSymbolWidth
	}

	lines := make([]string, 0, len(s.Groups)+5)
	lines = append(lines, "Dividend total: "+Money(s.Totals.Gross))
	for _, g := range s.Groups {
		lines = append(lines, fmt.Sprintf(" - %-*s %s", width, g.Symbol, Money(g.Gross)))
	}
	lines = append(lines,
		"",
		"Total tax deducted: "+Money(s.Totals.TaxDeducted()),
		"Total zakat deducted: "+Money(s.Totals.Zakat),
		"Total dividend earned: "+Money(s.Totals.Net),
	)
	return strings.Join(lines, "\n")
}
