package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/custodia-labs/cdcx/internal/core/domain"
)

// DefaultPreviewRows is the number of records shown by a preview.
const DefaultPreviewRows = 15

const noValue = "-"

var (
	summaryHeaders = []string{"Symbol", "Gross", "Tax", "JH Tax", "Zakat", "Net", "Rows"}
	previewHeaders = []string{"Payment", "Issue", "Symbol", "Securities", "Gross", "Tax", "JH Tax", "Zakat", "Net"}
)

// KPIs renders the headline figures on one line. Empty totals render
// placeholders instead of zeros.
func (s *Styles) KPIs(t domain.Totals) string {
	values := []string{noValue, noValue, noValue, noValue}
	if t.Count > 0 {
		values = []string{Money(t.Gross), Money(t.TaxDeducted()), Money(t.Zakat), Money(t.Net)}
	}

	labels := []string{"Gross", "Tax deducted", "Zakat", "Net"}
	parts := make([]string, len(labels))
	for i, label := range labels {
		parts[i] = s.Label.Render(label+":") + " " + values[i]
	}
	return strings.Join(parts, "   ")
}

// SummaryTable renders one row per symbol group and a totals footer.
func (s *Styles) SummaryTable(sum domain.Summary) string {
	rows := make([][]string, 0, len(sum.Groups)+1)
	for _, g := range sum.Groups {
		rows = append(rows, []string{
			g.Symbol,
			Money(g.Gross), Money(g.Tax), Money(g.JHTax), Money(g.Zakat), Money(g.Net),
			Count(g.Count),
		})
	}
	t := sum.Totals
	rows = append(rows, []string{
		"Total",
		Money(t.Gross), Money(t.Tax), Money(t.JHTax), Money(t.Zakat), Money(t.Net),
		Count(t.Count),
	})
	footer := len(rows) - 1

	return s.newTable(summaryHeaders, rows, func(row, col int) lipgloss.Style {
		switch {
		case row == footer && col == 0:
			return s.Footer.Align(lipgloss.Left)
		case row == footer:
			return s.Footer
		case col == 0:
			return s.Cell
		case col >= 2 && col <= 4:
			return s.Deduction
		case col == 5:
			return s.Net
		default:
			return s.Number
		}
	})
}

// Preview renders the first n records as a table, followed by a count of
// the rows left out. An n below 1 uses DefaultPreviewRows.
func (s *Styles) Preview(records []domain.Record, n int) string {
	if n < 1 {
		n = DefaultPreviewRows
	}
	if len(records) == 0 {
		return s.Label.Render("No rows to preview.")
	}

	shown := records
	if len(shown) > n {
		shown = shown[:n]
	}

	rows := make([][]string, 0, len(shown))
	for _, r := range shown {
		rows = append(rows, []string{
			r.PaymentDate, r.IssueDate, r.Symbol, Count(r.Securities),
			Money(r.Gross), Money(r.Tax), Money(r.JHTax), Money(r.Zakat), Money(r.Net),
		})
	}

	out := s.newTable(previewHeaders, rows, func(_, col int) lipgloss.Style {
		if col <= 2 {
			return s.Cell
		}
		return s.Number
	})

	if rest := len(records) - len(shown); rest > 0 {
		out += "\n" + s.Label.Render(fmt.Sprintf("... and %s more rows", Count(rest)))
	}
	return out
}

func (s *Styles) newTable(headers []string, rows [][]string, style table.StyleFunc) string {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.Border).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.Header
			}
			return style(row, col)
		}).
		String()
}
