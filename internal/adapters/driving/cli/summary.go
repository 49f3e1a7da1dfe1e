package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/report"
)

var (
	summarySymbol string
	summaryFrom   string
	summaryTo     string
	summaryTable  bool
	summaryJSON   bool
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show dividend totals per symbol",
	Long: `Aggregate stored records by security symbol, largest gross dividend first.

The default output is a plain-text report:

  Dividend total: 3,850.00
   - HUBC     2,500.00
   - EFERT    1,350.00

  Total tax deducted: 780.00
  Total zakat deducted: 0.00
  Total dividend earned: 3,070.00

Dates are dd/mm/yyyy and bound the payment date inclusively.`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	summaryCmd.Flags().StringVarP(&summarySymbol, "symbol", "s", "", "only symbols containing this text")
	summaryCmd.Flags().StringVar(&summaryFrom, "from", "", "earliest payment date (dd/mm/yyyy)")
	summaryCmd.Flags().StringVar(&summaryTo, "to", "", "latest payment date (dd/mm/yyyy)")
	summaryCmd.Flags().BoolVar(&summaryTable, "table", false, "render a table with every deduction column")
	summaryCmd.Flags().BoolVar(&summaryJSON, "json", false, "output the summary as JSON")
	rootCmd.AddCommand(summaryCmd)
}

func runSummary(cmd *cobra.Command, _ []string) error {
	if summaryService == nil {
		return errNotConfigured("summary")
	}

	filter := domain.RecordFilter{Symbol: summarySymbol}
	var err error
	if filter.From, err = parseDateFlag("from", summaryFrom); err != nil {
		return err
	}
	if filter.To, err = parseDateFlag("to", summaryTo); err != nil {
		return err
	}

	summary, err := summaryService.Summarise(cmd.Context(), filter)
	if err != nil {
		return fmt.Errorf("failed to summarise records: %w", err)
	}

	switch {
	case summaryJSON:
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		cmd.Println(string(data))
	case summaryTable:
		styles := report.DefaultStyles()
		cmd.Println(styles.KPIs(summary.Totals))
		cmd.Println(styles.SummaryTable(*summary))
	default:
		cmd.Println(report.Text(*summary, symbolWidth()))
	}
	return nil
}

// parseDateFlag parses a dd/mm/yyyy flag value. Empty leaves the bound open.
func parseDateFlag(name, value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := domain.ParseReportDate(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s: %w", name, err)
	}
	return t, nil
}

// symbolWidth returns the configured symbol width for the text report.
func symbolWidth() int {
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s.Report.SymbolWidth
		}
	}
	return report.DefaultSymbolWidth
}
