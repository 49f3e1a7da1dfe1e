package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cdcx/internal/aggregate"
	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
	"github.com/custodia-labs/cdcx/internal/report"
)

// emptyDocumentMessage is printed when a statement yields no rows.
const emptyDocumentMessage = "No rows detected. The PDF layout may differ from the CDC dividend report."

var (
	importDryRun  bool
	importPreview int
)

var importCmd = &cobra.Command{
	Use:   "import [pdf...]",
	Short: "Import CDC dividend statements",
	Long: `Extract dividend records from one or more CDC statement PDFs and append
them to the record store.

Rows that cannot be parsed are skipped and counted; run with --verbose to see
why each one was rejected. Importing the same statement twice stores its
records twice.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "extract and preview without storing")
	importCmd.Flags().IntVar(&importPreview, "preview", -1, "rows to preview per file (default from report.preview_rows)")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	ctx := cmd.Context()
	preview := previewRows(importPreview)
	styles := report.DefaultStyles()
	opts := driving.ImportOptions{DryRun: importDryRun}

	var imported []domain.Record
	for _, path := range args {
		result, err := importService.Import(ctx, path, opts)
		if err != nil {
			printInstallHint(cmd, err)
			return fmt.Errorf("failed to import %s: %w", path, err)
		}

		if result.Extract.Empty() {
			cmd.Printf("%s: %s\n", path, emptyDocumentMessage)
			continue
		}

		found := len(result.Extract.Records)
		cmd.Printf("%s: %s rows found", path, report.Count(found))
		if n := len(result.Extract.Rejections); n > 0 {
			cmd.Printf(", %s skipped", report.Count(n))
		}
		cmd.Println()
		if importDryRun {
			cmd.Println("Dry run: nothing stored.")
		} else {
			cmd.Printf("Stored %s records.\n", report.Count(result.Stored))
		}

		if preview > 0 {
			cmd.Println(styles.Preview(result.Extract.Records, preview))
		}
		imported = append(imported, result.Extract.Records...)
	}

	if len(imported) > 0 {
		cmd.Println()
		cmd.Println(styles.KPIs(aggregate.Summarise(imported).Totals))
	}
	return nil
}

// previewRows resolves the preview flag against settings.
func previewRows(flag int) int {
	if flag >= 0 {
		return flag
	}
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			return s.Report.PreviewRows
		}
	}
	return report.DefaultPreviewRows
}
