package cli

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/report"
)

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "Manage stored records",
	Long:  `List, export, restore or clear the dividend records imported so far.`,
}

var recordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored records",
	Args:  cobra.NoArgs,
	RunE:  runRecordsList,
}

var recordsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every stored record",
	Long: `Delete every stored record. Asks for confirmation on a terminal;
use --yes in scripts.`,
	Args: cobra.NoArgs,
	RunE: runRecordsClear,
}

var recordsExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export records as CSV",
	Long: `Write stored records as CSV with the columns
paymentDate, issueDate, symbol, secName, securities, gross, tax, jhTax, zakat,
net, source, importedAt. Without a file, or with "-", the CSV goes to stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecordsExport,
}

var recordsRestoreCmd = &cobra.Command{
	Use:   "restore [csv]",
	Short: "Append records from a CSV export",
	Args:  cobra.ExactArgs(1),
	RunE:  runRecordsRestore,
}

var (
	recordsSymbol string
	recordsLimit  int
	recordsJSON   bool
	recordsYes    bool
)

func init() {
	recordsListCmd.Flags().StringVarP(&recordsSymbol, "symbol", "s", "", "only symbols containing this text")
	recordsListCmd.Flags().IntVarP(&recordsLimit, "limit", "n", 0, "maximum number of records (0 = all)")
	recordsListCmd.Flags().BoolVar(&recordsJSON, "json", false, "output records as JSON")
	recordsExportCmd.Flags().StringVarP(&recordsSymbol, "symbol", "s", "", "only symbols containing this text")
	recordsClearCmd.Flags().BoolVarP(&recordsYes, "yes", "y", false, "skip the confirmation prompt")

	recordsCmd.AddCommand(recordsListCmd)
	recordsCmd.AddCommand(recordsClearCmd)
	recordsCmd.AddCommand(recordsExportCmd)
	recordsCmd.AddCommand(recordsRestoreCmd)
	rootCmd.AddCommand(recordsCmd)
}

func runRecordsList(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errNotConfigured("record")
	}

	records, err := recordService.List(cmd.Context(), domain.RecordFilter{Symbol: recordsSymbol, Limit: recordsLimit})
	if err != nil {
		return fmt.Errorf("failed to list records: %w", err)
	}

	if recordsJSON {
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal records: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(records) == 0 {
		cmd.Println("No records stored.")
		return nil
	}

	cmd.Println(report.DefaultStyles().Preview(records, len(records)))
	cmd.Printf("Total: %s records\n", report.Count(len(records)))
	return nil
}

func runRecordsClear(cmd *cobra.Command, _ []string) error {
	if recordService == nil {
		return errNotConfigured("record")
	}

	ctx := cmd.Context()
	count, err := recordService.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count records: %w", err)
	}
	if count == 0 {
		cmd.Println("No records stored.")
		return nil
	}

	if !recordsYes {
		if !isTerminal() {
			return errors.New("refusing to clear records without --yes on a non-interactive input")
		}
		cmd.Printf("Delete all %s records? [y/N]: ", report.Count(count))
		answer, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			cmd.Println("Cancelled.")
			return nil
		}
	}

	if err := recordService.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	cmd.Printf("Deleted %s records.\n", report.Count(count))
	return nil
}

func runRecordsExport(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errNotConfigured("record")
	}

	filter := domain.RecordFilter{Symbol: recordsSymbol}
	if len(args) == 0 || args[0] == "-" {
		_, err := recordService.Export(cmd.Context(), cmd.OutOrStdout(), filter)
		if err != nil {
			return fmt.Errorf("failed to export records: %w", err)
		}
		return nil
	}

	path := args[0]
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	n, err := recordService.Export(cmd.Context(), f, filter)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}

	cmd.Printf("Exported %s records to %s\n", report.Count(n), path)
	return nil
}

func runRecordsRestore(cmd *cobra.Command, args []string) error {
	if recordService == nil {
		return errNotConfigured("record")
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	n, err := recordService.Restore(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("failed to restore %s: %w", path, err)
	}

	cmd.Printf("Restored %s records from %s\n", report.Count(n), path)
	return nil
}
