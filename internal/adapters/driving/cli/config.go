package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cdcx/internal/adapters/driven/pdf"
	"github.com/custodia-labs/cdcx/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change settings",
	Long: `Show or change settings stored in ~/.cdcx/config.toml
(or $CDCX_HOME/config.toml).

Keys:
  storage.backend              sqlite or memory
  storage.data_dir             SQLite directory (empty = ~/.cdcx/data)
  pdf.engine                   native or pdftotext
  extract.mode                 lines or stream
  extract.skip_prefixes        comma-separated extra line prefixes to discard
  extract.strip_name_suffixes  drop FILER / NON-FILER / percentage suffixes from names
  extract.source_tag           provenance tag stamped on records
  report.symbol_width          symbol column width in the text summary
  report.preview_rows          rows previewed after an import
  watch.imports_per_minute     throttle for cdcx watch`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print one setting",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigGet,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting. Flags go before the key; everything after the key is
the value, so negative numbers such as -1 are passed through for validation.`,
	Args: cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

func init() {
	configSetCmd.Flags().SetInterspersed(false)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	cmd.Println("Current Settings")
	cmd.Println("================")

	section := ""
	for _, key := range settingsService.Keys() {
		value, err := settingsService.Lookup(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}

		group, name, _ := strings.Cut(key, ".")
		if group != section {
			section = group
			cmd.Println()
			cmd.Printf("[%s]\n", group)
		}
		if value == "" {
			value = "(not set)"
		}
		cmd.Printf("  %s: %s\n", name, value)
	}

	return printEngines(cmd)
}

// printEngines lists the PDF engines, marking the configured one.
func printEngines(cmd *cobra.Command) error {
	current, err := settingsService.Lookup("pdf.engine")
	if err != nil {
		return fmt.Errorf("failed to read pdf.engine: %w", err)
	}

	cmd.Println()
	cmd.Println("PDF engines:")
	for _, engine := range domain.AllPDFEngines() {
		marker := " "
		if engine.String() == current {
			marker = "*"
		}
		note := ""
		if engine == domain.PDFEnginePDFToText && checkPDFTool() != nil {
			note = " (not installed)"
		}
		cmd.Printf("  %s %-10s %s%s\n", marker, engine, engine.Description(), note)
	}
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	value, err := settingsService.Lookup(args[0])
	if err != nil {
		return err
	}
	cmd.Println(value)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errNotConfigured("settings")
	}

	key, raw := args[0], args[1]
	if err := settingsService.SetValue(key, raw); err != nil {
		return err
	}

	value, err := settingsService.Lookup(key)
	if err != nil {
		return err
	}
	cmd.Printf("%s = %s\n", key, value)

	if key == "pdf.engine" && value == domain.PDFEnginePDFToText.String() {
		if err := checkPDFTool(); err != nil {
			cmd.PrintErrln(pdf.InstallInstructions())
		}
	}
	return nil
}
