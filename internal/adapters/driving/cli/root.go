// Package cli implements the cdcx command tree with cobra.
//
// Commands talk to the core through driving ports only. main wires the
// concrete services in with Execute.
package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/cdcx/internal/adapters/driven/pdf"
	"github.com/custodia-labs/cdcx/internal/core/ports/driving"
	"github.com/custodia-labs/cdcx/internal/logger"
)

// version is set by main from build flags.
var version = "dev"

// Driving ports used by the commands. Nil until Execute wires them.
var (
	importService   driving.ImportService
	recordService   driving.RecordService
	summaryService  driving.SummaryService
	settingsService driving.SettingsService
)

var verbose bool

// isTerminal reports whether stdin is interactive. Replaced in tests.
var isTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

var rootCmd = &cobra.Command{
	Use:   "cdcx",
	Short: "Extract dividend, tax and zakat records from CDC statements",
	Long: `cdcx reads the CDC "Dividend / Zakat and Tax Deduction Report" PDF,
turns every statement row into a typed record, stores the records locally
and reports dividend totals per security symbol.

Get started:
  cdcx import statement.pdf
  cdcx summary --table`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print pipeline diagnostics to stderr")
}

// Services holds the driving ports the commands need.
type Services struct {
	Import   driving.ImportService
	Records  driving.RecordService
	Summary  driving.SummaryService
	Settings driving.SettingsService
}

// Execute wires services into the command tree and runs it.
func Execute(ctx context.Context, v string, s Services) error {
	if v != "" {
		version = v
	}
	importService = s.Import
	recordService = s.Records
	summaryService = s.Summary
	settingsService = s.Settings

	// cmd.Printf writes to stderr unless an output is set.
	rootCmd.SetOut(os.Stdout)
	return rootCmd.ExecuteContext(ctx)
}

// errNotConfigured builds the error returned when a command runs without its service.
func errNotConfigured(name string) error {
	return errors.New(name + " service not configured")
}

// checkPDFTool reports whether pdftotext can be run. Replaced in tests.
var checkPDFTool = pdf.CheckAvailable

// printInstallHint shows how to install pdftotext when err says it is missing.
func printInstallHint(cmd *cobra.Command, err error) {
	if errors.Is(err, pdf.ErrPDFToolNotFound) {
		cmd.PrintErrln(pdf.InstallInstructions())
	}
}
