package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/cdcx/internal/adapters/driving/watch"
	"github.com/custodia-labs/cdcx/internal/core/domain"
	"github.com/custodia-labs/cdcx/internal/report"
)

var (
	watchDryRun   bool
	watchExisting bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [dir]",
	Short: "Import statements dropped into a directory",
	Long: `Watch a directory and import every CDC statement PDF that appears in it.

Files are imported once they stop changing. Imports are throttled by
watch.imports_per_minute. Press Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVar(&watchDryRun, "dry-run", false, "extract without storing")
	watchCmd.Flags().BoolVar(&watchExisting, "existing", false, "also import PDFs already in the directory")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if importService == nil {
		return errNotConfigured("import")
	}

	perMinute := domain.DefaultAppSettings().Watch.ImportsPerMinute
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			perMinute = s.Watch.ImportsPerMinute
		}
	}

	w, err := watch.New(importService, watch.Options{
		ImportsPerMinute: perMinute,
		ImportExisting:   watchExisting,
		DryRun:           watchDryRun,
		OnResult: func(path string, result *domain.ImportResult, err error) {
			switch {
			case err != nil:
				cmd.PrintErrf("%s: %v\n", path, err)
				printInstallHint(cmd, err)
			case result.Extract.Empty():
				cmd.Printf("%s: %s\n", path, emptyDocumentMessage)
			default:
				cmd.Printf("%s: %s rows found, %s stored\n",
					path, report.Count(len(result.Extract.Records)), report.Count(result.Stored))
			}
		},
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Printf("Watching %s (Ctrl+C to stop)\n", args[0])
	if err := w.Run(ctx, args[0]); err != nil {
		return fmt.Errorf("watch failed: %w", err)
	}
	return nil
}
