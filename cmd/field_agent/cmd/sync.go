package cmd

import (
	"fmt"

	"github.com/SscSPs/solar_backoffice/internal/offline/syncer"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Replay pending mutations now",
	RunE: func(cmd *cobra.Command, _ []string) error {
		app.Refresh(cmd.Context())
		result, err := app.Dispatcher.SyncNow(cmd.Context())
		if err != nil {
			return fmt.Errorf("sync failed: %w", err)
		}
		if jsonOutput {
			return printJSON(result)
		}
		switch result.Status {
		case syncer.PassSkippedOffline:
			color.Yellow("Server unreachable, nothing sent")
		case syncer.PassSkippedBusy:
			fmt.Println("A sync is already running")
		default:
			fmt.Printf("Attempted %d, synced %d, failed %d, waiting %d, discarded %d\n",
				result.Attempted, result.Synced, result.Failed, result.Skipped, result.Evicted)
			if result.Rejected > 0 {
				color.Red("%d mutation(s) rejected by the server, they will be discarded after %d attempts",
					result.Rejected, app.Config.MaxRetries)
			}
		}
		return nil
	},
}
