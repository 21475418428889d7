package cmd

import (
	"fmt"

	"github.com/SscSPs/solar_backoffice/internal/offline/queue"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show connectivity and queue depth",
	RunE: func(cmd *cobra.Command, _ []string) error {
		online := app.Refresh(cmd.Context())
		state, err := app.Dispatcher.State(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read queue: %w", err)
		}
		degraded, err := app.Degraded(cmd.Context())
		if err != nil {
			return err
		}

		if jsonOutput {
			return printJSON(map[string]any{
				"online":   online,
				"degraded": degraded,
				"queue":    state,
			})
		}

		if online {
			color.Green("Online (%s)", cfg.ServerURL)
		} else {
			color.Yellow("Offline (%s)", cfg.ServerURL)
		}
		if degraded {
			color.Red("Local storage unavailable, offline changes are kept in memory only")
		}
		fmt.Printf("Pending: %d\n", state.TotalPending)
		for _, e := range queue.AllEntities() {
			if n := state.ByEntity[e]; n > 0 {
				fmt.Printf("  %-12s %d\n", e, n)
			}
		}
		return nil
	},
}
