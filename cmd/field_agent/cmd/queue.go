package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var clearAll bool

var queueCmd = &cobra.Command{
	Use:   "queue",
	Short: "Inspect or clear the local queue",
}

var queueListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending mutations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		items, err := app.Store.ListPending(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list queue: %w", err)
		}
		if jsonOutput {
			return printJSON(items)
		}
		if len(items) == 0 {
			fmt.Println("Queue is empty")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tENTITY\tACTION\tQUEUED\tRETRIES\tLAST ATTEMPT\t\n")
		for _, it := range items {
			last := "-"
			if it.LastAttempt != nil {
				last = it.LastAttempt.Local().Format(time.DateTime)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t\n",
				it.ID, it.Entity, it.Action, it.EnqueuedAt.Local().Format(time.DateTime), it.Retries, last)
		}
		return w.Flush()
	},
}

var queueClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove synced mutations, or everything with --all",
	RunE: func(cmd *cobra.Command, _ []string) error {
		if clearAll {
			if err := app.Store.ClearAll(cmd.Context()); err != nil {
				return fmt.Errorf("failed to clear queue: %w", err)
			}
			color.Yellow("All queued mutations removed")
			return nil
		}
		if err := app.Store.ClearSynced(cmd.Context()); err != nil {
			return fmt.Errorf("failed to clear queue: %w", err)
		}
		fmt.Println("Synced mutations removed")
		return nil
	},
}

func init() {
	queueClearCmd.Flags().BoolVar(&clearAll, "all", false, "also drop mutations that were never synced")
	queueCmd.AddCommand(queueListCmd, queueClearCmd)
}
