package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/SscSPs/solar_backoffice/internal/dto"
	"github.com/SscSPs/solar_backoffice/internal/utils/accounting"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var journalCmd = &cobra.Command{
	Use:         "journal",
	Short:       "Journal entry helpers",
	Annotations: map[string]string{"standalone": "true"},
}

var journalCheckCmd = &cobra.Command{
	Use:         "check FILE",
	Short:       "Check that a journal entry JSON file balances before submitting it",
	Args:        cobra.ExactArgs(1),
	Annotations: map[string]string{"standalone": "true"},
	RunE: func(_ *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var req dto.CreateJournalEntryRequest
		if err := json.Unmarshal(raw, &req); err != nil {
			return fmt.Errorf("invalid journal entry file: %w", err)
		}

		totals, err := accounting.ValidateBalanced(req.ToLedgerLines())
		if jsonOutput {
			out := map[string]any{"debit": totals.Debit, "credit": totals.Credit, "balanced": err == nil}
			if err != nil {
				out["error"] = err.Error()
			}
			if perr := printJSON(out); perr != nil {
				return perr
			}
			return err
		}
		if err != nil {
			return err
		}
		color.Green("Balanced: debit %s, credit %s", totals.Debit.StringFixed(2), totals.Credit.StringFixed(2))
		return nil
	},
}

func init() {
	journalCmd.AddCommand(journalCheckCmd)
}
