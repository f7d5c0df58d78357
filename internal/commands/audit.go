package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_reconciler/internal/dto"
	"github.com/SscSPs/ledger_reconciler/internal/platform/bootstrap"
)

func newAuditCommand() *cobra.Command {
	var companyID, userID string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Inspect the audit trail of journal entries",
	}
	cmd.PersistentFlags().StringVar(&companyID, "company", "", "company the entry belongs to (required)")
	cmd.PersistentFlags().StringVar(&userID, "as", "", "member of the company the reads are performed as (required)")
	_ = cmd.MarkPersistentFlagRequired("company")
	_ = cmd.MarkPersistentFlagRequired("as")

	cmd.AddCommand(&cobra.Command{
		Use:   "list <entry-id>",
		Short: "Print an entry's audit records oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				records, err := app.Services.Audit.ListAuditRecords(cmd.Context(), companyID, args[0], userID)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), dto.ToListAuditRecordsResponse(records))
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "verify <entry-id>",
		Short: "Recompute an entry's audit hash chain",
		Long:  "Recompute an entry's audit hash chain. Exits non-zero when the chain is broken.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				result, err := app.Services.Audit.VerifyAuditTrail(cmd.Context(), companyID, args[0], userID)
				if err != nil {
					return err
				}
				if err := printJSON(cmd.OutOrStdout(), result); err != nil {
					return err
				}
				if !result.Valid {
					return fmt.Errorf("audit chain of entry %s is broken at record %s", args[0], result.BrokenAt)
				}
				return nil
			})
		},
	})

	return cmd
}
