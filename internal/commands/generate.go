package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_reconciler/internal/core/domain"
	"github.com/SscSPs/ledger_reconciler/internal/dto"
	"github.com/SscSPs/ledger_reconciler/internal/platform/bootstrap"
)

func newGenerateCommand() *cobra.Command {
	var (
		companyID     string
		referenceKind string
		referenceID   string
	)

	cmd := &cobra.Command{
		Use:   "generate <entry-id>...",
		Short: "Generate journal lines for entries from their source documents",
		Long:  "Generate journal lines for each entry. Entries that already have lines are reported as noop.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if referenceKind != "" && len(args) > 1 {
				return fmt.Errorf("--kind and --ref apply to a single entry")
			}
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				for _, entryID := range args {
					result, err := app.Services.Generator.GenerateLines(cmd.Context(), dto.GenerateLinesRequest{
						EntryID:       entryID,
						CompanyID:     companyID,
						ReferenceKind: domain.ReferenceKind(referenceKind),
						ReferenceID:   referenceID,
					})
					if err != nil {
						return fmt.Errorf("entry %s: %w", entryID, err)
					}
					if err := printJSON(cmd.OutOrStdout(), dto.ToGenerateLinesResponse(result)); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "company the entries belong to (required)")
	_ = cmd.MarkFlagRequired("company")
	cmd.Flags().StringVar(&referenceKind, "kind", "", "expected reference kind of the entry")
	cmd.Flags().StringVar(&referenceID, "ref", "", "expected reference ID of the entry")
	cmd.MarkFlagsRequiredTogether("kind", "ref")

	return cmd
}
