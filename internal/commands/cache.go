package commands

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_reconciler/internal/platform/bootstrap"
)

var errCacheDisabled = errors.New("account cache is disabled, set REDIS_URL")

func newCacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the chart-of-accounts cache",
	}

	var companyIDs []string
	invalidate := &cobra.Command{
		Use:   "invalidate",
		Short: "Drop cached charts of accounts so the next resolution reloads them",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withApp(cmd.Context(), func(app *bootstrap.App) error {
				if app.AccountCache == nil {
					return errCacheDisabled
				}
				for _, companyID := range companyIDs {
					if err := app.AccountCache.Invalidate(cmd.Context(), companyID); err != nil {
						return fmt.Errorf("company %s: %w", companyID, err)
					}
					if _, err := fmt.Fprintf(cmd.OutOrStdout(), "invalidated %s\n", companyID); err != nil {
						return err
					}
				}
				return nil
			})
		},
	}
	invalidate.Flags().StringSliceVar(&companyIDs, "company", nil, "company whose chart is dropped, repeatable (required)")
	_ = invalidate.MarkFlagRequired("company")
	cmd.AddCommand(invalidate)

	return cmd
}
