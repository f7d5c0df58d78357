package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_reconciler/internal/platform/config"
	"github.com/SscSPs/ledger_reconciler/internal/utils"
)

func newTokenCommand() *cobra.Command {
	var (
		email  string
		name   string
		expiry time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue a bearer token for the API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if expiry == 0 {
				expiry = cfg.JWTExpiryDuration
			}
			token, err := utils.GenerateJWT(args[0], email, name, cfg.JWTSecret, expiry, cfg.JWTIssuer)
			if err != nil {
				return fmt.Errorf("signing token: %w", err)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "email recorded in the token")
	cmd.Flags().StringVar(&name, "name", "", "display name recorded in the token")
	cmd.Flags().DurationVar(&expiry, "expiry", 0, "token lifetime, defaults to JWT_EXPIRY_DURATION")

	return cmd
}
