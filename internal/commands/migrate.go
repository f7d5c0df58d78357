package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_reconciler/internal/platform/config"
	"github.com/SscSPs/ledger_reconciler/pkg/database"
)

func newMigrateCommand() *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:       "migrate <up|down>",
		Short:     "Apply or roll back database migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			if path == "" {
				path = cfg.MigrationsPath
			}
			if err := database.RunMigrations(cfg.DatabaseURL, path, database.MigrationDirection(args[0]), newLogger(cfg)); err != nil {
				return fmt.Errorf("migrate %s: %w", args[0], err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&path, "path", "", "migrations source URL, defaults to MIGRATIONS_PATH")

	return cmd
}
