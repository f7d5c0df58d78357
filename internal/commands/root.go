// Package commands implements reconctl, the operator CLI for the ledger reconciler.
package commands

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SscSPs/ledger_reconciler/internal/platform/bootstrap"
	"github.com/SscSPs/ledger_reconciler/internal/platform/config"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "reconctl",
		Short: "Operate the ledger reconciler: generate lines, inspect audit trails, manage caches and migrations",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newGenerateCommand())
	rootCmd.AddCommand(newAuditCommand())
	rootCmd.AddCommand(newCacheCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newTokenCommand())

	return rootCmd
}

// newLogger writes text logs to stderr so stdout stays machine readable.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// withApp loads configuration, wires the services and runs fn against them.
func withApp(ctx context.Context, fn func(app *bootstrap.App) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	app, err := bootstrap.New(ctx, cfg, newLogger(cfg))
	if err != nil {
		return err
	}
	defer app.Close()
	return fn(app)
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
