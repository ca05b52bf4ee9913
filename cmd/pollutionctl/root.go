package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/pollution-reporter/internal/app"
	"github.com/heartmarshall/pollution-reporter/internal/auth"
	"github.com/heartmarshall/pollution-reporter/internal/config"
	"github.com/heartmarshall/pollution-reporter/internal/service/account"
)

var (
	cfg    *config.Config
	logger *slog.Logger

	timeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:          "pollutionctl",
	Short:        "Operate the pollution reporting service",
	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger = app.NewLogger(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "overall deadline for the command")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(accountCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(versionCmd)
}

// commandContext bounds a command by the --timeout flag.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), timeout)
}

// openStorage connects the configured backend without running migrations.
func openStorage(ctx context.Context) (*app.Storage, error) {
	return app.OpenStorage(ctx, cfg, false, logger)
}

// accountService builds the account service over st. Token issuance is
// never used by the CLI, but the service requires a manager.
func accountService(st *app.Storage) *account.Service {
	return account.NewService(
		logger,
		st.Accounts,
		auth.NewPasswordHasher(cfg.Auth.PasswordHashCost),
		auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL),
	)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the build version",
	// Skip config loading.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion())
	},
}
