package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aussiebroadwan/mutual/internal/match/app"
	"github.com/aussiebroadwan/mutual/pkg/slogx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFiles []string

	rootCmd = &cobra.Command{
		Use:   "matchd",
		Short: "Mutual matching service",
		Long: `matchd runs the mutual matching service: users register, record crushes
by name and see which of them named them back.

Configuration is read from the environment (MATCH_*, PORT, LOG_LEVEL, ...).
Use --env-file to load variables from .env files first.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return loadEnvFiles(envFiles)
		},
	}

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE:  runServe,
	}

	migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Apply store migrations and exit",
		RunE:  runMigrate,
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), app.BuildVersion)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil,
		"load environment variables from these files before reading config (existing variables win)")

	rootCmd.AddCommand(serveCmd, migrateCmd, versionCmd)
}

// loadEnvFiles loads each file into the environment. Variables already set
// are not overridden.
func loadEnvFiles(files []string) error {
	if len(files) == 0 {
		return nil
	}
	if err := godotenv.Load(files...); err != nil {
		return fmt.Errorf("load env files: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, args []string) error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return application.Run(cmd.Context())
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg := app.LoadConfig()
	logger := slogx.New(slogx.Config{
		Service: "mutual-migrate",
		Version: app.BuildVersion,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := app.OpenStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	users, err := st.Users().CountUsers(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}

	attrs := []any{"driver", cfg.StoreDriver, "users", users}
	if v, ok := st.(versionedStore); ok {
		version, dirty, err := v.MigrationVersion()
		if err != nil {
			return fmt.Errorf("read schema version: %w", err)
		}
		if dirty {
			return fmt.Errorf("schema version %d is dirty", version)
		}
		attrs = append(attrs, "schema_version", version)
	}

	logger.Info("store migrations applied", attrs...)
	return nil
}

// versionedStore is implemented by drivers with numbered schema migrations.
type versionedStore interface {
	MigrationVersion() (uint, bool, error)
}

// executeContext is rootCmd.ExecuteContext, split out for tests.
func executeContext(ctx context.Context, args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.ExecuteContext(ctx)
}
