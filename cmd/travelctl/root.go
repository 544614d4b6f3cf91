package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"travelpoints/internal/platform/config"
	"travelpoints/internal/platform/logger"
	"travelpoints/internal/platform/postgres"
)

// app carries the configuration shared by every subcommand.
type app struct {
	v *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{v: config.NewViper()}

	root := &cobra.Command{
		Use:           "travelctl",
		Short:         "Operate the travel points service",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(*cobra.Command, []string) {
			_ = godotenv.Load()
		},
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	root.PersistentFlags().String("database-url", "", "Postgres connection URL (env TRAVELPOINTS_DATABASE_URL)")
	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	_ = a.v.BindPFlag("database_url", root.PersistentFlags().Lookup("database-url"))
	_ = a.v.BindPFlag("log_level", root.PersistentFlags().Lookup("log-level"))

	root.AddCommand(newMigrateCmd(a), newSeedCmd(a), newScoreCmd(a))
	return root
}

func (a *app) config() config.Server {
	return config.Load(a.v)
}

func (a *app) logger() *slog.Logger {
	cfg := a.config()
	return logger.New(cfg.Environment, cfg.LogLevel)
}

func (a *app) openDB(ctx context.Context) (*sql.DB, error) {
	cfg := a.config()
	if cfg.DatabaseURL == "" {
		return nil, errors.New("database URL is required (--database-url or TRAVELPOINTS_DATABASE_URL)")
	}
	return postgres.Open(ctx, cfg.DatabaseURL, postgres.WithDriver(cfg.DatabaseDriver), postgres.WithMaxOpenConns(2))
}
