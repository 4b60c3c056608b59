package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/clearnext/internal/config"
	"github.com/MKhiriev/clearnext/internal/logger"
	"github.com/MKhiriev/clearnext/internal/store"
	"github.com/MKhiriev/clearnext/migrations"
	"github.com/spf13/cobra"
)

type migrationFunc func(db *sql.DB, dialect string) error

// newRootCmd builds the command tree. Connection settings default to the
// STORAGE_DB_* variables the server reads and can be overridden by flags.
func newRootCmd() *cobra.Command {
	var (
		dbCfg    config.DB
		logLevel string
	)

	root := &cobra.Command{
		Use:           "migrate",
		Short:         "Manage the clearnext database schema",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return loadDBDefaults(&dbCfg)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&dbCfg.Driver, "driver", "", `database driver: "postgres" or "sqlite" (env STORAGE_DB_DRIVER)`)
	flags.StringVar(&dbCfg.DSN, "dsn", "", "data source name (env STORAGE_DB_DATABASE_URI)")
	flags.StringVar(&logLevel, "log-level", "warn", "log level")

	run := func(name string, fn migrationFunc) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, _ []string) error {
			log := logger.NewLogger("clearnext-migrate", logLevel)
			return runMigration(cmd.Context(), dbCfg, log, name, fn)
		}
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run("up", migrations.Migrate),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back the most recent migration",
			Args:  cobra.NoArgs,
			RunE:  run("down", migrations.Rollback),
		},
		&cobra.Command{
			Use:   "status",
			Short: "Print the state of every migration",
			Args:  cobra.NoArgs,
			RunE:  run("status", migrations.Status),
		},
	)

	return root
}

// loadDBDefaults fills the fields left empty by flags from the environment.
func loadDBDefaults(dbCfg *config.DB) error {
	fromEnv, err := config.GetDBEnvConfig()
	if err != nil {
		return err
	}

	if dbCfg.Driver == "" {
		dbCfg.Driver = fromEnv.Driver
	}
	if dbCfg.DSN == "" {
		dbCfg.DSN = fromEnv.DSN
	}
	if dbCfg.Driver == "" {
		dbCfg.Driver = config.DriverPostgres
	}
	if dbCfg.DSN == "" {
		return errEmptyDSN
	}

	return nil
}

func runMigration(ctx context.Context, dbCfg config.DB, log *logger.Logger, name string, fn migrationFunc) error {
	if ctx == nil {
		ctx = context.Background()
	}

	storages, err := store.NewStorages(ctx, config.Storage{DB: dbCfg}, log)
	if err != nil {
		return fmt.Errorf("error connecting database: %w", err)
	}
	defer func() {
		if closeErr := storages.Close(); closeErr != nil {
			log.Err(closeErr).Msg("error closing database")
		}
	}()

	if err = fn(storages.DB.DB.DB, storages.DB.Dialect()); err != nil {
		return fmt.Errorf("migrate %s: %w", name, err)
	}

	log.Info().Str("command", name).Str("driver", dbCfg.Driver).Msg("migration finished")
	return nil
}
