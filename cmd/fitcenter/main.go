package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/saltyorg/fitcenter/internal/config"
	"github.com/saltyorg/fitcenter/internal/database"
	"github.com/saltyorg/fitcenter/internal/logging"
	"github.com/saltyorg/fitcenter/internal/maintenance"
	"github.com/saltyorg/fitcenter/internal/web"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// CLI state. Flag defaults come from the environment (and .env) so a flag
// always wins over its env var.
var (
	loader    *config.Loader
	cfg       config.Config
	verbosity int
)

func main() {
	loader = config.NewEnvLoader()
	cfg = config.Default(loader)

	rootCmd := &cobra.Command{
		Use:   "fitcenter",
		Short: "Fitness center members and workout sessions API",
		Long:  `fitcenter serves a JSON API for managing gym members and their workout sessions.`,
		RunE:  run,
	}

	// Database flags are shared with the schema subcommand
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfg.Database.Driver, "db-driver", cfg.Database.Driver, "Database driver (sqlite, postgres, mysql)")
	pf.StringVar(&cfg.Database.Host, "db-host", cfg.Database.Host, "Database host")
	pf.IntVar(&cfg.Database.Port, "db-port", cfg.Database.Port, "Database port (0 uses the driver default)")
	pf.StringVar(&cfg.Database.User, "db-user", cfg.Database.User, "Database user")
	pf.StringVar(&cfg.Database.Password, "db-password", cfg.Database.Password, "Database password")
	pf.StringVar(&cfg.Database.Name, "db-name", cfg.Database.Name, "Database name")
	pf.StringVar(&cfg.Database.Path, "db-path", cfg.Database.Path, "SQLite database path")

	f := rootCmd.Flags()
	f.IntVarP(&cfg.Server.Port, "port", "p", cfg.Server.Port, "HTTP server port")
	f.StringVarP(&cfg.Server.Bind, "bind", "b", cfg.Server.Bind, "IP address to bind to (e.g., 127.0.0.1, 0.0.0.0)")
	f.IntVar(&cfg.Database.MaxIdle, "db-max-idle", cfg.Database.MaxIdle, "Idle database connections kept between requests")
	f.BoolVar(&cfg.Database.InitSchema, "init-schema", cfg.Database.InitSchema, "Create missing tables at startup")
	f.BoolVar(&cfg.StrictAffectedRows, "strict-affected-rows", cfg.StrictAffectedRows, "Answer 404 when an update or delete matches no row")
	f.StringSliceVar(&cfg.Server.CORSOrigins, "cors-origins", cfg.Server.CORSOrigins, "Allowed CORS origins (comma separated)")
	f.DurationVar(&cfg.Server.RequestTimeout, "request-timeout", cfg.Server.RequestTimeout, "Per-request timeout")
	f.StringVar(&cfg.OptimizeSchedule, "optimize-schedule", cfg.OptimizeSchedule, "Cron schedule for SQLite PRAGMA optimize (empty disables)")
	f.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "Log level (trace, debug, info, warn, error)")
	f.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "Also write logs to this rotating file")
	f.CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v debug, -vv trace)")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "schema",
		Short: "Print the table DDL for the configured driver",
		RunE: func(cmd *cobra.Command, args []string) error {
			ddl, err := database.Schema(cfg.Database.Driver)
			if err != nil {
				return err
			}
			fmt.Println(ddl)
			return nil
		},
	})

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("fitcenter %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg.Log.Level = logging.LevelFromVerbosity(verbosity, cfg.Log.Level)
	logging.Apply(cfg.Log, loader)

	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Server.Bind == "" || cfg.Server.Bind == "0.0.0.0" || cfg.Server.Bind == "::" {
		log.Debug().Msg("Server is accessible from all interfaces. Use --bind to restrict it.")
	}

	log.Info().
		Str("version", version).
		Int("port", cfg.Server.Port).
		Str("bind", cfg.Server.Bind).
		Str("driver", cfg.Database.Driver).
		Bool("strict_affected_rows", cfg.StrictAffectedRows).
		Msg("Starting fitcenter")

	db, err := database.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	if cfg.Database.InitSchema {
		if err := db.EnsureSchema(context.Background()); err != nil {
			return fmt.Errorf("failed to create database schema: %w", err)
		}
	}

	if cfg.OptimizeSchedule != "" {
		if cfg.Database.Driver != config.DriverSQLite {
			log.Warn().Str("driver", cfg.Database.Driver).Msg("Optimize schedule only applies to sqlite, ignoring")
		} else {
			scheduler := maintenance.New(db, cfg.OptimizeSchedule)
			if err := scheduler.Start(); err != nil {
				return err
			}
			defer scheduler.Stop()
			log.Info().Time("next_run", scheduler.NextRun()).Msg("Database optimize scheduled")
		}
	}

	server := web.NewServer(db, cfg)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		cancel()
	}()

	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	log.Info().Msg("fitcenter stopped")
	return nil
}
