package cmd

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	"github.com/solatis/fontfilter/internal/alloc"
	"github.com/solatis/fontfilter/internal/core/config"
	"github.com/solatis/fontfilter/internal/core/db"
	"github.com/solatis/fontfilter/internal/core/logging"
	"github.com/solatis/fontfilter/internal/filter"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var (
	configFile string
	dbURL      string
	logLevel   string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:           "fontfilter",
	Short:         "Font catalog predicate filtering",
	Long:          `fontfilter narrows font catalogs with typed, composable conditions in strict or soft mode.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db-url", "", "database connection URL (sqlite://path or postgres://...)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "json", "log format (json, text)")
}

func Execute() error {
	return rootCmd.Execute()
}

// setup loads configuration and builds the logger shared by all subcommands.
func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger, err := logging.New(logLevel, logFormat, cmd.ErrOrStderr())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newEngine wires the configured allocation limits into a filter engine.
// Conditions and record sets draw from one budget.
func newEngine(cfg *config.Config, logger *slog.Logger) *filter.Engine {
	budget := alloc.NewBudget(cfg.MaxUnits)
	builder := filter.NewBuilder(budget, records.DefaultSchema()).WithListCapacity(cfg.ListCapacity)
	return filter.NewEngine(
		filter.WithBuilder(builder),
		filter.WithSets(records.NewSetAllocator(budget, cfg.MaxRecordsPerSet)),
		filter.WithLogger(logger),
	)
}

// openStore opens the database named by --db-url, refusing to run against a
// schema with pending migrations.
func openStore() (*sqlx.DB, *db.Store, error) {
	if dbURL == "" {
		return nil, nil, fmt.Errorf("--db-url required")
	}
	database, err := db.Open(dbURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	pending, err := db.Pending(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to check migrations: %w", err)
	}
	if len(pending) > 0 {
		database.Close()
		return nil, nil, fmt.Errorf("%d migrations pending (%s) - run 'fontfilter migrate' first", len(pending), pending[0])
	}

	store, err := db.NewStore(database)
	if err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to load queries: %w", err)
	}
	return database, store, nil
}
