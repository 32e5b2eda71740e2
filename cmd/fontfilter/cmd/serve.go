package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/solatis/fontfilter/internal/catalog"
	"github.com/solatis/fontfilter/internal/core/api"
	"github.com/solatis/fontfilter/internal/core/auth"
	"github.com/solatis/fontfilter/internal/core/config"
	"github.com/solatis/fontfilter/internal/core/server"
	"github.com/solatis/fontfilter/internal/records"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start gRPC filter service",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("host", "0.0.0.0", "gRPC server host")
	serveCmd.Flags().Int("port", 50051, "gRPC server port")
	serveCmd.Flags().String("metrics-addr", ":9090", "Prometheus metrics listen address (empty disables)")
	serveCmd.Flags().String("catalog", "", "YAML catalog served when --db-url is not set")
	serveCmd.Flags().String("profiles", "", "YAML profiles served with --catalog")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.Host, _ = cmd.Flags().GetString("host")
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("metrics-addr") {
		cfg.MetricsAddr, _ = cmd.Flags().GetString("metrics-addr")
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog, _ = cmd.Flags().GetString("catalog")
	}
	profilesPath, _ := cmd.Flags().GetString("profiles")

	var (
		source   api.Catalog
		profiles api.Profiles
	)
	switch {
	case dbURL != "":
		database, store, err := openStore()
		if err != nil {
			return err
		}
		defer database.Close()
		source, profiles = store, store
	case cfg.Catalog != "":
		static, err := loadStatic(cfg, profilesPath)
		if err != nil {
			return err
		}
		source, profiles = static, static
	default:
		return fmt.Errorf("--db-url or a catalog file required")
	}

	service, err := api.NewFilterService(newEngine(cfg, logger), source, profiles, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	grpcServer, err := server.NewGRPCServer(cfg, service, auth.NewAuthenticator(config.APIKey()), logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("starting fontfilter", "version", Version, "host", cfg.Host, "port", cfg.Port)
	errChan := make(chan error, 1)
	go func() {
		errChan <- grpcServer.Start(ctx)
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		logger.Info("shutting down gracefully")
		shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		return grpcServer.Shutdown(shutdownCtx)
	}
}

// loadStatic reads the configured catalog file and an optional profile file.
func loadStatic(cfg *config.Config, profilesPath string) (*catalog.Static, error) {
	set, err := catalog.LoadRecordsFile(cfg.Catalog, records.DefaultSchema())
	if err != nil {
		return nil, err
	}
	if profilesPath == "" {
		return catalog.NewStatic(set), nil
	}
	profiles, err := catalog.LoadProfilesFile(profilesPath)
	if err != nil {
		return nil, err
	}
	return catalog.NewStatic(set, profiles...), nil
}
