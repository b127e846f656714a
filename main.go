package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lumina-store/catalog"
	"lumina-store/config"
	"lumina-store/storage"
	"lumina-store/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger

	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "lumina",
	Short: "LuminaStore storefront service",
	Long: `LuminaStore browses a remote product catalog with category, price,
search and sort filters, pages through the results and keeps a cart per
session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		logger = utils.NewLoggerLevel(cfg.LogLevel)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.AddCommand(serveCmd, browseCmd, importCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSource returns the configured catalog source and its closer.
func openSource(ctx context.Context) (catalog.Source, func() error, error) {
	switch cfg.CatalogSource {
	case config.SourcePostgres:
		ps, err := openPostgres(ctx)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Catalog source: PostgreSQL (%s@%s/%s)", cfg.PostgresUser, cfg.PostgresHost, cfg.PostgresDB)
		return ps, ps.Close, nil
	default:
		timeout := time.Duration(cfg.RequestTimeoutMs) * time.Millisecond
		rs := catalog.NewRemoteSource(cfg.CatalogURL, timeout, logger)
		logger.Info("Catalog source: %s", cfg.CatalogURL)
		return rs, rs.Close, nil
	}
}

func openPostgres(ctx context.Context) (*storage.PostgresSource, error) {
	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   time.Second,
		Logger:      logger,
	}
	ps, err := storage.NewPostgresSource(ctx, cfg.DSN(), retry, logger)
	if err != nil {
		return nil, fmt.Errorf("connect to PostgreSQL: %w", err)
	}
	return ps, nil
}
