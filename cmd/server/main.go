package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/rpgroster/internal/api"
	"github.com/mcoot/rpgroster/internal/config"
	"github.com/mcoot/rpgroster/internal/factory"
	"github.com/mcoot/rpgroster/internal/metrics"
	"github.com/mcoot/rpgroster/internal/model"
	"github.com/mcoot/rpgroster/internal/roster"
)

func main() {
	var configPath string

	cmd := &cobra.Command{
		Use:   "server",
		Short: "Serve the player roster API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
		SilenceUsage: true,
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", os.Getenv("ROSTER_CONFIG"), "YAML config file (env: ROSTER_CONFIG)")

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config) error {
	// Set up logging with JSON output
	level, err := config.ParseLevel(cfg.Log.Level)
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// Create application factory
	app, err := factory.New(ctx, factory.Config{
		Logger:       logger,
		StorageType:  cfg.Storage.Type,
		RedisConfig:  &cfg.Storage.Redis,
		SQLiteConfig: &cfg.Storage.SQLite,
		MongoConfig:  &cfg.Storage.Mongo,
	})
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warn("failed to close storage", slog.String("error", err.Error()))
		}
	}()

	if err := seed(ctx, app, cfg.Seed); err != nil {
		logger.Error("failed to seed roster", slog.String("error", err.Error()))
		return err
	}

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New()
	}

	router := api.NewRouter(api.RouterConfig{
		Logger:        logger,
		PlayerService: app.PlayerService,
		Metrics:       m,
		StorageType:   app.StorageType,
	})
	server := api.NewServer(router, cfg.Server, logger)

	// Stop on SIGINT or SIGTERM
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("server starting",
		slog.String("addr", server.Addr()),
		slog.String("storage", app.StorageType),
	)
	if err := server.Run(ctx); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("server stopped")
	return nil
}

// seed fills an empty store from the configured roster file, or with random players
func seed(ctx context.Context, app *factory.App, cfg config.SeedConfig) error {
	var candidates []model.PlayerPatch
	switch {
	case cfg.File != "":
		loaded, err := roster.LoadFile(cfg.File)
		if err != nil {
			return err
		}
		candidates = loaded
	case cfg.Random > 0:
		candidates = app.Generator.Generate(cfg.Random)
	default:
		return nil
	}

	if _, err := app.Importer.ImportIfEmpty(ctx, candidates); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
