package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"

	"realestate-api/api"
	"realestate-api/config"
	"realestate-api/services"
	"realestate-api/storage"
	"realestate-api/utils"
)

const shutdownTimeout = 10 * time.Second

func main() {
	os.Exit(run())
}

// run wires and serves the application and returns the process exit code.
// Deferred cleanup, including flushing the Fluent client, runs before main
// exits.
func run() int {
	cfg := config.Load()

	var fluentClient *fluent.Fluent
	if cfg.FluentEnabled {
		client, err := utils.NewFluentClient(utils.FluentConfig{
			Host:      cfg.FluentHost,
			Port:      cfg.FluentPort,
			TagPrefix: cfg.AppName,
		})
		if err != nil {
			utils.NewLogger().Warn("Fluent forwarding disabled: %v", err)
		} else {
			fluentClient = client
			defer fluentClient.Close()
		}
	}

	logger := utils.NewLoggerWithConfig(utils.LoggerConfig{
		Level:  utils.ParseLevel(cfg.LogLevel),
		Fluent: fluentClient,
	}).With("service", cfg.AppName)

	logger.Info("=== %s starting ===", cfg.AppName)
	logger.Info("Config: driver %s | source %s | refresh every %v | port %s",
		cfg.DBDriver, cfg.DataFilePath, cfg.RefreshInterval, cfg.HTTPPort)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.Open(ctx, cfg.DBDriver, cfg.DSN(), &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   2 * time.Second,
		Logger:      logger,
	})
	if err != nil {
		logger.Error("Failed to open listing store: %v", err)
		if cfg.DBDriver == config.DriverPostgres {
			logger.Error("Make sure Docker is running: docker compose up -d")
		}
		return 1
	}
	defer store.Close()

	ingester := services.NewIngestService(store, logger)
	refresher := services.NewRefresher(ingester, cfg.DataFilePath, cfg.RefreshInterval, logger)

	handler := api.NewPropertyHandler(
		services.NewQueryService(store, logger),
		services.NewStatisticsService(store, logger),
		logger,
	)
	server := api.NewServer(cfg.HTTPPort, handler, logger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		refresher.Run(ctx)
	}()

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	exitCode := 0
	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	case err := <-serverErr:
		logger.Error("HTTP server failed: %v", err)
		exitCode = 1
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown: %v", err)
	}

	wg.Wait()
	logger.Info("=== %s stopped ===", cfg.AppName)
	return exitCode
}
