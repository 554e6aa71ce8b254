package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EJPOP/trade-system/internal/api"
	"github.com/EJPOP/trade-system/internal/config"
	"github.com/EJPOP/trade-system/internal/database"
	"github.com/EJPOP/trade-system/internal/store"
	"github.com/EJPOP/trade-system/internal/syncer"
	"github.com/EJPOP/trade-system/internal/version"
	"github.com/EJPOP/trade-system/internal/web"
)

func main() {
	configPath := flag.String("config", "configs/krxsync.yaml", "path to config file")
	flag.Parse()

	// Set up structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("starting krxsync",
		"version", version.Version,
		"commit", version.Commit,
		"config", *configPath,
	)

	// Load configuration
	cfg, err := config.LoadAndValidate(*configPath)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger.Info("configuration loaded",
		"krx_url", cfg.KRX.BaseURL,
		"server_port", cfg.Server.Port,
	)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	// Connect to database
	logger.Info("connecting to database",
		"host", cfg.Database.Postgres.Host,
		"port", cfg.Database.Postgres.Port,
		"database", cfg.Database.Postgres.Name,
	)

	pool, err := database.Connect(ctx, cfg.Database.Postgres)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	logger.Info("database connected")

	// Create KRX API client
	client, err := api.NewClient(
		cfg.KRX.BaseURL,
		cfg.KRX.AuthKey,
		api.WithLogger(logger),
		api.WithTimeout(cfg.KRX.Timeout),
		api.WithFallbackCharset(cfg.KRX.ResponseCharset),
	)
	if err != nil {
		logger.Error("failed to create krx client", "error", err)
		os.Exit(1)
	}

	// Wire repositories and the orchestrator
	tickers := store.NewTickerMasterRepo(pool)
	trades := store.NewDailyTradeRepo(pool)
	prices := store.NewDailyPriceRepo(pool)
	indexes := store.NewIndexPriceRepo(pool)

	syncCfg := syncer.Config{
		MaxRetries:   cfg.Sync.MaxRetries,
		RetryBackoff: cfg.Sync.RetryBackoff,
	}
	syncs := syncer.New(syncCfg, client, tickers, trades, prices, indexes, logger)

	handler := web.NewHandler(syncs, client, trades, tickers, cfg.Sync.InterDayDelay, logger)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: handler.Routes(),
	}

	go func() {
		logger.Info("http server listening", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http server shutdown timed out", "error", err)
	}

	logger.Info("krxsync stopped")
}
