package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"aidat/internal/amqp"
	"aidat/internal/config"
	apphttp "aidat/internal/http"
	applog "aidat/internal/log"
	"aidat/internal/registry"
	"aidat/internal/store"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Component: applog.ComponentApp,
		Handler:   applog.NewHandler(cfg.LogFormat, slog.LevelInfo),
	})
	applog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}

	st, err := store.New(store.Config{
		Type:         store.Type(cfg.StoreBackend),
		SnapshotPath: cfg.SnapshotPath,
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger.Logger)
	if err != nil {
		logger.Error("Failed to initialize snapshot store",
			applog.FieldError, err, applog.FieldBackend, cfg.StoreBackend)
		os.Exit(1)
	}
	defer st.Close()

	// Mutation events are optional: without an AMQP URL the registries run
	// without a publisher.
	var events registry.EventPublisher
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
			os.Exit(1)
		}
		defer client.Close()
		events = client
		logger.Info("AMQP mutation events enabled", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	book := registry.NewBook(context.Background(), st, events)

	srv := apphttp.NewServer(":"+cfg.Port, book, cfg.AnnualMode())
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	// Graceful shutdown handling
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", applog.FieldError, err)
		}
		cancel()
	}()

	logger.Info("Starting aidat server",
		"port", cfg.Port,
		applog.FieldBackend, cfg.StoreBackend,
		"legacy_fallback_mode", cfg.LegacyFallbackMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", applog.FieldError, err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
