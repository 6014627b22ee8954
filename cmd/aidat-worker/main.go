package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"aidat/internal/amqp"
	"aidat/internal/config"
	applog "aidat/internal/log"
	gsheet "aidat/internal/sheets/google"
	sheetsmem "aidat/internal/sheets/memory"
	"aidat/internal/store"
	"aidat/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	cfg := config.Load()

	logger := applog.New(applog.Config{
		Component: applog.ComponentWorker,
		Handler:   applog.NewHandler(cfg.LogFormat, slog.LevelInfo),
	})
	applog.SetDefault(logger)

	logger.Info("Starting aidat-worker")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Without a spreadsheet the worker records exports in memory, which
	// keeps the consume loop alive for local runs.
	var syncWorker *worker.SyncWorker
	if cfg.GoogleSpreadsheetID != "" {
		sheetsClient, err := gsheet.NewFromEnv(ctx)
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", applog.FieldError, err)
			os.Exit(1)
		}
		syncWorker = worker.NewSyncWorker(st, sheetsClient, cfg.AnnualMode())
		logger.Info("Google Sheets export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID)
	} else {
		syncWorker = worker.NewSyncWorker(st, sheetsmem.New(), cfg.AnnualMode())
		logger.Info("Google Sheets disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", applog.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	// On startup, export once so the sheet reflects the current snapshot.
	if err := syncWorker.SyncOnce(ctx); err != nil {
		logger.Error("Startup sync failed", applog.FieldError, err)
		// Don't exit - continue with normal operation
	}

	go func() {
		if err := amqpClient.ConsumeMutations(ctx, func(msg *amqp.MutationMessage) error {
			return syncWorker.HandleMutationMessage(ctx, msg)
		}); err != nil {
			if err != context.Canceled {
				logger.Error("Message consumption failed", applog.FieldError, err)
			}
			cancel()
		}
	}()

	// Periodic resync covers lost messages.
	go syncWorker.RunPeriodic(ctx, cfg.SyncInterval)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", "signal", sig.String())
	case <-ctx.Done():
		logger.Info("Context cancelled")
	}

	logger.Info("Shutting down worker...")
	cancel()
	time.Sleep(2 * time.Second)
	logger.Info("Worker shutdown complete")
}
