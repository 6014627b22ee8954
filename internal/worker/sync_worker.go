package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"aidat/internal/amqp"
	"aidat/internal/core"
	"aidat/internal/sheets"
	"aidat/internal/store"
)

// SyncWorker mirrors the ledger's annual summary into an external sheet.
// Every mutation message triggers a full rebuild from the snapshot; a
// periodic resync covers lost messages.
type SyncWorker struct {
	store    store.SnapshotStore
	exporter sheets.SummaryExporter
	mode     core.LegacyFallbackMode
	now      func() time.Time
}

func NewSyncWorker(st store.SnapshotStore, exporter sheets.SummaryExporter, mode core.LegacyFallbackMode) *SyncWorker {
	return &SyncWorker{
		store:    st,
		exporter: exporter,
		mode:     mode,
		now:      time.Now,
	}
}

// HandleMutationMessage processes a single ledger mutation from AMQP. The
// message carries no payload worth trusting: the snapshot is the source of
// truth, so the worker reloads it and rebuilds the summary wholesale.
func (w *SyncWorker) HandleMutationMessage(ctx context.Context, msg *amqp.MutationMessage) error {
	slog.InfoContext(ctx, "Processing mutation message",
		"entity", msg.Entity,
		"op", msg.Op,
		"id", msg.ID)

	if err := w.SyncOnce(ctx); err != nil {
		return fmt.Errorf("sync after mutation: %w", err)
	}
	return nil
}

// SyncOnce rebuilds the current year's summary from the snapshot and
// exports it.
func (w *SyncWorker) SyncOnce(ctx context.Context) error {
	snap, err := w.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}

	now := w.now()
	summary := core.Annual(snap.Residents, snap.Expenses, now.Year(), core.AnnualOptions{
		Mode:         w.mode,
		CurrentMonth: core.MonthKeyOf(now),
	})

	if err := w.exporter.ExportAnnualSummary(ctx, summary); err != nil {
		return fmt.Errorf("export annual summary: %w", err)
	}

	slog.InfoContext(ctx, "Exported annual summary",
		"year", summary.Year,
		"total_income_kurus", summary.TotalIncome.Kurus,
		"total_expense_kurus", summary.TotalExpense.Kurus)

	return nil
}

// RunPeriodic resyncs on a fixed interval until the context is cancelled.
// This is a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) RunPeriodic(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping periodic sync", "reason", ctx.Err())
			return
		case <-ticker.C:
			if err := w.SyncOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic sync failed", "error", err)
			}
		}
	}
}
