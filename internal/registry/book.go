// Package registry owns the in-memory ledger state: the resident list with
// every payments map, and the expense list. All mutations go through the
// registries, which validate input, rebuild the snapshot wholesale and hand
// it to the snapshot store after every successful change.
package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"aidat/internal/store"
)

// EventPublisher receives a notification after every persisted mutation.
// Publishing is fire-and-forget: a publish failure never fails the mutation.
type EventPublisher interface {
	PublishMutation(ctx context.Context, entity, op, id string) error
}

// Book binds the two registries to one snapshot store. A single mutex
// serializes mutations: the model is a single logical actor, the lock only
// keeps concurrent HTTP requests from interleaving a read-modify-write.
type Book struct {
	mu     sync.Mutex
	store  store.SnapshotStore
	events EventPublisher

	residents *ResidentRegistry
	expenses  *ExpenseRegistry
}

// NewBook loads the snapshot and builds the registries over it. A failed
// load is not fatal: the book starts from an empty snapshot and the error is
// logged here, per the fail-soft contract of the store.
func NewBook(ctx context.Context, st store.SnapshotStore, events EventPublisher) *Book {
	snap, err := st.Load(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Snapshot load failed, starting empty", "error", err)
		snap = store.Snapshot{}
	}
	b := &Book{store: st, events: events}
	b.residents = &ResidentRegistry{book: b, items: snap.Residents}
	b.expenses = &ExpenseRegistry{book: b, items: snap.Expenses}
	return b
}

func (b *Book) Residents() *ResidentRegistry { return b.residents }
func (b *Book) Expenses() *ExpenseRegistry   { return b.expenses }

// Snapshot returns a deep copy of the current state.
func (b *Book) Snapshot() store.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshotLocked().Clone()
}

func (b *Book) snapshotLocked() store.Snapshot {
	return store.Snapshot{Residents: b.residents.items, Expenses: b.expenses.items}
}

// persistLocked saves the current state and publishes the mutation event.
// The in-memory mutation has already happened; a save error is returned so
// the caller can warn that a reload would lose the change.
func (b *Book) persistLocked(ctx context.Context, entity, op, id string) error {
	if err := b.store.Save(ctx, b.snapshotLocked().Clone()); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if b.events != nil {
		if err := b.events.PublishMutation(ctx, entity, op, id); err != nil {
			slog.WarnContext(ctx, "Mutation event publish failed",
				"entity", entity, "op", op, "id", id, "error", err)
		}
	}
	return nil
}
