// Package store persists complete ledger snapshots. The registries replace
// the snapshot wholesale after every mutation, so every implementation takes
// the full state on Save and returns the full state on Load.
package store

import (
	"context"

	"aidat/internal/core"
)

// Snapshot is the entire persisted state at a point in time.
type Snapshot struct {
	Residents []core.Resident `json:"residents"`
	Expenses  []core.Expense  `json:"expenses"`
}

// Clone deep-copies the snapshot so stored state is never shared with
// callers.
func (s Snapshot) Clone() Snapshot {
	c := Snapshot{}
	if s.Residents != nil {
		c.Residents = make([]core.Resident, len(s.Residents))
		for i, r := range s.Residents {
			c.Residents[i] = r.Clone()
		}
	}
	if s.Expenses != nil {
		c.Expenses = append([]core.Expense(nil), s.Expenses...)
	}
	return c
}

// SnapshotStore is the persistence boundary of the ledger.
//
// Load fails soft: a missing snapshot yields an empty one with a nil error;
// an unreadable or unparseable one yields an empty snapshot together with
// the error so the caller can log it and continue. Save either succeeds
// completely or returns an error; partial writes are not modeled.
type SnapshotStore interface {
	Load(ctx context.Context) (Snapshot, error)
	Save(ctx context.Context, snap Snapshot) error
	Close() error
}
