package store

import (
	"context"
	"sync"
)

// MemoryStore keeps the snapshot in process memory. Used by tests and
// ephemeral runs.
type MemoryStore struct {
	mu   sync.Mutex
	snap Snapshot

	// SaveErr, when set, makes Save fail without recording the snapshot.
	// Lets tests exercise the "mutation stands, persistence failed"
	// contract.
	SaveErr error
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone(), nil
}

func (s *MemoryStore) Save(_ context.Context, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SaveErr != nil {
		return s.SaveErr
	}
	s.snap = snap.Clone()
	return nil
}

func (s *MemoryStore) Close() error { return nil }
