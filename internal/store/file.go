package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore persists the snapshot as a single JSON document, the direct
// successor of the original's localStorage blob. Older files where a
// resident carries `paidThisMonth` instead of a `payments` map parse as-is;
// the legacy field survives the round trip untouched.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load(_ context.Context) (Snapshot, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run: start empty.
			return Snapshot{}, nil
		}
		return Snapshot{}, fmt.Errorf("read snapshot %s: %w", s.path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("parse snapshot %s: %w", s.path, err)
	}
	return snap, nil
}

// Save writes to a temp file and renames over the target so a crash mid-write
// never leaves a truncated snapshot behind.
func (s *FileStore) Save(_ context.Context, snap Snapshot) error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create snapshot directory: %w", err)
		}
	}
	raw, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
