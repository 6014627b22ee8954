package store

import (
	"fmt"
	"log/slog"
)

// Type selects a SnapshotStore implementation.
type Type string

const (
	FileBackend   Type = "file"
	SQLiteBackend Type = "sqlite"
	MemoryBackend Type = "memory"
)

func (t Type) String() string { return string(t) }

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case FileBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// Config holds configuration for store creation.
type Config struct {
	Type Type

	// File backend
	SnapshotPath string

	// SQLite backend
	SQLiteDBPath string
}

// New creates a SnapshotStore for the configured backend.
func New(cfg Config, logger *slog.Logger) (SnapshotStore, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid store backend: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		st, err := NewSQLiteStore(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize sqlite store: %w", err)
		}
		logger.Info("Initialized sqlite snapshot store", "db_path", cfg.SQLiteDBPath)
		return st, nil
	case FileBackend:
		logger.Info("Initialized file snapshot store", "path", cfg.SnapshotPath)
		return NewFileStore(cfg.SnapshotPath), nil
	default:
		logger.Info("Initialized in-memory snapshot store")
		return NewMemoryStore(), nil
	}
}
