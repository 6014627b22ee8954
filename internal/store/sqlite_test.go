package store

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "aidat.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	want := sampleSnapshot()
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSQLiteStoreSaveReplacesWholesale(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "aidat.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.Save(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	// A smaller snapshot must fully replace the previous one.
	smaller := sampleSnapshot()
	smaller.Residents = smaller.Residents[:1]
	smaller.Expenses = nil
	if err := s.Save(ctx, smaller); err != nil {
		t.Fatalf("save smaller: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(got.Residents) != 1 || len(got.Expenses) != 0 {
		t.Fatalf("expected 1 resident and 0 expenses, got %d/%d", len(got.Residents), len(got.Expenses))
	}
	if got.Residents[0].ID != "r1" {
		t.Fatalf("unexpected resident %s", got.Residents[0].ID)
	}
}

func TestSQLiteStoreEmptyDatabase(t *testing.T) {
	s, err := NewSQLiteStore(filepath.Join(t.TempDir(), "aidat.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	snap, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap.Residents) != 0 || len(snap.Expenses) != 0 {
		t.Fatalf("fresh database must load empty, got %+v", snap)
	}
}
