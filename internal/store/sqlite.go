package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"aidat/internal/core"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists snapshots in a local SQLite database. Save replaces
// the whole snapshot in one transaction, matching the wholesale-replacement
// lifecycle of the snapshot; the position columns preserve insertion order
// across the round trip.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, error) {
	var snap Snapshot

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, flat_no, full_name, monthly_fee_kurus, note, paid_this_month_kurus
		   FROM residents ORDER BY position`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query residents: %w", err)
	}
	defer rows.Close()

	byID := map[string]int{}
	for rows.Next() {
		var r core.Resident
		var legacy sql.NullInt64
		if err := rows.Scan(&r.ID, &r.FlatNo, &r.FullName, &r.MonthlyFee.Kurus, &r.Note, &legacy); err != nil {
			return Snapshot{}, fmt.Errorf("scan resident: %w", err)
		}
		if legacy.Valid {
			r.PaidThisMonth = &core.Money{Kurus: legacy.Int64}
		}
		byID[r.ID] = len(snap.Residents)
		snap.Residents = append(snap.Residents, r)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate residents: %w", err)
	}

	payRows, err := s.db.QueryContext(ctx,
		`SELECT resident_id, month, paid_kurus FROM payments`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query payments: %w", err)
	}
	defer payRows.Close()

	for payRows.Next() {
		var residentID, month string
		var paid int64
		if err := payRows.Scan(&residentID, &month, &paid); err != nil {
			return Snapshot{}, fmt.Errorf("scan payment: %w", err)
		}
		idx, ok := byID[residentID]
		if !ok {
			continue
		}
		r := &snap.Residents[idx]
		if r.Payments == nil {
			r.Payments = make(map[core.MonthKey]core.Payment)
		}
		r.Payments[core.MonthKey(month)] = core.Payment{Paid: core.Money{Kurus: paid}}
	}
	if err := payRows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate payments: %w", err)
	}

	expRows, err := s.db.QueryContext(ctx,
		`SELECT id, date, category, description, amount_kurus
		   FROM expenses ORDER BY position`)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query expenses: %w", err)
	}
	defer expRows.Close()

	for expRows.Next() {
		var e core.Expense
		if err := expRows.Scan(&e.ID, &e.Date, &e.Category, &e.Description, &e.Amount.Kurus); err != nil {
			return Snapshot{}, fmt.Errorf("scan expense: %w", err)
		}
		snap.Expenses = append(snap.Expenses, e)
	}
	if err := expRows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate expenses: %w", err)
	}

	return snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"payments", "residents", "expenses"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}

	for i, r := range snap.Residents {
		var legacy sql.NullInt64
		if r.PaidThisMonth != nil {
			legacy = sql.NullInt64{Int64: r.PaidThisMonth.Kurus, Valid: true}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO residents (id, flat_no, full_name, monthly_fee_kurus, note, paid_this_month_kurus, position)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.FlatNo, r.FullName, r.MonthlyFee.Kurus, r.Note, legacy, i); err != nil {
			return fmt.Errorf("insert resident %s: %w", r.ID, err)
		}
		for month, p := range r.Payments {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO payments (resident_id, month, paid_kurus) VALUES (?, ?, ?)`,
				r.ID, string(month), p.Paid.Kurus); err != nil {
				return fmt.Errorf("insert payment %s/%s: %w", r.ID, month, err)
			}
		}
	}

	for i, e := range snap.Expenses {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, date, category, description, amount_kurus, position)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.ID, e.Date, e.Category, e.Description, e.Amount.Kurus, i); err != nil {
			return fmt.Errorf("insert expense %s: %w", e.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit snapshot: %w", err)
	}
	return nil
}
