package registry

import (
	"context"
	"errors"
	"testing"

	"aidat/internal/core"
)

func TestExpenseAddValidation(t *testing.T) {
	b, _ := newTestBook(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		fields ExpenseFields
		want   error
	}{
		{"bad date", ExpenseFields{Date: "15-01-2024", Category: "Temizlik", Amount: core.Money{Kurus: 1}}, core.ErrInvalidDate},
		{"empty date", ExpenseFields{Date: "", Category: "Temizlik", Amount: core.Money{Kurus: 1}}, core.ErrInvalidDate},
		{"negative amount", ExpenseFields{Date: "2024-01-15", Category: "Temizlik", Amount: core.Money{Kurus: -1}}, core.ErrInvalidAmount},
	}
	for _, tc := range cases {
		if _, err := b.Expenses().Add(ctx, tc.fields); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
	if len(b.Expenses().All()) != 0 {
		t.Fatalf("rejected adds must have no side effect")
	}
}

func TestExpenseCRUD(t *testing.T) {
	b, st := newTestBook(t)
	ctx := context.Background()

	e, err := b.Expenses().Add(ctx, ExpenseFields{
		Date: "2024-01-15", Category: "Elektrik", Description: "Ortak alan", Amount: core.Money{Kurus: 30000},
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	amount := core.Money{Kurus: 45000}
	got, found, err := b.Expenses().Update(ctx, e.ID, ExpenseUpdate{Amount: &amount})
	if err != nil || !found {
		t.Fatalf("update: found=%v err=%v", found, err)
	}
	if got.Amount.Kurus != 45000 || got.Category != "Elektrik" || got.Date != "2024-01-15" {
		t.Fatalf("partial update merged wrong: %+v", got)
	}

	if _, found, _ := b.Expenses().Update(ctx, "yok", ExpenseUpdate{}); found {
		t.Fatalf("unknown id must report found=false")
	}

	snap, _ := st.Load(ctx)
	if len(snap.Expenses) != 1 || snap.Expenses[0].Amount.Kurus != 45000 {
		t.Fatalf("update must persist, snapshot %+v", snap.Expenses)
	}

	removed, err := b.Expenses().Remove(ctx, e.ID)
	if err != nil || !removed {
		t.Fatalf("remove: %v/%v", removed, err)
	}
	snap, _ = st.Load(ctx)
	if len(snap.Expenses) != 0 {
		t.Fatalf("remove must persist")
	}
}

func TestExpenseByMonth(t *testing.T) {
	b, _ := newTestBook(t)
	ctx := context.Background()

	dates := []string{"2024-01-05", "2024-01-31", "2024-02-01", "2023-12-31"}
	for _, d := range dates {
		if _, err := b.Expenses().Add(ctx, ExpenseFields{Date: d, Category: "Genel", Amount: core.Money{Kurus: 1000}}); err != nil {
			t.Fatalf("add %s: %v", d, err)
		}
	}

	jan := b.Expenses().ByMonth("2024-01")
	if len(jan) != 2 {
		t.Fatalf("expected 2 january expenses, got %d", len(jan))
	}
	if jan[0].Date != "2024-01-05" || jan[1].Date != "2024-01-31" {
		t.Fatalf("insertion order broken: %s, %s", jan[0].Date, jan[1].Date)
	}
	if got := b.Expenses().ByMonth("2024-03"); len(got) != 0 {
		t.Fatalf("expected no march expenses, got %d", len(got))
	}
}
