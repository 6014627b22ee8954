package registry

import (
	"context"

	"aidat/internal/core"

	"github.com/google/uuid"
)

// ExpenseFields is the caller-supplied part of an expense record.
type ExpenseFields struct {
	Date        string
	Category    string
	Description string
	Amount      core.Money
}

// ExpenseUpdate carries a partial update; nil fields keep their current
// value.
type ExpenseUpdate struct {
	Date        *string
	Category    *string
	Description *string
	Amount      *core.Money
}

// ExpenseRegistry owns the expense list, insertion-ordered.
type ExpenseRegistry struct {
	book  *Book
	items []core.Expense
}

// Add creates an expense and persists the snapshot.
func (er *ExpenseRegistry) Add(ctx context.Context, fields ExpenseFields) (core.Expense, error) {
	e := core.Expense{
		ID:          uuid.NewString(),
		Date:        fields.Date,
		Category:    fields.Category,
		Description: fields.Description,
		Amount:      fields.Amount,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}

	er.book.mu.Lock()
	defer er.book.mu.Unlock()
	er.items = append(er.items, e)
	return e, er.book.persistLocked(ctx, "expense", "create", e.ID)
}

// Update merges upd over the existing record; false when the id is unknown.
func (er *ExpenseRegistry) Update(ctx context.Context, id string, upd ExpenseUpdate) (core.Expense, bool, error) {
	er.book.mu.Lock()
	defer er.book.mu.Unlock()

	idx := er.indexLocked(id)
	if idx < 0 {
		return core.Expense{}, false, nil
	}

	merged := er.items[idx]
	if upd.Date != nil {
		merged.Date = *upd.Date
	}
	if upd.Category != nil {
		merged.Category = *upd.Category
	}
	if upd.Description != nil {
		merged.Description = *upd.Description
	}
	if upd.Amount != nil {
		merged.Amount = *upd.Amount
	}
	if err := merged.Validate(); err != nil {
		return core.Expense{}, true, err
	}

	er.items[idx] = merged
	return merged, true, er.book.persistLocked(ctx, "expense", "update", id)
}

// Remove deletes the expense; false (and no persistence) when absent.
func (er *ExpenseRegistry) Remove(ctx context.Context, id string) (bool, error) {
	er.book.mu.Lock()
	defer er.book.mu.Unlock()

	idx := er.indexLocked(id)
	if idx < 0 {
		return false, nil
	}
	kept := make([]core.Expense, 0, len(er.items)-1)
	kept = append(kept, er.items[:idx]...)
	kept = append(kept, er.items[idx+1:]...)
	er.items = kept
	return true, er.book.persistLocked(ctx, "expense", "delete", id)
}

// All returns every expense in insertion order.
func (er *ExpenseRegistry) All() []core.Expense {
	er.book.mu.Lock()
	defer er.book.mu.Unlock()
	return append([]core.Expense(nil), er.items...)
}

// ByMonth returns the expenses whose date falls inside the month, in
// insertion order.
func (er *ExpenseRegistry) ByMonth(month core.MonthKey) []core.Expense {
	er.book.mu.Lock()
	defer er.book.mu.Unlock()
	var out []core.Expense
	for _, e := range er.items {
		if month.MatchesDate(e.Date) {
			out = append(out, e)
		}
	}
	return out
}

func (er *ExpenseRegistry) indexLocked(id string) int {
	for i, e := range er.items {
		if e.ID == id {
			return i
		}
	}
	return -1
}
