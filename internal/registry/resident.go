package registry

import (
	"context"

	"aidat/internal/core"

	"github.com/google/uuid"
)

// ResidentFields is the caller-supplied part of a resident record.
type ResidentFields struct {
	FlatNo     string
	FullName   string
	MonthlyFee core.Money
	Note       string
}

// ResidentUpdate carries a partial update; nil fields keep their current
// value.
type ResidentUpdate struct {
	FlatNo     *string
	FullName   *string
	MonthlyFee *core.Money
	Note       *string
}

// ResidentRegistry owns the resident list. Order is insertion order;
// deletion rebuilds the slice by filtering.
type ResidentRegistry struct {
	book  *Book
	items []core.Resident
}

// Add creates a resident. When paidThisMonth is positive and forMonth is a
// valid month key, the first payment is seeded; otherwise the resident
// starts with no payment history. Returns the created record together with
// any persistence error (the record is in memory either way).
func (rr *ResidentRegistry) Add(ctx context.Context, fields ResidentFields, paidThisMonth core.Money, forMonth string) (core.Resident, error) {
	if paidThisMonth.IsNegative() {
		return core.Resident{}, core.ErrInvalidAmount
	}
	r := core.Resident{
		ID:         uuid.NewString(),
		FlatNo:     fields.FlatNo,
		FullName:   fields.FullName,
		MonthlyFee: fields.MonthlyFee,
		Note:       fields.Note,
	}
	if err := r.Validate(); err != nil {
		return core.Resident{}, err
	}
	if month, err := core.ParseMonthKey(forMonth); err == nil && paidThisMonth.Kurus > 0 {
		_ = core.SetPaid(&r, month, paidThisMonth)
	}

	rr.book.mu.Lock()
	defer rr.book.mu.Unlock()
	rr.items = append(rr.items, r)
	return r.Clone(), rr.book.persistLocked(ctx, "resident", "create", r.ID)
}

// Update merges upd over the existing record. The payment for forMonth is
// overwritten only when forMonth is non-empty; all other months stay
// untouched. The second return value is false when the id is unknown, which
// is a routine outcome (stale UI list), not an error.
func (rr *ResidentRegistry) Update(ctx context.Context, id string, upd ResidentUpdate, paidThisMonth core.Money, forMonth string) (core.Resident, bool, error) {
	rr.book.mu.Lock()
	defer rr.book.mu.Unlock()

	idx := rr.indexLocked(id)
	if idx < 0 {
		return core.Resident{}, false, nil
	}

	merged := rr.items[idx].Clone()
	if upd.FlatNo != nil {
		merged.FlatNo = *upd.FlatNo
	}
	if upd.FullName != nil {
		merged.FullName = *upd.FullName
	}
	if upd.MonthlyFee != nil {
		merged.MonthlyFee = *upd.MonthlyFee
	}
	if upd.Note != nil {
		merged.Note = *upd.Note
	}
	if err := merged.Validate(); err != nil {
		return core.Resident{}, true, err
	}
	if forMonth != "" {
		month, err := core.ParseMonthKey(forMonth)
		if err != nil {
			return core.Resident{}, true, err
		}
		if err := core.SetPaid(&merged, month, paidThisMonth); err != nil {
			return core.Resident{}, true, err
		}
	}

	rr.items[idx] = merged
	return merged.Clone(), true, rr.book.persistLocked(ctx, "resident", "update", id)
}

// SetPaid records the resident's payment for one month and persists it.
func (rr *ResidentRegistry) SetPaid(ctx context.Context, id string, month core.MonthKey, amount core.Money) (core.Resident, bool, error) {
	rr.book.mu.Lock()
	defer rr.book.mu.Unlock()

	idx := rr.indexLocked(id)
	if idx < 0 {
		return core.Resident{}, false, nil
	}
	if err := core.SetPaid(&rr.items[idx], month, amount); err != nil {
		return core.Resident{}, true, err
	}
	return rr.items[idx].Clone(), true, rr.book.persistLocked(ctx, "resident", "update", id)
}

// Remove deletes the resident. Removing an unknown id is a no-op reported
// as false; nothing is persisted in that case.
func (rr *ResidentRegistry) Remove(ctx context.Context, id string) (bool, error) {
	rr.book.mu.Lock()
	defer rr.book.mu.Unlock()

	idx := rr.indexLocked(id)
	if idx < 0 {
		return false, nil
	}
	kept := make([]core.Resident, 0, len(rr.items)-1)
	kept = append(kept, rr.items[:idx]...)
	kept = append(kept, rr.items[idx+1:]...)
	rr.items = kept
	return true, rr.book.persistLocked(ctx, "resident", "delete", id)
}

// Get returns a copy of the resident, if present.
func (rr *ResidentRegistry) Get(id string) (core.Resident, bool) {
	rr.book.mu.Lock()
	defer rr.book.mu.Unlock()
	idx := rr.indexLocked(id)
	if idx < 0 {
		return core.Resident{}, false
	}
	return rr.items[idx].Clone(), true
}

// All returns copies of every resident in insertion order.
func (rr *ResidentRegistry) All() []core.Resident {
	rr.book.mu.Lock()
	defer rr.book.mu.Unlock()
	out := make([]core.Resident, len(rr.items))
	for i, r := range rr.items {
		out[i] = r.Clone()
	}
	return out
}

// History returns the resident's payment history, most recent first.
func (rr *ResidentRegistry) History(id string) ([]core.HistoryEntry, bool) {
	r, ok := rr.Get(id)
	if !ok {
		return nil, false
	}
	return core.History(r), true
}

func (rr *ResidentRegistry) indexLocked(id string) int {
	for i, r := range rr.items {
		if r.ID == id {
			return i
		}
	}
	return -1
}
