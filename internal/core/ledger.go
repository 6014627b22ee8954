package core

import "sort"

// This file is the payment ledger: the one place that resolves a resident's
// paid amount for a month, including the legacy single-field fallback.
// Callers must never reimplement the fallback; the original system grew
// near-duplicate copies of it and they drifted apart.

// PaidFor returns the amount the resident paid for the given month.
//
// Resolution order: the per-month entry wins; the legacy PaidThisMonth
// scalar applies only when the resident has no Payments map at all; anything
// else is zero. The fallback is evaluated on every call and never cached,
// because which month counts as "current" can change between calls.
func PaidFor(r Resident, month MonthKey) Money {
	if p, ok := r.Payments[month]; ok {
		return p.Paid
	}
	if len(r.Payments) == 0 && r.PaidThisMonth != nil {
		return *r.PaidThisMonth
	}
	return Money{}
}

// RecordedPaid returns the per-month entry only, with no legacy fallback.
// The annual summary uses it for historical months in current-month-only
// mode.
func RecordedPaid(r Resident, month MonthKey) Money {
	if p, ok := r.Payments[month]; ok {
		return p.Paid
	}
	return Money{}
}

// SetPaid inserts or overwrites the resident's payment for the month.
// Negative amounts are rejected. The legacy PaidThisMonth field is left in
// place; once a per-month entry exists it is dead but harmless.
func SetPaid(r *Resident, month MonthKey, amount Money) error {
	if amount.IsNegative() {
		return ErrInvalidAmount
	}
	if r.Payments == nil {
		r.Payments = make(map[MonthKey]Payment)
	}
	r.Payments[month] = Payment{Paid: amount}
	return nil
}

// Remaining returns max(monthlyFee - paid, 0) for the month. Overpayment
// floors to zero here; the history view keeps the signed value.
func Remaining(r Resident, month MonthKey) Money {
	rem := r.MonthlyFee.Sub(PaidFor(r, month))
	if rem.IsNegative() {
		return Money{}
	}
	return rem
}

// HistoryEntry is one row of a resident's payment history.
type HistoryEntry struct {
	Month     MonthKey `json:"month"`
	Monthly   Money    `json:"monthly"`
	Paid      Money    `json:"paid"`
	Remaining Money    `json:"remaining"`
}

// History lists the resident's recorded payments, most recent month first.
// Remaining is signed: an overpaid month shows a negative value so the
// overpayment stays visible, unlike the floored monthly view.
func History(r Resident) []HistoryEntry {
	entries := make([]HistoryEntry, 0, len(r.Payments))
	for month, p := range r.Payments {
		entries = append(entries, HistoryEntry{
			Month:     month,
			Monthly:   r.MonthlyFee,
			Paid:      p.Paid,
			Remaining: r.MonthlyFee.Sub(p.Paid),
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Month.Compare(entries[j].Month) > 0
	})
	return entries
}
