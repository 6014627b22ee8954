package core

// MonthlySummary aggregates dues, payments and expenses for one month.
type MonthlySummary struct {
	Month           MonthKey `json:"month"`
	TotalMonthlyFee Money    `json:"totalMonthlyFee"`
	TotalPaid       Money    `json:"totalPaid"`
	TotalRemaining  Money    `json:"totalRemaining"`
	Income          Money    `json:"income"`
	Expense         Money    `json:"expense"`
	Net             Money    `json:"net"`
}

// Monthly computes the summary for one month. It is a pure function of its
// inputs: calling it repeatedly with unchanged state yields identical
// results.
//
// TotalMonthlyFee counts every resident's full fee regardless of month.
// TotalRemaining sums per-resident floored balances, NOT the difference of
// the totals: an overpaying resident cannot offset another's debt.
func Monthly(residents []Resident, expenses []Expense, month MonthKey) MonthlySummary {
	s := MonthlySummary{Month: month}
	for _, r := range residents {
		s.TotalMonthlyFee = s.TotalMonthlyFee.Add(r.MonthlyFee)
		s.TotalPaid = s.TotalPaid.Add(PaidFor(r, month))
		s.TotalRemaining = s.TotalRemaining.Add(Remaining(r, month))
	}
	// Payments are the only income source modeled.
	s.Income = s.TotalPaid
	for _, e := range expenses {
		if month.MatchesDate(e.Date) {
			s.Expense = s.Expense.Add(e.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// LegacyFallbackMode controls how far a resident's legacy PaidThisMonth
// value reaches in annual summaries. The original revisions were
// inconsistent here; both observed behaviors are available.
type LegacyFallbackMode string

const (
	// LegacyCurrentMonthOnly applies the legacy fallback only to the
	// currently selected month. Historical months count recorded payments
	// only. This is the default.
	LegacyCurrentMonthOnly LegacyFallbackMode = "current-month-only"

	// LegacyAnyMissingMonth applies the fallback to every month lacking a
	// per-month entry, reproducing the original's annual loop, which leaked
	// the current legacy value into all past months.
	LegacyAnyMissingMonth LegacyFallbackMode = "any-missing-month"
)

// IsValid reports whether the mode is one of the supported values.
func (m LegacyFallbackMode) IsValid() bool {
	switch m {
	case LegacyCurrentMonthOnly, LegacyAnyMissingMonth:
		return true
	default:
		return false
	}
}

// AnnualOptions parameterizes the annual summary. CurrentMonth is the month
// selected in the caller's view; it only matters in current-month-only mode.
type AnnualOptions struct {
	Mode         LegacyFallbackMode
	CurrentMonth MonthKey
}

// AnnualRow is one month of an annual summary.
type AnnualRow struct {
	Month   MonthKey `json:"month"`
	Income  Money    `json:"income"`
	Expense Money    `json:"expense"`
	Net     Money    `json:"net"`
}

// AnnualSummary is the twelve-month table plus totals for one year.
type AnnualSummary struct {
	Year         int         `json:"year"`
	Rows         []AnnualRow `json:"rows"`
	TotalIncome  Money       `json:"totalIncome"`
	TotalExpense Money       `json:"totalExpense"`
	TotalNet     Money       `json:"totalNet"`
}

// Annual computes the January..December summary for a year.
func Annual(residents []Resident, expenses []Expense, year int, opts AnnualOptions) AnnualSummary {
	mode := opts.Mode
	if mode == "" {
		mode = LegacyCurrentMonthOnly
	}
	s := AnnualSummary{Year: year, Rows: make([]AnnualRow, 0, 12)}
	for _, key := range MonthsOf(year) {
		row := AnnualRow{Month: key}
		for _, r := range residents {
			if mode == LegacyAnyMissingMonth || key == opts.CurrentMonth {
				row.Income = row.Income.Add(PaidFor(r, key))
			} else {
				row.Income = row.Income.Add(RecordedPaid(r, key))
			}
		}
		for _, e := range expenses {
			if key.MatchesDate(e.Date) {
				row.Expense = row.Expense.Add(e.Amount)
			}
		}
		row.Net = row.Income.Sub(row.Expense)
		s.Rows = append(s.Rows, row)
		s.TotalIncome = s.TotalIncome.Add(row.Income)
		s.TotalExpense = s.TotalExpense.Add(row.Expense)
	}
	s.TotalNet = s.TotalIncome.Sub(s.TotalExpense)
	return s
}
