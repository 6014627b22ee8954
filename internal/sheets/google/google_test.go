package google

import (
	"testing"

	"aidat/internal/core"
)

func TestSummaryRows(t *testing.T) {
	s := core.AnnualSummary{
		Year: 2024,
		Rows: []core.AnnualRow{
			{Month: "2024-01", Income: core.Money{Kurus: 150000}, Expense: core.Money{Kurus: 30000}, Net: core.Money{Kurus: 120000}},
			{Month: "2024-02", Income: core.Money{Kurus: 0}, Expense: core.Money{Kurus: 5000}, Net: core.Money{Kurus: -5000}},
		},
		TotalIncome:  core.Money{Kurus: 150000},
		TotalExpense: core.Money{Kurus: 35000},
		TotalNet:     core.Money{Kurus: 115000},
	}

	rows, err := summaryRows(s)
	if err != nil {
		t.Fatalf("summaryRows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header + 2 months + totals, got %d rows", len(rows))
	}
	if rows[0][0] != "2024" {
		t.Errorf("header year: got %v", rows[0][0])
	}
	if rows[1][0] != "Ocak 2024" {
		t.Errorf("month label: got %v", rows[1][0])
	}
	if rows[2][3] != -50.0 {
		t.Errorf("net value: got %v", rows[2][3])
	}
	if rows[3][0] != "Toplam" || rows[3][1] != 1500.0 {
		t.Errorf("totals row: got %v", rows[3])
	}
}

func TestSummaryRowsBadMonth(t *testing.T) {
	s := core.AnnualSummary{
		Year: 2024,
		Rows: []core.AnnualRow{{Month: "2024-13"}},
	}
	if _, err := summaryRows(s); err == nil {
		t.Fatal("expected error for month outside 1-12")
	}
}
