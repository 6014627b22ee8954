package core

import (
	"errors"
	"testing"
)

func TestResidentValidate(t *testing.T) {
	good := Resident{FlatNo: "3", FullName: "Ayşe Demir", MonthlyFee: Money{Kurus: 100000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		r    Resident
		want error
	}{
		{Resident{FlatNo: "  ", FullName: "Ad", MonthlyFee: Money{Kurus: 1}}, ErrEmptyFlatNo},
		{Resident{FlatNo: "1", FullName: "", MonthlyFee: Money{Kurus: 1}}, ErrEmptyFullName},
		{Resident{FlatNo: "1", FullName: "Ad", MonthlyFee: Money{Kurus: -1}}, ErrInvalidAmount},
	}
	for i, tc := range cases {
		if err := tc.r.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestExpenseValidate(t *testing.T) {
	good := Expense{Date: "2024-01-05", Category: "Temizlik", Description: "merdiven", Amount: Money{Kurus: 30000}}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	cases := []struct {
		e    Expense
		want error
	}{
		{Expense{Date: "", Amount: Money{Kurus: 1}}, ErrInvalidDate},
		{Expense{Date: "05.01.2024", Amount: Money{Kurus: 1}}, ErrInvalidDate},
		{Expense{Date: "2024-01", Amount: Money{Kurus: 1}}, ErrInvalidDate},
		{Expense{Date: "2024-01-05", Amount: Money{Kurus: -1}}, ErrInvalidAmount},
	}
	for i, tc := range cases {
		if err := tc.e.Validate(); !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
	}
}

func TestResidentCloneDoesNotShareState(t *testing.T) {
	legacy := Money{Kurus: 500}
	r := Resident{
		ID:            "r1",
		FlatNo:        "1",
		FullName:      "Ad",
		Payments:      map[MonthKey]Payment{"2024-01": {Paid: Money{Kurus: 100}}},
		PaidThisMonth: &legacy,
	}
	c := r.Clone()
	c.Payments["2024-02"] = Payment{Paid: Money{Kurus: 200}}
	c.PaidThisMonth.Kurus = 999

	if len(r.Payments) != 1 {
		t.Fatalf("clone mutated original payments map")
	}
	if r.PaidThisMonth.Kurus != 500 {
		t.Fatalf("clone mutated original legacy field")
	}
}
