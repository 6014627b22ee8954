package core

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidMonthKey = errors.New("invalid month key")
	ErrMonthOutOfRange = errors.New("month out of range")
	ErrEmptyFlatNo     = errors.New("empty flat number")
	ErrEmptyFullName   = errors.New("empty full name")
	ErrInvalidDate     = errors.New("invalid date")
)

type (
	// Payment is the amount received from a resident for one month.
	Payment struct {
		Paid Money `json:"paid"`
	}

	// Resident is a flat occupant owing a recurring monthly fee.
	//
	// Payments maps month keys to received amounts. PaidThisMonth is the
	// deprecated single-value field older snapshots carry instead of a
	// Payments map; it is never migrated eagerly, only resolved lazily at
	// read time by PaidFor.
	Resident struct {
		ID            string               `json:"id"`
		FlatNo        string               `json:"flatNo"`
		FullName      string               `json:"fullName"`
		MonthlyFee    Money                `json:"monthlyFee"`
		Note          string               `json:"note,omitempty"`
		Payments      map[MonthKey]Payment `json:"payments,omitempty"`
		PaidThisMonth *Money               `json:"paidThisMonth,omitempty"`
	}

	// Expense is a single operating cost on a specific day. The month it
	// belongs to is the 7-character prefix of Date.
	Expense struct {
		ID          string `json:"id"`
		Date        string `json:"date"`
		Category    string `json:"category"`
		Description string `json:"description"`
		Amount      Money  `json:"amount"`
	}
)

func (r Resident) Validate() error {
	if strings.TrimSpace(r.FlatNo) == "" {
		return ErrEmptyFlatNo
	}
	if strings.TrimSpace(r.FullName) == "" {
		return ErrEmptyFullName
	}
	if r.MonthlyFee.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// Clone returns a deep copy; the payments map is never shared.
func (r Resident) Clone() Resident {
	c := r
	if r.Payments != nil {
		c.Payments = make(map[MonthKey]Payment, len(r.Payments))
		for k, v := range r.Payments {
			c.Payments[k] = v
		}
	}
	if r.PaidThisMonth != nil {
		v := *r.PaidThisMonth
		c.PaidThisMonth = &v
	}
	return c
}

func (e Expense) Validate() error {
	if _, err := ParseDayDate(e.Date); err != nil {
		return ErrInvalidDate
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	return nil
}

// ParseDayDate validates a day-granularity "YYYY-MM-DD" date string.
func ParseDayDate(s string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
