package core

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// MonthKey identifies a calendar month as "YYYY-MM". Lexicographic order of
// the string form coincides with chronological order, which the ledger and
// summaries rely on.
type MonthKey string

var monthKeyPattern = regexp.MustCompile(`^\d{4}-\d{2}$`)

// ParseMonthKey validates the "YYYY-MM" shape. The month component is only
// range-checked when a label is requested, mirroring how the keys flow
// through the system as opaque strings.
func ParseMonthKey(s string) (MonthKey, error) {
	if !monthKeyPattern.MatchString(s) {
		return "", ErrInvalidMonthKey
	}
	return MonthKey(s), nil
}

// MonthKeyOf returns the key for the month containing t.
func MonthKeyOf(t time.Time) MonthKey {
	return MonthKey(t.Format("2006-01"))
}

func (k MonthKey) String() string { return string(k) }

// Year returns the year component.
func (k MonthKey) Year() int {
	y, _ := strconv.Atoi(string(k[:4]))
	return y
}

// Month returns the month component (not range-checked).
func (k MonthKey) Month() int {
	m, _ := strconv.Atoi(string(k[5:]))
	return m
}

// Compare orders keys chronologically: negative when k is earlier than o.
func (k MonthKey) Compare(o MonthKey) int {
	switch {
	case k < o:
		return -1
	case k > o:
		return 1
	default:
		return 0
	}
}

// monthNames is indexed 1-12.
var monthNames = [...]string{
	"Ocak", "Şubat", "Mart", "Nisan", "Mayıs", "Haziran",
	"Temmuz", "Ağustos", "Eylül", "Ekim", "Kasım", "Aralık",
}

// Label renders the key as a Turkish month name plus year, e.g.
// "Ocak 2024". Fails when the month component is outside 1-12.
func (k MonthKey) Label() (string, error) {
	if _, err := ParseMonthKey(string(k)); err != nil {
		return "", err
	}
	m := k.Month()
	if m < 1 || m > 12 {
		return "", ErrMonthOutOfRange
	}
	return fmt.Sprintf("%s %d", monthNames[m-1], k.Year()), nil
}

// MonthsOf returns the twelve keys of year in order, January through
// December.
func MonthsOf(year int) []MonthKey {
	keys := make([]MonthKey, 12)
	for i := range keys {
		keys[i] = MonthKey(fmt.Sprintf("%04d-%02d", year, i+1))
	}
	return keys
}

// MatchesDate reports whether the day-granularity date string ("YYYY-MM-DD")
// falls inside this month, by prefix comparison.
func (k MonthKey) MatchesDate(date string) bool {
	return len(k) == 7 && len(date) >= 7 && date[:7] == string(k)
}
