// Package core provides the dues ledger domain: money, month keys,
// residents, expenses and the summary computations over them.
//
// This file contains money parsing, rounding and formatting. Amounts are
// stored as integer kurus so that repeated addition over many residents and
// months cannot accumulate floating-point drift; floats appear only at the
// persistence boundary (older snapshots store plain decimal numbers) and in
// display formatting.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Money is an exact amount in kurus (1/100 TL).
type Money struct {
	Kurus int64
}

// FromFloat converts a decimal amount to Money with half-up rounding on the
// second decimal place. Legacy snapshot data carries plain floating numbers,
// so every float entering the system passes through here.
func FromFloat(v float64) Money {
	return Money{Kurus: int64(math.Round(v * 100))}
}

// Float returns the decimal value for display and serialization only.
// Use kurus for all arithmetic.
func (m Money) Float() float64 {
	return float64(m.Kurus) / 100.0
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{Kurus: m.Kurus + o.Kurus}
}

// Sub returns m - o. The result may be negative.
func (m Money) Sub(o Money) Money {
	return Money{Kurus: m.Kurus - o.Kurus}
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.Kurus < 0
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.Kurus == 0
}

func (m Money) Validate() error {
	if m.Kurus < 0 {
		return ErrInvalidAmount
	}
	return nil
}

// trPrinter localizes numeric verbs with Turkish separators
// (dot for thousands, comma for decimals).
var trPrinter = message.NewPrinter(language.Turkish)

// Format renders the amount with exactly two fraction digits using Turkish
// locale separators: 1234.5 kurus total -> "1.234,50".
func (m Money) Format() string {
	return trPrinter.Sprintf("%.2f", m.Float())
}

// MarshalJSON emits the amount as a plain decimal number, the format the
// original snapshots use.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatFloat(m.Float(), 'f', -1, 64)), nil
}

// UnmarshalJSON accepts any decimal number and rounds it half-up to kurus.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return ErrInvalidAmount
	}
	*m = FromFloat(v)
	return nil
}

// ParseDecimalToKurus converts a decimal string to kurus with half-up
// rounding on the third decimal place. It accepts both dot (12.34) and comma
// (12,34) decimal separators. Zero is a valid amount (an unpaid month);
// negative values and malformed input are rejected.
//
// Examples:
//
//	ParseDecimalToKurus("12.34") -> 1234, nil
//	ParseDecimalToKurus("12,34") -> 1234, nil
//	ParseDecimalToKurus("12.345") -> 1234, nil (rounds down)
//	ParseDecimalToKurus("12.346") -> 1235, nil (rounds up)
func ParseDecimalToKurus(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Only unsigned values allowed
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take first two fractional digits; then half-up rounding on third
	var fracKurus int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracKurus = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracKurus += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracKurus++
			}
		}
	}
	return iv*100 + fracKurus, nil
}
