// Package core provides the finance domain types and rupiah formatting.
//
// Rupiah amounts are whole int64 values (the currency has no sub-unit in
// practice). Formatting follows the id-ID convention: "Rp" prefix, '.' as
// the thousands separator and ',' as the decimal separator.
package core

import (
	"strconv"
	"strings"
)

// ExpNotationThreshold is the magnitude at which formatted amounts switch
// to exponential notation to keep labels readable.
const ExpNotationThreshold = 1e11

// FormatRupiah renders an amount as a full rupiah string, e.g. "Rp15.000".
// At or above ExpNotationThreshold the amount is rendered in exponential
// notation ("Rp1,50e+11").
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	var s string
	if float64(amount) >= ExpNotationThreshold {
		s = strings.ReplaceAll(strconv.FormatFloat(float64(amount), 'e', 2, 64), ".", ",")
	} else {
		s = groupThousands(strconv.FormatInt(amount, 10))
	}
	if neg {
		return "-Rp" + s
	}
	return "Rp" + s
}

// AbbreviateRupiah renders a compact amount for in-chart labels using
// Indonesian suffixes: rb (ribu, thousands), jt (juta, millions) and
// M (miliar, billions). One decimal place, trimmed when zero.
func AbbreviateRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	var s string
	switch {
	case amount >= 1_000_000_000:
		s = abbrev(amount, 1_000_000_000) + "M"
	case amount >= 1_000_000:
		s = abbrev(amount, 1_000_000) + "jt"
	case amount >= 1_000:
		s = abbrev(amount, 1_000) + "rb"
	default:
		s = strconv.FormatInt(amount, 10)
	}
	if neg {
		return "-Rp" + s
	}
	return "Rp" + s
}

// String implements fmt.Stringer with the full rupiah format.
func (m Money) String() string {
	return FormatRupiah(m.Amount)
}

func abbrev(amount, unit int64) string {
	whole := amount / unit
	// first decimal digit, truncated
	frac := (amount % unit) * 10 / unit
	if frac == 0 {
		return strconv.FormatInt(whole, 10)
	}
	return strconv.FormatInt(whole, 10) + "," + strconv.FormatInt(frac, 10)
}

func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}
	var b strings.Builder
	head := n % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < n; i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// ParseRupiah parses a positive rupiah amount from user input. It accepts
// an optional "Rp" prefix and '.' grouping separators ("Rp15.000", "15000").
func ParseRupiah(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "Rp")
	s = strings.ReplaceAll(s, ".", "")
	if s == "" || strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil || v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
