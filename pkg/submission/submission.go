// Package submission turns mask values into the fields sent to the matcher
// service.
package submission

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cisan/caripiutang/pkg/mask"
)

const (
	DefaultTolerance   = 100
	DefaultMaxInvoices = 5
	MinMaxInvoices     = 1
	MaxMaxInvoices     = 20
)

// Targets returns the positive amounts of raw as canonical decimal strings,
// in order. Leading zeros are stripped and zero amounts are dropped; digit
// strings of any length are accepted.
func Targets(raw string) []string {
	var out []string
	for _, seg := range mask.Segments(mask.Normalize(raw)) {
		d, err := decimal.NewFromString(seg)
		if err != nil || !d.IsPositive() {
			continue
		}
		out = append(out, d.String())
	}
	return out
}

// Total sums target amounts. Entries that do not parse are skipped.
func Total(targets []string) decimal.Decimal {
	sum := decimal.Zero
	for _, t := range targets {
		d, err := decimal.NewFromString(t)
		if err != nil {
			continue
		}
		sum = sum.Add(d)
	}
	return sum
}

// Tolerance reads the tolerance field. Non-digits are dropped; a blank or
// unparseable field yields def.
func Tolerance(text string, def int) int {
	digits := mask.FilterDigits(text)
	if digits == "" {
		return def
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return def
	}
	return n
}

// ClampTolerance bounds a tolerance below by zero.
func ClampTolerance(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

// ClampMaxInvoices bounds the combination size to [MinMaxInvoices, MaxMaxInvoices].
func ClampMaxInvoices(n int) int {
	if n < MinMaxInvoices {
		return MinMaxInvoices
	}
	if n > MaxMaxInvoices {
		return MaxMaxInvoices
	}
	return n
}
