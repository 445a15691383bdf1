// Package core provides money parsing and handling utilities.
//
// Amounts are exact decimals end to end. Rounding to cents happens only when
// formatting for display.
package core

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Bounds on a single expense amount.
const (
	MaxAmountIntDigits  = 12
	MaxAmountFracDigits = 8
)

var (
	moneyPrinter = message.NewPrinter(language.English)
	amountRe     = regexp.MustCompile(`^\d{0,12}(?:[.,]\d{0,8})?$`)
)

// ParseAmount converts user input into a positive decimal amount.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted. Only
// plain digits are allowed, at most 12 before the separator and 8 after it.
// Values that are empty, non-numeric, zero or negative are rejected with
// ErrInvalidAmount. The input precision is kept as-is.
//
// Examples:
//
//	ParseAmount("4.50")  -> 4.5, nil
//	ParseAmount("2,75")  -> 2.75, nil
//	ParseAmount("0")     -> error
//	ParseAmount("1e5")   -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" || !amountRe.MatchString(s) {
		return decimal.Zero, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, ErrInvalidAmount
	}
	if !ValidAmount(d) {
		return decimal.Zero, ErrInvalidAmount
	}
	return d, nil
}

// ValidAmount reports whether d is positive and within the amount bounds.
// The exponent is checked before anything that would rescale d.
func ValidAmount(d decimal.Decimal) bool {
	exp := d.Exponent()
	if exp > MaxAmountIntDigits || exp < -MaxAmountFracDigits {
		return false
	}
	if !d.IsPositive() {
		return false
	}
	return int(exp)+d.NumDigits() <= MaxAmountIntDigits
}

// FormatMoney renders an amount with two fractional digits and thousands
// grouping, e.g. 1234.5 -> "1,234.50".
func FormatMoney(d decimal.Decimal) string {
	fixed := d.StringFixed(2)
	intPart, frac, _ := strings.Cut(fixed, ".")
	if n, err := strconv.ParseInt(intPart, 10, 64); err == nil && intPart != "-0" {
		return moneyPrinter.Sprintf("%d", n) + "." + frac
	}
	return groupDigits(intPart) + "." + frac
}

// groupDigits inserts thousands separators into an integer string the
// printer cannot take as an int64.
func groupDigits(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	var b strings.Builder
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + b.String()
}
