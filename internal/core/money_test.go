package core

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseAmount(t *testing.T) {
	cases := []struct {
		in  string
		out string
		ok  bool
	}{
		{"1", "1", true},
		{"1.0", "1", true},
		{"4.50", "4.5", true},
		{"2,75", "2.75", true},
		{"0.01", "0.01", true},
		{"1.005", "1.005", true}, // no rounding at entry
		{" 2.50 ", "2.5", true},
		{"-1", "", false},
		{"-5", "", false},
		{"0", "", false},
		{"0.00", "", false},
		{"abc", "", false},
		{"NaN", "", false},
		{"Inf", "", false},
		{"1.2.3", "", false},
		{"", "", false},
		{".5", "0.5", true},
		{"999999999999.99999999", "999999999999.99999999", true},
		{"1e5", "", false},
		{"1E5", "", false},
		{"1e50000000", "", false},
		{"1234567890123456789012345678901234567890", "", false},
		{"1234567890123", "", false},
		{"0.123456789", "", false},
		{"+5", "", false},
		{".", "", false},
	}
	for _, tc := range cases {
		got, err := ParseAmount(tc.in)
		if tc.ok {
			if assert.NoError(t, err, tc.in) {
				assert.True(t, got.Equal(decimal.RequireFromString(tc.out)), "%q: got %s", tc.in, got)
			}
		} else {
			assert.ErrorIs(t, err, ErrInvalidAmount, tc.in)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", FormatMoney(decimal.Zero))
	assert.Equal(t, "7.25", FormatMoney(decimal.RequireFromString("7.25")))
	assert.Equal(t, "1,234.50", FormatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "1.01", FormatMoney(decimal.RequireFromString("1.005")))
	assert.Equal(t, "999.00", FormatMoney(decimal.RequireFromString("999")))
	assert.Equal(t, "12,345,678,901,234,567.89", FormatMoney(decimal.RequireFromString("12345678901234567.89")))
	assert.Equal(t, "1,234,567,890,123,456,789,012,345.50", FormatMoney(decimal.RequireFromString("1234567890123456789012345.5")))
	assert.Equal(t, "-0.50", FormatMoney(decimal.RequireFromString("-0.5")))
}

func TestValidAmount(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"0.01", true},
		{"999999999999", true},
		{"1e11", true},
		{"1e12", false},
		{"1e50000000", false},
		{"1e-9", false},
		{"0", false},
		{"-3", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.ok, ValidAmount(decimal.RequireFromString(tc.in)), tc.in)
	}
}
