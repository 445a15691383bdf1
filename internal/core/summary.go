package core

import "github.com/shopspring/decimal"

// CategoryShare is one bar of the spending breakdown. CategoryID is the
// literal id stored on the expenses; Category is its display resolution,
// which is the fallback category for unknown ids.
type CategoryShare struct {
	CategoryID string
	Category   Category
	Total      decimal.Decimal
	Percentage decimal.Decimal
}

// Summary is a compact view of the whole ledger.
type Summary struct {
	Count     int
	Balance   decimal.Decimal
	Breakdown []CategoryShare
}
