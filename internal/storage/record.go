package storage

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"

	"spesa/internal/core"
)

// record is the persisted shape of an expense. Field names are part of the
// stored format and must not change.
type record struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Amount     json.Number `json:"amount"`
	CategoryID string      `json:"categoryId"`
	Date       string      `json:"date"`
}

func toRecord(e core.Expense) record {
	return record{
		ID:         e.ID,
		Name:       e.Name,
		Amount:     json.Number(e.Amount.String()),
		CategoryID: e.CategoryID,
		Date:       e.Date.String(),
	}
}

func (r record) expense() (core.Expense, error) {
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return core.Expense{}, fmt.Errorf("amount %q: %w", r.Amount, core.ErrInvalidAmount)
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Expense{}, err
	}
	e := core.Expense{
		ID:         r.ID,
		Name:       r.Name,
		Amount:     amount,
		CategoryID: r.CategoryID,
		Date:       date,
	}
	if err := e.Validate(); err != nil {
		return core.Expense{}, err
	}
	return e, nil
}

func encodeLedger(expenses []core.Expense) ([]byte, error) {
	records := make([]record, len(expenses))
	for i, e := range expenses {
		records[i] = toRecord(e)
	}
	return json.Marshal(records)
}

// decodeLedger parses a stored ledger. A value that is not a JSON array is an
// error; individual records that fail to parse or validate, or repeat an id
// already seen, are skipped and counted.
func decodeLedger(data []byte) (expenses []core.Expense, skipped int, err error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, 0, fmt.Errorf("decode ledger: %w", err)
	}

	expenses = make([]core.Expense, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, item := range raw {
		var r record
		if err := json.Unmarshal(item, &r); err != nil {
			skipped++
			continue
		}
		e, err := r.expense()
		if err != nil {
			skipped++
			continue
		}
		if _, dup := seen[e.ID]; dup {
			skipped++
			continue
		}
		seen[e.ID] = struct{}{}
		expenses = append(expenses, e)
	}
	return expenses, skipped, nil
}
