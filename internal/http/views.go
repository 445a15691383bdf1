package http

import (
	"encoding/json"
	"time"

	"spesa/internal/core"
)

// expenseJSON is the API shape of an expense. Amount stays a JSON number
// with the exact decimal text.
type expenseJSON struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	Amount     json.Number  `json:"amount"`
	CategoryID string       `json:"categoryId"`
	Date       string       `json:"date"`
	Category   categoryJSON `json:"category"`
}

type categoryJSON struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

type shareJSON struct {
	CategoryID string       `json:"categoryId"`
	Category   categoryJSON `json:"category"`
	Total      json.Number  `json:"total"`
	Percentage json.Number  `json:"percentage"`
}

type summaryJSON struct {
	Count            int         `json:"count"`
	Balance          json.Number `json:"balance"`
	BalanceFormatted string      `json:"balanceFormatted"`
	Breakdown        []shareJSON `json:"breakdown"`
}

func toCategoryJSON(c core.Category) categoryJSON {
	return categoryJSON{ID: c.ID, Name: c.Name, Icon: c.Icon, Color: c.Color}
}

func toExpenseJSON(e core.Expense, reg *core.CategoryRegistry) expenseJSON {
	return expenseJSON{
		ID:         e.ID,
		Name:       e.Name,
		Amount:     json.Number(e.Amount.String()),
		CategoryID: e.CategoryID,
		Date:       e.Date.String(),
		Category:   toCategoryJSON(reg.Lookup(e.CategoryID)),
	}
}

func toSummaryJSON(s core.Summary) summaryJSON {
	out := summaryJSON{
		Count:            s.Count,
		Balance:          json.Number(s.Balance.String()),
		BalanceFormatted: core.FormatMoney(s.Balance),
		Breakdown:        make([]shareJSON, 0, len(s.Breakdown)),
	}
	for _, share := range s.Breakdown {
		out.Breakdown = append(out.Breakdown, shareJSON{
			CategoryID: share.CategoryID,
			Category:   toCategoryJSON(share.Category),
			Total:      json.Number(share.Total.String()),
			Percentage: json.Number(share.Percentage.Round(2).String()),
		})
	}
	return out
}

// dashboard is the data the index template renders.
// headerDateLayout renders the date shown under the page title.
const headerDateLayout = "Monday, January 2, 2006"

type dashboard struct {
	Today      string
	Balance    string
	Count      int
	Expenses   []expenseRow
	Shares     []shareRow
	Categories []core.Category
	Form       formValues
	Error      string
}

type expenseRow struct {
	ID       string
	Name     string
	Amount   string
	Date     string
	Label    string
	Category core.Category
}

type shareRow struct {
	Category core.Category
	Total    string
	Percent  string
	Width    int
}

// formValues refills the add form after a rejected submission.
type formValues struct {
	Name       string
	Amount     string
	CategoryID string
	Date       string
}

func newDashboard(ledger *core.Ledger, form formValues) dashboard {
	reg := ledger.Registry()
	summary := ledger.Summary()
	expenses := ledger.List()

	if form.CategoryID == "" {
		form.CategoryID = reg.Default().ID
	}
	now := time.Now()
	if form.Date == "" {
		form.Date = now.Format(core.DateLayout)
	}

	d := dashboard{
		Today:      now.Format(headerDateLayout),
		Balance:    core.FormatMoney(summary.Balance),
		Count:      summary.Count,
		Expenses:   make([]expenseRow, 0, len(expenses)),
		Shares:     make([]shareRow, 0, len(summary.Breakdown)),
		Categories: reg.All(),
		Form:       form,
	}
	for _, e := range expenses {
		d.Expenses = append(d.Expenses, expenseRow{
			ID:       e.ID,
			Name:     e.Name,
			Amount:   core.FormatMoney(e.Amount),
			Date:     e.Date.String(),
			Label:    e.Date.Label(),
			Category: reg.Lookup(e.CategoryID),
		})
	}
	for _, share := range summary.Breakdown {
		d.Shares = append(d.Shares, shareRow{
			Category: share.Category,
			Total:    core.FormatMoney(share.Total),
			Percent:  share.Percentage.StringFixed(1),
			Width:    barWidth(share),
		})
	}
	return d
}

// barWidth is the rendered bar length in percent. Any spending stays visible.
func barWidth(share core.CategoryShare) int {
	w := int(share.Percentage.Round(0).IntPart())
	return max(2, min(w, 100))
}
