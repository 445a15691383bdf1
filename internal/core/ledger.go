package core

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Store persists full ledger snapshots.
//
// Load never fails: an unreadable or corrupt store yields an empty slice.
// Save must replace the stored snapshot atomically.
type Store interface {
	Load(ctx context.Context) []Expense
	Save(ctx context.Context, expenses []Expense) error
}

// Ledger is the ordered, newest-first collection of expenses for a session.
// Every mutation is written through to the Store before it returns; a failed
// write leaves the ledger as it was.
type Ledger struct {
	mu       sync.Mutex
	store    Store
	registry *CategoryRegistry
	newID    func() string
	expenses []Expense
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithRegistry overrides the built-in category registry.
func WithRegistry(r *CategoryRegistry) Option {
	return func(l *Ledger) {
		if r != nil {
			l.registry = r
		}
	}
}

// WithIDGenerator overrides expense id generation.
func WithIDGenerator(fn func() string) Option {
	return func(l *Ledger) {
		if fn != nil {
			l.newID = fn
		}
	}
}

// NewLedger creates a ledger hydrated from store. A nil store keeps the
// ledger purely in memory.
func NewLedger(ctx context.Context, store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:    store,
		registry: NewCategoryRegistry(),
		newID:    newExpenseID,
	}
	for _, opt := range opts {
		opt(l)
	}
	if store != nil {
		l.expenses = slices.Clone(store.Load(ctx))
	}
	return l
}

// newExpenseID returns a UUIDv7: millisecond timestamp plus 74 random bits.
func newExpenseID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Registry returns the category registry used by the ledger.
func (l *Ledger) Registry() *CategoryRegistry {
	return l.registry
}

// Add validates d, prepends the new expense and persists the ledger.
// Invalid input returns a *ValidationError and changes nothing.
func (l *Ledger) Add(ctx context.Context, d Draft) (Expense, error) {
	name, amount, date, err := d.parse()
	if err != nil {
		return Expense{}, err
	}
	categoryID := strings.TrimSpace(d.CategoryID)
	if categoryID == "" {
		categoryID = l.registry.Default().ID
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	e := Expense{
		ID:         l.newID(),
		Name:       name,
		Amount:     amount,
		CategoryID: categoryID,
		Date:       date,
	}
	next := make([]Expense, 0, len(l.expenses)+1)
	next = append(next, e)
	next = append(next, l.expenses...)
	if err := l.commit(ctx, next); err != nil {
		return Expense{}, fmt.Errorf("save expense: %w", err)
	}
	return e, nil
}

// Remove deletes the expense with the given id. It reports whether an
// expense was removed; an unknown id is not an error and writes nothing.
func (l *Ledger) Remove(ctx context.Context, id string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := slices.IndexFunc(l.expenses, func(e Expense) bool { return e.ID == id })
	if i < 0 {
		return false, nil
	}
	next := slices.Delete(slices.Clone(l.expenses), i, i+1)
	if err := l.commit(ctx, next); err != nil {
		return false, fmt.Errorf("remove expense: %w", err)
	}
	return true, nil
}

// Clear empties the ledger. It always writes, even when already empty.
func (l *Ledger) Clear(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.commit(ctx, []Expense{}); err != nil {
		return fmt.Errorf("clear expenses: %w", err)
	}
	return nil
}

func (l *Ledger) commit(ctx context.Context, next []Expense) error {
	if l.store != nil {
		if err := l.store.Save(ctx, next); err != nil {
			return err
		}
	}
	l.expenses = next
	return nil
}

// List returns a newest-first snapshot.
func (l *Ledger) List() []Expense {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.expenses)
}

func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.expenses)
}

// Get looks up an expense by id.
func (l *Ledger) Get(id string) (Expense, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, e := range l.expenses {
		if e.ID == id {
			return e, true
		}
	}
	return Expense{}, false
}

// Balance is the exact sum of all amounts; zero for an empty ledger.
func (l *Ledger) Balance() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balance()
}

// CategoryTotals sums amounts per literal category id. Ids missing from the
// registry keep their own bucket; only ids with spending appear.
func (l *Ledger) CategoryTotals() map[string]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.categoryTotals()
}

// CategoryPercentages maps each category id to its share of the balance in
// [0,100]. The map is empty when the ledger is empty.
func (l *Ledger) CategoryPercentages() map[string]decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make(map[string]decimal.Decimal)
	balance := l.balance()
	if !balance.IsPositive() {
		return out
	}
	for id, total := range l.categoryTotals() {
		out[id] = percentage(total, balance)
	}
	return out
}

// Breakdown returns the per-category shares resolved for display, largest
// first, ties broken by category id.
func (l *Ledger) Breakdown() []CategoryShare {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.breakdown()
}

// Summary returns count, balance and breakdown from one consistent snapshot.
func (l *Ledger) Summary() Summary {
	l.mu.Lock()
	defer l.mu.Unlock()
	return Summary{
		Count:     len(l.expenses),
		Balance:   l.balance(),
		Breakdown: l.breakdown(),
	}
}

func (l *Ledger) balance() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range l.expenses {
		sum = sum.Add(e.Amount)
	}
	return sum
}

func (l *Ledger) categoryTotals() map[string]decimal.Decimal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range l.expenses {
		if cur, ok := totals[e.CategoryID]; ok {
			totals[e.CategoryID] = cur.Add(e.Amount)
		} else {
			totals[e.CategoryID] = e.Amount
		}
	}
	return totals
}

func (l *Ledger) breakdown() []CategoryShare {
	balance := l.balance()
	if !balance.IsPositive() {
		return nil
	}
	totals := l.categoryTotals()
	shares := make([]CategoryShare, 0, len(totals))
	for id, total := range totals {
		shares = append(shares, CategoryShare{
			CategoryID: id,
			Category:   l.registry.Lookup(id),
			Total:      total,
			Percentage: percentage(total, balance),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.CategoryID, b.CategoryID)
	})
	return shares
}

func percentage(part, whole decimal.Decimal) decimal.Decimal {
	return part.Mul(hundred).Div(whole)
}
