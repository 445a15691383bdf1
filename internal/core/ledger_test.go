package core

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	loaded []Expense
	saves  [][]Expense
	err    error
}

func (f *fakeStore) Load(context.Context) []Expense { return f.loaded }

func (f *fakeStore) Save(_ context.Context, expenses []Expense) error {
	if f.err != nil {
		return f.err
	}
	f.saves = append(f.saves, slices.Clone(expenses))
	return nil
}

func (f *fakeStore) last() []Expense {
	if len(f.saves) == 0 {
		return nil
	}
	return f.saves[len(f.saves)-1]
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTestLedger(t *testing.T) (*Ledger, *fakeStore) {
	t.Helper()
	store := &fakeStore{}
	return NewLedger(context.Background(), store, WithIDGenerator(seqIDs())), store
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func names(expenses []Expense) []string {
	out := make([]string, len(expenses))
	for i, e := range expenses {
		out[i] = e.Name
	}
	return out
}

func TestLedger_CoffeeAndBus(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)

	coffee, err := l.Add(ctx, Draft{Name: "Coffee", Amount: "4.50", CategoryID: "food", Date: "2024-01-10"})
	require.NoError(t, err)
	_, err = l.Add(ctx, Draft{Name: "Bus", Amount: "2.75", CategoryID: "transport", Date: "2024-01-10"})
	require.NoError(t, err)

	assert.Equal(t, "id-1", coffee.ID)
	assert.True(t, l.Balance().Equal(dec("7.25")), "balance %s", l.Balance())
	assert.Equal(t, []string{"Bus", "Coffee"}, names(l.List()))

	totals := l.CategoryTotals()
	require.Len(t, totals, 2)
	assert.True(t, totals["food"].Equal(dec("4.50")))
	assert.True(t, totals["transport"].Equal(dec("2.75")))

	pct := l.CategoryPercentages()
	require.Len(t, pct, 2)
	assert.Equal(t, "62.07", pct["food"].Round(2).String())
	assert.Equal(t, "37.93", pct["transport"].Round(2).String())

	// Write-through: one save per add, holding the full newest-first list.
	require.Len(t, store.saves, 2)
	assert.Equal(t, []string{"Bus", "Coffee"}, names(store.last()))
}

func TestLedger_BalanceIsExact(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	// 0.1 ten times is exactly 1 with decimals.
	for i := 0; i < 10; i++ {
		_, err := l.Add(ctx, Draft{Name: "dime", Amount: "0.1", CategoryID: "other", Date: "2024-01-01"})
		require.NoError(t, err)
	}
	assert.True(t, l.Balance().Equal(decimal.NewFromInt(1)), "balance %s", l.Balance())

	var cents int64
	amounts := []string{"19.99", "0.01", "1234.56", "3.333", "7"}
	for _, a := range amounts {
		_, err := l.Add(ctx, Draft{Name: "x", Amount: a, CategoryID: "food", Date: "2024-01-01"})
		require.NoError(t, err)
	}
	cents = 1999 + 1 + 123456 + 700
	want := decimal.New(cents, -2).Add(dec("3.333")).Add(decimal.NewFromInt(1))
	assert.True(t, l.Balance().Equal(want), "balance %s want %s", l.Balance(), want)
}

func TestLedger_AddThenRemoveRestores(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	_, err := l.Add(ctx, Draft{Name: "Rent", Amount: "900", CategoryID: "utilities", Date: "2024-01-01"})
	require.NoError(t, err)

	before := l.List()
	beforeBalance := l.Balance()

	e, err := l.Add(ctx, Draft{Name: "Movie", Amount: "12.5", CategoryID: "entertainment", Date: "2024-01-02"})
	require.NoError(t, err)
	removed, err := l.Remove(ctx, e.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	assert.Equal(t, before, l.List())
	assert.True(t, l.Balance().Equal(beforeBalance))
	assert.Len(t, store.saves, 3)
	assert.Equal(t, before, store.last())
}

func TestLedger_RemoveUnknownIsNoop(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	_, err := l.Add(ctx, Draft{Name: "Tea", Amount: "3", CategoryID: "food", Date: "2024-01-01"})
	require.NoError(t, err)

	removed, err := l.Remove(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Len(t, l.List(), 1)
	assert.Len(t, store.saves, 1, "no write for a missing id")
}

func TestLedger_Clear(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)

	// Clearing an empty ledger still succeeds.
	require.NoError(t, l.Clear(ctx))
	assert.Empty(t, l.List())

	for i := 0; i < 3; i++ {
		_, err := l.Add(ctx, Draft{Name: "x", Amount: "1", CategoryID: "food", Date: "2024-01-01"})
		require.NoError(t, err)
	}
	require.NoError(t, l.Clear(ctx))
	assert.Empty(t, l.List())
	assert.True(t, l.Balance().IsZero())
	assert.Empty(t, l.CategoryTotals())
	assert.Empty(t, l.CategoryPercentages())
	assert.Empty(t, l.Breakdown())
	assert.NotNil(t, store.last())
	assert.Empty(t, store.last())
}

func TestLedger_NewestFirst(t *testing.T) {
	ctx := context.Background()
	// Every id comes from the same instant; order must still follow issue order.
	l, _ := newTestLedger(t)
	for i := 1; i <= 5; i++ {
		_, err := l.Add(ctx, Draft{Name: fmt.Sprintf("e%d", i), Amount: "1", CategoryID: "food", Date: "2024-01-01"})
		require.NoError(t, err)
	}
	assert.Equal(t, []string{"e5", "e4", "e3", "e2", "e1"}, names(l.List()))
}

func TestLedger_ValidationLeavesLedgerUntouched(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	_, err := l.Add(ctx, Draft{Name: "Lunch", Amount: "10", CategoryID: "food", Date: "2024-01-01"})
	require.NoError(t, err)

	drafts := []Draft{
		{Name: "x", Amount: "0", CategoryID: "food", Date: "2024-01-01"},
		{Name: "x", Amount: "-5", CategoryID: "food", Date: "2024-01-01"},
		{Name: "   ", Amount: "5", CategoryID: "food", Date: "2024-01-01"},
		{Name: "x", Amount: "5", CategoryID: "food", Date: ""},
		{Name: "x", Amount: "1e50000000", CategoryID: "food", Date: "2024-01-01"},
	}
	for _, d := range drafts {
		_, err := l.Add(ctx, d)
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "draft %+v: %v", d, err)
	}
	assert.Equal(t, []string{"Lunch"}, names(l.List()))
	assert.Len(t, store.saves, 1, "validation failures must not write")
	assert.Equal(t, "10.00", FormatMoney(l.Balance()))
}

func TestLedger_FailedSaveRollsBack(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)
	e, err := l.Add(ctx, Draft{Name: "Gym", Amount: "30", CategoryID: "health", Date: "2024-01-01"})
	require.NoError(t, err)

	store.err = errors.New("disk full")

	_, err = l.Add(ctx, Draft{Name: "Shoes", Amount: "80", CategoryID: "shopping", Date: "2024-01-02"})
	assert.ErrorIs(t, err, store.err)
	removed, err := l.Remove(ctx, e.ID)
	assert.ErrorIs(t, err, store.err)
	assert.False(t, removed)
	assert.ErrorIs(t, l.Clear(ctx), store.err)

	assert.Equal(t, []string{"Gym"}, names(l.List()))
	assert.True(t, l.Balance().Equal(dec("30")))
}

func TestLedger_UnknownCategoryKeepsOwnBucket(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	_, err := l.Add(ctx, Draft{Name: "Coin", Amount: "25", CategoryID: "crypto", Date: "2024-01-01"})
	require.NoError(t, err)
	_, err = l.Add(ctx, Draft{Name: "Misc", Amount: "75", CategoryID: "other", Date: "2024-01-01"})
	require.NoError(t, err)

	totals := l.CategoryTotals()
	assert.True(t, totals["crypto"].Equal(dec("25")))
	assert.True(t, totals["other"].Equal(dec("75")))

	shares := l.Breakdown()
	require.Len(t, shares, 2)
	assert.Equal(t, "other", shares[0].CategoryID)
	assert.Equal(t, "crypto", shares[1].CategoryID)
	assert.Equal(t, FallbackCategoryID, shares[1].Category.ID, "unknown ids display as the fallback")
	assert.True(t, shares[1].Percentage.Equal(dec("25")))
}

func TestLedger_EmptyCategoryUsesDefault(t *testing.T) {
	l, _ := newTestLedger(t)
	e, err := l.Add(context.Background(), Draft{Name: "Snack", Amount: "2", CategoryID: " ", Date: "2024-01-01"})
	require.NoError(t, err)
	assert.Equal(t, "food", e.CategoryID)
}

func TestLedger_PercentagesSumTo100(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)
	entries := []struct{ amount, category string }{
		{"10", "food"}, {"3.33", "transport"}, {"7.77", "shopping"},
		{"1", "health"}, {"0.01", "mystery"}, {"19.99", "food"},
	}
	for _, e := range entries {
		_, err := l.Add(ctx, Draft{Name: "x", Amount: e.amount, CategoryID: e.category, Date: "2024-01-01"})
		require.NoError(t, err)
	}

	sum := decimal.Zero
	for _, p := range l.CategoryPercentages() {
		assert.True(t, p.GreaterThanOrEqual(decimal.Zero) && p.LessThanOrEqual(hundred))
		sum = sum.Add(p)
	}
	assert.InDelta(t, 100.0, sum.InexactFloat64(), 1e-9)

	summary := l.Summary()
	assert.Equal(t, 6, summary.Count)
	assert.True(t, summary.Balance.Equal(dec("42.10")))
	require.Len(t, summary.Breakdown, 5)
	assert.Equal(t, "food", summary.Breakdown[0].CategoryID)
}

func TestLedger_HydratesFromStore(t *testing.T) {
	loaded := []Expense{
		{ID: "b", Name: "Bus", Amount: dec("2.75"), CategoryID: "transport", Date: NewDate(2024, 1, 10)},
		{ID: "a", Name: "Coffee", Amount: dec("4.5"), CategoryID: "food", Date: NewDate(2024, 1, 10)},
	}
	store := &fakeStore{loaded: loaded}
	l := NewLedger(context.Background(), store)

	assert.Equal(t, loaded, l.List())
	assert.Equal(t, 2, l.Len())
	got, ok := l.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "Coffee", got.Name)
	_, ok = l.Get("zzz")
	assert.False(t, ok)
	assert.Empty(t, store.saves, "hydration does not write")
}

func TestLedger_GeneratedIDsAreUnique(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(ctx, nil)
	seen := make(map[string]struct{})
	for i := 0; i < 500; i++ {
		e, err := l.Add(ctx, Draft{Name: "x", Amount: "1", Date: "2024-01-01"})
		require.NoError(t, err)
		_, dup := seen[e.ID]
		require.False(t, dup, "duplicate id %s", e.ID)
		seen[e.ID] = struct{}{}
	}
}

func TestLedger_ListIsSnapshot(t *testing.T) {
	l, _ := newTestLedger(t)
	_, err := l.Add(context.Background(), Draft{Name: "x", Amount: "1", CategoryID: "food", Date: "2024-01-01"})
	require.NoError(t, err)
	list := l.List()
	list[0].Name = "changed"
	assert.Equal(t, "x", l.List()[0].Name)
}
