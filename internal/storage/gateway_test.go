package storage_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"spesa/internal/core"
	"spesa/internal/log"
	"spesa/internal/storage"
	"spesa/internal/storage/memory"
)

type brokenKV struct {
	getErr error
	putErr error
}

func (b brokenKV) Get(context.Context, string) ([]byte, error) { return nil, b.getErr }
func (b brokenKV) Put(context.Context, string, []byte) error  { return b.putErr }
func (b brokenKV) Close() error                                { return nil }

func sampleLedger() []core.Expense {
	return []core.Expense{
		{ID: "b", Name: "Bus", Amount: decimal.RequireFromString("2.75"), CategoryID: "transport", Date: core.NewDate(2024, 1, 10)},
		{ID: "a", Name: "Coffee", Amount: decimal.RequireFromString("4.50"), CategoryID: "food", Date: core.NewDate(2024, 1, 10)},
		{ID: "c", Name: "", Amount: decimal.RequireFromString("0.333"), CategoryID: "legacy", Date: core.NewDate(2023, 12, 31)},
	}
}

func assertSameLedger(t *testing.T, want, got []core.Expense) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.Equal(t, want[i].ID, got[i].ID)
		assert.Equal(t, want[i].Name, got[i].Name)
		assert.True(t, want[i].Amount.Equal(got[i].Amount), "amount %s != %s", want[i].Amount, got[i].Amount)
		assert.Equal(t, want[i].CategoryID, got[i].CategoryID)
		assert.Equal(t, want[i].Date.String(), got[i].Date.String())
	}
}

func TestGateway_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := storage.NewGateway(memory.New(), "")
	assert.Equal(t, storage.DefaultKey, g.Key())

	want := sampleLedger()
	require.NoError(t, g.Save(ctx, want))
	assertSameLedger(t, want, g.Load(ctx))

	require.NoError(t, g.Save(ctx, []core.Expense{}))
	got := g.Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGateway_PersistedLayout(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	g := storage.NewGateway(kv, "k")

	require.NoError(t, g.Save(ctx, sampleLedger()[1:2]))
	data, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"a","name":"Coffee","amount":4.5,"categoryId":"food","date":"2024-01-10"}]`, string(data))
}

func TestGateway_LoadFailsOpen(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name  string
		value string
		store bool
	}{
		{name: "missing key"},
		{name: "not json", value: "{{{", store: true},
		{name: "object instead of array", value: `{"id":"a"}`, store: true},
		{name: "string", value: `"hello"`, store: true},
		{name: "empty value", value: "", store: true},
		{name: "null", value: "null", store: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kv := memory.New()
			if tt.store {
				require.NoError(t, kv.Put(ctx, storage.DefaultKey, []byte(tt.value)))
			}
			got := storage.NewGateway(kv, "").Load(ctx)
			assert.NotNil(t, got)
			assert.Empty(t, got)
		})
	}

	got := storage.NewGateway(brokenKV{getErr: errors.New("io error")}, "").Load(ctx)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGateway_SkipsMalformedRecords(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	stored := `[
		{"id":"1","name":"Good","amount":4.5,"categoryId":"food","date":"2024-01-10"},
		{"id":"2","name":"Zero","amount":0,"categoryId":"food","date":"2024-01-10"},
		{"id":"3","name":"Negative","amount":-2,"categoryId":"food","date":"2024-01-10"},
		{"id":"4","name":"BadDate","amount":1,"categoryId":"food","date":"not-a-date"},
		{"name":"NoID","amount":1,"categoryId":"food","date":"2024-01-10"},
		{"id":"5","name":"BadAmount","amount":true,"categoryId":"food","date":"2024-01-10"},
		42,
		null,
		{"id":"1","name":"Duplicate","amount":9,"categoryId":"food","date":"2024-01-10"},
		{"id":"6","name":"Legacy","amount":"2.25","categoryId":"gone","date":"2024-01-09"}
	]`
	require.NoError(t, kv.Put(ctx, storage.DefaultKey, []byte(stored)))

	got := storage.NewGateway(kv, "").Load(ctx)
	require.Len(t, got, 2)
	assert.Equal(t, "Good", got[0].Name)
	assert.Equal(t, "Legacy", got[1].Name)
	assert.True(t, got[1].Amount.Equal(decimal.RequireFromString("2.25")))
	assert.Equal(t, "gone", got[1].CategoryID)
}

func TestGateway_SaveError(t *testing.T) {
	putErr := errors.New("read-only")
	g := storage.NewGateway(brokenKV{putErr: putErr}, "")
	err := g.Save(context.Background(), sampleLedger())
	assert.ErrorIs(t, err, putErr)
}

func TestGateway_HydratesLedger(t *testing.T) {
	ctx := context.Background()
	g := storage.NewGateway(memory.New(), "")

	l := core.NewLedger(ctx, g)
	_, err := l.Add(ctx, core.Draft{Name: "Coffee", Amount: "4.50", CategoryID: "food", Date: "2024-01-10"})
	require.NoError(t, err)
	_, err = l.Add(ctx, core.Draft{Name: "Bus", Amount: "2.75", CategoryID: "transport", Date: "2024-01-10"})
	require.NoError(t, err)

	reopened := core.NewLedger(ctx, g)
	assertSameLedger(t, l.List(), reopened.List())
	assert.True(t, reopened.Balance().Equal(decimal.RequireFromString("7.25")))
}

func TestGateway_LogsAsStorageComponent(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	g := storage.NewGateway(memory.New(), "")
	assert.Empty(t, g.Load(context.Background()))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry), buf.String())
	assert.Equal(t, log.ComponentStorage, entry[log.FieldComponent])
	assert.Equal(t, storage.DefaultKey, entry["key"])
}
