package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"spesa/internal/core"
	"spesa/internal/log"
)

// DefaultKey is the key the ledger is stored under.
const DefaultKey = "expense_tracker_data"

var _ core.Store = (*Gateway)(nil)

// Gateway saves and loads ledger snapshots through a KV store.
//
// Load fails open: a missing, unreadable or corrupt value loads as an empty
// ledger, and malformed records are dropped one by one. Whatever is dropped
// is lost for good on the next Save. This trades durability for always being
// able to start.
type Gateway struct {
	kv  KV
	key string
}

// NewGateway returns a gateway storing under key, or DefaultKey when empty.
func NewGateway(kv KV, key string) *Gateway {
	if key == "" {
		key = DefaultKey
	}
	return &Gateway{kv: kv, key: key}
}

func (g *Gateway) logger() *slog.Logger {
	return slog.Default().With(log.FieldComponent, log.ComponentStorage)
}

// Key returns the storage key.
func (g *Gateway) Key() string {
	return g.key
}

// Save writes the full ordered snapshot under the gateway key.
func (g *Gateway) Save(ctx context.Context, expenses []core.Expense) error {
	data, err := encodeLedger(expenses)
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := g.kv.Put(ctx, g.key, data); err != nil {
		return fmt.Errorf("put %s: %w", g.key, err)
	}

	g.logger().DebugContext(ctx, "Ledger saved",
		"key", g.key,
		"count", len(expenses),
		"bytes", len(data))
	return nil
}

// Load reads the stored snapshot. It never fails; see Gateway.
func (g *Gateway) Load(ctx context.Context) []core.Expense {
	logger := g.logger()
	data, err := g.kv.Get(ctx, g.key)
	if errors.Is(err, ErrNotFound) {
		logger.InfoContext(ctx, "No stored ledger, starting empty", "key", g.key)
		return []core.Expense{}
	}
	if err != nil {
		logger.WarnContext(ctx, "Stored ledger unreadable, starting empty",
			"key", g.key,
			"error", err)
		return []core.Expense{}
	}

	expenses, skipped, err := decodeLedger(data)
	if err != nil {
		logger.WarnContext(ctx, "Stored ledger corrupt, starting empty",
			"key", g.key,
			"bytes", len(data),
			"error", err)
		return []core.Expense{}
	}
	if skipped > 0 {
		logger.WarnContext(ctx, "Dropped malformed expense records",
			"key", g.key,
			"skipped", skipped,
			"kept", len(expenses))
	}

	logger.InfoContext(ctx, "Ledger loaded", "key", g.key, "count", len(expenses))
	return expenses
}
