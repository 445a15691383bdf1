// Package storage persists the ledger as a single JSON value in a key-value
// store.
package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by KV.Get when the key has never been written.
var ErrNotFound = errors.New("key not found")

// KV is a durable key-value store. Put must replace the value atomically:
// a concurrent or later Get sees either the old value or the new one.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}
