// Package bolt is a KV store backed by a bbolt database file.
package bolt

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bbolt "go.etcd.io/bbolt"

	"spesa/internal/storage"
)

// Bucket holding ledger values.
const Bucket = "ledger"

type Store struct {
	db *bbolt.DB
}

// Open opens the database at path and makes sure the bucket exists.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(Bucket)); err != nil {
			return fmt.Errorf("failed to create bucket %s: %w", Bucket, err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get implements storage.KV.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if b == nil {
			return fmt.Errorf("bucket %s not found", Bucket)
		}
		data := b.Get([]byte(key))
		if data == nil {
			return storage.ErrNotFound
		}
		// Copy the value since it's only valid during the transaction.
		value = append([]byte{}, data...)
		return nil
	})
	return value, err
}

// Put implements storage.KV inside one read-write transaction.
func (s *Store) Put(_ context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket([]byte(Bucket))
		if b == nil {
			return fmt.Errorf("bucket %s not found", Bucket)
		}
		return b.Put([]byte(key), value)
	})
}
