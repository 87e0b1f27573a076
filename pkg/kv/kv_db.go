package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

var (
	ErrNotFound = errors.New("key not found")
)

// Backend is the key-value store behind a SessionStore.
type Backend interface {
	Get(ctx context.Context, key []byte) ([]byte, error)
	Set(ctx context.Context, key, value []byte) error
	Delete(ctx context.Context, key []byte) error
	SetBatch(ctx context.Context, entries []Entry) error
	Close() error
}

type Entry struct {
	Key   []byte
	Value []byte
}

type KVDB struct {
	db *badger.DB
}

func NewKVDB(db *badger.DB) *KVDB {
	return &KVDB{db}
}

// OpenBadger opens a badger database in dir, or in memory when inMemory is set.
func OpenBadger(dir string, inMemory bool) (*KVDB, error) {
	opts := badger.DefaultOptions(dir)
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	}
	opts = opts.WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return NewKVDB(db), nil
}

func (k *KVDB) Get(ctx context.Context, key []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var val []byte
	err := k.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}

		val, err = item.ValueCopy(nil)
		if err != nil {
			return err
		}

		return nil
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	return val, err
}

func (k *KVDB) Set(ctx context.Context, key, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
}

func (k *KVDB) Delete(ctx context.Context, key []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return k.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
}

// SetBatch writes every entry in one badger write batch.
func (k *KVDB) SetBatch(ctx context.Context, entries []Entry) error {
	batch := k.db.NewWriteBatch()
	defer batch.Cancel()

	for _, data := range entries {
		select {
		case <-ctx.Done():
			return fmt.Errorf("context cancelled")
		default:
		}

		if err := batch.Set(data.Key, data.Value); err != nil {
			return err
		}
	}

	return batch.Flush()
}

func (k *KVDB) Close() error {
	return k.db.Close()
}
