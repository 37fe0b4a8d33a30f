// Package storage provides the encrypted node-local archive for received
// messages, backed by BadgerDB.
package storage

import (
	"crypto/sha256"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"

	"github.com/Morgane2t/decent-workshop-4/pkg/logger"
)

var ErrEncryptionKeyNotProvided = errors.New("encryption key not provided")

// Store is a key-value archive scoped to one node.
type Store interface {
	Put(key string, value []byte) error
	Get(key string) ([]byte, error)
	Keys() ([]string, error)
	Delete(key string) error
	Close() error
}

// BadgerStore is a Store implementation backed by BadgerDB with
// encryption at rest.
type BadgerStore struct {
	DB *badger.DB
}

var _ Store = (*BadgerStore)(nil)

type BadgerConfig struct {
	EncryptionKey []byte
	DBPath        string
}

// DeriveEncryptionKey turns an arbitrary password into the 32-byte key
// BadgerDB expects.
func DeriveEncryptionKey(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	return sum[:]
}

// NewBadgerStore opens the archive at config.DBPath.
func NewBadgerStore(config BadgerConfig) (*BadgerStore, error) {
	if len(config.EncryptionKey) == 0 {
		return nil, ErrEncryptionKeyNotProvided
	}

	opts := badger.DefaultOptions(config.DBPath).
		WithCompression(options.ZSTD).
		WithEncryptionKey(config.EncryptionKey).
		WithIndexCacheSize(16 << 20).
		WithBlockCacheSize(32 << 20).
		WithSyncWrites(true).
		WithVerifyValueChecksum(true).
		WithCompactL0OnClose(true).
		WithLogger(newQuietBadgerLogger())

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	logger.Info("Connected to BadgerDB successfully!", "path", config.DBPath)

	return &BadgerStore{DB: db}, nil
}

// Put stores a key-value pair in the BadgerDB.
func (b *BadgerStore) Put(key string, value []byte) error {
	return b.DB.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// Get retrieves the value associated with a key from BadgerDB.
func (b *BadgerStore) Get(key string) ([]byte, error) {
	var result []byte
	err := b.DB.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err == nil {
			return item.Value(func(val []byte) error {
				result = append([]byte{}, val...)
				return nil
			})
		}
		return err
	})

	return result, err
}

func (b *BadgerStore) Keys() ([]string, error) {
	var keys []string
	err := b.DB.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			keys = append(keys, string(item.Key()))
		}
		return nil
	})

	return keys, err
}

// Delete removes a key-value pair from BadgerDB.
func (b *BadgerStore) Delete(key string) error {
	return b.DB.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}

// Close closes the BadgerDB.
func (b *BadgerStore) Close() error {
	return b.DB.Close()
}
