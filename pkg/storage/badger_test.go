package storage

import (
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *BadgerStore {
	t.Helper()
	store, err := NewBadgerStore(BadgerConfig{
		EncryptionKey: DeriveEncryptionKey("test-password"),
		DBPath:        t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestBadgerStoreRequiresEncryptionKey(t *testing.T) {
	_, err := NewBadgerStore(BadgerConfig{DBPath: t.TempDir()})
	assert.ErrorIs(t, err, ErrEncryptionKeyNotProvided)
}

func TestBadgerStorePutGetDelete(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put("msg-1", []byte("hello")))

	value, err := store.Get("msg-1")
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), value)

	require.NoError(t, store.Delete("msg-1"))

	_, err = store.Get("msg-1")
	assert.ErrorIs(t, err, badger.ErrKeyNotFound)
}

func TestBadgerStoreKeys(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Put("a", []byte("1")))
	require.NoError(t, store.Put("b", []byte("2")))

	keys, err := store.Keys()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, keys)
}

func TestDeriveEncryptionKey(t *testing.T) {
	key := DeriveEncryptionKey("password")
	assert.Len(t, key, 32)
	assert.Equal(t, key, DeriveEncryptionKey("password"))
	assert.NotEqual(t, key, DeriveEncryptionKey("other"))
}
