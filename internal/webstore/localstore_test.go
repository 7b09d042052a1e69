package webstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocalStore(t *testing.T) *LocalStore {
	t.Helper()

	store, err := OpenLocalStore(filepath.Join(t.TempDir(), "local.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close() //nolint:errcheck,gosec // test cleanup
	})

	return store
}

func TestLocalStore_SetAndGet(t *testing.T) {
	store := newTestLocalStore(t)

	require.NoError(t, store.Set("framegen_token", "token-123"))

	value, ok := store.Get("framegen_token")
	assert.True(t, ok)
	assert.Equal(t, "token-123", value)
}

func TestLocalStore_GetMissing(t *testing.T) {
	store := newTestLocalStore(t)

	_, ok := store.Get("absent")
	assert.False(t, ok)
}

func TestLocalStore_SetReplaces(t *testing.T) {
	store := newTestLocalStore(t)

	require.NoError(t, store.Set("key", "first"))
	require.NoError(t, store.Set("key", "second"))

	value, ok := store.Get("key")
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestLocalStore_Delete(t *testing.T) {
	store := newTestLocalStore(t)

	require.NoError(t, store.Set("key", "value"))
	require.NoError(t, store.Delete("key"))

	_, ok := store.Get("key")
	assert.False(t, ok)
}
