package codes

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_IssueAndRedeem(t *testing.T) {
	store := NewStore(t.Context(), time.Minute)

	code, err := store.Issue("user-1", "http://127.0.0.1:8089/callback/", true)
	require.NoError(t, err)
	assert.NotEmpty(t, code)

	grant, err := store.Redeem(code, "http://127.0.0.1:8089/callback/")
	require.NoError(t, err)
	assert.Equal(t, "user-1", grant.UserID)
	assert.True(t, grant.NewUser)
}

func TestStore_RedeemTwice(t *testing.T) {
	store := NewStore(t.Context(), time.Minute)

	code, err := store.Issue("user-1", "http://cb/", false)
	require.NoError(t, err)

	_, err = store.Redeem(code, "http://cb/")
	require.NoError(t, err)

	_, err = store.Redeem(code, "http://cb/")
	assert.ErrorIs(t, err, ErrCodeNotFound, "a code redeems exactly once")
}

func TestStore_RedeemWrongRedirectURI(t *testing.T) {
	store := NewStore(t.Context(), time.Minute)

	code, err := store.Issue("user-1", "http://cb/", false)
	require.NoError(t, err)

	_, err = store.Redeem(code, "http://evil/")
	assert.ErrorIs(t, err, ErrRedirectURI)

	// the failed attempt consumed the code
	_, err = store.Redeem(code, "http://cb/")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestStore_RedeemExpired(t *testing.T) {
	store := NewStore(t.Context(), -time.Second)

	code, err := store.Issue("user-1", "http://cb/", false)
	require.NoError(t, err)

	_, err = store.Redeem(code, "http://cb/")
	assert.ErrorIs(t, err, ErrCodeExpired)
}

func TestStore_UsableAfterContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	store := NewStore(ctx, time.Minute)

	// cancellation stops the cleanup goroutine, not the store
	cancel()

	code, err := store.Issue("user-1", "http://cb/", false)
	require.NoError(t, err)

	_, err = store.Redeem(code, "http://cb/")
	require.NoError(t, err)
}

func TestStore_UniqueCodes(t *testing.T) {
	store := NewStore(t.Context(), time.Minute)

	seen := make(map[string]bool)
	for range 50 {
		code, err := store.Issue("user-1", "http://cb/", false)
		require.NoError(t, err)
		assert.False(t, seen[code])
		seen[code] = true
	}
}
