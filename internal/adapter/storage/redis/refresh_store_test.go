package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshTokenStore_SaveAndValidate(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewRefreshTokenStore(client)
	ctx := context.Background()

	token := "eyJhbGciOiJIUzI1NiJ9.refresh-token"

	// Validate before save => not live
	ok, err := store.Validate(ctx, token, 42)
	assert.NoError(t, err)
	assert.False(t, ok)

	err = store.Save(ctx, token, 42, time.Hour)
	require.NoError(t, err)

	ok, err = store.Validate(ctx, token, 42)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRefreshTokenStore_WrongUser(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewRefreshTokenStore(client)
	ctx := context.Background()

	token := "some-refresh-token"
	require.NoError(t, store.Save(ctx, token, 42, time.Hour))

	ok, err := store.Validate(ctx, token, 7)
	require.NoError(t, err)
	assert.False(t, ok, "token saved for another user must not validate")
}

func TestRefreshTokenStore_Revoke(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewRefreshTokenStore(client)
	ctx := context.Background()

	token := "revocable-token"
	require.NoError(t, store.Save(ctx, token, 42, time.Hour))

	err := store.Revoke(ctx, token)
	require.NoError(t, err)

	ok, err := store.Validate(ctx, token, 42)
	require.NoError(t, err)
	assert.False(t, ok, "revoked token must not validate")

	// Revoking again is a no-op
	assert.NoError(t, store.Revoke(ctx, token))
}

func TestRefreshTokenStore_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewRefreshTokenStore(client)
	ctx := context.Background()

	token := "short-lived-token"
	require.NoError(t, store.Save(ctx, token, 42, time.Second))

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	ok, err := store.Validate(ctx, token, 42)
	require.NoError(t, err)
	assert.False(t, ok, "expired token must not validate")
}

func TestRefreshTokenStore_StoresDigestNotToken(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	store := NewRefreshTokenStore(client)
	ctx := context.Background()

	token := "plaintext-refresh-token"
	require.NoError(t, store.Save(ctx, token, 42, time.Hour))

	for _, key := range s.Keys() {
		assert.NotContains(t, key, token)
	}
}
