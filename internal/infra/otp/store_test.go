package otp

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*miniredis.Miniredis, *Store) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewStore(client)
}

func TestStore_VerifyIsSingleUse(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "login", "a@b.c", "hash-1", 10*time.Minute))

	res, err := store.Verify(ctx, "login", "a@b.c", "hash-1", 5)
	require.NoError(t, err)
	assert.Equal(t, VerifyOK, res)

	res, err = store.Verify(ctx, "login", "a@b.c", "hash-1", 5)
	require.NoError(t, err)
	assert.Equal(t, VerifyNotFound, res)
}

func TestStore_VerifyMaxAttempts(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "login", "a@b.c", "right", 10*time.Minute))

	for i := 0; i < 2; i++ {
		res, err := store.Verify(ctx, "login", "a@b.c", "wrong", 3)
		require.NoError(t, err)
		assert.Equal(t, VerifyMismatch, res)
	}

	res, err := store.Verify(ctx, "login", "a@b.c", "wrong", 3)
	require.NoError(t, err)
	assert.Equal(t, VerifyTooManyAttempts, res)

	// после исчерпания попыток даже верный код не принимается
	res, err = store.Verify(ctx, "login", "a@b.c", "right", 3)
	require.NoError(t, err)
	assert.Equal(t, VerifyNotFound, res)
}

func TestStore_SaveResetsAttempts(t *testing.T) {
	_, store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "reset_password", "a@b.c", "old", time.Minute))
	res, err := store.Verify(ctx, "reset_password", "a@b.c", "bad", 2)
	require.NoError(t, err)
	assert.Equal(t, VerifyMismatch, res)

	require.NoError(t, store.Save(ctx, "reset_password", "a@b.c", "new", time.Minute))
	res, err = store.Verify(ctx, "reset_password", "a@b.c", "bad", 2)
	require.NoError(t, err)
	assert.Equal(t, VerifyMismatch, res)

	res, err = store.Verify(ctx, "reset_password", "a@b.c", "new", 2)
	require.NoError(t, err)
	assert.Equal(t, VerifyOK, res)
}

func TestStore_Expiry(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "login", "a@b.c", "h", time.Minute))

	ttl, err := store.TTL(ctx, "login", "a@b.c")
	require.NoError(t, err)
	assert.True(t, ttl > 0 && ttl <= time.Minute)

	mr.FastForward(2 * time.Minute)

	_, err = store.TTL(ctx, "login", "a@b.c")
	assert.ErrorIs(t, err, ErrCodeNotFound)

	res, err := store.Verify(ctx, "login", "a@b.c", "h", 5)
	require.NoError(t, err)
	assert.Equal(t, VerifyNotFound, res)
}

func TestStore_Cooldown(t *testing.T) {
	mr, store := newTestStore(t)
	ctx := context.Background()

	ok, _, err := store.AcquireCooldown(ctx, "login", "a@b.c", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, left, err := store.AcquireCooldown(ctx, "login", "a@b.c", 30*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.True(t, left > 0)

	mr.FastForward(31 * time.Second)

	ok, _, err = store.AcquireCooldown(ctx, "login", "a@b.c", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.ReleaseCooldown(ctx, "login", "a@b.c"))
	ok, _, err = store.AcquireCooldown(ctx, "login", "a@b.c", 30*time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
}
