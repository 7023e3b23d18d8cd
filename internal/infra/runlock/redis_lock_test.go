package runlock

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLock(t *testing.T) (*redisLock, *miniredis.Miniredis) {
	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(client, logger).(*redisLock), srv
}

func TestRedisLock_AcquireIsExclusive(t *testing.T) {
	lockA, srv := newTestLock(t)

	ctx := context.Background()

	acquired, err := lockA.Acquire(ctx, "trigger", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)

	// A second instance (distinct owner) loses while the lock is held.
	clientB := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = clientB.Close() })
	lockB := New(clientB, slog.New(slog.NewTextHandler(io.Discard, nil))).(*redisLock)

	acquired, err = lockB.Acquire(ctx, "trigger", time.Minute)
	require.NoError(t, err)
	assert.False(t, acquired)

	// Releasing makes the lock available again.
	require.NoError(t, lockA.Release(ctx, "trigger"))

	acquired, err = lockB.Acquire(ctx, "trigger", time.Minute)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLock_ReleaseIsOwnerChecked(t *testing.T) {
	lockA, srv := newTestLock(t)

	ctx := context.Background()

	acquired, err := lockA.Acquire(ctx, "trigger", time.Minute)
	require.NoError(t, err)
	require.True(t, acquired)

	// A non-owner's release must not free someone else's lock.
	clientB := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = clientB.Close() })
	lockB := New(clientB, slog.New(slog.NewTextHandler(io.Discard, nil))).(*redisLock)

	require.NoError(t, lockB.Release(ctx, "trigger"))
	assert.True(t, srv.Exists(lockKeyPrefix+"trigger"))

	// The owner's release does.
	require.NoError(t, lockA.Release(ctx, "trigger"))
	assert.False(t, srv.Exists(lockKeyPrefix+"trigger"))
}

func TestRedisLock_ExpiredLockCanBeRetaken(t *testing.T) {
	lock, srv := newTestLock(t)

	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "trigger", time.Second)
	require.NoError(t, err)
	require.True(t, acquired)

	srv.FastForward(2 * time.Second)

	acquired, err = lock.Acquire(ctx, "trigger", time.Second)
	require.NoError(t, err)
	assert.True(t, acquired)
}

func TestRedisLock_ReleaseWithoutHoldingIsNoop(t *testing.T) {
	lock, _ := newTestLock(t)

	assert.NoError(t, lock.Release(context.Background(), "never-acquired"))
}
