// Package runlock implements distributed run-lock coordination on redis.
package runlock

import (
	"context"
	"log/slog"
	"time"

	"quotecast/internal/domain/service"
	"quotecast/internal/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const lockKeyPrefix = "quotecast:lock:"

// releaseScript deletes the key only when the stored owner matches, so an
// expired lock re-acquired by another instance is never released by the
// previous holder.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type redisLock struct {
	client *redis.Client
	owner  string
	logger *slog.Logger
}

// New creates a redis-backed RunLock with a per-instance owner identity.
func New(client *redis.Client, logger *slog.Logger) service.RunLock {
	return &redisLock{
		client: client,
		owner:  uuid.NewString(),
		logger: logger,
	}
}

// Acquire takes the lock with SET NX so only one instance wins.
func (l *redisLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockKeyPrefix+name, l.owner, ttl).Result()
	if err != nil {
		return false, errors.Wrap(err, "failed to acquire run lock")
	}

	if !ok {
		l.logger.Debug("Run lock held elsewhere, skipping",
			slog.String("lock", name),
		)
	}

	return ok, nil
}

// Release frees the lock when this instance still owns it.
func (l *redisLock) Release(ctx context.Context, name string) error {
	if err := releaseScript.Run(ctx, l.client, []string{lockKeyPrefix + name}, l.owner).Err(); err != nil && !errors.Is(err, redis.Nil) {
		return errors.Wrap(err, "failed to release run lock")
	}

	return nil
}
