package recommendationinfra

import (
	"context"
	"time"

	"github.com/compasshq/compass/guidance/recommendation"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/compasshq/compass/pkg/logx"
	"github.com/go-redis/redis/v8"
)

// RedisRunLock implements recommendation.RunLock with a per-user SETNX key.
// It is best-effort: Redis being unreachable reports the lock as acquired so
// the pipeline never stalls on the lock itself.
type RedisRunLock struct {
	client *redis.Client
}

// NewRedisRunLock creates a new Redis-backed run lock
func NewRedisRunLock(client *redis.Client) recommendation.RunLock {
	return &RedisRunLock{client: client}
}

func lockKey(userID kernel.UserID) string {
	return "recommendation:run:" + userID.String()
}

// Acquire takes the per-user lock for at most ttl
func (l *RedisRunLock) Acquire(ctx context.Context, userID kernel.UserID, ttl time.Duration) (func(), bool) {
	key := lockKey(userID)

	ok, err := l.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		logx.Warnf("run lock unavailable for user %s: %v", userID, err)
		return func() {}, true
	}
	if !ok {
		return func() {}, false
	}

	release := func() {
		if err := l.client.Del(context.Background(), key).Err(); err != nil {
			logx.Warnf("run lock release failed for user %s: %v", userID, err)
		}
	}
	return release, true
}
