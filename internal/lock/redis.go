// Package lock provides a Redis-backed quiz.BackfillLock so that only one
// process backfills a given question pool at a time.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/abhisek/skillpath/internal/quiz"
)

const (
	DefaultTTL          = 2 * time.Minute
	defaultPollInterval = 100 * time.Millisecond
)

// releaseScript deletes the key only if we still own it.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// RedisLock is a SET NX lock with a TTL. The TTL bounds how long a crashed
// holder can block others; it should exceed the slowest backfill.
type RedisLock struct {
	client *redis.Client
	ttl    time.Duration
	poll   time.Duration
	log    *zap.Logger
}

var _ quiz.BackfillLock = (*RedisLock)(nil)

// NewRedisLock wraps client. A ttl of zero uses DefaultTTL.
func NewRedisLock(client *redis.Client, ttl time.Duration, log *zap.Logger) *RedisLock {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisLock{client: client, ttl: ttl, poll: defaultPollInterval, log: log}
}

// Dial connects to addr and checks the connection.
func Dial(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Acquire polls until the key is free or ctx is done.
func (l *RedisLock) Acquire(ctx context.Context, key string) (func(), error) {
	token := uuid.NewString()
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire %s: %w", key, err)
		}
		if ok {
			l.log.Debug("backfill lock acquired", zap.String("key", key))
			return l.releaser(key, token), nil
		}
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("acquire %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLock) releaser(key, token string) func() {
	return func() {
		// The request context may already be cancelled.
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil {
			l.log.Warn("failed to release backfill lock", zap.String("key", key), zap.Error(err))
		}
	}
}
