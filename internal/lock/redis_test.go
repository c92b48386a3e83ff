package lock

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testLock(t *testing.T, ttl time.Duration) *RedisLock {
	t.Helper()
	addr := os.Getenv("SKILLPATH_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("SKILLPATH_TEST_REDIS_ADDR not set")
	}
	client, err := Dial(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	l := NewRedisLock(client, ttl, zap.NewNop())
	l.poll = 10 * time.Millisecond
	return l
}

func testKey() string { return "skillpath-test:" + uuid.NewString() }

func TestRedisLock_MutualExclusion(t *testing.T) {
	l := testLock(t, time.Minute)
	key := testKey()

	var (
		inside  atomic.Int32
		maxSeen atomic.Int32
		wg      sync.WaitGroup
	)
	for range 5 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(context.Background(), key)
			if !assert.NoError(t, err) {
				return
			}
			n := inside.Add(1)
			if n > maxSeen.Load() {
				maxSeen.Store(n)
			}
			time.Sleep(20 * time.Millisecond)
			inside.Add(-1)
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxSeen.Load())
}

func TestRedisLock_AcquireHonoursContext(t *testing.T) {
	l := testLock(t, time.Minute)
	key := testKey()

	release, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)
	defer release()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, key)
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRedisLock_ReleaseOnlyOwnKey(t *testing.T) {
	l := testLock(t, 50*time.Millisecond)
	key := testKey()

	release, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)

	// Let the TTL expire and another holder take over.
	time.Sleep(100 * time.Millisecond)
	release2, err := l.Acquire(context.Background(), key)
	require.NoError(t, err)
	defer release2()

	release()
	val, err := l.client.Get(context.Background(), key).Result()
	require.NoError(t, err)
	assert.NotEmpty(t, val, "stale release must not delete the new holder's key")
}

func TestNewRedisLock_Defaults(t *testing.T) {
	l := NewRedisLock(nil, 0, nil)
	assert.Equal(t, DefaultTTL, l.ttl)
	assert.NotNil(t, l.log)
}
