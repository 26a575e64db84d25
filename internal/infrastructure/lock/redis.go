package lock

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"keygate/internal/shared/logger"
)

const (
	redisKeyPrefix   = "keygate:lock:"
	redisRetryPeriod = 25 * time.Millisecond
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lease taken over by another holder is left alone.
var releaseScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

// RedisLocker takes a SET NX PX lease per key. The lease expires after ttl
// so a crashed holder cannot block the key forever.
type RedisLocker struct {
	client redis.UniversalClient
	ttl    time.Duration
	wait   time.Duration
	logger logger.Interface
}

func NewRedisLocker(client redis.UniversalClient, ttl, wait time.Duration, log logger.Interface) *RedisLocker {
	return &RedisLocker{
		client: client,
		ttl:    ttl,
		wait:   wait,
		logger: log,
	}
}

// Acquire retries until the lease is taken, the wait period elapses or
// ctx is done.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (release func(), err error) {
	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate lock token: %w", err)
	}

	redisKey := redisKeyPrefix + key
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("%w: %s: wait of %s elapsed", ErrNotAcquired, key, l.wait)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-time.After(redisRetryPeriod):
		}
	}

	released := false
	return func() {
		if released {
			return
		}
		released = true
		// Release must run even when the caller's context is already done.
		if err := releaseScript.Run(context.Background(), l.client, []string{redisKey}, token).Err(); err != nil {
			l.logger.Warnw("failed to release redis lock", "key", key, "error", err)
		}
	}, nil
}

func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
