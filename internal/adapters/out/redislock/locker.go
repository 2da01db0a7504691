// Package redislock implements ports.Locker with Redis SET NX PX so that periodic jobs run
// on a single replica at a time.
package redislock

import (
	"context"
	"time"

	"brillante/internal/core/domain/model/kernel"
	"brillante/internal/core/ports"

	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the key only while it still holds this owner's token.
var releaseScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
    return redis.call('DEL', KEYS[1])
end
return 0
`)

// Locker takes locks under a common key prefix.
type Locker struct {
	client redis.Cmdable
	prefix string
}

// NewLocker creates a Redis-backed locker. Keys are stored as prefix + key.
func NewLocker(client redis.Cmdable, prefix string) *Locker {
	return &Locker{client: client, prefix: prefix}
}

// TryLock sets the key if absent with a random owner token and the given expiry.
func (l *Locker) TryLock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, bool, error) {
	fullKey := l.prefix + key
	token := kernel.NewUUID().String()

	ok, err := l.client.SetNX(ctx, fullKey, token, ttl).Result()
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return nil, false, nil
	}

	unlock := func(ctx context.Context) error {
		return releaseScript.Run(ctx, l.client, []string{fullKey}, token).Err()
	}
	return unlock, true, nil
}

// NoopLocker always grants the lock. It is used when Redis is not configured and the
// service runs as a single replica.
type NoopLocker struct{}

// TryLock always succeeds.
func (NoopLocker) TryLock(context.Context, string, time.Duration) (ports.UnlockFunc, bool, error) {
	return func(context.Context) error { return nil }, true, nil
}

// NewClient builds a Redis client and pings it with a short timeout.
func NewClient(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
