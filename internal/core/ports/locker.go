package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a Locker.
type UnlockFunc func(ctx context.Context) error

// Locker hands out short-lived named locks shared between service replicas.
type Locker interface {
	// TryLock attempts to take key for ttl without waiting. ok is false when another
	// holder owns the key; unlock is nil in that case.
	TryLock(ctx context.Context, key string, ttl time.Duration) (unlock UnlockFunc, ok bool, err error)
}
