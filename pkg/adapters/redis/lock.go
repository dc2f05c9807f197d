package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aretw0/lobster/pkg/ports"
	"github.com/google/uuid"
	backend "github.com/redis/go-redis/v9"
)

var (
	// ErrLockAcquire is returned when the lock cannot be acquired.
	ErrLockAcquire = errors.New("failed to acquire distributed lock")
)

// unlockScript deletes the lock only if we still own it.
var unlockScript = backend.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// Locker implements ports.DistributedLocker using Redis.
type Locker struct {
	client       *backend.Client
	prefix       string
	pollInterval time.Duration
}

// NewLocker creates a new Redis locker.
func NewLocker(client *backend.Client, prefix string) *Locker {
	return &Locker{
		client:       client,
		prefix:       prefix,
		pollInterval: 100 * time.Millisecond,
	}
}

// Lock acquires a distributed lock for the given key using Redis SET NX PX.
func (l *Locker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	lockKey := l.prefix + "lock:" + key
	token := uuid.NewString()

	acquire := func() (bool, error) {
		ok, err := l.client.SetNX(ctx, lockKey, token, ttl).Result()
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrLockAcquire, err)
		}
		return ok, nil
	}

	ok, err := acquire()
	if err != nil {
		return nil, err
	}

	if !ok {
		ticker := time.NewTicker(l.pollInterval)
		defer ticker.Stop()

		for !ok {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-ticker.C:
				if ok, err = acquire(); err != nil {
					return nil, err
				}
			}
		}
	}

	return func(ctx context.Context) error {
		return unlockScript.Run(ctx, l.client, []string{lockKey}, token).Err()
	}, nil
}
