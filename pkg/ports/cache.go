package ports

import (
	"context"
	"errors"
)

// ErrCacheMiss is returned by Cache.GetString when the key holds no value.
var ErrCacheMiss = errors.New("cache miss")

// ErrKeysUnsupported is returned when a cache cannot enumerate its keys.
var ErrKeysUnsupported = errors.New("cache does not support listing keys")

// Cache is the key/value backend the adventure and session stores write to.
// Implementations offer no atomicity across calls.
type Cache interface {
	// GetString returns the value stored under key.
	// Returns ErrCacheMiss if the key does not exist.
	GetString(ctx context.Context, key string) (string, error)

	// SetString stores value under key, replacing any previous value.
	SetString(ctx context.Context, key, value string) error

	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}

// KeyLister is implemented by caches that can enumerate their keys.
type KeyLister interface {
	// Keys returns every stored key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
