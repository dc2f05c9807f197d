package redis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aretw0/lobster/pkg/ports"
	backend "github.com/redis/go-redis/v9"
)

// DefaultPrefix namespaces every key written by the cache.
const DefaultPrefix = "lobster:"

// Cache implements ports.Cache using Redis.
type Cache struct {
	client *backend.Client
	prefix string
	ttl    time.Duration
}

type Option func(*Cache)

// WithTTL sets the expiration for stored values.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		c.ttl = ttl
	}
}

// WithPrefix sets the key prefix.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

// New creates a new Redis cache with options.
func New(address, password string, db int, opts ...Option) *Cache {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis cache from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Cache {
	cache := &Cache{
		client: client,
		prefix: DefaultPrefix,
		ttl:    0, // No expiration by default
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

func (c *Cache) key(key string) string {
	return c.prefix + key
}

// GetString retrieves the value from Redis.
func (c *Cache) GetString(ctx context.Context, key string) (string, error) {
	val, err := c.client.Get(ctx, c.key(key)).Result()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return "", ports.ErrCacheMiss
		}
		return "", fmt.Errorf("failed to get from redis: %w", err)
	}
	return val, nil
}

// SetString overwrites the value in a single SET, so readers never observe
// a gap between the old and new value.
func (c *Cache) SetString(ctx context.Context, key, value string) error {
	if err := c.client.Set(ctx, c.key(key), value, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save to redis: %w", err)
	}
	return nil
}

// Remove deletes the key.
func (c *Cache) Remove(ctx context.Context, key string) error {
	if err := c.client.Del(ctx, c.key(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete from redis: %w", err)
	}
	return nil
}

// Keys scans for keys starting with prefix. The cache prefix is stripped
// from the results.
func (c *Cache) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := c.client.Scan(ctx, 0, globEscaper.Replace(c.key(prefix))+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val()[len(c.prefix):])
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan redis keys: %w", err)
	}
	return keys, nil
}

// globEscaper quotes the characters SCAN MATCH treats as a pattern.
var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// Client exposes the underlying client so a Locker can share it.
func (c *Cache) Client() *backend.Client {
	return c.client
}

// Close closes the redis client.
func (c *Cache) Close() error {
	return c.client.Close()
}
