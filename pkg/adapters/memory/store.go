package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/aretw0/lobster/pkg/ports"
)

// Cache implements ports.Cache in memory.
// Safe for concurrent use. Strings are immutable, so values never alias.
type Cache struct {
	data map[string]string
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]string),
	}
}

// GetString retrieves the value from memory.
func (c *Cache) GetString(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	val, ok := c.data[key]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	return val, nil
}

// SetString stores the value in memory.
func (c *Cache) SetString(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

// Remove deletes the key.
func (c *Cache) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// Keys returns the stored keys starting with prefix.
func (c *Cache) Keys(ctx context.Context, prefix string) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}
