package middleware_test

import (
	"context"

	"github.com/aretw0/lobster/pkg/ports"
)

// MockCache is a simple map-based cache for testing middleware.
// It deliberately does not implement ports.KeyLister.
type MockCache struct {
	data map[string]string
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string]string),
	}
}

func (c *MockCache) GetString(ctx context.Context, key string) (string, error) {
	val, ok := c.data[key]
	if !ok {
		return "", ports.ErrCacheMiss
	}
	return val, nil
}

func (c *MockCache) SetString(ctx context.Context, key, value string) error {
	c.data[key] = value
	return nil
}

func (c *MockCache) Remove(ctx context.Context, key string) error {
	delete(c.data, key)
	return nil
}
