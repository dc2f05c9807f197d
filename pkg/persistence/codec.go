package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/ports"
)

// readTree loads and decodes the tree under key. A missing, empty or blank
// value is reported as missing. Every call returns a freshly decoded tree.
func readTree(ctx context.Context, cache ports.Cache, key string, missing error) (*domain.Tree, error) {
	raw, err := cache.GetString(ctx, key)
	if err != nil {
		if errors.Is(err, ports.ErrCacheMiss) {
			return nil, missing
		}
		return nil, fmt.Errorf("%w: read %q: %w", domain.ErrPersistence, key, err)
	}
	if strings.TrimSpace(raw) == "" {
		return nil, missing
	}

	var tree domain.Tree
	if err := json.Unmarshal([]byte(raw), &tree); err != nil {
		return nil, fmt.Errorf("%w: decode %q: %w", domain.ErrPersistence, key, err)
	}
	return &tree, nil
}

func writeTree(ctx context.Context, cache ports.Cache, key string, tree *domain.Tree) error {
	data, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("%w: encode %q: %w", domain.ErrPersistence, key, err)
	}
	if err := cache.SetString(ctx, key, string(data)); err != nil {
		return fmt.Errorf("%w: write %q: %w", domain.ErrPersistence, key, err)
	}
	return nil
}

func removeKey(ctx context.Context, cache ports.Cache, key string) error {
	if err := cache.Remove(ctx, key); err != nil {
		return fmt.Errorf("%w: remove %q: %w", domain.ErrPersistence, key, err)
	}
	return nil
}
