package main

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/lobster/internal/config"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/observability"
	"github.com/aretw0/lobster/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig(t *testing.T) config.Config {
	t.Helper()
	c, err := config.Load()
	require.NoError(t, err)
	return c
}

func TestOpenBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		b, err := openBackend(baseConfig(t), nil)
		require.NoError(t, err)
		defer b.close()
		ports.RunCacheContract(t, b.cache)
		assert.Nil(t, b.locker)
	})

	t.Run("SQLite", func(t *testing.T) {
		c := baseConfig(t)
		c.Backend = config.BackendSQLite
		c.SQLitePath = filepath.Join(t.TempDir(), "lobster.db")

		b, err := openBackend(c, observability.NewMetrics())
		require.NoError(t, err)
		defer b.close()
		ports.RunCacheContract(t, b.cache)
	})

	t.Run("RedisWithLock", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c := baseConfig(t)
		c.Backend = config.BackendRedis
		c.RedisAddr = mr.Addr()
		c.DistributedLock = true

		b, err := openBackend(c, nil)
		require.NoError(t, err)
		defer b.close()
		require.NotNil(t, b.locker)

		require.NoError(t, b.cache.SetString(ctx, "k", "v"))
		assert.True(t, mr.Exists("lobster:k"))
	})

	t.Run("Encrypted", func(t *testing.T) {
		c := baseConfig(t)
		c.EncryptionKey = base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 32)))

		b, err := openBackend(c, observability.NewMetrics())
		require.NoError(t, err)
		defer b.close()

		require.NoError(t, b.cache.SetString(ctx, "k", "secret"))
		v, err := b.cache.GetString(ctx, "k")
		require.NoError(t, err)
		assert.Equal(t, "secret", v)
	})

	t.Run("BadKey", func(t *testing.T) {
		c := baseConfig(t)
		c.EncryptionKey = "short"
		_, err := openBackend(c, nil)
		assert.Error(t, err)
	})

	t.Run("Unknown", func(t *testing.T) {
		c := baseConfig(t)
		c.Backend = "etcd"
		_, err := openBackend(c, nil)
		assert.Error(t, err)
	})
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 2, exitCode(domain.ErrEmptyAdventure))
	assert.Equal(t, 3, exitCode(domain.ErrNoSession))
	assert.Equal(t, 1, exitCode(domain.ErrPersistence))
}
