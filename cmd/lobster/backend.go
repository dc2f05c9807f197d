package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/aretw0/lobster"
	"github.com/aretw0/lobster/internal/config"
	"github.com/aretw0/lobster/pkg/adapters/memory"
	"github.com/aretw0/lobster/pkg/adapters/redis"
	"github.com/aretw0/lobster/pkg/adapters/sqlite"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/observability"
	"github.com/aretw0/lobster/pkg/persistence/middleware"
	"github.com/aretw0/lobster/pkg/ports"
)

// backend is an opened cache plus what it takes to release it.
type backend struct {
	cache  ports.Cache
	locker ports.DistributedLocker
	close  func() error
}

// openBackend opens the configured cache and wraps it with encryption and,
// when metrics is non-nil, instrumentation.
func openBackend(c config.Config, metrics *observability.Metrics) (*backend, error) {
	b := &backend{close: func() error { return nil }}

	switch c.Backend {
	case config.BackendMemory:
		b.cache = memory.NewCache()
	case config.BackendRedis:
		rc := redis.New(c.RedisAddr, c.RedisPassword, c.RedisDB,
			redis.WithPrefix(c.RedisPrefix),
			redis.WithTTL(c.RedisTTL),
		)
		b.cache = rc
		b.close = rc.Close
		if c.DistributedLock {
			b.locker = redis.NewLocker(rc.Client(), c.RedisPrefix)
		}
	case config.BackendSQLite:
		sc, err := sqlite.Open(c.SQLitePath)
		if err != nil {
			return nil, err
		}
		b.cache = sc
		b.close = sc.Close
	default:
		return nil, fmt.Errorf("unknown backend %q", c.Backend)
	}

	var mws []middleware.Middleware
	if metrics != nil {
		mws = append(mws, metrics.InstrumentCache())
	}
	active, fallback, err := c.EncryptionKeys()
	if err != nil {
		_ = b.close()
		return nil, err
	}
	if active != nil {
		enc, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		})
		if err != nil {
			_ = b.close()
			return nil, err
		}
		mws = append(mws, enc)
	}
	b.cache = middleware.Chain(b.cache, mws...)
	return b, nil
}

// newEngine opens the backend and builds an engine on it. The returned
// function releases the backend.
func newEngine(hooks *domain.LifecycleHooks, metrics *observability.Metrics) (*lobster.Engine, func(), error) {
	if err := cfg.Validate(false); err != nil {
		return nil, nil, err
	}

	b, err := openBackend(cfg, metrics)
	if err != nil {
		return nil, nil, err
	}
	release := func() {
		if err := b.close(); err != nil {
			logger.Warn("Failed to close backend", "backend", cfg.Backend, "err", err)
		}
	}

	opts := []lobster.Option{
		lobster.WithLogger(logger),
		lobster.WithTemplateKey(cfg.TemplateKey),
		lobster.WithSessionPrefix(cfg.SessionPrefix),
		lobster.WithLockTTL(cfg.LockTTL),
	}
	if b.locker != nil {
		opts = append(opts, lobster.WithLocker(b.locker))
	}
	if hooks != nil {
		opts = append(opts, lobster.WithLifecycleHooks(*hooks))
	}

	eng, err := lobster.New(b.cache, opts...)
	if err != nil {
		release()
		return nil, nil, err
	}
	if cfg.Backend == config.BackendMemory {
		logger.Debug("Using the memory backend; state is lost when the process exits")
	}
	return eng, release, nil
}

// exitCode maps engine errors to process exit codes.
func exitCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return 2
	case errors.Is(err, domain.ErrNotFound):
		return 3
	default:
		return 1
	}
}

// fail prints err and exits with the code matching its kind.
func fail(msg string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %v\n", msg, err)
	os.Exit(exitCode(err))
}
