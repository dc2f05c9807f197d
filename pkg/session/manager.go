package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/lobster/internal/logging"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/ports"
)

// DefaultLockTTL bounds how long a distributed lock survives a crashed holder.
const DefaultLockTTL = 30 * time.Second

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, serializing every operation on the
// same user. It uses Reference Counting to garbage collect unused locks.
type Manager struct {
	store ports.SessionStore

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks

	locker  ports.DistributedLocker // Optional distributed locker
	lockTTL time.Duration
	logger  *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new Session Manager with the given persistence store.
func NewManager(store ports.SessionStore, opts ...Option) *Manager {
	m := &Manager{
		store:   store,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller MUST Lock the entry.mu, and then call release(userID) after unlocking.
func (m *Manager) acquire(userID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		entry = &lockEntry{}
		m.locks[userID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry if it reaches zero.
func (m *Manager) release(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[userID]
	if !exists {
		return
	}

	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, userID)
	}
}

// Load retrieves the user's tree.
func (m *Manager) Load(ctx context.Context, userID string) (*domain.Tree, error) {
	var tree *domain.Tree
	err := m.WithLock(ctx, userID, func(ctx context.Context) error {
		var err error
		tree, err = m.store.Load(ctx, userID)
		return err
	})
	return tree, err
}

// Seed stores a fresh tree for the user, replacing any existing session.
func (m *Manager) Seed(ctx context.Context, userID string, tree *domain.Tree) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		return m.store.Save(ctx, userID, tree)
	})
}

// Update loads the user's tree, hands it to fn and saves it if fn succeeds.
// The whole cycle runs under the user's lock, so concurrent updates for the
// same user never lose each other's selections. fn works on a private copy;
// if it fails nothing is written.
func (m *Manager) Update(ctx context.Context, userID string, fn func(tree *domain.Tree) error) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		tree, err := m.store.Load(ctx, userID)
		if err != nil {
			return err
		}
		if err := fn(tree); err != nil {
			return err
		}
		return m.store.Save(ctx, userID, tree)
	})
}

// Delete removes the session from the store.
func (m *Manager) Delete(ctx context.Context, userID string) error {
	return m.WithLock(ctx, userID, func(ctx context.Context) error {
		return m.store.Delete(ctx, userID)
	})
}

// WithLock executes a function while holding the lock for the user.
func (m *Manager) WithLock(ctx context.Context, userID string, fn func(context.Context) error) error {
	entry := m.acquire(userID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(userID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, userID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			// The request context may already be canceled; release anyway.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("Failed to release distributed lock (will expire via TTL)",
					"user_id", userID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}
