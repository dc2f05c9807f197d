package lobster

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/lobster/internal/logging"
	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/persistence"
	"github.com/aretw0/lobster/pkg/ports"
	"github.com/aretw0/lobster/pkg/session"
)

// Engine is the high-level entry point for the Lobster library.
// It wires the adventure template, per-user sessions and the traversal rules
// behind the four user-facing operations.
type Engine struct {
	adventures *persistence.AdventureStore
	sessions   *persistence.SessionStore
	manager    *session.Manager

	templateKey   string
	sessionPrefix string
	locker        ports.DistributedLocker
	lockTTL       time.Duration
	hooks         domain.LifecycleHooks
	logger        *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithLocker serializes same-user operations across processes.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(e *Engine) {
		e.locker = locker
	}
}

// WithLockTTL sets the expiry of distributed locks (default: 30s).
func WithLockTTL(ttl time.Duration) Option {
	return func(e *Engine) {
		e.lockTTL = ttl
	}
}

// WithTemplateKey overrides the cache key of the adventure template
// (default: "AdventureArray").
func WithTemplateKey(key string) Option {
	return func(e *Engine) {
		e.templateKey = key
	}
}

// WithSessionPrefix overrides the cache key prefix of user sessions
// (default: "session:").
func WithSessionPrefix(prefix string) Option {
	return func(e *Engine) {
		e.sessionPrefix = prefix
	}
}

// New initializes a new Lobster Engine on top of cache.
func New(cache ports.Cache, opts ...Option) (*Engine, error) {
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}

	eng := &Engine{}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.adventures = persistence.NewAdventureStore(cache, eng.templateKey)
	eng.sessions = persistence.NewSessionStore(cache, eng.sessionPrefix)

	managerOpts := []session.Option{
		session.WithLogger(eng.logger),
		session.WithLockTTL(eng.lockTTL),
	}
	if eng.locker != nil {
		managerOpts = append(managerOpts, session.WithLocker(eng.locker))
	}
	eng.manager = session.NewManager(eng.sessions, managerOpts...)

	return eng, nil
}

// CreateAdventure builds a tree from labels and makes it the template every
// new session copies from. Any previous template is replaced.
func (e *Engine) CreateAdventure(ctx context.Context, labels []*string) (*domain.Node, error) {
	tree, err := domain.Build(labels)
	if err != nil {
		e.logger.Warn("Adventure rejected", "err", err)
		return nil, err
	}

	if err := e.adventures.Put(ctx, tree); err != nil {
		e.logger.Error("Failed to store adventure", "key", e.adventures.Key(), "err", err)
		return nil, err
	}

	e.logger.Info("Adventure created", "nodes", tree.Len())
	if e.hooks.OnAdventureCreated != nil {
		e.hooks.OnAdventureCreated(ctx, &domain.AdventureEvent{
			EventBase: e.event(domain.EventAdventureCreated, ""),
			Nodes:     tree.Len(),
		})
	}
	return tree.Root(), nil
}

// Adventure returns the current template.
func (e *Engine) Adventure(ctx context.Context) (*domain.Node, error) {
	tree, err := e.adventures.Get(ctx)
	if err != nil {
		e.logFailure("Failed to load adventure", "", err)
		return nil, err
	}
	return tree.Root(), nil
}

// StartUserAdventure seeds the user's session with a fresh copy of the
// template, selects the root and returns the first step. An existing
// session is replaced.
func (e *Engine) StartUserAdventure(ctx context.Context, userID string) (*domain.Node, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	tree, err := e.adventures.Get(ctx)
	if err != nil {
		e.logFailure("Failed to load adventure", userID, err)
		return nil, err
	}

	step, err := tree.Start()
	if err != nil {
		return nil, err
	}

	if err := e.manager.Seed(ctx, userID, tree); err != nil {
		e.logFailure("Failed to store session", userID, err)
		return nil, err
	}

	e.logger.Debug("Session started", "user_id", userID, "node_id", step.ID)
	if e.hooks.OnSessionStarted != nil {
		e.hooks.OnSessionStarted(ctx, e.stepEvent(domain.EventSessionStarted, userID, step.ID, tree))
	}
	return step, nil
}

// AdvanceUserAdventure selects nodeID in the user's session and returns the
// next step from it. Only nodes on or directly below the explored path are
// accepted; anything else fails with domain.ErrNodeUnreachable and leaves the
// session untouched.
func (e *Engine) AdvanceUserAdventure(ctx context.Context, userID string, nodeID int) (*domain.Node, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	var (
		step     *domain.Node
		selected *domain.Tree
	)
	err := e.manager.Update(ctx, userID, func(tree *domain.Tree) error {
		var err error
		step, err = tree.Advance(nodeID)
		selected = tree
		return err
	})
	if err != nil {
		if errors.Is(err, domain.ErrNodeUnreachable) {
			e.logger.Warn("Move rejected", "user_id", userID, "node_id", nodeID)
			if e.hooks.OnMoveRejected != nil {
				e.hooks.OnMoveRejected(ctx, e.stepEvent(domain.EventMoveRejected, userID, nodeID, selected))
			}
			return nil, err
		}
		e.logFailure("Failed to advance session", userID, err)
		return nil, err
	}

	e.logger.Debug("Node selected", "user_id", userID, "node_id", nodeID)
	if e.hooks.OnNodeSelected != nil {
		e.hooks.OnNodeSelected(ctx, e.stepEvent(domain.EventNodeSelected, userID, nodeID, selected))
	}
	return step, nil
}

// UserResult returns the path the user took: the template shape with the
// children of every unselected node removed.
func (e *Engine) UserResult(ctx context.Context, userID string) (*domain.Node, error) {
	tree, err := e.UserSession(ctx, userID)
	if err != nil {
		return nil, err
	}

	if e.hooks.OnResultViewed != nil {
		e.hooks.OnResultViewed(ctx, e.stepEvent(domain.EventResultViewed, userID, 0, tree))
	}
	return tree.Path(), nil
}

// UserSession returns a private copy of the user's session tree.
func (e *Engine) UserSession(ctx context.Context, userID string) (*domain.Tree, error) {
	if userID == "" {
		return nil, domain.ErrUnauthenticated
	}

	tree, err := e.manager.Load(ctx, userID)
	if err != nil {
		e.logFailure("Failed to load session", userID, err)
		return nil, err
	}
	return tree, nil
}

// ResetUserAdventure drops the user's session. Resetting a user without a
// session is not an error.
func (e *Engine) ResetUserAdventure(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.ErrUnauthenticated
	}

	if err := e.manager.Delete(ctx, userID); err != nil {
		e.logFailure("Failed to delete session", userID, err)
		return err
	}
	e.logger.Debug("Session reset", "user_id", userID)
	return nil
}

// ListSessions returns the users holding a session. It fails with
// ports.ErrKeysUnsupported when the cache cannot enumerate keys.
func (e *Engine) ListSessions(ctx context.Context) ([]string, error) {
	return e.sessions.List(ctx)
}

func (e *Engine) logFailure(msg, userID string, err error) {
	if errors.Is(err, domain.ErrPersistence) {
		e.logger.Error(msg, "user_id", userID, "err", err)
		return
	}
	e.logger.Debug(msg, "user_id", userID, "err", err)
}

func (e *Engine) event(t domain.EventType, userID string) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: t, UserID: userID}
}

func (e *Engine) stepEvent(t domain.EventType, userID string, nodeID int, tree *domain.Tree) *domain.StepEvent {
	ev := &domain.StepEvent{EventBase: e.event(t, userID), NodeID: nodeID}
	if tree != nil {
		ev.Selected = len(tree.SelectedIDs())
	}
	return ev
}
