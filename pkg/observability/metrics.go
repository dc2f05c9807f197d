package observability

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/lobster/pkg/domain"
	"github.com/aretw0/lobster/pkg/persistence/middleware"
	"github.com/aretw0/lobster/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the collectors of one engine.
type Metrics struct {
	registry *prometheus.Registry

	events     *prometheus.CounterVec
	pathLength prometheus.Histogram
	cacheOps   *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lobster_events_total",
				Help: "Total number of engine lifecycle events",
			},
			[]string{"event"},
		),
		pathLength: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "lobster_result_path_length",
				Help:    "Number of selected nodes when a result is viewed",
				Buckets: prometheus.ExponentialBuckets(1, 2, 8),
			},
		),
		cacheOps: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lobster_cache_operation_duration_seconds",
				Help:    "Duration of cache operations",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"op", "result"},
		),
	}
	m.registry.MustRegister(m.events, m.pathLength, m.cacheOps)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that count engine events.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	count := func(_ context.Context, e *domain.StepEvent) {
		m.events.WithLabelValues(string(e.Type)).Inc()
	}
	return domain.LifecycleHooks{
		OnAdventureCreated: func(_ context.Context, e *domain.AdventureEvent) {
			m.events.WithLabelValues(string(e.Type)).Inc()
		},
		OnSessionStarted: count,
		OnNodeSelected:   count,
		OnMoveRejected:   count,
		OnResultViewed: func(ctx context.Context, e *domain.StepEvent) {
			count(ctx, e)
			m.pathLength.Observe(float64(e.Selected))
		},
	}
}

// InstrumentCache returns a middleware timing every cache call.
func (m *Metrics) InstrumentCache() middleware.Middleware {
	return func(next ports.Cache) ports.Cache {
		return &instrumentedCache{next: next, ops: m.cacheOps}
	}
}

type instrumentedCache struct {
	next ports.Cache
	ops  *prometheus.HistogramVec
}

func (c *instrumentedCache) observe(op string, start time.Time, err error) {
	result := "ok"
	switch {
	case errors.Is(err, ports.ErrCacheMiss):
		result = "miss"
	case err != nil:
		result = "error"
	}
	c.ops.WithLabelValues(op, result).Observe(time.Since(start).Seconds())
}

func (c *instrumentedCache) GetString(ctx context.Context, key string) (string, error) {
	start := time.Now()
	v, err := c.next.GetString(ctx, key)
	c.observe("get", start, err)
	return v, err
}

func (c *instrumentedCache) SetString(ctx context.Context, key, value string) error {
	start := time.Now()
	err := c.next.SetString(ctx, key, value)
	c.observe("set", start, err)
	return err
}

func (c *instrumentedCache) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := c.next.Remove(ctx, key)
	c.observe("remove", start, err)
	return err
}

func (c *instrumentedCache) Keys(ctx context.Context, prefix string) ([]string, error) {
	lister, ok := c.next.(ports.KeyLister)
	if !ok {
		return nil, ports.ErrKeysUnsupported
	}
	start := time.Now()
	keys, err := lister.Keys(ctx, prefix)
	c.observe("keys", start, err)
	return keys, err
}
