/*
Package observability exposes Prometheus metrics for the Lobster engine.

Metrics plugs into the engine through domain.LifecycleHooks and into the
storage stack as a cache middleware, so neither the domain nor the adapters
depend on Prometheus.
*/
package observability
