/*
Package observability turns engine lifecycle hooks into metrics and logs.

Metrics registers Prometheus collectors for tree mutations, drag sessions and
block evaluations; LoggingHooks writes the same events as structured log
lines. Both return domain.LifecycleHooks, so they compose with Merge:

	metrics := observability.NewMetrics(prometheus.NewRegistry())
	hooks := metrics.Hooks().Merge(observability.LoggingHooks(logger))
*/
package observability
