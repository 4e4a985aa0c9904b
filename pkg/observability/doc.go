/*
Package observability turns duplicator lifecycle events into Prometheus
metrics and structured log lines.

Both are plain domain.LifecycleHooks values and can be merged:

	metrics := observability.NewMetrics(prometheus.DefaultRegisterer)
	hooks := metrics.Hooks().Merge(observability.LogHooks(logger))
	dup := stagedup.New(stagedup.WithLifecycleHooks(hooks))
*/
package observability
