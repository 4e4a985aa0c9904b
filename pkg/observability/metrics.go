package observability

import (
	"context"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/stagedup/pkg/domain"
)

// Metrics holds the duplicator collectors.
type Metrics struct {
	Runs        *prometheus.CounterVec
	Attempts    *prometheus.CounterVec
	Created     prometheus.Counter
	RunDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg. A nil reg
// skips registration, which is handy for tests that use their own registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stagedup_runs_total",
				Help: "Total number of duplicate runs",
			},
			[]string{"axis", "strategy"},
		),
		Attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "stagedup_attempts_total",
				Help: "Per-copy attempts by outcome",
			},
			[]string{"outcome"},
		),
		Created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "stagedup_prims_created_total",
			Help: "Duplicates counted as created",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "stagedup_run_duration_seconds",
			Help:    "Duration of duplicate runs",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Runs, m.Attempts, m.Created, m.RunDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnRunStart: func(ctx context.Context, e *domain.RunEvent) {
			m.Runs.WithLabelValues(strings.ToLower(e.Request.Axis.String()), strategyLabel(e.Request)).Inc()
		},
		OnAttempt: func(ctx context.Context, e *domain.AttemptEvent) {
			m.Attempts.WithLabelValues(outcomeLabel(e.Attempt)).Inc()
			if e.Attempt.Counted() {
				m.Created.Inc()
			}
		},
		OnRunFinish: func(ctx context.Context, e *domain.RunEvent) {
			m.RunDuration.Observe(e.Duration.Seconds())
		},
	}
}

func strategyLabel(req domain.Request) string {
	if req.UseInstances {
		return "instance"
	}
	return "copy"
}

func outcomeLabel(a domain.Attempt) string {
	if a.Creation != domain.Created {
		return string(domain.CreationFailed)
	}
	if a.Transform == domain.TransformFailed {
		return string(domain.TransformFailed)
	}
	return string(domain.Created)
}
