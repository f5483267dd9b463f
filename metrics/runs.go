package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/js-runtime/config"
	"github.com/wippyai/js-runtime/engine"
)

// RunMetrics tracks script executions.
//
// Metrics:
//   - script_runs_total: runs by outcome (ok, compile, runtime, terminated, internal)
//   - script_run_duration_seconds: run time by outcome
type RunMetrics struct {
	runsTotal *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

// NewRunMetrics creates and registers run metrics.
func NewRunMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *RunMetrics {
	rm := &RunMetrics{
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "script_runs_total",
				Help:      "Total number of script runs",
			},
			[]string{"outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "script_run_duration_seconds",
				Help:      "Script run duration in seconds",
				Buckets:   cfg.RunDurationBuckets,
			},
			[]string{"outcome"},
		),
	}

	registry.MustRegister(rm.runsTotal, rm.duration)
	return rm
}

// OnScriptRun implements engine.Observer.
func (rm *RunMetrics) OnScriptRun(ev engine.RunEvent) {
	outcome := ev.Outcome.String()
	rm.runsTotal.WithLabelValues(outcome).Inc()
	rm.duration.WithLabelValues(outcome).Observe(ev.Duration.Seconds())
}
