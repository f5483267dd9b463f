package config

import "time"

const (
	DefaultOrigin        = "<inline>"
	DefaultWatchDebounce = 100 * time.Millisecond

	DefaultLoggingLevel  = "warn"
	DefaultLoggingFormat = "console"

	DefaultMetricsAddress   = ":9090"
	DefaultMetricsPath      = "/metrics"
	DefaultMetricsNamespace = "jsruntime"
	DefaultMetricsSubsystem = "engine"
)

// DefaultRunDurationBuckets covers runs from 1ms to 30s.
var DefaultRunDurationBuckets = []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5, 30}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}

// ApplyDefaults fills zero-valued fields. It is idempotent.
func ApplyDefaults(cfg *Config) {
	if cfg.Runner.Origin == "" {
		cfg.Runner.Origin = DefaultOrigin
	}
	if cfg.Runner.WatchDebounce == 0 {
		cfg.Runner.WatchDebounce = DefaultWatchDebounce
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}

	if cfg.Metrics.Address == "" {
		cfg.Metrics.Address = DefaultMetricsAddress
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = DefaultMetricsPath
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
	if cfg.Metrics.Subsystem == "" {
		cfg.Metrics.Subsystem = DefaultMetricsSubsystem
	}
	if len(cfg.Metrics.RunDurationBuckets) == 0 {
		cfg.Metrics.RunDurationBuckets = append([]float64(nil), DefaultRunDurationBuckets...)
	}
}
