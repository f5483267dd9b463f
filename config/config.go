package config

import (
	"time"

	"github.com/wippyai/js-runtime/engine"
)

// Config is the file configuration of the runner.
type Config struct {
	// Isolate configures every isolate the runner creates.
	Isolate IsolateConfig `yaml:"isolate" toml:"isolate"`

	// Runner controls how scripts are executed.
	Runner RunnerConfig `yaml:"runner" toml:"runner"`

	// Logging configures the zap logger.
	Logging LoggingConfig `yaml:"logging" toml:"logging"`

	// Metrics configures the Prometheus endpoint.
	Metrics MetricsConfig `yaml:"metrics" toml:"metrics"`
}

// IsolateConfig mirrors engine.Config for file loading.
type IsolateConfig struct {
	// HeapSizeLimit is reported as the heap limit in heap statistics.
	// 0 uses the Go runtime memory limit.
	HeapSizeLimit uint64 `yaml:"heap_size_limit" toml:"heap_size_limit"`

	// MaxCallStackSize bounds script recursion. 0 keeps the engine default.
	MaxCallStackSize int `yaml:"max_call_stack_size" toml:"max_call_stack_size"`

	// Strict compiles every script in strict mode.
	Strict bool `yaml:"strict" toml:"strict"`

	// WebAssembly installs the WebAssembly global.
	WebAssembly bool `yaml:"webassembly" toml:"webassembly"`

	// WasmMemoryLimitPages caps module memory in 64KB pages.
	WasmMemoryLimitPages uint32 `yaml:"wasm_memory_limit_pages" toml:"wasm_memory_limit_pages"`
}

// RunnerConfig controls script execution.
type RunnerConfig struct {
	// Timeout terminates a run that takes longer. 0 disables the watchdog.
	// Default: 0
	Timeout time.Duration `yaml:"timeout" toml:"timeout"`

	// Origin names inline scripts in error locations.
	// Default: "<inline>"
	Origin string `yaml:"origin" toml:"origin"`

	// Globals are string properties installed on the global object.
	Globals map[string]string `yaml:"globals" toml:"globals"`

	// ReadOnlyGlobals makes Globals read-only and non-deletable.
	ReadOnlyGlobals bool `yaml:"read_only_globals" toml:"read_only_globals"`

	// Watch re-runs the script when its file changes.
	Watch bool `yaml:"watch" toml:"watch"`

	// WatchDebounce coalesces bursts of file events.
	// Default: 100ms
	WatchDebounce time.Duration `yaml:"watch_debounce" toml:"watch_debounce"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	// Default: "warn"
	Level string `yaml:"level" toml:"level"`

	// Format is "console" or "json".
	// Default: "console"
	Format string `yaml:"format" toml:"format"`
}

// MetricsConfig configures Prometheus metrics.
type MetricsConfig struct {
	// Enabled turns on metric collection and the HTTP endpoint.
	Enabled bool `yaml:"enabled" toml:"enabled"`

	// Address is the listen address of the metrics endpoint.
	// Default: ":9090"
	Address string `yaml:"address" toml:"address"`

	// Path is the HTTP path of the metrics endpoint.
	// Default: "/metrics"
	Path string `yaml:"path" toml:"path"`

	// Namespace is the metric name prefix.
	// Default: "jsruntime"
	Namespace string `yaml:"namespace" toml:"namespace"`

	// Subsystem is the metric subsystem name.
	// Default: "engine"
	Subsystem string `yaml:"subsystem" toml:"subsystem"`

	// RunDurationBuckets are histogram buckets for script run time in seconds.
	RunDurationBuckets []float64 `yaml:"run_duration_buckets" toml:"run_duration_buckets"`
}

// ToEngine converts the isolate section to an engine configuration.
func (c *Config) ToEngine(observer engine.Observer) *engine.Config {
	return &engine.Config{
		Observer:             observer,
		HeapSizeLimit:        c.Isolate.HeapSizeLimit,
		MaxCallStackSize:     c.Isolate.MaxCallStackSize,
		Strict:               c.Isolate.Strict,
		EnableWebAssembly:    c.Isolate.WebAssembly,
		WasmMemoryLimitPages: c.Isolate.WasmMemoryLimitPages,
	}
}
