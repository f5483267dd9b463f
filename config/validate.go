package config

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// FieldError is a validation failure of a single field.
type FieldError struct {
	// Field is the dotted path of the field, e.g. "runner.timeout".
	Field string

	// Message describes the failure.
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError collects every field failure of a configuration.
type ValidationError struct {
	Errors []FieldError
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "configuration validation failed with %d errors:\n", len(e.Errors))
	for _, err := range e.Errors {
		fmt.Fprintf(&sb, "  - %s\n", err.Error())
	}
	return sb.String()
}

var identifier = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate checks the configuration and returns a ValidationError listing
// every failure, or nil.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Isolate.MaxCallStackSize < 0 {
		errs = append(errs, FieldError{"isolate.max_call_stack_size", "must not be negative"})
	}
	if cfg.Isolate.WasmMemoryLimitPages > 65536 {
		errs = append(errs, FieldError{"isolate.wasm_memory_limit_pages", "must be at most 65536"})
	}
	if cfg.Isolate.WasmMemoryLimitPages > 0 && !cfg.Isolate.WebAssembly {
		errs = append(errs, FieldError{"isolate.wasm_memory_limit_pages", "requires isolate.webassembly"})
	}

	if cfg.Runner.Timeout < 0 {
		errs = append(errs, FieldError{"runner.timeout", "must not be negative"})
	}
	if cfg.Runner.WatchDebounce < 0 {
		errs = append(errs, FieldError{"runner.watch_debounce", "must not be negative"})
	}
	names := make([]string, 0, len(cfg.Runner.Globals))
	for name := range cfg.Runner.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if !identifier.MatchString(name) {
			errs = append(errs, FieldError{"runner.globals." + name, "is not a valid identifier"})
		}
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"logging.level", fmt.Sprintf("unknown level %q", cfg.Logging.Level)})
	}
	switch cfg.Logging.Format {
	case "console", "json":
	default:
		errs = append(errs, FieldError{"logging.format", fmt.Sprintf("unknown format %q", cfg.Logging.Format)})
	}

	if cfg.Metrics.Enabled {
		if !strings.HasPrefix(cfg.Metrics.Path, "/") {
			errs = append(errs, FieldError{"metrics.path", "must start with /"})
		}
		if !metricName.MatchString(cfg.Metrics.Namespace) {
			errs = append(errs, FieldError{"metrics.namespace", "is not a valid metric name"})
		}
		if !metricName.MatchString(cfg.Metrics.Subsystem) {
			errs = append(errs, FieldError{"metrics.subsystem", "is not a valid metric name"})
		}
		if !sort.Float64sAreSorted(cfg.Metrics.RunDurationBuckets) {
			errs = append(errs, FieldError{"metrics.run_duration_buckets", "must be sorted"})
		}
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
