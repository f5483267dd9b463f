package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/wippyai/js-runtime/errors"
)

const yamlConfig = `
isolate:
  strict: true
  max_call_stack_size: 512
  webassembly: true
  wasm_memory_limit_pages: 16
runner:
  timeout: 5s
  globals:
    env: production
logging:
  level: debug
  format: json
metrics:
  enabled: true
  address: ":9100"
`

const tomlConfig = `
[isolate]
strict = true
max_call_stack_size = 512
webassembly = true
wasm_memory_limit_pages = 16

[runner]
timeout = "5s"

[runner.globals]
env = "production"

[logging]
level = "debug"
format = "json"

[metrics]
enabled = true
address = ":9100"
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "runner.yaml", yamlConfig},
		{"yml", "runner.yml", yamlConfig},
		{"toml", "runner.toml", tomlConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}

			if !cfg.Isolate.Strict || cfg.Isolate.MaxCallStackSize != 512 || !cfg.Isolate.WebAssembly {
				t.Errorf("isolate = %+v", cfg.Isolate)
			}
			if cfg.Runner.Timeout != 5*time.Second {
				t.Errorf("timeout = %v", cfg.Runner.Timeout)
			}
			if !reflect.DeepEqual(cfg.Runner.Globals, map[string]string{"env": "production"}) {
				t.Errorf("globals = %v", cfg.Runner.Globals)
			}
			if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
				t.Errorf("logging = %+v", cfg.Logging)
			}
			if !cfg.Metrics.Enabled || cfg.Metrics.Address != ":9100" {
				t.Errorf("metrics = %+v", cfg.Metrics)
			}

			// Defaults fill what the file leaves out.
			if cfg.Runner.Origin != DefaultOrigin || cfg.Metrics.Path != DefaultMetricsPath {
				t.Errorf("defaults not applied: %+v", cfg)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		want    string
	}{
		{"unsupported extension", "runner.json", "{}", "unsupported extension"},
		{"bad yaml", "runner.yaml", "isolate: [", "parse yaml"},
		{"bad toml", "runner.toml", "[isolate", "parse toml"},
		{"invalid value", "runner.yaml", "logging:\n  level: loud\n", "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindInvalidData}) {
				t.Errorf("error %v is not a config error", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !stderrors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Runner.Origin != DefaultOrigin {
		t.Errorf("origin = %q", cfg.Runner.Origin)
	}
	if cfg.Runner.WatchDebounce != DefaultWatchDebounce {
		t.Errorf("debounce = %v", cfg.Runner.WatchDebounce)
	}
	if cfg.Logging.Level != DefaultLoggingLevel || cfg.Logging.Format != DefaultLoggingFormat {
		t.Errorf("logging = %+v", cfg.Logging)
	}
	if !reflect.DeepEqual(cfg.Metrics.RunDurationBuckets, DefaultRunDurationBuckets) {
		t.Errorf("buckets = %v", cfg.Metrics.RunDurationBuckets)
	}
	if cfg.Metrics.Enabled {
		t.Error("metrics should be off by default")
	}

	// Idempotent, and explicit values survive.
	cfg.Runner.Origin = "main.js"
	ApplyDefaults(cfg)
	if cfg.Runner.Origin != "main.js" {
		t.Errorf("explicit origin overwritten: %q", cfg.Runner.Origin)
	}
	if err := Validate(cfg); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		fields []string
	}{
		{"valid", func(*Config) {}, nil},
		{"negative stack", func(c *Config) { c.Isolate.MaxCallStackSize = -1 }, []string{"isolate.max_call_stack_size"}},
		{"wasm pages without wasm", func(c *Config) { c.Isolate.WasmMemoryLimitPages = 1 }, []string{"isolate.wasm_memory_limit_pages"}},
		{"negative timeout", func(c *Config) { c.Runner.Timeout = -time.Second }, []string{"runner.timeout"}},
		{"bad global", func(c *Config) { c.Runner.Globals = map[string]string{"ok": "1", "not-ok": "2"} }, []string{"runner.globals.not-ok"}},
		{"bad format", func(c *Config) { c.Logging.Format = "xml" }, []string{"logging.format"}},
		{"metrics off skips checks", func(c *Config) { c.Metrics.Path = "metrics" }, nil},
		{"metrics on", func(c *Config) {
			c.Metrics.Enabled = true
			c.Metrics.Path = "metrics"
			c.Metrics.Namespace = "js-runtime"
			c.Metrics.RunDurationBuckets = []float64{1, 0.5}
		}, []string{"metrics.path", "metrics.namespace", "metrics.run_duration_buckets"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)

			err := Validate(cfg)
			if len(tt.fields) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}

			var verr ValidationError
			if !stderrors.As(err, &verr) {
				t.Fatalf("error %v is not a ValidationError", err)
			}
			var got []string
			for _, fe := range verr.Errors {
				got = append(got, fe.Field)
			}
			if !reflect.DeepEqual(got, tt.fields) {
				t.Errorf("fields = %v, want %v", got, tt.fields)
			}
		})
	}
}

func TestValidationError_Message(t *testing.T) {
	one := ValidationError{Errors: []FieldError{{"a", "bad"}}}
	if got := one.Error(); got != "configuration validation failed: a: bad" {
		t.Errorf("one = %q", got)
	}
	two := ValidationError{Errors: []FieldError{{"a", "bad"}, {"b", "worse"}}}
	if got := two.Error(); !strings.Contains(got, "2 errors") || !strings.Contains(got, "  - b: worse") {
		t.Errorf("two = %q", got)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("JSRUNTIME_RUNNER_TIMEOUT", "250ms")
	t.Setenv("JSRUNTIME_ISOLATE_STRICT", "true")
	t.Setenv("JSRUNTIME_METRICS_ADDRESS", "127.0.0.1:9999")

	cfg, err := Parse([]byte("runner:\n  timeout: 5s\n"), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Runner.Timeout != 250*time.Millisecond {
		t.Errorf("timeout = %v", cfg.Runner.Timeout)
	}
	if !cfg.Isolate.Strict {
		t.Error("strict override not applied")
	}
	if !cfg.Metrics.Enabled || cfg.Metrics.Address != "127.0.0.1:9999" {
		t.Errorf("metrics = %+v", cfg.Metrics)
	}
}

func TestToEngine(t *testing.T) {
	cfg := Default()
	cfg.Isolate = IsolateConfig{
		HeapSizeLimit:        1 << 30,
		MaxCallStackSize:     100,
		Strict:               true,
		WebAssembly:          true,
		WasmMemoryLimitPages: 4,
	}

	ec := cfg.ToEngine(nil)
	if ec.HeapSizeLimit != 1<<30 || ec.MaxCallStackSize != 100 || !ec.Strict || !ec.EnableWebAssembly || ec.WasmMemoryLimitPages != 4 {
		t.Errorf("engine config = %+v", ec)
	}
	if ec.Observer != nil {
		t.Error("observer should be nil")
	}
}

func TestLoggingConfig_Logger(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		l, err := LoggingConfig{Level: "info", Format: format}.Logger()
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		if l.Core().Enabled(-1) {
			t.Errorf("%s: debug should be disabled at info level", format)
		}
		_ = l.Sync()
	}

	if _, err := (LoggingConfig{Level: "loud"}).Logger(); err == nil {
		t.Error("unknown level should fail")
	}
}
