package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/wippyai/js-runtime/errors"
)

// Format is a configuration file syntax.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the syntax from the file extension.
func FormatOf(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, true
	case ".toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Load reads a YAML or TOML file chosen by extension, applies defaults and
// environment overrides, and validates the result.
func Load(path string) (*Config, error) {
	format, ok := FormatOf(path)
	if !ok {
		return nil, errors.ConfigFailed(path, fmt.Errorf("unsupported extension %q", filepath.Ext(path)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigFailed(path, err)
	}

	cfg, err := Parse(data, format)
	if err != nil {
		return nil, errors.ConfigFailed(path, err)
	}
	return cfg, nil
}

// Parse decodes data in the given syntax, applies defaults and
// environment overrides, and validates the result.
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Environment overrides use the JSRUNTIME_SECTION_FIELD convention.
func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("JSRUNTIME_RUNNER_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Runner.Timeout = d
		}
	}
	if val := os.Getenv("JSRUNTIME_ISOLATE_STRICT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Isolate.Strict = b
		}
	}
	if val := os.Getenv("JSRUNTIME_ISOLATE_MAX_CALL_STACK_SIZE"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Isolate.MaxCallStackSize = i
		}
	}
	if val := os.Getenv("JSRUNTIME_LOGGING_LEVEL"); val != "" {
		cfg.Logging.Level = val
	}
	if val := os.Getenv("JSRUNTIME_METRICS_ADDRESS"); val != "" {
		cfg.Metrics.Address = val
		cfg.Metrics.Enabled = true
	}
}
