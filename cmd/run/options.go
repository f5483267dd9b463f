package main

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/wippyai/js-runtime/config"
)

// globalFlags collects repeated -global name=value flags.
type globalFlags map[string]string

func (g globalFlags) String() string {
	names := make([]string, 0, len(g))
	for name := range g {
		names = append(names, name)
	}
	sort.Strings(names)
	pairs := make([]string, len(names))
	for i, name := range names {
		pairs[i] = name + "=" + g[name]
	}
	return strings.Join(pairs, ",")
}

func (g globalFlags) Set(s string) error {
	name, value, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("expected name=value, got %q", s)
	}
	g[name] = value
	return nil
}

type options struct {
	script      string
	eval        string
	configPath  string
	timeout     time.Duration
	globals     globalFlags
	readOnly    bool
	stats       bool
	watch       bool
	interactive bool
	metricsAddr string
	logLevel    string
}

func parseOptions(args []string, output io.Writer) (*options, error) {
	opts := &options{globals: globalFlags{}}

	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(output)
	fs.StringVar(&opts.script, "script", "", "Path to a JavaScript file")
	fs.StringVar(&opts.eval, "e", "", "Inline source to run")
	fs.StringVar(&opts.configPath, "config", "", "YAML or TOML configuration file")
	fs.DurationVar(&opts.timeout, "timeout", 0, "Terminate runs that take longer (0 disables)")
	fs.Var(opts.globals, "global", "Global string property name=value (repeatable)")
	fs.BoolVar(&opts.readOnly, "readonly", false, "Make -global properties read-only")
	fs.BoolVar(&opts.stats, "stats", false, "Print heap statistics after the run")
	fs.BoolVar(&opts.watch, "watch", false, "Re-run the script when the file changes")
	fs.BoolVar(&opts.interactive, "i", false, "Interactive mode with TUI")
	fs.StringVar(&opts.metricsAddr, "metrics", "", "Serve Prometheus metrics on this address")
	fs.StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.Usage = func() {
		fmt.Fprintln(output, "Usage: run -script <file.js> [-timeout 5s] [-global name=value ...]")
		fmt.Fprintln(output, "       run -e '<source>'")
		fmt.Fprintln(output, "       run -i  (interactive mode)")
		fmt.Fprintln(output)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() == 1 && opts.script == "" {
		opts.script = fs.Arg(0)
	} else if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if opts.script != "" && opts.eval != "" {
		return nil, fmt.Errorf("-script and -e are mutually exclusive")
	}
	if opts.watch && opts.script == "" {
		return nil, fmt.Errorf("-watch requires a script file")
	}
	if opts.watch && opts.interactive {
		return nil, fmt.Errorf("-watch and -i are mutually exclusive")
	}
	return opts, nil
}

// loadConfig reads the configuration file, if any, and applies flags on
// top of it.
func (o *options) loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if o.timeout > 0 {
		cfg.Runner.Timeout = o.timeout
	}
	if len(o.globals) > 0 {
		if cfg.Runner.Globals == nil {
			cfg.Runner.Globals = make(map[string]string, len(o.globals))
		}
		for name, value := range o.globals {
			cfg.Runner.Globals[name] = value
		}
	}
	if o.readOnly {
		cfg.Runner.ReadOnlyGlobals = true
	}
	if o.watch {
		cfg.Runner.Watch = true
	}
	if o.metricsAddr != "" {
		cfg.Metrics.Enabled = true
		cfg.Metrics.Address = o.metricsAddr
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}

	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
