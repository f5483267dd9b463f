package main

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/js-runtime/capi"
	"github.com/wippyai/js-runtime/config"
	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/errors"
	"github.com/wippyai/js-runtime/metrics"
)

var errAlreadyInitialized = &errors.Error{Phase: errors.PhaseBootstrap, Kind: errors.KindAlreadyInitialized}

func main() {
	err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	if stderrors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) error {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		return err
	}
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	log, err := cfg.Logging.Logger()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()
	engine.SetLogger(log)

	if err := capi.Init(); err != nil && !stderrors.Is(err, errAlreadyInitialized) {
		return err
	}
	log.Debug("engine ready", zap.String("version", capi.Version()))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Metrics, nil).WithTypeNames(capi.TypeName)
		capi.Subscribe(collector.Handles())
		defer capi.Unsubscribe(collector.Handles())

		srv := serveMetrics(cfg.Metrics, collector, log)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			srv.Shutdown(shutdownCtx)
		}()
	}

	tty := term.IsTerminal(int(stdin.Fd()))
	source, origin, err := readSource(opts, cfg, stdin, tty)
	if err != nil {
		return err
	}

	if opts.interactive || (source == "" && opts.script == "") {
		if !tty {
			return fmt.Errorf("interactive mode needs a terminal")
		}
		sess, err := newSession(cfg, collector, log)
		if err != nil {
			return err
		}
		defer sess.close()
		return runInteractive(sess)
	}

	err = runOnce(cfg, collector, log, source, origin, opts.stats, stdout)
	if !cfg.Runner.Watch || opts.script == "" {
		return err
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %+v\n", err)
	}
	return watchFile(ctx, opts.script, cfg.Runner.WatchDebounce, log, func() {
		data, err := os.ReadFile(opts.script)
		if err != nil {
			log.Warn("read script", zap.Error(err))
			return
		}
		fmt.Fprintf(stdout, "--- %s %s ---\n", opts.script, time.Now().Format(time.TimeOnly))
		if err := runOnce(cfg, collector, log, string(data), origin, opts.stats, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %+v\n", err)
		}
	})
}

// readSource picks the script from -e, -script or piped stdin. An empty
// source with no script means the REPL.
func readSource(opts *options, cfg *config.Config, stdin io.Reader, tty bool) (string, string, error) {
	switch {
	case opts.eval != "":
		return opts.eval, cfg.Runner.Origin, nil
	case opts.script != "":
		data, err := os.ReadFile(opts.script)
		if err != nil {
			return "", "", fmt.Errorf("read file: %w", err)
		}
		return string(data), opts.script, nil
	case !tty && !opts.interactive:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), "<stdin>", nil
	default:
		return "", "", nil
	}
}

// runOnce runs source in a fresh session and prints its result.
func runOnce(cfg *config.Config, collector *metrics.Collector, log *zap.Logger, source, origin string, stats bool, stdout io.Writer) error {
	sess, err := newSession(cfg, collector, log)
	if err != nil {
		return err
	}
	defer sess.close()

	res := sess.eval(source, origin, false)
	log.Debug("run finished", zap.String("origin", origin), zap.Duration("elapsed", res.elapsed))
	if res.err != nil {
		return res.err
	}
	if res.value != "undefined" {
		fmt.Fprintln(stdout, res.value)
	}
	if stats {
		printStats(stdout, sess.stats())
	}
	return nil
}

func serveMetrics(cfg config.MetricsConfig, collector *metrics.Collector, log *zap.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle(cfg.Path, collector.Handler())
	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("serving metrics", zap.String("address", cfg.Address), zap.String("path", cfg.Path))
		if err := srv.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server failed", zap.Error(err))
		}
	}()
	return srv
}
