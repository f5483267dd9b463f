package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/wippyai/js-runtime/capi"
	"github.com/wippyai/js-runtime/config"
	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/metrics"
	"github.com/wippyai/js-runtime/resource"
)

// session is one isolate with one context, built from the runner
// configuration.
type session struct {
	cfg       *config.Config
	collector *metrics.Collector
	log       *zap.Logger

	iso resource.Handle
	ctx resource.Handle
	id  string
}

type result struct {
	value   string
	err     *capi.RtnError
	elapsed time.Duration
}

func newSession(cfg *config.Config, collector *metrics.Collector, log *zap.Logger) (*session, error) {
	var obs engine.Observer
	if collector != nil {
		obs = collector.Runs()
	}

	iso := capi.NewIsolateWithConfig(cfg.ToEngine(obs))
	if iso == 0 {
		return nil, fmt.Errorf("create isolate")
	}
	s := &session{cfg: cfg, collector: collector, log: log, iso: iso, id: capi.IsolateID(iso)}

	tmpl, err := s.globals()
	if err != nil {
		s.close()
		return nil, err
	}
	s.ctx = capi.NewContext(iso, tmpl)
	if err := capi.ObjectTemplateDispose(tmpl); err != nil {
		log.Warn("dispose template", zap.Error(err))
	}
	if s.ctx == 0 {
		s.close()
		return nil, fmt.Errorf("create context")
	}

	if collector != nil {
		collector.TrackIsolate(s.id, func() engine.HeapStatistics {
			return capi.IsolationGetHeapStatistics(iso)
		})
	}
	log.Debug("session started", zap.String("isolate", s.id), zap.Int("globals", len(cfg.Runner.Globals)))
	return s, nil
}

// globals builds the global template, or returns the null handle when no
// globals are configured.
func (s *session) globals() (resource.Handle, error) {
	if len(s.cfg.Runner.Globals) == 0 {
		return 0, nil
	}

	attrs := engine.None
	if s.cfg.Runner.ReadOnlyGlobals {
		attrs = engine.ReadOnly | engine.DontDelete
	}

	tmpl := capi.NewObjectTemplate(s.iso)
	if tmpl == 0 {
		return 0, fmt.Errorf("create template")
	}

	names := make([]string, 0, len(s.cfg.Runner.Globals))
	for name := range s.cfg.Runner.Globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := capi.NewValueString(s.iso, s.cfg.Runner.Globals[name])
		err := capi.ObjectTemplateSetValue(tmpl, name, v, attrs)
		capi.ValueDispose(v)
		if err != nil {
			capi.ObjectTemplateDispose(tmpl)
			return 0, fmt.Errorf("global %s: %w", name, err)
		}
	}
	return tmpl, nil
}

// eval runs source under the configured watchdog. quote renders string
// results as literals.
func (s *session) eval(source, origin string, quote bool) result {
	var (
		timer *time.Timer
		fired chan struct{}
	)
	if timeout := s.cfg.Runner.Timeout; timeout > 0 {
		fired = make(chan struct{})
		timer = time.AfterFunc(timeout, func() {
			s.log.Warn("run timed out, terminating", zap.String("origin", origin), zap.Duration("timeout", timeout))
			capi.IsolateTerminateExecution(s.iso)
			close(fired)
		})
	}

	start := time.Now()
	rtn := capi.RunScript(s.ctx, source, origin)
	res := result{elapsed: time.Since(start), err: rtn.Error}

	// A watchdog that fired after the run finished leaves a pending request.
	if timer != nil && !timer.Stop() {
		<-fired
		capi.IsolateCancelTerminateExecution(s.iso)
	}

	if rtn.Error == nil {
		res.value = display(rtn.Value, quote)
		if err := capi.ValueDispose(rtn.Value); err != nil {
			s.log.Warn("dispose result", zap.Error(err))
		}
	}
	return res
}

func (s *session) stats() engine.HeapStatistics {
	return capi.IsolationGetHeapStatistics(s.iso)
}

func (s *session) close() {
	if s.collector != nil {
		s.collector.UntrackIsolate(s.id)
	}
	if err := capi.ContextDispose(s.ctx); err != nil {
		s.log.Warn("dispose context", zap.Error(err))
	}
	if err := capi.IsolateDispose(s.iso); err != nil {
		s.log.Warn("dispose isolate", zap.String("isolate", s.id), zap.Error(err))
	}
}

// display renders a result value the way a console would.
func display(h resource.Handle, quote bool) string {
	switch {
	case capi.ValueIsString(h):
		if quote {
			return strconv.Quote(capi.ValueToString(h))
		}
		return capi.ValueToString(h)
	case capi.ValueIsBigInt(h):
		return capi.ValueToString(h) + "n"
	case capi.ValueIsArray(h):
		return "[" + capi.ValueToString(h) + "]"
	case capi.ValueIsSymbol(h), capi.ValueIsFunction(h), capi.ValueIsObject(h):
		return capi.ValueToDetailString(h)
	default:
		return capi.ValueToString(h)
	}
}

func printStats(w io.Writer, hs engine.HeapStatistics) {
	rows := []struct {
		name  string
		value uint64
	}{
		{"total_heap_size", hs.TotalHeapSize},
		{"total_heap_size_executable", hs.TotalHeapSizeExecutable},
		{"total_physical_size", hs.TotalPhysicalSize},
		{"total_available_size", hs.TotalAvailableSize},
		{"used_heap_size", hs.UsedHeapSize},
		{"heap_size_limit", hs.HeapSizeLimit},
		{"malloced_memory", hs.MallocedMemory},
		{"external_memory", hs.ExternalMemory},
		{"peak_malloced_memory", hs.PeakMallocedMemory},
		{"number_of_native_contexts", hs.NumberOfNativeContexts},
		{"number_of_detached_contexts", hs.NumberOfDetachedContexts},
	}
	for _, r := range rows {
		fmt.Fprintf(w, "%-28s %d\n", r.name, r.value)
	}
}
