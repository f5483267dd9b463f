package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/js-runtime/config"
	"github.com/wippyai/js-runtime/engine"
	"github.com/wippyai/js-runtime/resource"
)

// Collector registers and records every runtime metric.
type Collector struct {
	config   *config.MetricsConfig
	registry *prometheus.Registry

	runs    *RunMetrics
	heap    *HeapCollector
	handles *HandleMetrics
}

// NewCollector creates a collector with the given configuration. If
// registry is nil a new registry is created. Handle types are labeled with
// TypeName when it is set, otherwise with their numeric tag.
func NewCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	if cfg.Namespace == "" {
		cfg.Namespace = config.DefaultMetricsNamespace
	}
	if cfg.Subsystem == "" {
		cfg.Subsystem = config.DefaultMetricsSubsystem
	}
	if len(cfg.RunDurationBuckets) == 0 {
		cfg.RunDurationBuckets = config.DefaultRunDurationBuckets
	}

	c := &Collector{
		config:   cfg,
		registry: registry,
	}
	c.runs = NewRunMetrics(cfg, registry)
	c.heap = NewHeapCollector(cfg, registry)
	c.handles = NewHandleMetrics(cfg, registry, nil)
	return c
}

// WithTypeNames sets the function used to label handle types.
func (c *Collector) WithTypeNames(namer func(resource.TypeID) string) *Collector {
	c.handles.namer = namer
	return c
}

// Registry returns the Prometheus registry of the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Runs returns an engine.Observer that records script runs. It records
// nothing while metrics are disabled.
func (c *Collector) Runs() engine.Observer {
	return enabledRuns{c}
}

// Handles returns a resource.Observer that records handle events. It
// records nothing while metrics are disabled.
func (c *Collector) Handles() resource.Observer {
	return enabledHandles{c}
}

// TrackIsolate adds an isolate to the heap gauges. stats is called on
// every scrape and blocks while the isolate runs a script.
func (c *Collector) TrackIsolate(id string, stats func() engine.HeapStatistics) {
	if !c.config.Enabled {
		return
	}
	c.heap.Track(id, stats)
}

// UntrackIsolate removes an isolate from the heap gauges.
func (c *Collector) UntrackIsolate(id string) {
	c.heap.Untrack(id)
}

type enabledRuns struct{ c *Collector }

func (o enabledRuns) OnScriptRun(ev engine.RunEvent) {
	if o.c.config.Enabled {
		o.c.runs.OnScriptRun(ev)
	}
}

type enabledHandles struct{ c *Collector }

func (o enabledHandles) OnResourceEvent(ev resource.Event) {
	if o.c.config.Enabled {
		o.c.handles.OnResourceEvent(ev)
	}
}
