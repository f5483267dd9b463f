package metrics

import (
	"sort"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/js-runtime/config"
	"github.com/wippyai/js-runtime/engine"
)

// HeapCollector exports heap statistics of tracked isolates. Statistics
// are read at scrape time, so a scrape waits for running scripts.
type HeapCollector struct {
	mu      sync.Mutex
	sources map[string]func() engine.HeapStatistics

	used     *prometheus.Desc
	total    *prometheus.Desc
	limit    *prometheus.Desc
	external *prometheus.Desc
	contexts *prometheus.Desc
	detached *prometheus.Desc
	isolates *prometheus.Desc
}

// NewHeapCollector creates and registers the heap collector.
func NewHeapCollector(cfg *config.MetricsConfig, registry *prometheus.Registry) *HeapCollector {
	desc := func(name, help string, labels ...string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(cfg.Namespace, cfg.Subsystem, name), help, labels, nil)
	}

	hc := &HeapCollector{
		sources:  make(map[string]func() engine.HeapStatistics),
		used:     desc("heap_used_bytes", "Used heap size", "isolate"),
		total:    desc("heap_total_bytes", "Total heap size", "isolate"),
		limit:    desc("heap_limit_bytes", "Heap size limit", "isolate"),
		external: desc("heap_external_bytes", "Memory held outside the heap", "isolate"),
		contexts: desc("native_contexts", "Number of live contexts", "isolate"),
		detached: desc("detached_contexts", "Number of disposed contexts still referenced by values", "isolate"),
		isolates: desc("tracked_isolates", "Number of isolates exporting heap statistics"),
	}
	registry.MustRegister(hc)
	return hc
}

// Track adds or replaces a statistics source.
func (hc *HeapCollector) Track(id string, stats func() engine.HeapStatistics) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	hc.sources[id] = stats
}

// Untrack removes a statistics source.
func (hc *HeapCollector) Untrack(id string) {
	hc.mu.Lock()
	defer hc.mu.Unlock()
	delete(hc.sources, id)
}

// Describe implements prometheus.Collector.
func (hc *HeapCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- hc.used
	ch <- hc.total
	ch <- hc.limit
	ch <- hc.external
	ch <- hc.contexts
	ch <- hc.detached
	ch <- hc.isolates
}

// Collect implements prometheus.Collector.
func (hc *HeapCollector) Collect(ch chan<- prometheus.Metric) {
	hc.mu.Lock()
	ids := make([]string, 0, len(hc.sources))
	for id := range hc.sources {
		ids = append(ids, id)
	}
	sources := make(map[string]func() engine.HeapStatistics, len(hc.sources))
	for id, fn := range hc.sources {
		sources[id] = fn
	}
	hc.mu.Unlock()
	sort.Strings(ids)

	gauge := func(d *prometheus.Desc, v uint64, id string) {
		ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, float64(v), id)
	}
	for _, id := range ids {
		hs := sources[id]()
		gauge(hc.used, hs.UsedHeapSize, id)
		gauge(hc.total, hs.TotalHeapSize, id)
		gauge(hc.limit, hs.HeapSizeLimit, id)
		gauge(hc.external, hs.ExternalMemory, id)
		gauge(hc.contexts, hs.NumberOfNativeContexts, id)
		gauge(hc.detached, hs.NumberOfDetachedContexts, id)
	}
	ch <- prometheus.MustNewConstMetric(hc.isolates, prometheus.GaugeValue, float64(len(ids)))
}
