package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wippyai/js-runtime/config"
	"github.com/wippyai/js-runtime/resource"
)

// HandleMetrics tracks the handle table.
//
// Metrics:
//   - live_handles: handles currently allocated, by type
//   - handle_events_total: lifecycle events by type and event
type HandleMetrics struct {
	live   *prometheus.GaugeVec
	events *prometheus.CounterVec
	namer  func(resource.TypeID) string
}

// NewHandleMetrics creates and registers handle metrics. namer labels
// type tags; nil uses the decimal tag.
func NewHandleMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry, namer func(resource.TypeID) string) *HandleMetrics {
	hm := &HandleMetrics{
		live: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "live_handles",
				Help:      "Number of live handles",
			},
			[]string{"type"},
		),

		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "handle_events_total",
				Help:      "Total number of handle lifecycle events",
			},
			[]string{"type", "event"},
		),
		namer: namer,
	}

	registry.MustRegister(hm.live, hm.events)
	return hm
}

// OnResourceEvent implements resource.Observer.
func (hm *HandleMetrics) OnResourceEvent(ev resource.Event) {
	typ := hm.typeName(ev.TypeID)
	hm.events.WithLabelValues(typ, ev.Type.String()).Inc()

	switch ev.Type {
	case resource.EventCreated:
		hm.live.WithLabelValues(typ).Inc()
	case resource.EventDropped:
		hm.live.WithLabelValues(typ).Dec()
	}
}

func (hm *HandleMetrics) typeName(id resource.TypeID) string {
	if hm.namer != nil {
		return hm.namer(id)
	}
	return strconv.FormatUint(uint64(id), 10)
}
