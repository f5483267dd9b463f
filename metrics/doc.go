// Package metrics exports runtime metrics to Prometheus.
//
// A Collector owns a registry and three groups of metrics:
//
//   - script runs, recorded by implementing engine.Observer
//   - heap statistics of tracked isolates, gathered on every scrape
//   - handle lifecycle, recorded by implementing resource.Observer
//
// Example:
//
//	cfg := config.Default()
//	cfg.Metrics.Enabled = true
//	collector := metrics.NewCollector(&cfg.Metrics, nil)
//	capi.Subscribe(collector.Handles())
//	iso := capi.NewIsolateWithConfig(cfg.ToEngine(collector.Runs()))
//	http.Handle(cfg.Metrics.Path, collector.Handler())
package metrics
