package preview

import (
	"net/http"

	prom "github.com/prometheus/client_golang/prometheus"
	promcollect "github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the preview server's Prometheus instrumentation. Each server
// owns its registry so repeated starts in one process never collide.
type metrics struct {
	registry       *prom.Registry
	rebuildsTotal  prom.Counter
	rebuildsFailed prom.Counter
	buildDuration  prom.Histogram
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prom.NewRegistry(),
		rebuildsTotal: prom.NewCounter(prom.CounterOpts{
			Namespace: "bookpages", Name: "preview_rebuilds_total",
			Help: "Total rebuilds triggered by the preview watcher",
		}),
		rebuildsFailed: prom.NewCounter(prom.CounterOpts{
			Namespace: "bookpages", Name: "preview_rebuilds_failed_total",
			Help: "Rebuilds that ended in an error",
		}),
		buildDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: "bookpages", Name: "preview_build_duration_seconds",
			Help:    "Duration of full site builds",
			Buckets: prom.DefBuckets,
		}),
	}
	m.registry.MustRegister(m.rebuildsTotal, m.rebuildsFailed, m.buildDuration)
	m.registry.MustRegister(promcollect.NewGoCollector(), promcollect.NewProcessCollector(promcollect.ProcessCollectorOpts{}))
	return m
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
