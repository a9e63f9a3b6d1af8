// Package metrics exposes Prometheus counters for catalog views and reloads.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Reload outcomes.
const (
	ReloadApplied   = "applied"
	ReloadUnchanged = "unchanged"
	ReloadFailed    = "failed"
)

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	reg *prometheus.Registry

	viewRequests  *prometheus.CounterVec
	filterResults *prometheus.HistogramVec
	reloads       *prometheus.CounterVec
}

// New registers the techhub collectors plus the Go runtime collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		viewRequests: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techhub_view_requests_total",
				Help: "Total number of list view requests",
			},
			[]string{"view"},
		),
		filterResults: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "techhub_filter_results",
				Help:    "Number of records returned by a filtered view",
				Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
			},
			[]string{"view"},
		),
		reloads: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "techhub_catalog_reloads_total",
				Help: "Fixture reload attempts by outcome",
			},
			[]string{"result"},
		),
	}
}

// ObserveView records one request to view that returned n records.
func (m *Metrics) ObserveView(view string, n int) {
	m.viewRequests.WithLabelValues(view).Inc()
	m.filterResults.WithLabelValues(view).Observe(float64(n))
}

// ObserveReload records a reload outcome.
func (m *Metrics) ObserveReload(result string) {
	m.reloads.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}
