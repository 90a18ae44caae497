// Package metrics exposes Prometheus instrumentation for page generation.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "seo_engine"

// Metrics holds the generation collectors.
type Metrics struct {
	PagesGenerated *prometheus.CounterVec
	CityDuration   prometheus.Histogram
	CacheLookups   *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		PagesGenerated: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_generated_total",
			Help:      "Generated pages by archetype and outcome.",
		}, []string{"page_type", "status"}),
		CityDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "city_generation_duration_seconds",
			Help:      "Wall time of one city batch.",
			Buckets:   prometheus.DefBuckets,
		}),
		CacheLookups: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_cache_lookups_total",
			Help:      "Resolver cache lookups by result.",
		}, []string{"result"}),
		gatherer: reg,
	}
}

// ObservePage counts one page outcome. Safe on a nil receiver.
func (m *Metrics) ObservePage(pageType string, ok bool) {
	if m == nil {
		return
	}
	status := "success"
	if !ok {
		status = "failed"
	}
	m.PagesGenerated.WithLabelValues(pageType, status).Inc()
}

// ObserveCity records the duration of a city batch. Safe on a nil receiver.
func (m *Metrics) ObserveCity(d time.Duration) {
	if m == nil {
		return
	}
	m.CityDuration.Observe(d.Seconds())
}

// ObserveCache counts a resolver cache hit, miss or error. Safe on a nil receiver.
func (m *Metrics) ObserveCache(result string) {
	if m == nil {
		return
	}
	m.CacheLookups.WithLabelValues(result).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
