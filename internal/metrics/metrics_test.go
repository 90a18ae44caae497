package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nitesh/seo_engine/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObservePage(t *testing.T) {
	m := metrics.New()
	m.ObservePage("hub_city", true)
	m.ObservePage("hub_city", true)
	m.ObservePage("brand_city", false)

	assert.InDelta(t, 2, testutil.ToFloat64(m.PagesGenerated.WithLabelValues("hub_city", "success")), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(m.PagesGenerated.WithLabelValues("brand_city", "failed")), 0)
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *metrics.Metrics
	m.ObservePage("symptom", true)
	m.ObserveCity(time.Second)
	m.ObserveCache("hit")
}

func TestHandler(t *testing.T) {
	m := metrics.New()
	m.ObserveCache("miss")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `seo_engine_page_cache_lookups_total{result="miss"} 1`)
}
