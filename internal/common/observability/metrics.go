package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus instruments for one pipeline process.
type Metrics struct {
	registry *prometheus.Registry

	collectorRuns     *prometheus.CounterVec
	collectorRetries  *prometheus.CounterVec
	degradedRecords   *prometheus.CounterVec
	recordsCollected  *prometheus.CounterVec
	collectorDuration *prometheus.HistogramVec
}

func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		collectorRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "collector_runs_total",
			Help:      "Number of collector runs by role and status.",
		}, []string{"role", "status"}),
		collectorRetries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "collector_retries_total",
			Help:      "Number of fetch retries by role.",
		}, []string{"role"}),
		degradedRecords: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "degraded_records_total",
			Help:      "Number of graceful-degradation records produced by role.",
		}, []string{"role"}),
		recordsCollected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "records_collected_total",
			Help:      "Number of normalized records produced by role.",
		}, []string{"role"}),
		collectorDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "collector_duration_seconds",
			Help:      "Collector run duration by role.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"role"}),
	}

	registry.MustRegister(
		m.collectorRuns,
		m.collectorRetries,
		m.degradedRecords,
		m.recordsCollected,
		m.collectorDuration,
	)

	return m
}

func (m *Metrics) RecordRun(role, status string) {
	if m == nil {
		return
	}
	m.collectorRuns.WithLabelValues(role, status).Inc()
}

func (m *Metrics) RecordRetry(role string) {
	if m == nil {
		return
	}
	m.collectorRetries.WithLabelValues(role).Inc()
}

func (m *Metrics) RecordDegraded(role string) {
	if m == nil {
		return
	}
	m.degradedRecords.WithLabelValues(role).Inc()
}

func (m *Metrics) RecordCollected(role string, count int) {
	if m == nil {
		return
	}
	m.recordsCollected.WithLabelValues(role).Add(float64(count))
}

func (m *Metrics) RecordDuration(role string, d time.Duration) {
	if m == nil {
		return
	}
	m.collectorDuration.WithLabelValues(role).Observe(d.Seconds())
}

// Handler returns the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
