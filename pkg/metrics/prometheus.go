// Package metrics provides Prometheus metrics for the pick review service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns the service metrics and the registry they live on.
// All recording methods are safe to call on a nil *Manager.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	pickSaves         prometheus.Counter
	pickRowsInserted  prometheus.Counter
	waveformRequests  prometheus.Counter
	waveformFallbacks prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "seispick",
		subsystem:        "",
		histogramBuckets: prometheus.DefBuckets,
	}

	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.pickSaves = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pick_saves_total",
		Help:      "Total number of pick submissions persisted",
	})

	m.pickRowsInserted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pick_rows_inserted_total",
		Help:      "Total number of rows appended to the pick log",
	})

	m.waveformRequests = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "waveform_requests_total",
		Help:      "Total number of channel waveform requests served",
	})

	m.waveformFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "waveform_fallbacks_total",
		Help:      "Waveform requests answered with the zero placeholder because the channel failed to load",
	})

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route, method and status",
		},
		[]string{"route", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"route", "method"},
	)
}

// RecordPickSave counts one persisted submission and the rows it appended.
func (m *Manager) RecordPickSave(inserted int) {
	if m == nil {
		return
	}
	m.pickSaves.Inc()
	m.pickRowsInserted.Add(float64(inserted))
}

// RecordWaveform counts a waveform request, and a fallback when the channel could not be loaded.
func (m *Manager) RecordWaveform(fallback bool) {
	if m == nil {
		return
	}
	m.waveformRequests.Inc()
	if fallback {
		m.waveformFallbacks.Inc()
	}
}

// RecordHTTPRequest records one served HTTP request.
func (m *Manager) RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Registry returns the registry the metrics are registered on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an HTTP handler exposing the manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
