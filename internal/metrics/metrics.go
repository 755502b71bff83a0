// Package metrics provides Prometheus instrumentation for the admin backend.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the HTTP request collectors.
type Metrics struct {
	registry        *prometheus.Registry
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	uploadsTotal    *prometheus.CounterVec
	uploadedBytes   prometheus.Counter
}

// New creates the collectors on a dedicated registry.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bimax_http_requests_total",
			Help: "Total number of HTTP requests by method, path and status.",
		}, []string{"method", "path", "status"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bimax_http_request_duration_seconds",
			Help:    "HTTP request latency by method and path.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),
		uploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bimax_uploads_total",
			Help: "Total number of stored uploads by category.",
		}, []string{"category"}),
		uploadedBytes: factory.NewCounter(prometheus.CounterOpts{
			Name: "bimax_uploaded_bytes_total",
			Help: "Total bytes written by the upload processor.",
		}),
	}
}

// Handler returns the /metrics endpoint handler.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveUpload records a stored upload.
func (m *Metrics) ObserveUpload(category string, size int) {
	m.uploadsTotal.WithLabelValues(category).Inc()
	m.uploadedBytes.Add(float64(size))
}

// statusRecorder captures the response status for labeling.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Middleware instruments every request passing through it.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		m.requestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rec.status)).Inc()
		m.requestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
