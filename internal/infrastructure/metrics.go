package infrastructure

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors for the HTTP server and the
// dataset store.
type Metrics struct {
	registry *prometheus.Registry

	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	datasetRows     *prometheus.GaugeVec
	datasetErrors   *prometheus.CounterVec
	chartsRendered  *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		requestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartboard",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "chartboard",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		datasetRows: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "chartboard",
			Subsystem: "dataset",
			Name:      "rows",
			Help:      "Rows loaded per dataset.",
		}, []string{"dataset"}),
		datasetErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartboard",
			Subsystem: "dataset",
			Name:      "load_errors_total",
			Help:      "Dataset load failures.",
		}, []string{"dataset"}),
		chartsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "chartboard",
			Subsystem: "charts",
			Name:      "rendered_total",
			Help:      "Charts rendered by kind.",
		}, []string{"kind"}),
	}

	registry.MustRegister(
		m.requestsTotal,
		m.requestDuration,
		m.datasetRows,
		m.datasetErrors,
		m.chartsRendered,
	)

	return m
}

// Handler returns the /metrics HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per chi route pattern.
func (m *Metrics) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		if route == "" {
			route = "unmatched"
		}

		m.requestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(ww.Status())).Inc()
		m.requestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

// SetDatasetRows records how many rows a dataset holds after loading.
func (m *Metrics) SetDatasetRows(dataset string, rows int) {
	m.datasetRows.WithLabelValues(dataset).Set(float64(rows))
}

// IncDatasetError counts a dataset load failure.
func (m *Metrics) IncDatasetError(dataset string) {
	m.datasetErrors.WithLabelValues(dataset).Inc()
}

// IncChartRendered counts a rendered chart by kind.
func (m *Metrics) IncChartRendered(kind string) {
	m.chartsRendered.WithLabelValues(kind).Inc()
}
