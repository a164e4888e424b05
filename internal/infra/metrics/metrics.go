package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"todo-api/internal/domain/entity"
)

// Metrics owns the collectors exposed on /metrics. Each instance has its own registry,
// so tests and servers never share counters.
type Metrics struct {
	Registry *prometheus.Registry

	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	DBConnections   prometheus.Gauge
	TodoItems       *prometheus.GaugeVec
}

func New() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(registry)

	return &Metrics{
		Registry: registry,

		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "todo_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "todo_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		DBConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "todo_db_connections",
				Help: "Active connections reported by the database",
			},
		),

		TodoItems: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "todo_items",
				Help: "Number of todos by state",
			},
			[]string{"state"}, // "active", "completed", "deleted"
		),
	}
}

// RecordRequest records one served request
func (m *Metrics) RecordRequest(method, path string, status int, duration time.Duration) {
	m.RequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) SetDBConnections(count int64) {
	m.DBConnections.Set(float64(count))
}

func (m *Metrics) SetTodoStats(stats entity.TodoStats) {
	m.TodoItems.WithLabelValues("active").Set(float64(stats.Active))
	m.TodoItems.WithLabelValues("completed").Set(float64(stats.Completed))
	m.TodoItems.WithLabelValues("deleted").Set(float64(stats.Deleted))
}

// Handler serves the registry in the Prometheus text exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
