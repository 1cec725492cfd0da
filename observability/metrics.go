package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the application's Prometheus metrics.
type Metrics struct {
	// Registry is the Prometheus registry that owns these metrics.
	// Exposed so the /metrics endpoint can use it.
	Registry *prometheus.Registry

	requestDuration   *prometheus.HistogramVec
	requestsTotal     *prometheus.CounterVec
	expenseOperations *prometheus.CounterVec
}

// NewMetrics creates a dedicated Prometheus registry and registers all
// application metrics in it. Using a private registry avoids "duplicate
// collector" panics when NewMetrics is called more than once (e.g. in tests).
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "myexpenses_request_duration_seconds",
				Help:    "Duration of HTTP requests by route.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myexpenses_requests_total",
				Help: "Total HTTP requests processed.",
			},
			[]string{"method", "route", "status"},
		),
		expenseOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "myexpenses_expense_operations_total",
				Help: "Total expense operations by kind and outcome.",
			},
			[]string{"operation", "outcome"},
		),
	}
}

// ObserveExpenseOperation counts one coordinator operation.
func (m *Metrics) ObserveExpenseOperation(operation, outcome string) {
	m.expenseOperations.WithLabelValues(operation, outcome).Inc()
}

// GinMiddleware records duration and count for every request.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
		m.requestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// PrometheusHandler exposes the registry for the /metrics endpoint.
func (m *Metrics) PrometheusHandler() gin.HandlerFunc {
	h := promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
	return gin.WrapH(h)
}
