// Package metrics collects Prometheus metrics for store operations,
// HTTP responses and maintenance tasks.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "librarydesk"

// Operation results recorded by RecordOperation.
const (
	ResultSuccess = "success"
	ResultError   = "error"
)

// Recorder is the part of the collector used by the data access layer
// and the maintenance tasks.
type Recorder interface {
	RecordOperation(operation string, duration time.Duration, err error)
	RecordOverdue(count int)
}

// Collector is the Prometheus implementation of Recorder.
type Collector struct {
	operations *prometheus.CounterVec
	latency    *prometheus.HistogramVec
	httpStatus *prometheus.CounterVec
	overdue    prometheus.Gauge
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_operations_total",
			Help:      "Store operations by operation name and result.",
		}, []string{"operation", "result"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Store operation latency including connection acquisition.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_responses_total",
			Help:      "HTTP responses by method and status code.",
		}, []string{"method", "status_code"}),
		overdue: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "overdue_transactions",
			Help:      "Borrowed transactions past their due date at the last scan.",
		}),
	}

	reg.MustRegister(
		c.operations,
		c.latency,
		c.httpStatus,
		c.overdue,
	)

	return c
}

// RecordOperation counts one store operation and observes its latency.
func (c *Collector) RecordOperation(operation string, duration time.Duration, err error) {
	result := ResultSuccess
	if err != nil {
		result = ResultError
	}
	c.operations.WithLabelValues(operation, result).Inc()
	c.latency.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordHTTPStatus counts one response.
func (c *Collector) RecordHTTPStatus(method string, statusCode int) {
	c.httpStatus.WithLabelValues(method, strconv.Itoa(statusCode)).Inc()
}

// RecordOverdue sets the overdue gauge.
func (c *Collector) RecordOverdue(count int) {
	c.overdue.Set(float64(count))
}

// Handler returns the HTTP handler serving the registry in the
// Prometheus exposition format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// Nop discards everything. Used when metrics are not wired.
type Nop struct{}

func (Nop) RecordOperation(string, time.Duration, error) {}
func (Nop) RecordOverdue(int)                            {}
