// Package metrics collects Prometheus metrics for the request executor.
// Recording is best-effort and never affects the outcome of a request.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector is the metrics surface used by the request executor.
type Collector interface {
	RecordSuccess(path string)
	RecordFailure(path string, reason string)
	RecordHTTPStatus(statusCode int)
	RecordRequestLatency(d time.Duration)
}

// PromCollector is the Prometheus-backed Collector.
type PromCollector struct {
	success    *prometheus.CounterVec
	failure    *prometheus.CounterVec
	httpStatus *prometheus.CounterVec
	latency    prometheus.Histogram
}

// NewCollector creates a PromCollector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *PromCollector {
	c := &PromCollector{
		success: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospitalclient_request_success_total",
			Help: "Requests that resolved to a success outcome, by path.",
		}, []string{"path"}),
		failure: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospitalclient_request_fail_total",
			Help: "Requests that resolved to an error outcome, by path and reason.",
		}, []string{"path", "reason"}),
		httpStatus: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "hospitalclient_http_status_total",
			Help: "Responses received, by HTTP status code.",
		}, []string{"status_code"}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "hospitalclient_request_latency_seconds",
			Help:    "Wall-clock latency of one request attempt.",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(c.success, c.failure, c.httpStatus, c.latency)
	return c
}

func (c *PromCollector) RecordSuccess(path string) {
	c.success.WithLabelValues(path).Inc()
}

func (c *PromCollector) RecordFailure(path string, reason string) {
	c.failure.WithLabelValues(path, reason).Inc()
}

func (c *PromCollector) RecordHTTPStatus(statusCode int) {
	c.httpStatus.WithLabelValues(strconv.Itoa(statusCode)).Inc()
}

func (c *PromCollector) RecordRequestLatency(d time.Duration) {
	c.latency.Observe(d.Seconds())
}

// Nop is a Collector that records nothing.
type Nop struct{}

func (Nop) RecordSuccess(string)               {}
func (Nop) RecordFailure(string, string)       {}
func (Nop) RecordHTTPStatus(int)               {}
func (Nop) RecordRequestLatency(time.Duration) {}
