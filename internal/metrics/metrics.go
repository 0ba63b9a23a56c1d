package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smsproxy"

// Upstream call outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of inbound HTTP requests.",
		},
		[]string{"method", "path", "status_code"},
	)

	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of inbound HTTP requests.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "upstream_requests_total",
			Help:      "Total provider calls by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	upstreamRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "upstream_request_duration_seconds",
			Help:      "Duration of provider calls.",
			// provider calls are bounded by a 30s timeout
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 20, 30},
		},
		[]string{"action"},
	)
)

// ObserveHTTP records one finished inbound request.
func ObserveHTTP(method, path, statusCode string, d time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, statusCode).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, path).Observe(d.Seconds())
}

// ObserveUpstream records one finished provider call.
func ObserveUpstream(action, outcome string, d time.Duration) {
	upstreamRequestsTotal.WithLabelValues(action, outcome).Inc()
	upstreamRequestDurationSeconds.WithLabelValues(action).Observe(d.Seconds())
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
