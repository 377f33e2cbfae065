package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "todolist"

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Handled HTTP requests by method, route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "HTTP request latency by method and route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	StoreOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "store_operations_total", Help: "Store statements by operation and result."},
		[]string{"op", "result"},
	)
	RateLimitRejected = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Requests rejected by the rate limiter."},
	)
)

// Register adds every collector to reg.
func Register(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests, HTTPDuration, StoreOperations, RateLimitRejected)
}

// ObserveStore records the outcome of a store operation.
func ObserveStore(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	StoreOperations.WithLabelValues(op, result).Inc()
}
