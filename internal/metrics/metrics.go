// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal counts handled HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "languageclub",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	// RequestDuration measures handler latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "languageclub",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// GuardDenialsTotal counts requests short-circuited by a guard.
	GuardDenialsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "languageclub",
			Name:      "guard_denials_total",
			Help:      "Total number of requests rejected by auth guards",
		},
		[]string{"guard", "status"},
	)

	// CacheLookupsTotal counts catalog cache lookups by result.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "languageclub",
			Name:      "cache_lookups_total",
			Help:      "Total number of catalog cache lookups",
		},
		[]string{"key", "result"},
	)

	// PaymentIntentsTotal counts payment intent creations.
	PaymentIntentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "languageclub",
			Name:      "payment_intents_total",
			Help:      "Total number of payment intents requested from the processor",
		},
		[]string{"provider", "status"},
	)
)

// RecordRequest records a finished HTTP request.
func RecordRequest(method, route, status string, seconds float64) {
	RequestsTotal.WithLabelValues(method, route, status).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordDenial records a guard rejection.
func RecordDenial(guard, status string) {
	GuardDenialsTotal.WithLabelValues(guard, status).Inc()
}

// RecordCacheLookup records a hit or a miss.
func RecordCacheLookup(key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	CacheLookupsTotal.WithLabelValues(key, result).Inc()
}

// RecordPaymentIntent records a processor call outcome.
func RecordPaymentIntent(provider string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	PaymentIntentsTotal.WithLabelValues(provider, status).Inc()
}
