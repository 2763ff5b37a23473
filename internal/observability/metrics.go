package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Outbound API call metrics
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_client_request_duration_seconds",
			Help:    "Outbound API request latency in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_client_requests_total",
			Help: "Total number of outbound API requests",
		},
		[]string{"method", "path", "status"},
	)

	// Token refresh metrics
	TokenRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "token_refresh_total",
			Help: "Total number of token refresh attempts",
		},
		[]string{"outcome"}, // success, failure
	)

	RequestReplaysTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "request_replays_total",
			Help: "Number of requests replayed after a successful token refresh",
		},
	)

	SessionResetsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "session_resets_total",
			Help: "Number of forced logouts caused by refresh exhaustion",
		},
	)
)
