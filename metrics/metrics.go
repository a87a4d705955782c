// Package metrics defines the prometheus collectors of the assistant and the
// functions that record them.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	// result labels
	ResultSuccess = "success"
	ResultFailed  = "failed"

	// model error reasons
	ReasonRateLimited = "rate_limited"
	ReasonUnavailable = "unavailable"
)

var (
	turnsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedcam_turns_total",
			Help: "Total number of conversation turns",
		}, []string{"result"},
	)
	turnDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "speedcam_turn_duration_seconds",
			Help:    "Duration of a conversation turn in seconds",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8),
		},
	)
	functionCallsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedcam_function_calls_total",
			Help: "Total number of function calls dispatched",
		}, []string{"function", "result", "kind"},
	)
	modelErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedcam_model_errors_total",
			Help: "Total number of failed language model calls",
		}, []string{"reason"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "speedcam_http_requests_total",
			Help: "Total number of HTTP requests to the web server",
		}, []string{"method", "path", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "speedcam_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds for the web server",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(turnsTotal)
	prometheus.MustRegister(turnDuration)
	prometheus.MustRegister(functionCallsTotal)
	prometheus.MustRegister(modelErrorsTotal)
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpRequestDuration)
}

func RecordTurn(success bool, duration time.Duration) {
	turnsTotal.WithLabelValues(result(success)).Inc()
	turnDuration.Observe(duration.Seconds())
}

// RecordFunctionCall counts one dispatch. kind is the error kind, "none" on
// success.
func RecordFunctionCall(function string, success bool, kind string) {
	functionCallsTotal.WithLabelValues(function, result(success), kind).Inc()
}

func RecordModelError(rateLimited bool) {
	reason := ReasonUnavailable
	if rateLimited {
		reason = ReasonRateLimited
	}
	modelErrorsTotal.WithLabelValues(reason).Inc()
}

func RecordRequest(method, path, status string, durationSeconds float64) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(durationSeconds)
}

func result(success bool) string {
	if success {
		return ResultSuccess
	}
	return ResultFailed
}
