// Package metrics provides Prometheus collectors for HTTP traffic and prediction processing.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "prode"

// Metrics holds the application's collectors.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	httpRequests       *prometheus.CounterVec
	httpDuration       *prometheus.HistogramVec
	predictionsScored  prometheus.Counter
	predictionsCreated prometheus.Counter
	matchClosures      *prometheus.CounterVec
}

// New registers the collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		predictionsScored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "predictions",
			Name:      "scored_total",
			Help:      "Predictions whose points were (re)computed by a match closure.",
		}),
		predictionsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "predictions",
			Name:      "created_total",
			Help:      "Placeholder predictions created by group synchronization.",
		}),
		matchClosures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matches",
			Name:      "closures_total",
			Help:      "Match closures by result.",
		}, []string{"result"}),
	}
}

// ObserveHTTPRequest records one served request.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// AddPredictionsScored counts predictions updated by a closure.
func (m *Metrics) AddPredictionsScored(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.predictionsScored.Add(float64(n))
}

// AddPredictionsCreated counts placeholder predictions inserted by synchronization.
func (m *Metrics) AddPredictionsCreated(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.predictionsCreated.Add(float64(n))
}

// ObserveMatchClosure records the result of a closure attempt.
func (m *Metrics) ObserveMatchClosure(err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = "failure"
	}
	m.matchClosures.WithLabelValues(result).Inc()
}

// Handler serves the collectors of gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
}
