package metrics

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors of the service. All methods are safe on a
// nil receiver so callers can run with metrics disabled.
type Metrics struct {
	HTTPRequests       *prometheus.CounterVec
	HTTPDuration       *prometheus.HistogramVec
	BookingTransitions *prometheus.CounterVec
}

// New registers the collectors on reg. Dashes in namespace become
// underscores since metric names may not contain them.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	namespace = strings.ReplaceAll(namespace, "-", "_")

	m := &Metrics{
		HTTPRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route, method and status.",
		}, []string{"method", "route", "status"}),
		HTTPDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		BookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_transitions_total",
			Help:      "Applied booking status transitions.",
		}, []string{"from", "to"}),
	}

	reg.MustRegister(m.HTTPRequests, m.HTTPDuration, m.BookingTransitions)
	return m
}

func (m *Metrics) ObserveRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, status).Inc()
	m.HTTPDuration.WithLabelValues(method, route).Observe(seconds)
}

func (m *Metrics) BookingTransition(from, to string) {
	if m == nil {
		return
	}
	m.BookingTransitions.WithLabelValues(from, to).Inc()
}
