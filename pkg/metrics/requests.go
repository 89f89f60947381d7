package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RequestMetrics records gateway calls against the commerce API.
type RequestMetrics struct {
	duration *prometheus.HistogramVec
	outcomes *prometheus.CounterVec
}

// NewRequestMetrics registers the gateway metrics on the provided registerer.
func NewRequestMetrics(reg prometheus.Registerer) *RequestMetrics {
	if reg == nil {
		return &RequestMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "Duration of commerce API requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"resource", "method"})
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_request_outcomes",
		Help: "Commerce API request outcomes.",
	}, []string{"resource", "method", "outcome"})
	reg.MustRegister(duration, outcomes)
	return &RequestMetrics{
		duration: duration,
		outcomes: outcomes,
	}
}

// Observe records one request.
func (r *RequestMetrics) Observe(resource, method, outcome string, duration time.Duration) {
	if r == nil {
		return
	}
	if r.duration != nil {
		r.duration.WithLabelValues(normalizeLabel(resource), normalizeLabel(method)).Observe(duration.Seconds())
	}
	if r.outcomes != nil {
		r.outcomes.WithLabelValues(normalizeLabel(resource), normalizeLabel(method), normalizeLabel(outcome)).Inc()
	}
}

// ReconcileMetrics counts payment reconciliation outcomes.
type ReconcileMetrics struct {
	outcomes *prometheus.CounterVec
}

// NewReconcileMetrics registers the reconciliation metrics.
func NewReconcileMetrics(reg prometheus.Registerer) *ReconcileMetrics {
	if reg == nil {
		return &ReconcileMetrics{}
	}
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_reconcile_outcomes",
		Help: "Payment reconciliation outcomes by provider.",
	}, []string{"provider", "outcome"})
	reg.MustRegister(outcomes)
	return &ReconcileMetrics{outcomes: outcomes}
}

// IncOutcome counts one finished reconciliation.
func (r *ReconcileMetrics) IncOutcome(provider, outcome string) {
	if r == nil || r.outcomes == nil {
		return
	}
	r.outcomes.WithLabelValues(normalizeLabel(provider), normalizeLabel(outcome)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
