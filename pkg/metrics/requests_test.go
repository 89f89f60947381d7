package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRequestMetricsExportsOutcomesAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewRequestMetrics(reg)
	metrics.Observe("/api/cart/", "GET", "ok", 250*time.Millisecond)
	metrics.Observe("/api/cart/", "GET", "error", time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "gateway_request_outcomes", "outcome", "ok"); err != nil {
		t.Fatalf("fetch ok outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected ok=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "gateway_request_outcomes", "outcome", "error"); err != nil {
		t.Fatalf("fetch error outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected error=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "gateway_request_duration_seconds", "resource", "/api/cart/"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestReconcileMetricsCountsOutcomes(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewReconcileMetrics(reg)
	metrics.IncOutcome("stripe", "confirmed")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchCounterValue(mfs, "payment_reconcile_outcomes", "provider", "stripe"); err != nil {
		t.Fatalf("fetch reconcile outcome: %v", err)
	} else if got != 1 {
		t.Fatalf("expected confirmed=1, got %f", got)
	}
}

func TestNilReceiversAreSafe(t *testing.T) {
	var reqs *RequestMetrics
	reqs.Observe("/api/cart/", "GET", "ok", time.Second)

	var rec *ReconcileMetrics
	rec.IncOutcome("stripe", "confirmed")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
