package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestNewCheckoutMetrics(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	if metrics == nil {
		t.Fatal("newCheckoutMetricsWithRegisterer should not return nil")
	}
	if metrics.checkoutStarted == nil {
		t.Error("checkoutStarted counter should not be nil")
	}
	if metrics.checkoutCommitted == nil {
		t.Error("checkoutCommitted counter should not be nil")
	}
	if metrics.checkoutFailed == nil {
		t.Error("checkoutFailed counter should not be nil")
	}
	if metrics.checkoutRejected == nil {
		t.Error("checkoutRejected counter should not be nil")
	}
	if metrics.checkoutDuration == nil {
		t.Error("checkoutDuration histogram should not be nil")
	}
	if metrics.stepDuration == nil {
		t.Error("stepDuration histogram vec should not be nil")
	}
	if metrics.orderEvents == nil {
		t.Error("orderEvents counter should not be nil")
	}
	if metrics.activeCheckouts == nil {
		t.Error("activeCheckouts gauge should not be nil")
	}
}

func TestRecordCheckoutStarted(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordCheckoutStarted()
	metrics.RecordCheckoutStarted()

	metric := &dto.Metric{}
	if err := metrics.checkoutStarted.Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected 2 started checkouts, got %v", got)
	}

	gaugeMetric := &dto.Metric{}
	if err := metrics.activeCheckouts.Write(gaugeMetric); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	if got := gaugeMetric.GetGauge().GetValue(); got != 2 {
		t.Fatalf("expected 2 active checkouts, got %v", got)
	}
}

func TestRecordCheckoutFinished(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordCheckoutStarted()
	metrics.RecordCheckoutCommitted()
	metrics.RecordCheckoutFinished()

	gaugeMetric := &dto.Metric{}
	if err := metrics.activeCheckouts.Write(gaugeMetric); err != nil {
		t.Fatalf("write gauge: %v", err)
	}
	if got := gaugeMetric.GetGauge().GetValue(); got != 0 {
		t.Fatalf("expected 0 active checkouts, got %v", got)
	}

	metric := &dto.Metric{}
	if err := metrics.checkoutCommitted.Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected 1 committed checkout, got %v", got)
	}
}

func TestRecordDurations(t *testing.T) {
	metrics := newCheckoutMetricsWithRegisterer(prometheus.NewRegistry())

	metrics.RecordCheckoutDuration(50 * time.Millisecond)
	metrics.RecordStepDuration(StepSubmit, 20*time.Millisecond)
	metrics.RecordStepDuration(StepReconcile, 5*time.Millisecond)

	metric := &dto.Metric{}
	if err := metrics.checkoutDuration.Write(metric); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	if got := metric.GetHistogram().GetSampleCount(); got != 1 {
		t.Fatalf("expected 1 duration sample, got %v", got)
	}
}

func TestReRegisterIsSafe(t *testing.T) {
	registry := prometheus.NewRegistry()

	first := newCheckoutMetricsWithRegisterer(registry)
	second := newCheckoutMetricsWithRegisterer(registry)

	// Повторная регистрация возвращает уже существующие коллекторы.
	first.RecordCheckoutFailed()
	second.RecordCheckoutFailed()

	metric := &dto.Metric{}
	if err := first.checkoutFailed.Write(metric); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	if got := metric.GetCounter().GetValue(); got != 2 {
		t.Fatalf("expected shared counter value 2, got %v", got)
	}
}
