package observability

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/streamfusion/version"
)

func TestDefaultTracerConfig(t *testing.T) {
	cfg := DefaultTracerConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if cfg.ServiceVersion != version.GetShortVersion() {
		t.Errorf("expected build version, got %s", cfg.ServiceVersion)
	}
}

func TestDefaultMeterConfig(t *testing.T) {
	cfg := DefaultMeterConfig("test-service")

	if cfg.ServiceName != "test-service" {
		t.Errorf("expected ServiceName 'test-service', got %s", cfg.ServiceName)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
}

func collectMetrics(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect failed: %v", err)
	}
	out := make(map[string]metricdata.Aggregation)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func sumOf(t *testing.T, data metricdata.Aggregation) int64 {
	t.Helper()
	s, ok := data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("expected int64 sum, got %T", data)
	}
	var total int64
	for _, dp := range s.DataPoints {
		total += dp.Value
	}
	return total
}

func TestMetrics_Record(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordWorkerStart(ctx)
	metrics.RecordWorkerStart(ctx)
	metrics.RecordWorkerEnd(ctx, "ok")
	metrics.RecordMorsel(ctx)
	metrics.RecordMorsel(ctx)
	metrics.RecordMorsel(ctx)
	metrics.RecordError(ctx, "WORKER_FAILED")
	metrics.RecordExecution(ctx, "morsel", "ok", 20*time.Millisecond)

	got := collectMetrics(t, reader)
	tests := []struct {
		name string
		want int64
	}{
		{MetricWorkerActive, 1},
		{MetricWorkerTotal, 1},
		{MetricMorselTotal, 3},
		{MetricErrorTotal, 1},
		{MetricExecutionTotal, 1},
	}
	for _, tc := range tests {
		data, ok := got[tc.name]
		if !ok {
			t.Errorf("expected instrument %s to be exported", tc.name)
			continue
		}
		if v := sumOf(t, data); v != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, v)
		}
	}

	hist, ok := got[MetricExecutionDuration].(metricdata.Histogram[float64])
	if !ok || len(hist.DataPoints) != 1 || hist.DataPoints[0].Count != 1 {
		t.Errorf("expected one duration sample, got %+v", got[MetricExecutionDuration])
	}
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordWorkerStart(ctx)
	m.RecordWorkerEnd(ctx, "ok")
	m.RecordMorsel(ctx)
	m.RecordError(ctx, "x")
	m.RecordExecution(ctx, "shared", "ok", time.Second)
}

func TestSpanHelpers(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	ctx, span := tp.Tracer(TracerName).Start(context.Background(), SpanExecute)

	SetSpanAttribute(ctx, AttrWorkers, 4)
	SetSpanAttribute(ctx, AttrPlan, "morsel")
	SetSpanAttribute(ctx, AttrUnits, int64(16))
	SetSpanAttribute(ctx, "ignored", struct{}{})
	SetSpanError(ctx, errors.New("boom"))
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	s := spans[0]
	if s.Name() != SpanExecute {
		t.Errorf("expected span %s, got %s", SpanExecute, s.Name())
	}
	attrs := map[string]string{}
	for _, kv := range s.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	if attrs[AttrWorkers] != "4" || attrs[AttrPlan] != "morsel" || attrs[AttrUnits] != "16" {
		t.Errorf("unexpected attributes %v", attrs)
	}
	if _, ok := attrs["ignored"]; ok {
		t.Error("expected unsupported attribute type to be skipped")
	}
	if s.Status().Code != codes.Error {
		t.Errorf("expected error status, got %v", s.Status().Code)
	}
	if len(s.Events()) != 1 {
		t.Errorf("expected one recorded error event, got %d", len(s.Events()))
	}
}

func TestSpanHelpers_NoSpan(t *testing.T) {
	ctx := context.Background()
	SetSpanAttribute(ctx, AttrWorkers, 1)
	SetSpanError(ctx, errors.New("ignored"))
}

func TestSamplerFor(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{1.0, sdktrace.AlwaysSample().Description()},
		{0, sdktrace.NeverSample().Description()},
		{0.5, sdktrace.TraceIDRatioBased(0.5).Description()},
	}
	for _, tc := range tests {
		if got := samplerFor(tc.rate).Description(); got != tc.want {
			t.Errorf("rate %v: expected %s, got %s", tc.rate, tc.want, got)
		}
	}
}

func TestNewResource(t *testing.T) {
	res, err := newResource("fusion", "1.2.3", "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	found := false
	for _, kv := range res.Attributes() {
		if kv.Key == "service.name" && kv.Value.AsString() == "fusion" {
			found = true
		}
	}
	if !found {
		t.Error("expected service.name attribute")
	}
}
