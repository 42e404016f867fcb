package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/streamfusion/logger"
	"github.com/kbukum/streamfusion/version"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	// ServiceName is the name of the service.
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
	// ServiceVersion is the version of the service.
	ServiceVersion string `yaml:"service_version" mapstructure:"service_version"`
	// Environment is the deployment environment (dev, staging, prod).
	Environment string `yaml:"environment" mapstructure:"environment"`
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string `yaml:"endpoint" mapstructure:"endpoint"`
	// Insecure allows insecure connections (for development).
	Insecure bool `yaml:"insecure" mapstructure:"insecure"`
	// Interval is the metric export interval.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultMeterConfig returns sensible defaults for development.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: version.GetShortVersion(),
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider.
// Returns a MeterProvider that should be shut down on application exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Get("observability").Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricExecutionTotal    = "fusion.execution.total"
	MetricExecutionDuration = "fusion.execution.duration"
	MetricWorkerActive      = "fusion.worker.active"
	MetricWorkerTotal       = "fusion.worker.total"
	MetricMorselTotal       = "fusion.morsel.total"
	MetricErrorTotal        = "fusion.error.total"
)

// Metrics holds the instruments recorded by the execution engine.
// A nil *Metrics records nothing.
type Metrics struct {
	executionTotal    metric.Int64Counter
	executionDuration metric.Float64Histogram
	workerActive      metric.Int64UpDownCounter
	workerTotal       metric.Int64Counter
	morselTotal       metric.Int64Counter
	errorTotal        metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	executionTotal, err := meter.Int64Counter(MetricExecutionTotal,
		metric.WithDescription("Total number of executions by plan and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricExecutionTotal, err)
	}

	executionDuration, err := meter.Float64Histogram(MetricExecutionDuration,
		metric.WithDescription("Duration of executions in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricExecutionDuration, err)
	}

	workerActive, err := meter.Int64UpDownCounter(MetricWorkerActive,
		metric.WithDescription("Number of currently running workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s gauge: %w", MetricWorkerActive, err)
	}

	workerTotal, err := meter.Int64Counter(MetricWorkerTotal,
		metric.WithDescription("Total number of finished workers by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricWorkerTotal, err)
	}

	morselTotal, err := meter.Int64Counter(MetricMorselTotal,
		metric.WithDescription("Total number of morsels handed to workers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricMorselTotal, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrorTotal,
		metric.WithDescription("Total execution errors by code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrorTotal, err)
	}

	return &Metrics{
		executionTotal:    executionTotal,
		executionDuration: executionDuration,
		workerActive:      workerActive,
		workerTotal:       workerTotal,
		morselTotal:       morselTotal,
		errorTotal:        errorTotal,
	}, nil
}

// RecordExecution records a finished execution.
func (m *Metrics) RecordExecution(ctx context.Context, plan, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.executionTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("plan", plan),
		attribute.String("status", status),
	))
	m.executionDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("plan", plan),
	))
}

// RecordWorkerStart increments the active worker count.
func (m *Metrics) RecordWorkerStart(ctx context.Context) {
	if m == nil {
		return
	}
	m.workerActive.Add(ctx, 1)
}

// RecordWorkerEnd decrements active workers and counts the finished worker.
func (m *Metrics) RecordWorkerEnd(ctx context.Context, status string) {
	if m == nil {
		return
	}
	m.workerActive.Add(ctx, -1)
	m.workerTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("status", status)))
}

// RecordMorsel counts one morsel handed to a worker.
func (m *Metrics) RecordMorsel(ctx context.Context) {
	if m == nil {
		return
	}
	m.morselTotal.Add(ctx, 1)
}

// RecordError records an execution error by code.
func (m *Metrics) RecordError(ctx context.Context, code string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
}
