package execution

import (
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamfusion/logger"
	"github.com/kbukum/streamfusion/observability"
	"github.com/kbukum/streamfusion/version"
)

// Engine runs plans on a bounded pool of workers. An Engine is immutable
// and safe for concurrent use; every Start begins an independent execution.
type Engine struct {
	cfg     Config
	log     *logger.Logger
	metrics *observability.Metrics
	tracer  trace.Tracer
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default is the registered "execution" logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithMetrics sets the metric instruments. Without it no metrics are recorded.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithTracer sets the tracer. The default comes from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(e *Engine) { e.tracer = t }
}

// New validates cfg and returns an Engine.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	e := &Engine{cfg: cfg}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get("execution")
	}
	if e.tracer == nil {
		e.tracer = observability.Tracer(observability.TracerName)
	}
	e.log.Debug("engine created", logger.Fields(
		logger.FieldWorkers, cfg.WorkerCount,
		"yield_every", cfg.YieldEvery,
		"morsel_capacity", cfg.MorselCapacity,
		"version", version.GetShortVersion(),
	))
	return e, nil
}

// Config returns the engine configuration.
func (e *Engine) Config() Config { return e.cfg }
