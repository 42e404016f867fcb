// Package observability provides OpenTelemetry tracing and metrics for the
// execution engine.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("fusion"))
//	defer tp.Shutdown(ctx)
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, &cfg)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("fusion"))
//	engine, err := execution.New(execution.DefaultConfig(), execution.WithMetrics(metrics))
//
// Every execution emits one fusion.execute span and updates the fusion.*
// instruments.
package observability
