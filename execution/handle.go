package execution

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamfusion/errors"
	"github.com/kbukum/streamfusion/logger"
	"github.com/kbukum/streamfusion/observability"
	"github.com/kbukum/streamfusion/sink"
	"github.com/kbukum/streamfusion/stream"
)

// State is the lifecycle phase of an execution.
type State int32

const (
	// StateSpawning means units are still being handed to workers.
	StateSpawning State = iota
	// StateDraining means every unit is assigned and workers are finishing.
	StateDraining
	// StateMerging means all workers have finished and the last partials are
	// being combined.
	StateMerging
	// StateDone means the result is available from Wait.
	StateDone
)

// String returns the lower-case name of the state.
func (s State) String() string {
	switch s {
	case StateSpawning:
		return "spawning"
	case StateDraining:
		return "draining"
	case StateMerging:
		return "merging"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Handle tracks one running execution.
type Handle[R any] struct {
	id     string
	plan   string
	state  atomic.Int32
	cancel context.CancelFunc
	done   chan struct{}

	result stream.Option[R]
	err    error
}

// ID returns the execution ID attached to logs and spans.
func (h *Handle[R]) ID() string { return h.id }

// Plan returns the name of the plan being executed.
func (h *Handle[R]) Plan() string { return h.plan }

// State returns the current lifecycle phase.
func (h *Handle[R]) State() State { return State(h.state.Load()) }

// Done is closed once the execution has finished.
func (h *Handle[R]) Done() <-chan struct{} { return h.done }

// Cancel abandons the execution. Wait then reports a CANCELED error unless
// the execution had already finished.
func (h *Handle[R]) Cancel() { h.cancel() }

// Wait blocks until the execution finishes. The result is None when the plan
// produced no units. On error the result is always None: partial results of
// a failed execution are discarded.
func (h *Handle[R]) Wait() (stream.Option[R], error) {
	<-h.done
	return h.result, h.err
}

func (h *Handle[R]) setState(s State) { h.state.Store(int32(s)) }

// Start begins executing plan on e and returns immediately.
func Start[R any](ctx context.Context, e *Engine, plan Plan[R]) *Handle[R] {
	id := uuid.NewString()
	ctx = logger.ContextWithExecutionID(ctx, id)
	ctx, span := e.tracer.Start(ctx, observability.SpanExecute, trace.WithAttributes(
		attribute.String(observability.AttrExecutionID, id),
		attribute.String(observability.AttrPlan, plan.Name()),
		attribute.Int(observability.AttrWorkers, e.cfg.WorkerCount),
	))
	ctx, cancel := context.WithCancel(ctx)

	h := &Handle[R]{
		id:     id,
		plan:   plan.Name(),
		cancel: cancel,
		done:   make(chan struct{}),
	}
	c := &coordinator[R]{
		engine: e,
		plan:   plan,
		log:    e.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldPlan, plan.Name())),
	}
	go func() {
		start := time.Now()
		h.result, h.err = c.run(ctx, h.setState)
		c.finish(ctx, span, h.err, time.Since(start))
		span.End()
		cancel()
		h.setState(StateDone)
		close(h.done)
	}()
	return h
}

// Execute runs plan on e and waits for the merged result.
func Execute[R any](ctx context.Context, e *Engine, plan Plan[R]) (stream.Option[R], error) {
	return Start(ctx, e, plan).Wait()
}

// Sequential drives s on the calling goroutine with the engine's yield
// interval. It is the single-worker path: a plan run with one worker and one
// unit produces the same result.
func Sequential[R any](ctx context.Context, e *Engine, s sink.Sink[R]) (r R, err error) {
	defer sink.Stop(s)
	defer func() {
		if p := recover(); p != nil {
			var zero R
			r, err = zero, errors.WorkerFailed(0, fmt.Errorf("panic: %v", p))
		}
	}()
	y, err := sink.YieldBy(s, e.cfg.YieldEvery)
	if err != nil {
		return r, err
	}
	return y.Run(ctx)
}
