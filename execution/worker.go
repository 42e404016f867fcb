package execution

import (
	"context"
	"fmt"
	"time"

	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/streamfusion/errors"
	"github.com/kbukum/streamfusion/logger"
	"github.com/kbukum/streamfusion/observability"
	"github.com/kbukum/streamfusion/sink"
	"github.com/kbukum/streamfusion/stream"
)

// Outcome labels used for logs, metrics and spans.
const (
	StatusOK       = "ok"
	StatusFailed   = "failed"
	StatusCanceled = "canceled"
)

// newPool returns a pool where each task respects context cancellation.
// Wait() only returns the first error seen.
func newPool(ctx context.Context, maxGoroutines int) *pool.ContextPool {
	return pool.New().
		WithContext(ctx).
		WithCancelOnError().
		WithFirstError().
		WithMaxGoroutines(maxGoroutines)
}

// trySend sends msg unless ctx is done first.
func trySend[T any](ctx context.Context, msg T, channel chan<- T) bool {
	if ctx.Err() != nil {
		return false
	}
	select {
	case <-ctx.Done():
		return false
	case channel <- msg:
		return true
	}
}

type merged[R any] struct {
	acc stream.Option[R]
	err error
}

// coordinator owns one execution: it hands units to a bounded worker pool
// and folds partial results as they arrive.
type coordinator[R any] struct {
	engine  *Engine
	plan    Plan[R]
	log     *logger.Logger
	spawned int
}

func (c *coordinator[R]) run(ctx context.Context, setState func(State)) (stream.Option[R], error) {
	cfg := c.engine.cfg
	units, err := c.plan.Units(cfg)
	if err != nil {
		return stream.None[R](), err
	}
	defer stream.StopCursor(units)

	c.log.Debug("execution started", logger.Fields(logger.FieldWorkers, cfg.WorkerCount))

	workCtx, cancelWork := context.WithCancel(ctx)
	defer cancelWork()
	spawnCtx, stopSpawning := context.WithCancel(workCtx)
	defer stopSpawning()

	partials := make(chan R, cfg.WorkerCount)
	results := make(chan merged[R], 1)
	go c.merge(partials, results)

	p := newPool(workCtx, cfg.WorkerCount)
	spawnErr := c.spawn(spawnCtx, p, units, partials, stopSpawning)
	if spawnErr != nil {
		cancelWork()
	}
	setState(StateDraining)
	poolErr := p.Wait()

	setState(StateMerging)
	close(partials)
	m := <-results

	switch {
	case spawnErr != nil:
		return stream.None[R](), spawnErr
	case poolErr != nil && !errors.IsCode(poolErr, errors.ErrCodeCanceled):
		return stream.None[R](), poolErr
	case ctx.Err() != nil:
		return stream.None[R](), errors.Canceled(ctx.Err())
	case poolErr != nil:
		return stream.None[R](), poolErr
	case m.err != nil:
		return stream.None[R](), m.err
	}
	return m.acc, nil
}

// spawn assigns units to workers until the unit cursor is done or ctx ends.
// Go blocks while every worker slot is busy.
func (c *coordinator[R]) spawn(ctx context.Context, p *pool.ContextPool, units stream.Cursor[sink.Sink[R]], partials chan<- R, onFailure func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.WorkerFailed(c.spawned, fmt.Errorf("building unit: panic: %v", r))
		}
	}()
	for ctx.Err() == nil {
		step := units.Poll(ctx)
		if step.IsDone() {
			return nil
		}
		s, ok := step.Item()
		if !ok {
			continue
		}
		id := c.spawned
		c.spawned++
		if c.plan.Name() == PlanMorsels {
			c.engine.metrics.RecordMorsel(ctx)
		}
		p.Go(func(ctx context.Context) error {
			err := c.work(ctx, id, s, partials)
			if err != nil {
				onFailure()
			}
			return err
		})
	}
	return nil
}

// work drives one unit to completion and publishes its partial result.
func (c *coordinator[R]) work(ctx context.Context, id int, s sink.Sink[R], partials chan<- R) (err error) {
	e := c.engine
	log := c.log.WithFields(logger.Fields(logger.FieldWorker, id))
	e.metrics.RecordWorkerStart(ctx)
	start := time.Now()
	log.Debug("worker started")

	defer func() {
		status := statusOf(err)
		e.metrics.RecordWorkerEnd(ctx, status)
		fields := logger.MergeWithDuration(logger.Fields(logger.FieldStatus, status), time.Since(start))
		if status == StatusFailed {
			log.WithError(err).Error("worker failed", fields)
			return
		}
		log.Debug("worker finished", fields)
	}()
	defer sink.Stop(s)
	defer func() {
		if r := recover(); r != nil {
			err = errors.WorkerFailed(id, fmt.Errorf("panic: %v", r))
		}
	}()

	y, err := sink.YieldBy(s, e.cfg.YieldEvery)
	if err != nil {
		return err
	}
	r, err := y.Run(ctx)
	if err != nil {
		return err
	}
	if !trySend(ctx, r, partials) {
		return errors.Canceled(ctx.Err())
	}
	return nil
}

// merge folds partials in arrival order until the channel is closed.
// A panicking Merge is reported and the remaining partials are drained.
func (c *coordinator[R]) merge(partials <-chan R, out chan<- merged[R]) {
	var m merged[R]
	for r := range partials {
		if m.err != nil {
			continue
		}
		m.acc, m.err = c.combine(m.acc, r)
	}
	out <- m
}

func (c *coordinator[R]) combine(acc stream.Option[R], r R) (next stream.Option[R], err error) {
	defer func() {
		if p := recover(); p != nil {
			err = errors.Internal(fmt.Errorf("merge: panic: %v", p))
		}
	}()
	if a, ok := acc.Get(); ok {
		return stream.Some(c.plan.Merge(a, r)), nil
	}
	return stream.Some(r), nil
}

// finish records the outcome of the execution on the span, metrics and log.
func (c *coordinator[R]) finish(ctx context.Context, span trace.Span, err error, d time.Duration) {
	status := statusOf(err)
	span.SetAttributes(
		attribute.Int(observability.AttrUnits, c.spawned),
		attribute.String(observability.AttrOutcome, status),
	)
	c.engine.metrics.RecordExecution(ctx, c.plan.Name(), status, d)

	fields := logger.MergeWithDuration(logger.Fields(
		logger.FieldUnits, c.spawned,
		logger.FieldStatus, status,
	), d)
	if err == nil {
		c.log.Info("execution completed", fields)
		return
	}

	code := errors.ErrCodeInternal
	if appErr, ok := errors.AsAppError(err); ok {
		code = appErr.Code
	}
	span.SetAttributes(attribute.String(observability.AttrErrorCode, string(code)))
	observability.SetSpanError(ctx, err)
	c.engine.metrics.RecordError(ctx, string(code))
	if status == StatusCanceled {
		c.log.WithError(err).Warn("execution canceled", fields)
		return
	}
	c.log.WithError(err).Error("execution failed", fields)
}

func statusOf(err error) string {
	switch {
	case err == nil:
		return StatusOK
	case errors.IsCode(err, errors.ErrCodeCanceled):
		return StatusCanceled
	default:
		return StatusFailed
	}
}
