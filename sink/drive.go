package sink

import (
	"context"
	"runtime"

	"github.com/kbukum/streamfusion/errors"
	"github.com/kbukum/streamfusion/stream"
	"github.com/kbukum/streamfusion/validation"
)

// Drive polls s until it completes.
//
// If ctx is done before or when the sink completes, Drive returns a CANCELED
// error wrapping ctx.Err(): asynchronous sources report Done on cancellation,
// so a value produced under a canceled context may be truncated.
func Drive[R any](ctx context.Context, s Sink[R]) (R, error) {
	for {
		if err := ctx.Err(); err != nil {
			var zero R
			return zero, errors.Canceled(err)
		}
		if r, ok := s.Poll(ctx); ok {
			if err := ctx.Err(); err != nil {
				var zero R
				return zero, errors.Canceled(err)
			}
			return r, nil
		}
	}
}

// Stop releases s when it implements stream.Stopper. Sinks built by this
// package forward Stop to their cursor.
func Stop[R any](s Sink[R]) {
	if st, ok := s.(stream.Stopper); ok {
		st.Stop()
	}
}

// Yielding wraps a sink and gives the processor back to the scheduler at a
// fixed interval of non-terminal polls.
type Yielding[R any] struct {
	sink   Sink[R]
	every  int
	since  int
	yields int
}

// YieldBy wraps s so that every step non-terminal polls call runtime.Gosched.
// A step of zero or less is rejected with an INVALID_CONFIG error.
func YieldBy[R any](s Sink[R], step int) (*Yielding[R], error) {
	if err := validation.Positive("yield_every", step); err != nil {
		return nil, err
	}
	return &Yielding[R]{sink: s, every: step}, nil
}

func (y *Yielding[R]) Poll(ctx context.Context) (R, bool) {
	r, ok := y.sink.Poll(ctx)
	if ok {
		return r, true
	}
	y.since++
	if y.since == y.every {
		y.since = 0
		y.yields++
		runtime.Gosched()
	}
	return r, false
}

// Run drives the wrapped sink to completion.
func (y *Yielding[R]) Run(ctx context.Context) (R, error) { return Drive[R](ctx, y) }

// Stop releases the wrapped sink when it holds resources.
func (y *Yielding[R]) Stop() { Stop[R](y.sink) }

// Yields reports how many times control was given back to the scheduler.
func (y *Yielding[R]) Yields() int { return y.yields }
