package sink

import (
	"context"

	"github.com/kbukum/streamfusion/stream"
)

// Sink consumes a cursor and produces a single value.
//
// Poll advances the sink once. It returns (zero, false) while still
// accumulating and (final, true) once its cursor reports Done. Polling a
// completed sink returns the same final value without touching the cursor.
type Sink[R any] interface {
	Poll(ctx context.Context) (R, bool)
}

// Func adapts a plain function to the Sink interface.
type Func[R any] func(ctx context.Context) (R, bool)

// Poll calls f(ctx).
func (f Func[R]) Poll(ctx context.Context) (R, bool) { return f(ctx) }

// FoldSink folds every item of its cursor into an accumulator.
type FoldSink[T, R any] struct {
	source stream.Cursor[T]
	acc    R
	fn     func(R, T) R
	done   bool
}

// Fold combines each item into init with fn, in cursor order.
func Fold[T, R any](c stream.Cursor[T], init R, fn func(R, T) R) *FoldSink[T, R] {
	return &FoldSink[T, R]{source: c, acc: init, fn: fn}
}

func (s *FoldSink[T, R]) Poll(ctx context.Context) (R, bool) {
	if s.done {
		return s.acc, true
	}
	step := s.source.Poll(ctx)
	if v, ok := step.Item(); ok {
		s.acc = s.fn(s.acc, v)
	} else if step.IsDone() {
		s.done = true
		return s.acc, true
	}
	var zero R
	return zero, false
}

// Stop releases the cursor.
func (s *FoldSink[T, R]) Stop() { stream.StopCursor(s.source) }

// Count returns a sink that counts the items of c.
func Count[T any](c stream.Cursor[T]) *FoldSink[T, int] {
	return Fold(c, 0, func(n int, _ T) int { return n + 1 })
}

// ReduceSink folds items using the first one as the seed.
type ReduceSink[T any] struct {
	source stream.Cursor[T]
	fn     func(T, T) T
	acc    stream.Option[T]
	done   bool
}

// Reduce combines items pairwise with fn. An empty cursor yields None.
func Reduce[T any](c stream.Cursor[T], fn func(T, T) T) *ReduceSink[T] {
	return &ReduceSink[T]{source: c, fn: fn}
}

func (s *ReduceSink[T]) Poll(ctx context.Context) (stream.Option[T], bool) {
	if s.done {
		return s.acc, true
	}
	step := s.source.Poll(ctx)
	if v, ok := step.Item(); ok {
		if acc, seeded := s.acc.Get(); seeded {
			s.acc = stream.Some(s.fn(acc, v))
		} else {
			s.acc = stream.Some(v)
		}
	} else if step.IsDone() {
		s.done = true
		return s.acc, true
	}
	return stream.None[T](), false
}

// Stop releases the cursor.
func (s *ReduceSink[T]) Stop() { stream.StopCursor(s.source) }
