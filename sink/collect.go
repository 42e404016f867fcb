package sink

import (
	"context"

	"github.com/kbukum/streamfusion/stream"
)

// maxPrealloc caps the capacity reserved from a size hint.
const maxPrealloc = 1 << 16

func prealloc[T any](h stream.SizeHint) []T {
	return make([]T, 0, min(h.Lower, maxPrealloc))
}

// CollectSink gathers every item into a slice.
type CollectSink[T any] struct {
	source stream.Cursor[T]
	items  []T
	done   bool
}

// Collect gathers the items of c in order. The slice is pre-sized from the
// cursor's lower size bound.
func Collect[T any](c stream.Cursor[T]) *CollectSink[T] {
	return &CollectSink[T]{source: c, items: prealloc[T](stream.HintOf(c))}
}

func (s *CollectSink[T]) Poll(ctx context.Context) ([]T, bool) {
	if s.done {
		return s.items, true
	}
	step := s.source.Poll(ctx)
	if v, ok := step.Item(); ok {
		s.items = append(s.items, v)
	} else if step.IsDone() {
		s.done = true
		return s.items, true
	}
	return nil, false
}

// Stop releases the cursor.
func (s *CollectSink[T]) Stop() { stream.StopCursor(s.source) }

// TryCollectSink gathers successful items until the first failure.
type TryCollectSink[T any] struct {
	source stream.Cursor[stream.Result[T]]
	items  []T
	err    error
	done   bool
}

// TryCollect gathers the values of c. The first Err item completes the sink
// with that error; Value then holds the items collected before it and the
// cursor is never polled again.
func TryCollect[T any](c stream.Cursor[stream.Result[T]]) *TryCollectSink[T] {
	return &TryCollectSink[T]{source: c, items: prealloc[T](stream.HintOf(c))}
}

func (s *TryCollectSink[T]) Poll(ctx context.Context) (stream.Result[[]T], bool) {
	if s.done {
		return s.result(), true
	}
	step, err := stream.TryNext(ctx, s.source)
	switch {
	case err != nil:
		s.err = err
		s.done = true
		return s.result(), true
	case step.IsDone():
		s.done = true
		return s.result(), true
	}
	if v, ok := step.Item(); ok {
		s.items = append(s.items, v)
	}
	return stream.Result[[]T]{}, false
}

func (s *TryCollectSink[T]) result() stream.Result[[]T] {
	return stream.Result[[]T]{Value: s.items, Err: s.err}
}

// Stop releases the cursor.
func (s *TryCollectSink[T]) Stop() { stream.StopCursor(s.source) }

// Partitioned holds the two halves produced by Partition.
type Partitioned[T any] struct {
	Matched []T
	Rest    []T
}

// PartitionSink splits items by a predicate.
type PartitionSink[T any] struct {
	source stream.Cursor[T]
	fn     func(T) bool
	out    Partitioned[T]
	done   bool
}

// Partition sends items satisfying fn to Matched and the others to Rest,
// preserving cursor order within each half.
func Partition[T any](c stream.Cursor[T], fn func(T) bool) *PartitionSink[T] {
	return &PartitionSink[T]{source: c, fn: fn}
}

func (s *PartitionSink[T]) Poll(ctx context.Context) (Partitioned[T], bool) {
	if s.done {
		return s.out, true
	}
	step := s.source.Poll(ctx)
	if v, ok := step.Item(); ok {
		if s.fn(v) {
			s.out.Matched = append(s.out.Matched, v)
		} else {
			s.out.Rest = append(s.out.Rest, v)
		}
	} else if step.IsDone() {
		s.done = true
		return s.out, true
	}
	return Partitioned[T]{}, false
}

// Stop releases the cursor.
func (s *PartitionSink[T]) Stop() { stream.StopCursor(s.source) }
