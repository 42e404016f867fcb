package morsel

import (
	"context"

	"github.com/kbukum/streamfusion/stream"
	"github.com/kbukum/streamfusion/validation"
)

// Source cuts an upstream cursor into morsels of a fixed capacity.
// Every upstream item lands in exactly one morsel, in order.
type Source[T any] struct {
	source   stream.Cursor[T]
	capacity int
	emitted  int
	done     bool
}

// New returns a morsel source over c. A capacity of zero or less is rejected
// with an INVALID_CONFIG error.
func New[T any](c stream.Cursor[T], capacity int) (*Source[T], error) {
	if err := validation.Positive("morsel_capacity", capacity); err != nil {
		return nil, err
	}
	return &Source[T]{source: c, capacity: capacity}, nil
}

// Poll pulls items until a morsel is full or the upstream is done. The last
// morsel may be short; an empty tail is never emitted. Cancellation of ctx
// reports Done.
func (s *Source[T]) Poll(ctx context.Context) stream.Step[Morsel[T]] {
	if s.done {
		return stream.Done[Morsel[T]]()
	}
	m := newMorsel[T](s.capacity)
	for !m.full() {
		if ctx.Err() != nil {
			s.done = true
			return stream.Done[Morsel[T]]()
		}
		step := s.source.Poll(ctx)
		if v, ok := step.Item(); ok {
			m.push(v)
		} else if step.IsDone() {
			s.done = true
			break
		}
	}
	if m.length == 0 {
		return stream.Done[Morsel[T]]()
	}
	s.emitted++
	return stream.Ready(m)
}

// SizeHint bounds the number of morsels left.
func (s *Source[T]) SizeHint() stream.SizeHint {
	if s.done {
		return stream.Exact(0)
	}
	h := stream.HintOf(s.source)
	out := stream.SizeHint{Lower: ceilDiv(h.Lower, s.capacity), Bounded: h.Bounded}
	if h.Bounded {
		out.Upper = ceilDiv(h.Upper, s.capacity)
	}
	return out
}

// Stop releases the upstream cursor.
func (s *Source[T]) Stop() {
	s.done = true
	stream.StopCursor(s.source)
}

// Emitted returns the number of morsels handed out so far.
func (s *Source[T]) Emitted() int { return s.emitted }

// Capacity returns the configured morsel capacity.
func (s *Source[T]) Capacity() int { return s.capacity }

func ceilDiv(n, d int) int {
	if n <= 0 {
		return 0
	}
	return (n-1)/d + 1
}
