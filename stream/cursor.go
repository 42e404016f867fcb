package stream

import "context"

// Cursor provides pull-based, step-at-a-time access to a sequence.
//
// Poll advances the cursor once. Implementations do no I/O beyond delegating
// to their upstream, except for sources, which may suspend until an item is
// available or ctx is done. A cursor is not safe for concurrent use; share
// one across goroutines through the shared package.
type Cursor[T any] interface {
	Poll(ctx context.Context) Step[T]
}

// Sizer is implemented by cursors that can bound how many items remain.
type Sizer interface {
	SizeHint() SizeHint
}

// Stopper is implemented by cursors holding resources that must be released
// when the cursor is abandoned before reaching Done.
type Stopper interface {
	Stop()
}

// SizeHint bounds the number of items a cursor has left to yield.
// Upper is meaningful only when Bounded is true.
type SizeHint struct {
	Lower   int
	Upper   int
	Bounded bool
}

// Exact returns a hint for exactly n remaining items.
func Exact(n int) SizeHint { return SizeHint{Lower: n, Upper: n, Bounded: true} }

// Unknown returns the conservative hint: no lower bound, no upper bound.
func Unknown() SizeHint { return SizeHint{} }

// HintOf returns the size hint of c, or Unknown when c does not implement Sizer.
func HintOf[T any](c Cursor[T]) SizeHint {
	if s, ok := c.(Sizer); ok {
		return s.SizeHint()
	}
	return Unknown()
}

// StopCursor releases c's resources when it implements Stopper.
func StopCursor[T any](c Cursor[T]) {
	if s, ok := c.(Stopper); ok {
		s.Stop()
	}
}

func (h SizeHint) sub(n int) SizeHint {
	h.Lower = max(0, h.Lower-n)
	if h.Bounded {
		h.Upper = max(0, h.Upper-n)
	}
	return h
}

func (h SizeHint) limit(n int) SizeHint {
	h.Lower = min(h.Lower, n)
	if !h.Bounded || h.Upper > n {
		h.Upper = n
	}
	h.Bounded = true
	return h
}

func (h SizeHint) add(o SizeHint) SizeHint {
	out := SizeHint{Lower: saturatingAdd(h.Lower, o.Lower)}
	if h.Bounded && o.Bounded {
		out.Upper = h.Upper + o.Upper
		out.Bounded = out.Upper >= h.Upper
	}
	return out
}

func saturatingAdd(a, b int) int {
	if sum := a + b; sum >= a {
		return sum
	}
	return maxInt
}

const maxInt = int(^uint(0) >> 1)

func (h SizeHint) filtered() SizeHint {
	h.Lower = 0
	return h
}

// Next polls c until it yields an item or finishes, skipping NotYet steps.
// It returns false when c is done or ctx is canceled.
func Next[T any](ctx context.Context, c Cursor[T]) (T, bool) {
	for {
		if ctx.Err() != nil {
			var zero T
			return zero, false
		}
		step := c.Poll(ctx)
		switch step.Kind() {
		case KindReady:
			return step.item, true
		case KindDone:
			var zero T
			return zero, false
		}
	}
}

// TryNext polls a fallible cursor once and transposes the result.
func TryNext[T any](ctx context.Context, c Cursor[Result[T]]) (Step[T], error) {
	return Transpose(c.Poll(ctx))
}
