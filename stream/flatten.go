package stream

import "context"

// FlattenCursor drains each inner cursor yielded by an outer cursor.
type FlattenCursor[T any] struct {
	source Cursor[Cursor[T]]
	inner  Cursor[T]
}

// Flatten yields every item of every inner cursor, in order. An inner cursor
// is drained fully before the next one is pulled from the outer cursor.
func Flatten[T any](c Cursor[Cursor[T]]) *FlattenCursor[T] {
	return &FlattenCursor[T]{source: c}
}

func (c *FlattenCursor[T]) Poll(ctx context.Context) Step[T] {
	for {
		if c.inner != nil {
			step := c.inner.Poll(ctx)
			if step.kind != KindDone {
				return step
			}
			c.inner = nil
		}
		outer := c.source.Poll(ctx)
		switch outer.kind {
		case KindNotYet:
			return NotYet[T]()
		case KindDone:
			return Done[T]()
		}
		c.inner = outer.item
	}
}

func (c *FlattenCursor[T]) SizeHint() SizeHint {
	outer := HintOf(c.source)
	if c.inner == nil {
		if outer.Bounded && outer.Upper == 0 {
			return Exact(0)
		}
		return Unknown()
	}
	h := HintOf(c.inner)
	if outer.Bounded && outer.Upper == 0 {
		return h
	}
	return SizeHint{Lower: h.Lower}
}

// Stop releases the current inner cursor and the outer cursor.
func (c *FlattenCursor[T]) Stop() {
	if c.inner != nil {
		StopCursor(c.inner)
		c.inner = nil
	}
	StopCursor(c.source)
}

// FlatMap transforms each item into a cursor and flattens the results.
func FlatMap[I, O any](c Cursor[I], fn func(I) Cursor[O]) *FlattenCursor[O] {
	return Flatten[O](Map(c, fn))
}
