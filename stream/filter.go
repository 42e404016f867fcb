package stream

import "context"

// FilterCursor keeps only items satisfying a predicate.
type FilterCursor[T any] struct {
	source Cursor[T]
	fn     func(T) bool
}

// Filter keeps items for which fn returns true. A rejected item is reported
// as NotYet rather than skipped inside Poll, so every advance stays one step.
func Filter[T any](c Cursor[T], fn func(T) bool) *FilterCursor[T] {
	return &FilterCursor[T]{source: c, fn: fn}
}

func (c *FilterCursor[T]) Poll(ctx context.Context) Step[T] {
	step := c.source.Poll(ctx)
	if step.kind == KindReady && !c.fn(step.item) {
		return NotYet[T]()
	}
	return step
}

func (c *FilterCursor[T]) SizeHint() SizeHint { return HintOf(c.source).filtered() }

func (c *FilterCursor[T]) Stop() { StopCursor(c.source) }
