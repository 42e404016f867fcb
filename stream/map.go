package stream

import "context"

// MapCursor transforms each Ready item.
type MapCursor[I, O any] struct {
	source Cursor[I]
	fn     func(I) O
}

// Map transforms each item using fn.
func Map[I, O any](c Cursor[I], fn func(I) O) *MapCursor[I, O] {
	return &MapCursor[I, O]{source: c, fn: fn}
}

func (c *MapCursor[I, O]) Poll(ctx context.Context) Step[O] {
	return MapStep(c.source.Poll(ctx), c.fn)
}

func (c *MapCursor[I, O]) SizeHint() SizeHint { return HintOf(c.source) }

func (c *MapCursor[I, O]) Stop() { StopCursor(c.source) }

// InspectCursor calls a function on each Ready item and passes it through.
type InspectCursor[T any] struct {
	source Cursor[T]
	fn     func(T)
}

// Inspect calls fn as a side-effect for each item, then passes the item
// through unchanged. Use for logging or counting mid-pipeline.
func Inspect[T any](c Cursor[T], fn func(T)) *InspectCursor[T] {
	return &InspectCursor[T]{source: c, fn: fn}
}

func (c *InspectCursor[T]) Poll(ctx context.Context) Step[T] {
	step := c.source.Poll(ctx)
	if step.kind == KindReady {
		c.fn(step.item)
	}
	return step
}

func (c *InspectCursor[T]) SizeHint() SizeHint { return HintOf(c.source) }

func (c *InspectCursor[T]) Stop() { StopCursor(c.source) }

// Copied dereferences each item into an owned copy. A nil pointer yields
// the zero value.
func Copied[T any](c Cursor[*T]) *MapCursor[*T, T] {
	return Map(c, func(p *T) T {
		if p == nil {
			var zero T
			return zero
		}
		return *p
	})
}

// Cloner is implemented by values that know how to deep-copy themselves.
type Cloner[T any] interface {
	Clone() T
}

// Cloned replaces each referenced item with its Clone. A nil pointer yields
// the zero value.
func Cloned[T Cloner[T]](c Cursor[*T]) *MapCursor[*T, T] {
	return Map(c, func(p *T) T {
		if p == nil {
			var zero T
			return zero
		}
		return (*p).Clone()
	})
}
