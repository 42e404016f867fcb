package stream

import "context"

// FuseCursor makes Done sticky for any upstream cursor.
type FuseCursor[T any] struct {
	source Cursor[T]
	done   bool
}

// Fuse wraps c so that once it reports Done, every later poll reports Done
// without re-entering c.
func Fuse[T any](c Cursor[T]) *FuseCursor[T] {
	if f, ok := c.(*FuseCursor[T]); ok {
		return f
	}
	return &FuseCursor[T]{source: c}
}

func (c *FuseCursor[T]) Poll(ctx context.Context) Step[T] {
	if c.done {
		return Done[T]()
	}
	step := c.source.Poll(ctx)
	if step.kind == KindDone {
		c.done = true
	}
	return step
}

// IsDone reports whether the upstream has been observed done.
func (c *FuseCursor[T]) IsDone() bool { return c.done }

func (c *FuseCursor[T]) SizeHint() SizeHint {
	if c.done {
		return Exact(0)
	}
	return HintOf(c.source)
}

// Stop forwards to the upstream when it holds resources.
func (c *FuseCursor[T]) Stop() { StopCursor(c.source) }

// ChainCursor yields every item of a first cursor, then of a second.
type ChainCursor[T any] struct {
	first  *FuseCursor[T]
	second *FuseCursor[T]
}

// Chain sequences two cursors. The second is polled only after the first
// has reported Done.
func Chain[T any](first, second Cursor[T]) *ChainCursor[T] {
	return &ChainCursor[T]{first: Fuse(first), second: Fuse(second)}
}

func (c *ChainCursor[T]) Poll(ctx context.Context) Step[T] {
	if !c.first.done {
		if step := c.first.Poll(ctx); step.kind != KindDone {
			return step
		}
	}
	return c.second.Poll(ctx)
}

func (c *ChainCursor[T]) SizeHint() SizeHint {
	return c.first.SizeHint().add(c.second.SizeHint())
}

// Stop releases both cursors.
func (c *ChainCursor[T]) Stop() {
	c.first.Stop()
	c.second.Stop()
}
