package stream

import "context"

// MapAsyncCursor runs one asynchronous computation per item, with at most
// one in flight at a time.
type MapAsyncCursor[I, O any] struct {
	source   Cursor[I]
	fn       func(context.Context, I) O
	inflight chan O
	done     bool
}

// MapAsync transforms each item with fn on its own goroutine. Poll suspends
// until the in-flight computation resolves, and only then pulls the next
// upstream item, giving a backpressure depth of one.
//
// fn receives the ctx passed to Poll and should return promptly once it is
// done. If ctx is canceled while a computation is in flight, Poll reports Done
// and the computation's result is discarded; callers distinguish this through
// ctx.Err().
func MapAsync[I, O any](c Cursor[I], fn func(context.Context, I) O) *MapAsyncCursor[I, O] {
	return &MapAsyncCursor[I, O]{source: c, fn: fn}
}

func (c *MapAsyncCursor[I, O]) Poll(ctx context.Context) Step[O] {
	if c.done {
		return Done[O]()
	}
	if c.inflight == nil {
		step := c.source.Poll(ctx)
		switch step.kind {
		case KindNotYet:
			return NotYet[O]()
		case KindDone:
			c.done = true
			return Done[O]()
		}
		ch := make(chan O, 1)
		go func(v I) { ch <- c.fn(ctx, v) }(step.item)
		c.inflight = ch
	}
	select {
	case out := <-c.inflight:
		c.inflight = nil
		return Ready(out)
	case <-ctx.Done():
		c.inflight = nil
		c.done = true
		return Done[O]()
	}
}

func (c *MapAsyncCursor[I, O]) SizeHint() SizeHint {
	if c.done {
		return Exact(0)
	}
	return HintOf(c.source)
}

// Stop releases the upstream. A computation already running finishes on its
// own and its result is discarded.
func (c *MapAsyncCursor[I, O]) Stop() {
	c.inflight = nil
	c.done = true
	StopCursor(c.source)
}
