package stream

import "context"

// TakeCursor yields at most n items.
type TakeCursor[T any] struct {
	source  Cursor[T]
	n       int
	stopped bool
}

// Take yields the first n items, then reports Done without polling the
// upstream again. The upstream is stopped as soon as the limit is reached.
func Take[T any](c Cursor[T], n int) *TakeCursor[T] {
	return &TakeCursor[T]{source: c, n: max(0, n)}
}

func (c *TakeCursor[T]) Poll(ctx context.Context) Step[T] {
	if c.n == 0 {
		return Done[T]()
	}
	step := c.source.Poll(ctx)
	switch step.kind {
	case KindReady:
		c.n--
		if c.n == 0 {
			c.Stop()
		}
	case KindDone:
		c.n = 0
	}
	return step
}

// Stop releases the upstream once.
func (c *TakeCursor[T]) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	StopCursor(c.source)
}

func (c *TakeCursor[T]) SizeHint() SizeHint {
	if c.n == 0 {
		return Exact(0)
	}
	return HintOf(c.source).limit(c.n)
}

// TakeWhileCursor yields items until a predicate first fails.
type TakeWhileCursor[T any] struct {
	source  Cursor[T]
	fn      func(T) bool
	done    bool
	stopped bool
}

// TakeWhile yields items while fn holds. The first item failing fn is
// dropped, the upstream is stopped and the cursor reports Done from then on.
func TakeWhile[T any](c Cursor[T], fn func(T) bool) *TakeWhileCursor[T] {
	return &TakeWhileCursor[T]{source: c, fn: fn}
}

func (c *TakeWhileCursor[T]) Poll(ctx context.Context) Step[T] {
	if c.done {
		return Done[T]()
	}
	step := c.source.Poll(ctx)
	switch step.kind {
	case KindReady:
		if !c.fn(step.item) {
			c.done = true
			c.Stop()
			return Done[T]()
		}
	case KindDone:
		c.done = true
	}
	return step
}

func (c *TakeWhileCursor[T]) SizeHint() SizeHint {
	if c.done {
		return Exact(0)
	}
	return HintOf(c.source).filtered()
}

// Stop releases the upstream once.
func (c *TakeWhileCursor[T]) Stop() {
	if c.stopped {
		return
	}
	c.stopped = true
	StopCursor(c.source)
}

// SkipCursor suppresses the first n items.
type SkipCursor[T any] struct {
	source Cursor[T]
	n      int
}

// Skip drops the first n items. Each dropped item is reported as NotYet.
func Skip[T any](c Cursor[T], n int) *SkipCursor[T] {
	return &SkipCursor[T]{source: c, n: max(0, n)}
}

func (c *SkipCursor[T]) Poll(ctx context.Context) Step[T] {
	step := c.source.Poll(ctx)
	if step.kind == KindReady && c.n > 0 {
		c.n--
		return NotYet[T]()
	}
	return step
}

func (c *SkipCursor[T]) SizeHint() SizeHint { return HintOf(c.source).sub(c.n) }

func (c *SkipCursor[T]) Stop() { StopCursor(c.source) }

// SkipWhileCursor suppresses items until a predicate first fails.
type SkipWhileCursor[T any] struct {
	source   Cursor[T]
	fn       func(T) bool
	skipping bool
}

// SkipWhile drops items while fn holds. Once fn fails, it is never called
// again and every later item passes through.
func SkipWhile[T any](c Cursor[T], fn func(T) bool) *SkipWhileCursor[T] {
	return &SkipWhileCursor[T]{source: c, fn: fn, skipping: true}
}

func (c *SkipWhileCursor[T]) Poll(ctx context.Context) Step[T] {
	step := c.source.Poll(ctx)
	if step.kind == KindReady && c.skipping {
		if c.fn(step.item) {
			return NotYet[T]()
		}
		c.skipping = false
	}
	return step
}

func (c *SkipWhileCursor[T]) SizeHint() SizeHint {
	if c.skipping {
		return HintOf(c.source).filtered()
	}
	return HintOf(c.source)
}

func (c *SkipWhileCursor[T]) Stop() { StopCursor(c.source) }

// StepByCursor keeps every n-th item.
type StepByCursor[T any] struct {
	source Cursor[T]
	step   int
	skip   int
}

// StepBy keeps the first item and then every step-th item after it.
// It panics if step is not positive.
func StepBy[T any](c Cursor[T], step int) *StepByCursor[T] {
	if step <= 0 {
		panic("stream: StepBy step must be greater than zero")
	}
	return &StepByCursor[T]{source: c, step: step}
}

func (c *StepByCursor[T]) Poll(ctx context.Context) Step[T] {
	s := c.source.Poll(ctx)
	if s.kind != KindReady {
		return s
	}
	if c.skip == 0 {
		c.skip = c.step - 1
		return s
	}
	c.skip--
	return NotYet[T]()
}

func (c *StepByCursor[T]) SizeHint() SizeHint {
	h := HintOf(c.source)
	kept := func(n int) int {
		if n <= c.skip {
			return 0
		}
		return (n-c.skip-1)/c.step + 1
	}
	out := SizeHint{Lower: kept(h.Lower), Bounded: h.Bounded}
	if h.Bounded {
		out.Upper = kept(h.Upper)
	}
	return out
}

func (c *StepByCursor[T]) Stop() { StopCursor(c.source) }
