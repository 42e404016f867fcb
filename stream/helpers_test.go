package stream

import (
	"context"
	"testing"
)

// drain polls c until Done and returns the Ready items in order.
func drain[T any](t *testing.T, c Cursor[T]) []T {
	t.Helper()
	ctx := context.Background()
	var out []T
	for i := 0; ; i++ {
		if i > 1_000_000 {
			t.Fatal("cursor did not finish")
		}
		step := c.Poll(ctx)
		if v, ok := step.Item(); ok {
			out = append(out, v)
		} else if step.IsDone() {
			return out
		}
	}
}

// countingCursor records how many times it was polled.
type countingCursor[T any] struct {
	source Cursor[T]
	polls  int
}

func counting[T any](c Cursor[T]) *countingCursor[T] {
	return &countingCursor[T]{source: c}
}

func (c *countingCursor[T]) Poll(ctx context.Context) Step[T] {
	c.polls++
	return c.source.Poll(ctx)
}

func (c *countingCursor[T]) SizeHint() SizeHint { return HintOf(c.source) }

// stoppable records Stop calls.
type stoppable[T any] struct {
	Cursor[T]
	stopped int
}

func (s *stoppable[T]) Stop() { s.stopped++ }
