package stream

import (
	"context"
	"errors"
	"iter"

	"golang.org/x/exp/constraints"
)

// Iterator provides pull-based sequential access with explicit errors and
// cleanup. Returns (zero, false, nil) when exhausted.
type Iterator[T any] interface {
	Next(ctx context.Context) (T, bool, error)
	Close() error
}

// SliceCursor yields the elements of a slice in order.
type SliceCursor[T any] struct {
	items []T
	index int
}

// FromSlice lifts a slice into a cursor. The slice is not copied.
func FromSlice[T any](items []T) *SliceCursor[T] {
	return &SliceCursor[T]{items: items}
}

func (c *SliceCursor[T]) Poll(_ context.Context) Step[T] {
	if c.index >= len(c.items) {
		return Done[T]()
	}
	v := c.items[c.index]
	c.index++
	return Ready(v)
}

func (c *SliceCursor[T]) SizeHint() SizeHint { return Exact(len(c.items) - c.index) }

// RangeCursor yields the half-open integer interval [lo, hi).
type RangeCursor[T constraints.Integer] struct {
	next, hi T
}

// Range returns a cursor over lo, lo+1, ..., hi-1.
func Range[T constraints.Integer](lo, hi T) *RangeCursor[T] {
	return &RangeCursor[T]{next: lo, hi: hi}
}

func (c *RangeCursor[T]) Poll(_ context.Context) Step[T] {
	if c.next >= c.hi {
		return Done[T]()
	}
	v := c.next
	c.next++
	return Ready(v)
}

func (c *RangeCursor[T]) SizeHint() SizeHint {
	if c.next >= c.hi {
		return Exact(0)
	}
	return Exact(int(c.hi - c.next))
}

// RepeatCursor yields the same value forever.
type RepeatCursor[T any] struct {
	v T
}

// Repeat returns an infinite cursor of v. Bound it with Take or TakeWhile.
func Repeat[T any](v T) *RepeatCursor[T] { return &RepeatCursor[T]{v: v} }

func (c *RepeatCursor[T]) Poll(_ context.Context) Step[T] { return Ready(c.v) }

func (c *RepeatCursor[T]) SizeHint() SizeHint { return SizeHint{Lower: maxInt} }

type emptyCursor[T any] struct{}

func (emptyCursor[T]) Poll(_ context.Context) Step[T] { return Done[T]() }

func (emptyCursor[T]) SizeHint() SizeHint { return Exact(0) }

// Empty returns a cursor that is done immediately.
func Empty[T any]() Cursor[T] { return emptyCursor[T]{} }

// FuncCursor yields values produced by a generator function.
type FuncCursor[T any] struct {
	fn func() (T, bool)
}

// FromFunc lifts a generator into a cursor. The cursor is done the first
// time fn returns false; wrap it in Fuse if fn may resume afterwards.
func FromFunc[T any](fn func() (T, bool)) *FuncCursor[T] {
	return &FuncCursor[T]{fn: fn}
}

func (c *FuncCursor[T]) Poll(_ context.Context) Step[T] {
	v, ok := c.fn()
	if !ok {
		return Done[T]()
	}
	return Ready(v)
}

// SeqCursor adapts a range-over-func sequence. It holds a coroutine until
// the sequence ends or Stop is called.
type SeqCursor[T any] struct {
	next func() (T, bool)
	stop func()
	done bool
}

// FromSeq lifts an iter.Seq into a cursor.
func FromSeq[T any](seq iter.Seq[T]) *SeqCursor[T] {
	next, stop := iter.Pull(seq)
	return &SeqCursor[T]{next: next, stop: stop}
}

func (c *SeqCursor[T]) Poll(_ context.Context) Step[T] {
	if c.done {
		return Done[T]()
	}
	v, ok := c.next()
	if !ok {
		c.Stop()
		return Done[T]()
	}
	return Ready(v)
}

// Stop releases the underlying coroutine. Later polls report Done.
func (c *SeqCursor[T]) Stop() {
	if c.done {
		return
	}
	c.done = true
	c.stop()
}

// ChannelCursor receives items from a channel. It is an asynchronous source:
// Poll suspends until an item arrives, the channel closes, or ctx is done.
type ChannelCursor[T any] struct {
	ch <-chan T
}

// FromChannel lifts a receive-only channel into a cursor.
// Cancellation reports Done; callers distinguish it through ctx.Err().
func FromChannel[T any](ch <-chan T) *ChannelCursor[T] {
	return &ChannelCursor[T]{ch: ch}
}

func (c *ChannelCursor[T]) Poll(ctx context.Context) Step[T] {
	select {
	case v, open := <-c.ch:
		if !open {
			return Done[T]()
		}
		return Ready(v)
	case <-ctx.Done():
		return Done[T]()
	}
}

// IteratorCursor adapts an Iterator, surfacing its errors as failed items.
type IteratorCursor[T any] struct {
	it       Iterator[T]
	closed   bool
	closeErr error
}

// FromIterator lifts an Iterator into a fallible cursor. An iterator error,
// or an error from closing it, is yielded once as a failed item, after which
// the cursor is done. The iterator is closed as soon as the cursor finishes.
func FromIterator[T any](it Iterator[T]) *IteratorCursor[T] {
	return &IteratorCursor[T]{it: it}
}

func (c *IteratorCursor[T]) Poll(ctx context.Context) Step[Result[T]] {
	if c.closed {
		return Done[Result[T]]()
	}
	v, ok, err := c.it.Next(ctx)
	if err != nil {
		c.Stop()
		return Ready(Err[T](errors.Join(err, c.closeErr)))
	}
	if !ok {
		c.Stop()
		if c.closeErr != nil {
			return Ready(Err[T](c.closeErr))
		}
		return Done[Result[T]]()
	}
	return Ready(Ok(v))
}

// Stop closes the iterator. Later polls report Done.
func (c *IteratorCursor[T]) Stop() {
	if c.closed {
		return
	}
	c.closed = true
	c.closeErr = c.it.Close()
}

// CloseErr returns the error reported when the iterator was closed.
func (c *IteratorCursor[T]) CloseErr() error { return c.closeErr }
