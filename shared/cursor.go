package shared

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"

	"github.com/kbukum/streamfusion/stream"
)

type state[T any] struct {
	lock    *semaphore.Weighted
	inner   stream.Cursor[T]
	done    atomic.Bool
	handles atomic.Int64
}

// Cursor is one handle to a cursor shared by several goroutines.
//
// Each handle is used by a single goroutine. Handles created with Clone
// poll the same underlying cursor under an exclusive lock, so every item
// is delivered to exactly one handle.
type Cursor[T any] struct {
	st       *state[T]
	released atomic.Bool
}

// New takes ownership of c and returns the first handle to it.
func New[T any](c stream.Cursor[T]) *Cursor[T] {
	st := &state[T]{lock: semaphore.NewWeighted(1), inner: c}
	st.handles.Store(1)
	return &Cursor[T]{st: st}
}

// Clone returns a new handle to the same underlying cursor.
// It panics if c has been released.
func (c *Cursor[T]) Clone() *Cursor[T] {
	c.mustBeLive()
	c.st.handles.Add(1)
	return &Cursor[T]{st: c.st}
}

// Release drops this handle. Releasing the last handle stops the
// underlying cursor if it implements stream.Stopper. Release is idempotent.
func (c *Cursor[T]) Release() {
	if !c.released.CompareAndSwap(false, true) {
		return
	}
	if c.st.handles.Add(-1) > 0 {
		return
	}
	// Waits out a poll still in progress on another handle.
	_ = c.st.lock.Acquire(context.Background(), 1)
	stream.StopCursor(c.st.inner)
	c.st.lock.Release(1)
}

// Stop releases the handle, so a shared cursor nested in a pipeline is
// released when the pipeline is stopped.
func (c *Cursor[T]) Stop() { c.Release() }

// Handles returns the number of live handles.
func (c *Cursor[T]) Handles() int { return int(c.st.handles.Load()) }

// Poll advances the underlying cursor once under the lock. Once any handle
// has observed Done, every handle reports Done without locking. A poll
// canceled while waiting for the lock reports Done; callers distinguish
// this through ctx.Err(). Polling a released handle panics.
// The lock is held across the inner Poll, so the inner cursor should not
// suspend.
func (c *Cursor[T]) Poll(ctx context.Context) stream.Step[T] {
	c.mustBeLive()
	st := c.st
	if st.done.Load() {
		return stream.Done[T]()
	}
	if err := st.lock.Acquire(ctx, 1); err != nil {
		return stream.Done[T]()
	}
	defer st.lock.Release(1)
	if st.done.Load() {
		return stream.Done[T]()
	}
	step := st.inner.Poll(ctx)
	if step.IsDone() {
		st.done.Store(true)
	}
	return step
}

func (c *Cursor[T]) mustBeLive() {
	if c.released.Load() {
		panic("shared: use of released cursor handle")
	}
}
