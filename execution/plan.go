package execution

import (
	"context"

	"github.com/kbukum/streamfusion/morsel"
	"github.com/kbukum/streamfusion/shared"
	"github.com/kbukum/streamfusion/sink"
	"github.com/kbukum/streamfusion/stream"
)

// Plan names reported in logs, metrics and spans.
const (
	PlanMorsels = "morsel"
	PlanShared  = "shared"
)

// Plan describes a parallel execution: a cursor of independent units of work,
// each a sink producing a partial result, and the associative function that
// combines partial results. Merge must be associative; partials arrive in
// completion order, so plans whose Merge is not also commutative see a
// nondeterministic combination order.
//
// A plan is single-use: Units consumes the plan's source.
type Plan[R any] interface {
	Name() string
	Units(cfg Config) (stream.Cursor[sink.Sink[R]], error)
	Merge(a, b R) R
}

// Builder turns a cursor over a slice of the input into a unit of work.
type Builder[T, R any] func(stream.Cursor[T]) sink.Sink[R]

// Morsels returns a plan that partitions src into morsels of
// Config.MorselCapacity items and builds one unit per morsel.
func Morsels[T, R any](src stream.Cursor[T], build Builder[T, R], merge func(a, b R) R) Plan[R] {
	return &morselPlan[T, R]{source: src, build: build, merge: merge}
}

type morselPlan[T, R any] struct {
	source stream.Cursor[T]
	build  Builder[T, R]
	merge  func(a, b R) R
}

func (p *morselPlan[T, R]) Name() string { return PlanMorsels }

func (p *morselPlan[T, R]) Merge(a, b R) R { return p.merge(a, b) }

func (p *morselPlan[T, R]) Units(cfg Config) (stream.Cursor[sink.Sink[R]], error) {
	src, err := morsel.New(p.source, cfg.MorselCapacity)
	if err != nil {
		return nil, err
	}
	return &units[morsel.Morsel[T], R]{
		source: src,
		build: func(m morsel.Morsel[T]) sink.Sink[R] {
			return p.build(m.Cursor())
		},
	}, nil
}

// Shared returns a plan that runs exactly Config.WorkerCount units, each
// pulling from its own handle on one lock-protected cursor over src.
// Every handle is released when its unit finishes.
//
// Every unit yields a partial even when it pulled nothing, so an empty src
// produces WorkerCount partials. With a seeded sink such as sink.Fold the
// result is the seed merged WorkerCount times, not None; build units with
// sink.Reduce and merge with MergeOptions to get None for an empty src.
func Shared[T, R any](src stream.Cursor[T], build Builder[T, R], merge func(a, b R) R) Plan[R] {
	return &sharedPlan[T, R]{source: src, build: build, merge: merge}
}

type sharedPlan[T, R any] struct {
	source stream.Cursor[T]
	build  Builder[T, R]
	merge  func(a, b R) R
}

func (p *sharedPlan[T, R]) Name() string { return PlanShared }

func (p *sharedPlan[T, R]) Merge(a, b R) R { return p.merge(a, b) }

func (p *sharedPlan[T, R]) Units(cfg Config) (stream.Cursor[sink.Sink[R]], error) {
	if cfg.WorkerCount <= 0 {
		return nil, cfg.Validate()
	}
	root := shared.New(p.source)
	handles := stream.Map[int](stream.Range(0, cfg.WorkerCount), func(int) *shared.Cursor[T] {
		return root.Clone()
	})
	return &units[*shared.Cursor[T], R]{
		source: handles,
		build: func(h *shared.Cursor[T]) sink.Sink[R] {
			return &releasing[R]{Sink: p.build(h), release: h.Release}
		},
		// The root handle only mints clones.
		finish: root.Release,
	}, nil
}

// units maps a source of work descriptions to sinks and forwards Stop.
type units[T, R any] struct {
	source  stream.Cursor[T]
	build   func(T) sink.Sink[R]
	finish  func()
	stopped bool
}

func (u *units[T, R]) Poll(ctx context.Context) stream.Step[sink.Sink[R]] {
	step := u.source.Poll(ctx)
	if step.IsDone() {
		u.Stop()
	}
	return stream.MapStep(step, u.build)
}

func (u *units[T, R]) SizeHint() stream.SizeHint { return stream.HintOf(u.source) }

func (u *units[T, R]) Stop() {
	if u.stopped {
		return
	}
	u.stopped = true
	stream.StopCursor(u.source)
	if u.finish != nil {
		u.finish()
	}
}

// releasing is a sink that owns a resource freed by Stop. Stop reaches the
// wrapped sink first.
type releasing[R any] struct {
	sink.Sink[R]
	release func()
}

func (r *releasing[R]) Stop() {
	sink.Stop(r.Sink)
	r.release()
}

// MergeOptions lifts f to optional partials: absent values are skipped.
// It fits plans whose units are built with sink.Reduce.
func MergeOptions[T any](f func(a, b T) T) func(a, b stream.Option[T]) stream.Option[T] {
	return func(a, b stream.Option[T]) stream.Option[T] {
		x, okA := a.Get()
		y, okB := b.Get()
		switch {
		case okA && okB:
			return stream.Some(f(x, y))
		case okA:
			return a
		default:
			return b
		}
	}
}
