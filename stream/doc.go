// Package stream provides pull-based cursors and the combinators that fuse
// them into a single state machine.
//
// A Cursor is advanced one step at a time with Poll, which returns a Step:
// NotYet (progress made, no item yet), Ready (one item) or Done (exhausted).
// Combinators wrap an upstream cursor and are lazy: no work happens until a
// driver, usually a sink from the sink package, polls the outermost cursor.
// Done is sticky only behind Fuse; every other combinator simply forwards
// what its upstream reports.
//
// # Combinators
//
//   - Map, Inspect, Copied, Cloned: per-item transformation
//   - Filter: keep items matching a predicate (rejected items become NotYet)
//   - FlatMap, Flatten: drain inner cursors in order
//   - MapAsync: one asynchronous computation in flight at a time
//   - Take, TakeWhile, Skip, SkipWhile, StepBy: prefix and stride control
//   - Chain, Fuse: sequencing and Done stickiness
//
// # Sources
//
// FromSlice, Range, Repeat, Empty, FromFunc, FromSeq, FromChannel and
// FromIterator lift existing data into cursors.
//
// # Cost model
//
// Steps are returned by value and combinators allocate only when they are
// constructed, so polling a pipeline performs no per-item heap allocation.
// Each stage holds its upstream as a Cursor interface, so every stage costs
// one dynamic call per poll; MapAsync additionally starts one goroutine per
// item.
//
// # Usage
//
//	src := stream.Range(0, 2048)
//	odd := stream.Map(stream.StepBy(src, 2), func(i int) int { return i + 1 })
//	big := stream.Filter(odd, func(i int) bool { return i > 512 })
//	total, _ := sink.Drive(ctx, sink.Fold(big, 0, func(acc, i int) int { return acc + i }))
package stream
