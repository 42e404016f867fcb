// Package execution runs fused pipelines on a bounded pool of workers.
//
// A Plan splits work into units, each a sink producing a partial result,
// and combines partials with an associative Merge. Two plans are provided:
//
//   - Morsels partitions a source into fixed-capacity morsels up front and
//     builds one unit per morsel.
//   - Shared hands every worker its own handle on one lock-protected cursor,
//     so workers pull items dynamically.
//
// Start returns a Handle immediately; Execute waits for the result. Workers
// are bounded by Config.WorkerCount and yield to the scheduler every
// Config.YieldEvery non-terminal polls. The first worker failure cancels the
// rest and the execution reports WORKER_FAILED; cancellation of the parent
// context reports CANCELED. Partial results of a failed execution are
// discarded.
//
// # Usage
//
//	e, err := execution.New(execution.DefaultConfig())
//	plan := execution.Morsels(stream.Range(0, 4096),
//		func(c stream.Cursor[int]) sink.Sink[int] {
//			return sink.Fold(c, 0, func(acc, i int) int { return acc + i })
//		},
//		func(a, b int) int { return a + b },
//	)
//	total, err := execution.Execute(ctx, e, plan)
package execution
