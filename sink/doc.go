// Package sink provides terminal consumers for stream cursors.
//
// A sink owns a cursor and polls it once per call to its own Poll method,
// so a sink is itself a resumable state machine. Drive runs a sink to
// completion on the calling goroutine; YieldBy wraps a sink so that long
// pipelines periodically give the processor back to the Go scheduler.
//
//	s, _ := sink.YieldBy[int](sink.Count(stream.Range(0, 1<<20)), 32)
//	n, err := s.Run(ctx)
package sink
