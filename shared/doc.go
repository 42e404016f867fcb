// Package shared implements dynamic partitioning: one cursor is polled by
// many workers through cloned handles, each poll taking an exclusive lock
// for the duration of a single inner advance.
//
// The lock is a golang.org/x/sync/semaphore.Weighted of size one, so a
// worker waiting for it returns as soon as its context is canceled.
//
// The lock is held for the whole inner Poll. An asynchronous inner cursor,
// such as stream.FromChannel or stream.MapAsync, suspends while holding it
// and every other handle waits behind that suspension. Share synchronous
// cursors and put asynchronous stages on top of each handle instead:
//
//	root := shared.New(stream.Range(0, n))
//	h := root.Clone()
//	work := stream.MapAsync(h, fetch) // runs outside the lock
package shared
