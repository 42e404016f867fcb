// Package errors provides the error taxonomy shared by every streamfusion
// package: structured errors with machine-readable codes, details, and a
// cause chain compatible with the standard errors package.
//
// Three kinds of failure exist. Item failures (ITEM_FAILED) travel inside
// stream.Result values and stay local to one sink. Worker failures
// (WORKER_FAILED, CANCELED) abort the whole execution. Configuration errors
// (INVALID_CONFIG) are returned by constructors before any work starts.
package errors
