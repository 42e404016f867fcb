// Package morsel implements static partitioning: a source cursor is cut
// into fixed-capacity batches that can be handed to independent workers.
//
// Each morsel owns its backing storage, so a worker may read it while the
// source keeps producing the next one.
package morsel
