// Package asynchandler decouples callers from slow sinks. A Handler copies
// each entry into a bounded queue drained by a single goroutine and applies
// a per-level OverflowPolicy when the queue is full. Close drains whatever
// is still queued, bounded by DrainTimeout.
package asynchandler
