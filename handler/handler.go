package handler

import (
	"github.com/philipp01105/dailylog/core"
)

// Handler defines the interface for log transports. Entries reaching a
// handler have already been through the formatter pipeline.
type Handler interface {
	// Handle processes a log entry
	Handle(entry *core.Entry) error

	// Close flushes pending output and releases resources
	Close() error
}

// Flusher is implemented by handlers that buffer output.
type Flusher interface {
	Flush() error
}

// Recycler is implemented by handlers that report whether the caller may
// return the entry to the pool once Handle returns.
type Recycler interface {
	CanRecycleEntry() bool
}

// CanRecycle reports whether h is done with an entry when Handle returns.
// Handlers that do not say so are assumed to keep it.
func CanRecycle(h Handler) bool {
	rc, ok := h.(Recycler)
	return ok && rc.CanRecycleEntry()
}

// Flush flushes h if it buffers output.
func Flush(h Handler) error {
	if f, ok := h.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
