package handler

import (
	"go.uber.org/multierr"

	"github.com/philipp01105/dailylog/core"
)

// MultiHandler sends log entries to multiple handlers
type MultiHandler struct {
	handlers     []Handler
	recycleEntry bool // true when every child supports entry recycling
}

// NewMultiHandler creates a new multi-handler
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	m := &MultiHandler{
		handlers:     handlers,
		recycleEntry: true,
	}
	for _, h := range handlers {
		if !CanRecycle(h) {
			m.recycleEntry = false
		}
	}
	return m
}

// Handlers returns the child handlers in dispatch order.
func (h *MultiHandler) Handlers() []Handler {
	return h.handlers
}

// Handle sends the entry to every handler. A failing child does not stop
// the others; all failures are returned combined.
func (h *MultiHandler) Handle(entry *core.Entry) error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Handle(entry))
	}
	return err
}

// CanRecycleEntry returns true if the caller can recycle the entry after Handle returns.
// This is safe when all child handlers process entries synchronously.
func (h *MultiHandler) CanRecycleEntry() bool {
	return h.recycleEntry
}

// Flush flushes every child that buffers output
func (h *MultiHandler) Flush() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, Flush(child))
	}
	return err
}

// Close closes all handlers
func (h *MultiHandler) Close() error {
	var err error
	for _, child := range h.handlers {
		err = multierr.Append(err, child.Close())
	}
	return err
}
