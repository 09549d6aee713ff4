package benchmark

import (
	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/handler"
)

// noopHandler drops every entry after touching the rendered message, so
// benchmarks measure the logger and pipeline without any sink.
type noopHandler struct{}

func newNoopHandler() handler.Handler {
	return &noopHandler{}
}

func (h *noopHandler) Handle(e *core.Entry) error {
	_ = len(e.Message)
	return nil
}

func (h *noopHandler) CanRecycleEntry() bool {
	return true
}

func (h *noopHandler) Close() error {
	return nil
}
