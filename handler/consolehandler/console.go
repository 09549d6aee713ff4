package consolehandler

import (
	"bytes"
	"errors"
	"io"
	"os"
	"sync"
	"syscall"
	"time"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/formatter"
	"github.com/philipp01105/dailylog/handler"
	"github.com/philipp01105/dailylog/handler/asynchandler"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer to write to (default: os.Stdout)
	Writer io.Writer
	// Formatter to use (default: colorized LineFormatter)
	Formatter formatter.Formatter
	// Async puts the handler behind a bounded queue (default: false)
	Async bool
	// BufferSize is the size of the async queue (default: 1000)
	BufferSize int
	// OverflowPolicy defines per-level overflow behavior (default: uses DefaultLevelPolicy)
	OverflowPolicy map[core.Level]handler.OverflowPolicy
	// BlockTimeout is the timeout for blocking overflow policy (default: 100ms)
	BlockTimeout time.Duration
	// DrainTimeout is the timeout for draining queue on Close (default: 5s)
	DrainTimeout time.Duration
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewLineFormatter(formatter.LineConfig{Colorize: true})
	}
}

// ConsoleHandler writes rendered entries to a writer. Writes are
// serialized so lines from concurrent callers never interleave.
type ConsoleHandler struct {
	writer          io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	stats           *handler.Stats
	mu              sync.Mutex // protects buf and writer
	buf             bytes.Buffer
	closed          chan struct{}
}

// NewConsoleHandler creates a new console handler. With Async set the
// returned handler is an asynchandler wrapping the console handler.
func NewConsoleHandler(cfg ConsoleConfig) handler.Handler {
	applyConsoleDefaults(&cfg)

	h := &ConsoleHandler{
		writer:    cfg.Writer,
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
		closed:    make(chan struct{}),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.buf.Grow(256)
	}

	if !cfg.Async {
		return h
	}
	return asynchandler.New(h, asynchandler.Config{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	})
}

// Handle renders and writes an entry.
func (h *ConsoleHandler) Handle(entry *core.Entry) error {
	if h.bufferFormatter != nil {
		h.mu.Lock()
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		_, err := h.writer.Write(h.buf.Bytes())
		h.mu.Unlock()
		h.count(err)
		return err
	}

	data, err := h.formatter.Format(entry)
	if err != nil {
		h.stats.IncrementFailed()
		return err
	}

	h.mu.Lock()
	_, err = h.writer.Write(data)
	h.mu.Unlock()
	h.count(err)
	return err
}

func (h *ConsoleHandler) count(err error) {
	if err != nil {
		h.stats.IncrementFailed()
		return
	}
	h.stats.IncrementProcessed()
}

// CanRecycleEntry returns true because the handler is done with the entry
// when Handle returns.
func (h *ConsoleHandler) CanRecycleEntry() bool {
	return true
}

// Flush syncs the writer when it is a file (stdout, stderr).
func (h *ConsoleHandler) Flush() error {
	f, ok := h.writer.(*os.File)
	if !ok {
		return nil
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := f.Sync(); err != nil && !isUnsupportedSync(err) {
		return err
	}
	return nil
}

// isUnsupportedSync reports errors returned when syncing terminals and pipes
func isUnsupportedSync(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTSUP)
}

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the handler. The writer itself is left open; it belongs to
// whoever passed it in.
func (h *ConsoleHandler) Close() error {
	select {
	case <-h.closed:
		return nil
	default:
		close(h.closed)
	}
	return nil
}
