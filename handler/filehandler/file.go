package filehandler

import (
	"bytes"
	"path/filepath"
	"sync"
	"time"

	"github.com/philipp01105/dailylog/core"
	"github.com/philipp01105/dailylog/formatter"
	"github.com/philipp01105/dailylog/handler"
	"github.com/philipp01105/dailylog/handler/asynchandler"
)

// FileConfig holds configuration for the daily file handler
type FileConfig struct {
	// Dir is the logs directory (default: ./logs)
	Dir string
	// DatePattern names the daily files, as a Go time layout (default: 2006-01-02)
	DatePattern string
	// MaxSize is the maximum size in bytes of one file (default: 20 MiB)
	MaxSize int64
	// MaxDays is how many days dated files are kept (default: 14, negative keeps all)
	MaxDays int
	// AuditFile is the audit file path (default: <Dir>/hash-audit.json)
	AuditFile string
	// Formatter to use (default: LineFormatter without colors)
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
	// Now is the clock used to pick the date (default: time.Now)
	Now func() time.Time
}

const (
	DefaultDir         = "./logs"
	DefaultDatePattern = "2006-01-02"
	DefaultMaxSize     = 20 * megabyte
	DefaultMaxDays     = 14
	DefaultAuditName   = "hash-audit.json"
)

// applyFileDefaults fills in zero-value fields with defaults.
func applyFileDefaults(cfg *FileConfig) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultDir
	}
	if cfg.DatePattern == "" {
		cfg.DatePattern = DefaultDatePattern
	}
	if cfg.MaxSize == 0 {
		cfg.MaxSize = DefaultMaxSize
	}
	if cfg.MaxDays == 0 {
		cfg.MaxDays = DefaultMaxDays
	}
	if cfg.AuditFile == "" {
		cfg.AuditFile = filepath.Join(cfg.Dir, DefaultAuditName)
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewLineFormatter(formatter.LineConfig{})
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
}

// FileHandler renders entries into a DailyWriter.
type FileHandler struct {
	writer          *DailyWriter
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	stats           *handler.Stats
	mu              sync.Mutex // protects buf
	buf             bytes.Buffer
	closeOnce       sync.Once
}

// NewFileHandler creates the daily file handler. With Async set the returned
// handler is an asynchandler wrapping the file handler.
func NewFileHandler(cfg FileConfig) (handler.Handler, error) {
	applyFileDefaults(&cfg)

	w, err := NewDailyWriter(cfg)
	if err != nil {
		return nil, err
	}

	h := &FileHandler{
		writer:    w,
		formatter: cfg.Formatter,
		stats:     handler.NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if h.bufferFormatter != nil {
		h.buf.Grow(256)
	}

	if !cfg.Async {
		return h, nil
	}
	return asynchandler.New(h, asynchandler.Config{
		BufferSize:     cfg.BufferSize,
		OverflowPolicy: cfg.OverflowPolicy,
		BlockTimeout:   cfg.BlockTimeout,
		DrainTimeout:   cfg.DrainTimeout,
	}), nil
}

// Handle renders and writes an entry.
func (h *FileHandler) Handle(entry *core.Entry) error {
	var err error
	if h.bufferFormatter != nil {
		h.mu.Lock()
		h.buf.Reset()
		h.bufferFormatter.FormatEntry(entry, &h.buf)
		_, err = h.writer.Write(h.buf.Bytes())
		h.mu.Unlock()
	} else {
		var data []byte
		data, err = h.formatter.Format(entry)
		if err == nil {
			_, err = h.writer.Write(data)
		}
	}

	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

// CanRecycleEntry returns true because the entry is fully written when
// Handle returns.
func (h *FileHandler) CanRecycleEntry() bool {
	return true
}

// Filename returns the path of the file currently written to.
func (h *FileHandler) Filename() string {
	return h.writer.Filename()
}

// AuditFile returns the path of the audit file.
func (h *FileHandler) AuditFile() string {
	return h.writer.AuditFile()
}

// Stats returns a snapshot of the current statistics
func (h *FileHandler) Stats() handler.Snapshot {
	return h.stats.GetSnapshot()
}

// Close closes the underlying file.
func (h *FileHandler) Close() error {
	var err error
	h.closeOnce.Do(func() {
		err = h.writer.Close()
	})
	return err
}
