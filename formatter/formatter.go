package formatter

import (
	"bytes"
	"sync"

	"github.com/philipp01105/dailylog/core"
)

// DefaultTimestampFormat renders as YYYY-MM-DD HH:mm:ss
const DefaultTimestampFormat = "2006-01-02 15:04:05"

// Formatter defines the interface for log renderers
type Formatter interface {
	// Format renders a completed log entry into bytes
	Format(entry *core.Entry) ([]byte, error)
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer, avoiding internal
// buffer pool overhead.
type BufferFormatter interface {
	// FormatEntry formats a log entry into the given buffer.
	FormatEntry(entry *core.Entry, buf *bytes.Buffer)
}

// Config holds common formatter configuration
type Config struct {
	// IncludeCaller enables caller information in log output
	IncludeCaller bool
	// IncludeFields appends structured fields after the message
	IncludeFields bool
	// TimestampFormat is used only when the pipeline did not stamp the entry
	TimestampFormat string
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() interface{} {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}

// appendTimestamp writes the pipeline timestamp, falling back to the entry
// time when no Timestamp stage ran.
func appendTimestamp(buf *bytes.Buffer, entry *core.Entry, layout string) {
	if entry.Timestamp != "" {
		buf.WriteString(entry.Timestamp)
		return
	}
	if layout == "" {
		layout = DefaultTimestampFormat
	}
	buf.Write(entry.Time.AppendFormat(buf.AvailableBuffer(), layout))
}
