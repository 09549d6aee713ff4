package formatter

import (
	"bytes"
	"strconv"

	"github.com/fatih/color"

	"github.com/philipp01105/dailylog/core"
)

// LineConfig configures a LineFormatter
type LineConfig struct {
	Config
	// Colorize wraps the level label in ANSI color codes
	Colorize bool
}

// LineFormatter renders entries as
//
//	[<level>][<timestamp>]: <message>
//
// followed by the stack on the next lines when the entry carries one.
type LineFormatter struct {
	LineConfig
	labels [core.PanicLevel + 1]string
}

// levelColors follows the usual terminal palette for log levels
var levelColors = [...][]color.Attribute{
	core.DebugLevel: {color.FgBlue},
	core.InfoLevel:  {color.FgGreen},
	core.WarnLevel:  {color.FgYellow},
	core.ErrorLevel: {color.FgRed},
	core.FatalLevel: {color.FgRed, color.Bold},
	core.PanicLevel: {color.FgMagenta, color.Bold},
}

// NewLineFormatter creates a new line formatter
func NewLineFormatter(cfg LineConfig) *LineFormatter {
	if cfg.TimestampFormat == "" {
		cfg.TimestampFormat = DefaultTimestampFormat
	}
	f := &LineFormatter{LineConfig: cfg}

	// pre-render labels so the hot path is a single WriteString
	for lvl := core.DebugLevel; lvl <= core.PanicLevel; lvl++ {
		label := lvl.String()
		if cfg.Colorize {
			c := color.New(levelColors[lvl]...)
			c.EnableColor()
			label = c.Sprint(label)
		}
		f.labels[lvl] = label
	}
	return f
}

// Format formats an entry as a line
func (f *LineFormatter) Format(entry *core.Entry) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.formatToBuffer(entry, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatEntry formats an entry into the given buffer (implements BufferFormatter).
func (f *LineFormatter) FormatEntry(entry *core.Entry, buf *bytes.Buffer) {
	f.formatToBuffer(entry, buf)
}

func (f *LineFormatter) formatToBuffer(entry *core.Entry, buf *bytes.Buffer) {
	buf.WriteByte('[')
	if entry.Level >= core.DebugLevel && entry.Level <= core.PanicLevel {
		buf.WriteString(f.labels[entry.Level])
	} else {
		buf.WriteString(entry.Level.String())
	}
	buf.WriteString("][")
	appendTimestamp(buf, entry, f.TimestampFormat)
	buf.WriteString("]: ")

	if f.IncludeCaller && entry.Caller.Defined {
		buf.WriteByte('[')
		buf.WriteString(entry.Caller.ShortFile)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(entry.Caller.Line))
		buf.WriteString("] ")
	}

	buf.WriteString(entry.Message)

	if f.IncludeFields {
		for _, field := range entry.Fields {
			buf.WriteByte(' ')
			buf.WriteString(field.Key)
			buf.WriteByte('=')
			buf.WriteString(field.StringValue())
		}
	}

	if entry.Stack != "" {
		buf.WriteByte('\n')
		buf.WriteString(entry.Stack)
	}

	buf.WriteByte('\n')
}
